// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global zerolog logger with the given level.
// Unknown levels fall back to info.
func Setup(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// FromContext returns the request-scoped logger injected by the logging
// middleware, or the global logger when none is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
