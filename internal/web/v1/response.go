package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Uniform response envelope. Success responses carry data, failures carry a
// short machine-readable error code — never stack traces, driver errors, or
// internal identifiers.

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, successEnvelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, successEnvelope{Success: true, Message: message, Data: data})
}

func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, errorEnvelope{Success: false, Message: message, Error: code})
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message, "bad_request")
}

// respondUnauthorized is the single unauthenticated response. Every failure
// cause (missing header, bad signature, expired token, revoked session)
// produces this exact body, so callers cannot tell which check failed.
func respondUnauthorized(c *gin.Context) {
	respondError(c, http.StatusUnauthorized, "Unauthorized", "unauthorized")
}

func respondForbidden(c *gin.Context, message string) {
	respondError(c, http.StatusForbidden, message, "forbidden")
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, message, "not_found")
}

func respondConflict(c *gin.Context, message string) {
	respondError(c, http.StatusConflict, message, "conflict")
}

func respondInternalError(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "Something went wrong, please try again.", "internal_error")
}
