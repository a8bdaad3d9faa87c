package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/blog-service/internal/core/repository"
	logicv1 "github.com/duynhne/blog-service/internal/logic/v1"
	"github.com/duynhne/blog-service/internal/token"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	users := repository.NewInMemoryUserRepository()
	sessions := repository.NewInMemorySessionRepository()
	blogs := repository.NewInMemoryBlogRepository(users)

	codec := token.NewCodec("test-signing-secret", time.Hour)
	authService := logicv1.NewAuthService(users, sessions, codec, logicv1.AuthConfig{
		SessionTTL:        24 * time.Hour,
		BcryptCost:        10,
		MinPasswordLength: 5,
	})
	blogService := logicv1.NewBlogService(blogs)

	return NewHandler(authService, blogService)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	newTestHandler(t).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, name, email, password string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func createBlog(t *testing.T, r *gin.Engine, bearer, title, content string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", bearer, gin.H{
		"title": title, "content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Blog struct {
				ID string `json:"id"`
			} `json:"blog"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Blog.ID)
	return resp.Data.Blog.ID
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := newTestRouter(t)

	// Register: 201 with name and email, no password material anywhere.
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Alice Smith", "email": "alice@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := strings.ToLower(w.Body.String())
	require.Contains(t, body, "alice smith")
	require.Contains(t, body, "alice@x.com")
	require.NotContains(t, body, "password")

	// Login: 200 with token and user, again without password material.
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotContains(t, strings.ToLower(w.Body.String()), `"password`)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	bearer := loginResp.Data.Token
	require.NotEmpty(t, bearer)

	// Protected route works with the token.
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotContains(t, strings.ToLower(w.Body.String()), "password")

	// Logout: 204.
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/logout", bearer, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The unexpired token no longer authorizes anything.
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", bearer, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}

func TestLogoutTwiceBothNoContent(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")
	bearer := loginUser(t, r, "alice@x.com", "pw123")

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/logout", bearer, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/logout", bearer, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@x.com", "password": "wrong-password",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "nobody@x.com", "password": "pw123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, wrongPassword.Code, unknownEmail.Code)
	// Byte-identical bodies: no account-existence oracle.
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestProtectedRouteRejectsBadAuth(t *testing.T) {
	r := newTestRouter(t)

	// No header.
	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong scheme.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOwnershipForbidsCrossUserMutation(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")
	aliceToken := loginUser(t, r, "alice@x.com", "pw123")
	blogID := createBlog(t, r, aliceToken, "Alice's Post", "original content")

	registerUser(t, r, "Bob Jones", "bob@x.com", "pw456")
	bobToken := loginUser(t, r, "bob@x.com", "pw456")

	// Bob cannot delete or rewrite Alice's post.
	w := doJSON(t, r, http.MethodDelete, "/api/v1/blogs/"+blogID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut, "/api/v1/blogs/"+blogID, bobToken, gin.H{
		"title": "Hijacked", "content": "gotcha",
	})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// The post survives untouched.
	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs/"+blogID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "original content")

	// Alice can delete her own post.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/blogs/"+blogID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs/"+blogID, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutateMissingBlogIsNotFound(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")
	bearer := loginUser(t, r, "alice@x.com", "pw123")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/blogs/00000000-0000-0000-0000-000000000000", bearer, nil)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// But without authentication the same route answers 401, never 404.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/blogs/00000000-0000-0000-0000-000000000000", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterConflictAndValidation(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Second Alice", "email": "alice@x.com", "password": "pw789",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Al", "email": "al@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestBlogListsAndMyBlogs(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice Smith", "alice@x.com", "pw123")
	aliceToken := loginUser(t, r, "alice@x.com", "pw123")
	registerUser(t, r, "Bob Jones", "bob@x.com", "pw456")
	bobToken := loginUser(t, r, "bob@x.com", "pw456")

	createBlog(t, r, aliceToken, "A1", "alice content")
	createBlog(t, r, aliceToken, "A2", "alice content")
	createBlog(t, r, bobToken, "B1", "bob content")

	// Public list sees everything.
	w := doJSON(t, r, http.MethodGet, "/api/v1/blogs?page=1&size=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data struct {
			Blogs []struct {
				Title string `json:"title"`
			} `json:"blogs"`
			Pagination struct {
				Total   int64 `json:"total"`
				HasNext bool  `json:"hasNext"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Equal(t, int64(3), listResp.Data.Pagination.Total)
	require.False(t, listResp.Data.Pagination.HasNext)

	// /blogs/me only sees the caller's posts.
	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs/me", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Equal(t, int64(1), listResp.Data.Pagination.Total)
	require.Equal(t, "B1", listResp.Data.Blogs[0].Title)
}
