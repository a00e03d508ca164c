package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-marketplace-api/auth"
	"food-marketplace-api/logger"
	"food-marketplace-api/models"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("middleware-secret", time.Hour, "test")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	tokens := newIssuer()
	r := gin.New()
	r.GET("/me", AuthRequired(tokens), func(c *gin.Context) {
		caller := CurrentCaller(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.UserID, "role": caller.Role})
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")

	other := auth.NewTokenIssuer("someone-else", time.Hour, "test")
	forged, err := other.Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	tok, err := tokens.Issue(&models.User{ID: 9, Email: "a@b.c", Role: models.RoleCustomer})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":9,"role":"Customer"}`, w.Body.String())
}

func TestRoleRequired(t *testing.T) {
	tokens := newIssuer()
	r := gin.New()
	r.GET("/admin", AuthRequired(tokens), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/no-auth", RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for role, want := range map[models.UserRole]int{
		models.RoleAdmin:           http.StatusNoContent,
		models.RoleCustomer:        http.StatusForbidden,
		models.RoleRestaurantOwner: http.StatusForbidden,
	} {
		tok, err := tokens.Issue(&models.User{ID: 3, Role: role})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		assert.Equal(t, want, serve(r, req).Code, role)
	}

	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/no-auth", nil)).Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(logger.New(&buf, "test", "info")))
	r.GET("/items/:id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c)+"|"+logger.RequestID(c.Request.Context()))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/items/5", nil))
	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id+"|"+id, w.Body.String())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "http_request", line["action"])
	assert.Equal(t, id, line["request_id"])
	assert.Equal(t, "/items/:id", line["path"])
	assert.EqualValues(t, 200, line["status"])

	req := httptest.NewRequest(http.MethodGet, "/items/6", nil)
	req.Header.Set(RequestIDHeader, "client-chosen")
	w = serve(r, req)
	assert.Equal(t, "client-chosen", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/api/customer/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/customer/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBrotli(t *testing.T) {
	payload := strings.Repeat("pizza ", 200)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/json", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"menu": payload}) })
	r.DELETE("/empty", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Less(t, w.Body.Len(), len(payload))
	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.JSONEq(t, `{"menu":"`+payload+`"}`, string(plain))

	req = httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "pizza")

	req = httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "br;q=0")
	assert.Empty(t, serve(r, req).Header().Get("Content-Encoding"))

	req = httptest.NewRequest(http.MethodDelete, "/empty", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Zero(t, w.Body.Len())
}
