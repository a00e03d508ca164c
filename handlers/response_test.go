package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-marketplace-api/apperr"
	"food-marketplace-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("order %d not found", 1), http.StatusNotFound},
		{apperr.Conflict("closed"), http.StatusConflict},
		{apperr.InvalidArgument("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("who"), http.StatusUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	h := &Handler{log: logger.New(&logs, "test", "info")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h.fail(c, "get_order", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "connection refused")
	assert.Contains(t, logs.String(), `"action":"get_order"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.fail(c, "get_order", apperr.NotFound("order %d not found", 5))
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "order 5 not found", body["error"])
}
