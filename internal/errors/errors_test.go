package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FieldError(c, "title", "This field may not be blank.")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var body struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.Equal(t, []string{"This field may not be blank."}, body.Details["title"])
}

func TestHelpersUseDefaultMessages(t *testing.T) {
	tests := []struct {
		name   string
		send   func(c *gin.Context)
		status int
		code   string
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"invalid credentials", func(c *gin.Context) { InvalidCredentials(c, "") }, http.StatusUnauthorized, ErrCodeInvalidCredentials},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "") }, http.StatusForbidden, ErrCodeForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, ErrCodeNotFound},
		{"internal", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.send(c)

			require.Equal(t, tt.status, w.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
