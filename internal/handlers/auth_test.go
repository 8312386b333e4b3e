package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *auth.TokenService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	tokens, err := auth.NewTokenService("test-secret", 5*time.Minute, time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/register/", handler.Register)
	r.POST("/api/auth/token/", handler.ObtainToken)
	r.POST("/api/auth/token/refresh/", handler.RefreshToken)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
		router:      r,
	}
}

func (env authTestEnv) post(t *testing.T, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/register/", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "alice", response["username"])
	assert.Equal(t, "alice@example.com", response["email"])
	assert.NotContains(t, response, "password")
	assert.NotContains(t, response, "password_hash")
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{"username": "alice", "password": "supersecret"}
	require.Equal(t, http.StatusCreated, env.post(t, "/api/auth/register/", payload).Code)

	w := env.post(t, "/api/auth/register/", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrCodeInvalidInput, response.Code)
	assert.Contains(t, response.Details, "username")
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	env := setupAuthTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]string
		field   string
	}{
		{"bad email", map[string]string{"username": "alice", "email": "nope", "password": "x"}, "email"},
		{"missing password", map[string]string{"username": "alice"}, "password"},
		{"missing username", map[string]string{"password": "x"}, "username"},
		{"blank password", map[string]string{"username": "alice", "password": "   "}, "password"},
		{"password too long", map[string]string{"username": "alice", "password": strings.Repeat("x", 80)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.post(t, "/api/auth/register/", tt.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var response struct {
				Details map[string][]string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response.Details, tt.field)
		})
	}
}

func TestAuthHandler_ObtainToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/token/", map[string]string{"username": "alice", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	userID, err := env.tokens.Verify(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.NotEmpty(t, pair.Refresh)

	w = env.post(t, "/api/auth/token/", map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, apiErr.Code)

	w = env.post(t, "/api/auth/token/", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	pair, err := env.authService.ObtainToken(services.LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/token/refresh/", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	_, err = env.tokens.Verify(response["access"])
	assert.NoError(t, err)

	w = env.post(t, "/api/auth/token/refresh/", map[string]string{"refresh": pair.Access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.post(t, "/api/auth/token/refresh/", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "current-user",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, *user)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
