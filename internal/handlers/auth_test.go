package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/middleware"
	"youthhub/api/internal/models"
	"youthhub/api/internal/service"
)

type mockAuthProvider struct {
	registerFn       func(ctx context.Context, input service.RegisterInput) (service.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (service.AuthResult, error)
	refreshFn        func(ctx context.Context, refreshToken string) (service.AuthResult, error)
	logoutFn         func(ctx context.Context, refreshToken string) error
	logoutAllFn      func(ctx context.Context, userID string) error
	forgotPasswordFn func(ctx context.Context, email string) (string, error)
	resetPasswordFn  func(ctx context.Context, token, newPassword string) error
	changePasswordFn func(ctx context.Context, userID, currentPassword, newPassword string) error
	profileFn        func(ctx context.Context, userID string) (models.User, error)
}

func (m *mockAuthProvider) Register(ctx context.Context, input service.RegisterInput) (service.AuthResult, error) {
	return m.registerFn(ctx, input)
}

func (m *mockAuthProvider) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthProvider) Refresh(ctx context.Context, refreshToken string) (service.AuthResult, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthProvider) Logout(ctx context.Context, refreshToken string) error {
	return m.logoutFn(ctx, refreshToken)
}

func (m *mockAuthProvider) LogoutAll(ctx context.Context, userID string) error {
	return m.logoutAllFn(ctx, userID)
}

func (m *mockAuthProvider) ForgotPassword(ctx context.Context, email string) (string, error) {
	return m.forgotPasswordFn(ctx, email)
}

func (m *mockAuthProvider) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.resetPasswordFn(ctx, token, newPassword)
}

func (m *mockAuthProvider) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.changePasswordFn(ctx, userID, currentPassword, newPassword)
}

func (m *mockAuthProvider) Profile(ctx context.Context, userID string) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func newAuthTestRouter(auth AuthProvider, authedUser *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &HandlerSet{auth: auth}

	router := gin.New()
	router.Use(middleware.ErrorHandler(zerolog.Nop(), "test"))
	if authedUser != nil {
		router.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, *authedUser)
		})
	}

	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.Refresh)
	router.POST("/auth/forgot-password", h.ForgotPassword)
	router.POST("/auth/change-password", h.ChangePassword)
	router.GET("/auth/me", h.Me)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	mock := &mockAuthProvider{
		registerFn: func(_ context.Context, input service.RegisterInput) (service.AuthResult, error) {
			return service.AuthResult{
				User:         models.User{ID: "u1", Name: input.Name, Email: input.Email, Role: models.RoleStudent, IsActive: true},
				AccessToken:  "access",
				RefreshToken: "refresh",
			}, nil
		},
	}
	router := newAuthTestRouter(mock, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Lina Haddad",
		"email":    "lina@example.org",
		"password": "a-strong-password",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "access", data["accessToken"])
	assert.Equal(t, "refresh", data["refreshToken"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "u1", user["id"])
	assert.NotContains(t, user, "passwordHash")
}

func TestRegisterHandlerValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload gin.H
	}{
		{"missing email", gin.H{"name": "Lina", "password": "a-strong-password"}},
		{"bad email", gin.H{"name": "Lina", "email": "not-an-email", "password": "a-strong-password"}},
		{"short password", gin.H{"name": "Lina", "email": "lina@example.org", "password": "short"}},
		{"short name", gin.H{"name": "L", "email": "lina@example.org", "password": "a-strong-password"}},
	}
	router := newAuthTestRouter(&mockAuthProvider{}, nil)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/auth/register", tc.payload)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["errors"])
		})
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	mock := &mockAuthProvider{
		loginFn: func(_ context.Context, _, _ string) (service.AuthResult, error) {
			return service.AuthResult{}, apierr.Unauthorized("Invalid email or password")
		},
	}
	router := newAuthTestRouter(mock, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "lina@example.org",
		"password": "bad-password",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestRefreshHandlerRotatesPair(t *testing.T) {
	var presented string
	mock := &mockAuthProvider{
		refreshFn: func(_ context.Context, refreshToken string) (service.AuthResult, error) {
			presented = refreshToken
			return service.AuthResult{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
		},
	}
	router := newAuthTestRouter(mock, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{"refreshToken": "old-refresh"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old-refresh", presented)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "new-access", data["accessToken"])
	assert.Equal(t, "new-refresh", data["refreshToken"])
}

func TestRefreshHandlerRejectsReplay(t *testing.T) {
	mock := &mockAuthProvider{
		refreshFn: func(_ context.Context, _ string) (service.AuthResult, error) {
			return service.AuthResult{}, apierr.Unauthorized("Invalid or expired refresh token")
		},
	}
	router := newAuthTestRouter(mock, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{"refreshToken": "spent"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired refresh token", decodeBody(t, rec)["message"])
}

func TestForgotPasswordHandler(t *testing.T) {
	mock := &mockAuthProvider{
		forgotPasswordFn: func(_ context.Context, email string) (string, error) {
			assert.Equal(t, "lina@example.org", email)
			return "reset-token-plaintext", nil
		},
	}
	router := newAuthTestRouter(mock, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/forgot-password", gin.H{"email": "lina@example.org"})

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "reset-token-plaintext", data["resetToken"])
}

func TestChangePasswordHandlerRequiresIdentity(t *testing.T) {
	router := newAuthTestRouter(&mockAuthProvider{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/change-password", gin.H{
		"currentPassword": "old-password",
		"newPassword":     "a-brand-new-password",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordHandler(t *testing.T) {
	user := models.User{ID: "u1", Role: models.RoleStudent, IsActive: true}
	mock := &mockAuthProvider{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "old-password", current)
			assert.Equal(t, "a-brand-new-password", next)
			return nil
		},
	}
	router := newAuthTestRouter(mock, &user)

	rec := doJSON(t, router, http.MethodPost, "/auth/change-password", gin.H{
		"currentPassword": "old-password",
		"newPassword":     "a-brand-new-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMeHandler(t *testing.T) {
	user := models.User{ID: "u1", Name: "Lina Haddad", Email: "lina@example.org", Role: models.RoleEditor, IsActive: true}
	router := newAuthTestRouter(&mockAuthProvider{}, &user)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	got := data["user"].(map[string]any)
	assert.Equal(t, "u1", got["id"])
	assert.Equal(t, "editor", got["role"])
}
