package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/config"
	"youthhub/api/internal/models"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/security"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	user.PasswordHash = nil
	return user, nil
}

func (s *fakeUserStore) GetByIDWithPassword(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, err := s.FindByEmailWithPassword(context.Background(), email)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = nil
	return user, nil
}

func (s *fakeUserStore) FindByEmailWithPassword(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	now := time.Now().Add(-time.Second)
	user.PasswordHash = passwordHash
	user.PasswordChangedAt = &now
	user.PasswordResetToken = nil
	user.PasswordResetExpiry = nil
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetResetToken(_ context.Context, id string, tokenDigest string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordResetToken = &tokenDigest
	user.PasswordResetExpiry = &expiresAt
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) FindByResetToken(_ context.Context, tokenDigest string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.PasswordResetToken != nil && *user.PasswordResetToken == tokenDigest &&
			user.PasswordResetExpiry != nil && user.PasswordResetExpiry.After(time.Now()) {
			user.PasswordHash = nil
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]models.RefreshToken{}}
}

func (s *fakeTokenStore) Create(_ context.Context, token models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = token
	return nil
}

func (s *fakeTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token]
	if !ok {
		return "", repository.ErrRefreshTokenNotFound
	}
	delete(s.tokens, token)
	if record.ExpiresAt.Before(time.Now()) {
		return "", repository.ErrRefreshTokenExpired
	}
	return record.UserID, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *fakeTokenStore) DeleteByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range s.tokens {
		if record.UserID == userID {
			delete(s.tokens, key)
		}
	}
	return nil
}

func (s *fakeTokenStore) countByUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, record := range s.tokens {
		if record.UserID == userID {
			count++
		}
	}
	return count
}

func testAuthConfig() *config.AppConfig {
	return &config.AppConfig{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			ResetTokenTTL:   10 * time.Minute,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	return NewAuthService(users, tokens, testAuthConfig(), zerolog.Nop()), users, tokens
}

func registerTestUser(t *testing.T, svc *AuthService) AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Lina Haddad",
		Email:    "lina@example.org",
		Password: "a-strong-password",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, _, tokens := newTestAuthService()

	result := registerTestUser(t, svc)

	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.True(t, result.User.IsActive)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, 1, tokens.countByUser(result.User.ID))

	claims, err := security.ParseAccessToken(result.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, string(models.RoleStudent), claims.Role)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Lina Haddad",
		Email:    "  LINA@Example.ORG ",
		Password: "a-strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "lina@example.org", result.User.Email)

	_, err = users.FindByEmail(context.Background(), "lina@example.org")
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Someone Else",
		Email:    "lina@example.org",
		Password: "another-password",
	})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, errWrongPassword := svc.Login(context.Background(), "lina@example.org", "bad-password")
	_, errUnknownEmail := svc.Login(context.Background(), "nobody@example.org", "bad-password")

	var apiErr1, apiErr2 *apierr.Error
	require.ErrorAs(t, errWrongPassword, &apiErr1)
	require.ErrorAs(t, errUnknownEmail, &apiErr2)
	assert.Equal(t, 401, apiErr1.Status)
	assert.Equal(t, 401, apiErr2.Status)
	assert.Equal(t, apiErr1.Message, apiErr2.Message)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users, _ := newTestAuthService()
	result := registerTestUser(t, svc)

	user := users.users[result.User.ID]
	user.IsActive = false
	users.users[result.User.ID] = user

	_, err := svc.Login(context.Background(), "lina@example.org", "a-strong-password")

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	rotated, err := svc.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, result.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, tokens.countByUser(result.User.ID))

	// The consumed token can never be replayed.
	_, err = svc.Refresh(context.Background(), result.RefreshToken)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	record := tokens.tokens[result.RefreshToken]
	record.ExpiresAt = time.Now().Add(-time.Minute)
	tokens.tokens[result.RefreshToken] = record

	_, err := svc.Refresh(context.Background(), result.RefreshToken)

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	// Consumption removed the record either way.
	assert.Equal(t, 0, tokens.countByUser(result.User.ID))
}

func TestRefreshDeactivatedUser(t *testing.T) {
	svc, users, _ := newTestAuthService()
	result := registerTestUser(t, svc)

	user := users.users[result.User.ID]
	user.IsActive = false
	users.users[result.User.ID] = user

	_, err := svc.Refresh(context.Background(), result.RefreshToken)

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	require.NoError(t, svc.Logout(context.Background(), result.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), result.RefreshToken))
	assert.Equal(t, 0, tokens.countByUser(result.User.ID))
}

func TestLogoutAllPurgesEverySession(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), "lina@example.org", "a-strong-password")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "lina@example.org", "a-strong-password")
	require.NoError(t, err)
	require.Equal(t, 3, tokens.countByUser(result.User.ID))

	require.NoError(t, svc.LogoutAll(context.Background(), result.User.ID))
	assert.Equal(t, 0, tokens.countByUser(result.User.ID))
}

func TestForgotAndResetPasswordFlow(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	plaintext, err := svc.ForgotPassword(context.Background(), "lina@example.org")
	require.NoError(t, err)
	require.NotEmpty(t, plaintext)

	require.NoError(t, svc.ResetPassword(context.Background(), plaintext, "a-brand-new-password"))

	// Old sessions are gone and the old password no longer works.
	assert.Equal(t, 0, tokens.countByUser(result.User.ID))
	_, err = svc.Login(context.Background(), "lina@example.org", "a-strong-password")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "lina@example.org", "a-brand-new-password")
	assert.NoError(t, err)
}

func TestResetPasswordTokenSingleUse(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	plaintext, err := svc.ForgotPassword(context.Background(), "lina@example.org")
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(context.Background(), plaintext, "a-brand-new-password"))

	err = svc.ResetPassword(context.Background(), plaintext, "yet-another-password")
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestResetPasswordBogusToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.ResetPassword(context.Background(), "never-issued", "whatever-password")

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.ForgotPassword(context.Background(), "nobody@example.org")

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestChangePassword(t *testing.T) {
	svc, users, tokens := newTestAuthService()
	result := registerTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), result.User.ID, "wrong-current", "a-brand-new-password")
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	require.NoError(t, svc.ChangePassword(context.Background(), result.User.ID, "a-strong-password", "a-brand-new-password"))
	assert.Equal(t, 0, tokens.countByUser(result.User.ID))

	// Access tokens minted before the change are now stale.
	user := users.users[result.User.ID]
	require.NotNil(t, user.PasswordChangedAt)
	assert.True(t, user.ChangedPasswordAfter(user.PasswordChangedAt.Add(-time.Minute)))
	assert.False(t, user.ChangedPasswordAfter(user.PasswordChangedAt.Add(time.Minute)))
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestAuthService()
	result := registerTestUser(t, svc)

	user, err := svc.Profile(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "lina@example.org", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Profile(context.Background(), "missing-id")
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
