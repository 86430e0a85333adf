package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/config"
	"youthhub/api/internal/ids"
	"youthhub/api/internal/models"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/security"
)

// The same message covers unknown email and wrong password so responses
// cannot be used to probe which accounts exist.
const msgInvalidCredentials = "Invalid email or password"

// UserStore is the credential-store surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByIDWithPassword(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	SetResetToken(ctx context.Context, id string, tokenDigest string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, tokenDigest string) (models.User, error)
}

// RefreshTokenStore is the persisted refresh-token lifecycle surface.
type RefreshTokenStore interface {
	Create(ctx context.Context, token models.RefreshToken) error
	Consume(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type AuthService struct {
	users  UserStore
	tokens RefreshTokenStore
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens RefreshTokenStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, apierr.Conflict("Email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleStudent,
		IsActive:     true,
	}

	// The unique index backstops the pre-check under concurrent registration.
	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, apierr.Remap(err)
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apierr.Unauthorized(msgInvalidCredentials)
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apierr.Unauthorized(msgInvalidCredentials)
	}

	if !user.IsActive {
		return AuthResult{}, apierr.Forbidden("Account is deactivated")
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token is consumed
// first; whatever goes wrong afterwards the old token is already gone and
// can never be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	userID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return AuthResult{}, apierr.Unauthorized("Invalid or expired refresh token")
		}
		return AuthResult{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apierr.Unauthorized("User not found or deactivated")
		}
		return AuthResult{}, err
	}
	if !user.IsActive {
		return AuthResult{}, apierr.Unauthorized("User not found or deactivated")
	}

	return s.issuePair(ctx, user)
}

// Logout drops the presented refresh token. Idempotent: logging out with a
// token that is already gone succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

// LogoutAll signs the user out everywhere.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

// ForgotPassword stores a hashed reset token and returns the plaintext for
// out-of-band delivery.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apierr.NotFound("No user found with this email")
		}
		return "", err
	}

	plaintext, digest, err := security.GenerateResetToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.cfg.Auth.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return "", err
	}

	return plaintext, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(ctx, security.HashResetToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apierr.BadRequest("Token is invalid or has expired")
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	// Force re-login everywhere.
	if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("purge refresh tokens after reset failed")
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByIDWithPassword(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apierr.NotFound("User not found")
		}
		return err
	}

	ok, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return apierr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("purge refresh tokens after change failed")
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apierr.NotFound("User not found")
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user models.User) (AuthResult, error) {
	accessToken, err := security.GenerateAccessToken(
		s.cfg.Auth.JWTSecret,
		user.ID,
		string(user.Role),
		s.cfg.Auth.AccessTokenTTL,
	)
	if err != nil {
		return AuthResult{}, err
	}

	refreshToken, err := security.GenerateRefreshToken()
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.tokens.Create(ctx, models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.Auth.RefreshTokenTTL),
	}); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
