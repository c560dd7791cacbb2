package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
)

// AuthService handles registration, login, token refresh and logout
type AuthService struct {
	users        domain.UserRepository
	tokens       domain.RefreshTokenRepository
	tokenManager *auth.TokenManager
	pepper       string
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service. pepper is a fixed
// secret mixed into every password before hashing.
func NewAuthService(
	users domain.UserRepository,
	tokens domain.RefreshTokenRepository,
	tokenManager *auth.TokenManager,
	pepper string,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:        users,
		tokens:       tokens,
		tokenManager: tokenManager,
		pepper:       pepper,
		logger:       logger,
	}
}

// RegisterInput carries the registration fields; all are required.
type RegisterInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	MobileNo string   `json:"mobileNo"`
}

// LoginResult carries both issued tokens plus the authenticated user.
type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"data"`
}

// Register creates a new user with a peppered bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || len(in.Roles) == 0 || in.MobileNo == "" {
		return nil, fmt.Errorf("name, email, password, roles, mobileNo is required: %w", domain.ErrValidation)
	}

	if existing, err := s.users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("user with email %s: %w", in.Email, domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password+s.pepper), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        in.Roles,
		MobileNo:     in.MobileNo,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			s.logger.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user and issues an access and a refresh token.
// The refresh token is persisted so it can be revoked by logout.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password is required: %w", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Info("login attempt with unknown email", slog.String("email", email))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password+s.pepper)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("email", email))
		return nil, fmt.Errorf("invalid password: %w", domain.ErrAuth)
	}

	accessToken, err := s.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("failed to sign access token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenManager.GenerateRefreshToken(user.ID)
	if err != nil {
		s.logger.Error("failed to sign refresh token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{Token: refreshToken, UserID: user.ID}); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token for a valid, still-persisted refresh
// token. A signature/expiry failure is an auth error; a missing store
// record means the token was revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("refresh token is required: %w", domain.ErrValidation)
	}

	claims, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", domain.ErrAuth)
	}

	if _, err := s.tokens.GetByToken(ctx, refreshToken); err != nil {
		return "", err
	}

	accessToken, err := s.tokenManager.GenerateAccessToken(claims.UserID)
	if err != nil {
		s.logger.Error("failed to sign access token", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token. Revoking a token that was already
// removed succeeds; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("refresh token is required: %w", domain.ErrValidation)
	}
	return s.tokens.DeleteByToken(ctx, refreshToken)
}

// ListUsers returns every user. Administrative; any authenticated caller
// may invoke it (the roles field is carried but not yet consulted).
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// ListTokens returns every persisted refresh token. Administrative.
func (s *AuthService) ListTokens(ctx context.Context) ([]*domain.RefreshToken, error) {
	return s.tokens.List(ctx)
}

// DeleteUser hard-deletes a user. Deleting an unknown id succeeds, as
// the original admin action did.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}
