package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
)

func newAuthService() (*AuthService, *auth.TokenManager) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", 0, 0, "")
	return NewAuthService(memory.NewUserRepo(), memory.NewRefreshTokenRepo(), tm, "pepper", nil), tm
}

func validRegister() RegisterInput {
	return RegisterInput{
		Name:     "Asha Mehta",
		Email:    "asha@example.com",
		Password: "secret123",
		Roles:    []string{"agent"},
		MobileNo: "5551230000",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService()

	user, err := s.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// Duplicate email
	_, err = s.Register(ctx, validRegister())
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Missing fields
	in := validRegister()
	in.Email = "other@example.com"
	in.Roles = nil
	_, err = s.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, tm := newAuthService()

	user, err := s.Register(ctx, validRegister())
	require.NoError(t, err)

	result, err := s.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)

	// Access token decodes back to the user
	claims, err := tm.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Refresh token is persisted for revocation
	tokens, err := s.ListTokens(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, result.RefreshToken, tokens[0].Token)
	assert.Equal(t, user.ID, tokens[0].UserID)

	// Wrong password is an auth failure; an unknown email surfaces as
	// a missing user
	_, err = s.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrAuth)

	_, err = s.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	s, tm := newAuthService()

	user, err := s.Register(ctx, validRegister())
	require.NoError(t, err)

	result, err := s.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)

	accessToken, err := s.Refresh(ctx, result.RefreshToken)
	require.NoError(t, err)

	claims, err := tm.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// A structurally invalid token fails verification
	_, err = s.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrAuth)

	// A well-formed token without a store record is revoked
	orphan, err := tm.GenerateRefreshToken(user.ID)
	require.NoError(t, err)
	_, err = s.Refresh(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A user may hold several live sessions: every login issues a distinct
// refresh token, and revoking one leaves the others redeemable.
func TestConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService()

	_, err := s.Register(ctx, validRegister())
	require.NoError(t, err)

	first, err := s.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	second, err := s.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	tokens, err := s.ListTokens(ctx)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	require.NoError(t, s.Logout(ctx, first.RefreshToken))

	_, err = s.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService()

	_, err := s.Register(ctx, validRegister())
	require.NoError(t, err)

	result, err := s.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, result.RefreshToken))

	// Refresh after logout fails: the record is gone
	_, err = s.Refresh(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Logging out twice is fine
	assert.NoError(t, s.Logout(ctx, result.RefreshToken))
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService()

	user, err := s.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, user.ID))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	// Deleting an absent user is not an error
	assert.NoError(t, s.DeleteUser(ctx, user.ID))
}
