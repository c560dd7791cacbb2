package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")

	token, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)

	claims, err := tm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "crmsystemdesign", claims.Issuer)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")

	token, err := tm.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := tm.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

// Tokens issued back to back for the same user must still be distinct,
// so one user can hold several live sessions at once.
func TestTokensAreUniquePerIssue(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")

	first, err := tm.GenerateRefreshToken("user-123")
	require.NoError(t, err)
	second, err := tm.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := tm.ValidateRefreshToken(first)
	require.NoError(t, err)
	secondClaims, err := tm.ValidateRefreshToken(second)
	require.NoError(t, err)
	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

// The two token kinds are signed with separate secrets and must not
// verify against each other.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")

	accessToken, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)
	refreshToken, err := tm.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = tm.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Nanosecond, 0, "")

	token, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tm.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestGenerateRequiresUserID(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")

	_, err := tm.GenerateAccessToken("")
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0, "")
	other := NewTokenManager("different-secret", "refresh-secret", 0, 0, "")

	token, err := other.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(token)
	assert.Error(t, err)
}
