package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
)

func TestRunOncePurgesOnlyExpiredTokens(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewRefreshTokenRepo()

	require.NoError(t, tokens.Create(ctx, &domain.RefreshToken{Token: "stale", UserID: "user-1"}))

	// Everything created so far is older than a zero-length TTL
	time.Sleep(5 * time.Millisecond)
	w := NewTokenCleanupWorker(tokens, time.Nanosecond, time.Hour, nil)
	w.RunOnce(ctx)

	_, err := tokens.GetByToken(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunOnceKeepsLiveTokens(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewRefreshTokenRepo()

	require.NoError(t, tokens.Create(ctx, &domain.RefreshToken{Token: "live", UserID: "user-1"}))

	w := NewTokenCleanupWorker(tokens, 7*24*time.Hour, time.Hour, nil)
	w.RunOnce(ctx)

	got, err := tokens.GetByToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}
