package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLoginLimiter(client), mr
}

func TestLoginLimiterOpensWindowOnFirstAttempt(t *testing.T) {
	l, mr := newLimiter(t)

	ok, remaining, err := l.CheckLoginAttempt(context.Background(), "10.0.0.1", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(4), remaining)
	assert.Equal(t, loginAttemptWindow, mr.TTL(loginKey("10.0.0.1", "admin@example.com")))
}

func TestLoginLimiterBlocksAfterMaxAttempts(t *testing.T) {
	l, mr := newLimiter(t)
	ctx := context.Background()

	for i := int64(0); i < maxLoginAttempts; i++ {
		ok, _, err := l.CheckLoginAttempt(ctx, "10.0.0.1", "admin@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, remaining, err := l.CheckLoginAttempt(ctx, "10.0.0.1", "admin@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, remaining)

	other, _, err := l.CheckLoginAttempt(ctx, "10.0.0.2", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, other)

	mr.FastForward(loginAttemptWindow)
	ok, _, err = l.CheckLoginAttempt(ctx, "10.0.0.1", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginLimiterReset(t *testing.T) {
	l, mr := newLimiter(t)
	ctx := context.Background()

	_, _, err := l.CheckLoginAttempt(ctx, "10.0.0.1", "admin@example.com")
	require.NoError(t, err)
	require.NoError(t, l.ResetLoginAttempts(ctx, "10.0.0.1", "admin@example.com"))
	assert.False(t, mr.Exists(loginKey("10.0.0.1", "admin@example.com")))
}

func TestLoginLimiterSurfacesRedisErrors(t *testing.T) {
	l, mr := newLimiter(t)
	mr.SetError("ERR unavailable")

	ok, _, err := l.CheckLoginAttempt(context.Background(), "10.0.0.1", "admin@example.com")
	assert.Error(t, err)
	assert.False(t, ok)
}
