package memory

import (
	"context"
	"testing"

	"msm-console/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	a := b.Scope("ws-a")
	other := b.Scope("ws-b")

	require.NoError(t, a.Set(ctx, repository.KeyToken, "abc"))

	v, ok, err := a.Get(ctx, repository.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	_, ok, err = other.Get(ctx, repository.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteRemovesKeys(t *testing.T) {
	ctx := context.Background()
	s := NewBackend().Scope("ws")

	require.NoError(t, s.Set(ctx, repository.KeyToken, "abc"))
	require.NoError(t, s.Set(ctx, repository.KeyRefreshToken, "xyz"))
	require.NoError(t, s.Set(ctx, repository.KeySelectedCompanyID, "c1"))

	require.NoError(t, s.Delete(ctx, repository.KeyToken, repository.KeyRefreshToken))

	_, ok, _ := s.Get(ctx, repository.KeyToken)
	require.False(t, ok)
	_, ok, _ = s.Get(ctx, repository.KeyRefreshToken)
	require.False(t, ok)
	v, ok, _ := s.Get(ctx, repository.KeySelectedCompanyID)
	require.True(t, ok)
	require.Equal(t, "c1", v)

	require.NoError(t, s.Delete(ctx, "missing"))
}
