package scope

import (
	"context"
	"testing"

	"msm-console/internal/repository"
	"msm-console/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectPersistsAndFilters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Scope("ws")
	c := NewCompany(store, zap.NewNop())

	var changes []string
	c.OnChange(func(id string) { changes = append(changes, id) })

	assert.Empty(t, c.Filter())
	require.NoError(t, c.Select(ctx, "c-1"))
	assert.Equal(t, "c-1", c.Selected())
	assert.Equal(t, "companyId|eq|c-1", c.Filter())

	stored, ok, err := store.Get(ctx, repository.KeySelectedCompanyID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c-1", stored)

	require.NoError(t, c.Select(ctx, "c-1"))
	require.NoError(t, c.Select(ctx, ""))
	_, ok, _ = store.Get(ctx, repository.KeySelectedCompanyID)
	assert.False(t, ok)
	assert.Equal(t, []string{"c-1", ""}, changes)
}

func TestLoadRestoresSelection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Scope("ws")
	require.NoError(t, store.Set(ctx, repository.KeySelectedCompanyID, "c-9"))

	c := NewCompany(store, zap.NewNop())
	id, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c-9", id)
	assert.Equal(t, "companyId|eq|c-9", c.Filter())
}
