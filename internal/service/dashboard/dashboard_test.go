package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"msm-console/internal/domain/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCounter struct {
	mu      sync.Mutex
	count   int
	err     error
	filters []string
}

func (f *fakeCounter) Count(_ context.Context, filters string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filters)
	return f.count, f.err
}

type selection string

func (s selection) Selected() string { return string(s) }

func TestSummaryWithoutCompanyDisablesScopedTiles(t *testing.T) {
	invoices := &fakeCounter{count: 3}
	users := &fakeCounter{count: 7}
	svc := NewDashboardService([]TileSpec{
		{Key: "invoices", Title: "Invoices", Section: dashboard.SectionTransactions, Scoped: true, Counter: invoices},
		{Key: "users", Title: "Users", Section: dashboard.SectionSettings, Counter: users},
	}, selection(""), zap.NewNop())

	s := svc.Summary(context.Background())
	require.Len(t, s.Tiles, 2)
	assert.NotEmpty(t, s.Notice)
	assert.True(t, s.Tiles[0].Disabled)
	assert.Zero(t, s.Tiles[0].Count)
	assert.Empty(t, invoices.filters)
	assert.Equal(t, 7, s.Tiles[1].Count)
	assert.Equal(t, []string{""}, users.filters)
}

func TestSummaryScopesAndIsolatesErrors(t *testing.T) {
	machines := &fakeCounter{err: errors.New("down")}
	brands := &fakeCounter{count: 2}
	svc := NewDashboardService([]TileSpec{
		{Key: "machines", Title: "Machines", Section: dashboard.SectionMasterData, Scoped: true, Counter: machines},
		{Key: "brands", Title: "Brands", Section: dashboard.SectionMasterData, Scoped: true, Counter: brands},
	}, selection("c1"), zap.NewNop())

	s := svc.Summary(context.Background())
	assert.Empty(t, s.Notice)
	assert.Equal(t, "Failed to load", s.Tiles[0].Error)
	assert.Equal(t, 2, s.Tiles[1].Count)
	assert.Empty(t, s.Tiles[1].Error)
	assert.Equal(t, []string{"companyId|eq|c1"}, brands.filters)
}
