package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"msm-console/internal/pkg/paging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	queries []paging.Query
	err     error
}

func (r *recorder) fetch(_ context.Context, q paging.Query) (paging.Result[string], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.err != nil {
		return paging.Result[string]{}, r.err
	}
	return paging.Result[string]{
		Items:      []string{"a"},
		TotalCount: 1,
		TotalPages: 1,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

func (r *recorder) calls() []paging.Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]paging.Query(nil), r.queries...)
}

type fixedScope string

func (f fixedScope) Filter() string { return paging.Eq("companyId", string(f)) }

func roleConfig() Config {
	return Config{
		Entity:       "roles",
		SearchFields: []string{"name", "description"},
		Columns:      map[string]bool{"description": false},
		Debounce:     40 * time.Millisecond,
	}
}

func TestSearchRefetchesOnceAfterQuietPeriod(t *testing.T) {
	rec := &recorder{}
	c := NewController[string](roleConfig(), rec.fetch, nil, zap.NewNop())
	defer c.Close()

	var pushed sync.WaitGroup
	pushed.Add(1)
	c.OnRefresh(func(view interface{}, err error) {
		assert.NoError(t, err)
		v, ok := view.(View[string])
		assert.True(t, ok)
		assert.Equal(t, 1, v.Query.Page)
		pushed.Done()
	})

	c.SetPage(3)
	for _, term := range []string{"a", "ad", "adm"} {
		c.SetSearch(term)
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, "adm", c.State().SearchTerm)
	assert.Empty(t, c.State().DebouncedSearch)

	assert.Eventually(t, func() bool { return len(rec.calls()) == 1 }, time.Second, 5*time.Millisecond)
	pushed.Wait()
	time.Sleep(80 * time.Millisecond)

	calls := rec.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Page)
	assert.Equal(t, "(name|description)@=*adm", calls[0].Filters)
	assert.Equal(t, "-createdAt", calls[0].Sorts)
	assert.Equal(t, "adm", c.State().DebouncedSearch)
}

func TestQueryCombinesScopeAndSearch(t *testing.T) {
	cfg := roleConfig()
	cfg.Scoped = true
	c := NewController[string](cfg, (&recorder{}).fetch, fixedScope("c1"), zap.NewNop())
	c.applySearch("x")

	q := c.Query()
	assert.Equal(t, "companyId|eq|c1,(name|description)@=*x", q.Filters)
}

func TestUserScreenSortDialect(t *testing.T) {
	cfg := Screens(10, time.Millisecond)["users"]
	c := NewController[string](cfg, (&recorder{}).fetch, nil, zap.NewNop())

	// The default name column sort leaves the preset in charge.
	assert.Equal(t, "-createdAt", c.Query().Sorts)

	c.SetColumnSort([]paging.SortField{{Field: "email", Desc: true}})
	assert.Equal(t, "Email desc", c.Query().Sorts)

	c.SetSort("createdAt")
	assert.Equal(t, "createdAt", c.Query().Sorts)
	assert.Empty(t, c.State().ColumnSort)
}

func TestTicketScreenSymbolSorts(t *testing.T) {
	cfg := Screens(10, time.Millisecond)["tickets"]
	c := NewController[string](cfg, (&recorder{}).fetch, nil, zap.NewNop())

	c.SetColumnSort([]paging.SortField{{Field: "title"}, {Field: "priority", Desc: true}})
	assert.Equal(t, "title,-priority", c.Query().Sorts)
}

func TestColumnVisibilityDefaults(t *testing.T) {
	c := NewController[string](Screens(10, time.Millisecond)["roles"], (&recorder{}).fetch, nil, zap.NewNop())
	assert.False(t, c.State().Columns["description"])

	c.SetColumnVisible("description", true)
	assert.True(t, c.State().Columns["description"])

	fresh := NewController[string](Screens(10, time.Millisecond)["roles"], (&recorder{}).fetch, nil, zap.NewNop())
	assert.False(t, fresh.State().Columns["description"])
}

func TestSetColumnVisibleIgnoresUnknownColumns(t *testing.T) {
	c := NewController[string](Screens(10, time.Millisecond)["roles"], (&recorder{}).fetch, nil, zap.NewNop())
	before := c.State().Columns

	c.SetColumnVisible("passwordHash", true)
	cols := c.State().Columns
	assert.NotContains(t, cols, "passwordHash")
	assert.Equal(t, before, cols)
}

func TestViewKeepsPreviousPageOnError(t *testing.T) {
	rec := &recorder{}
	c := NewController[string](roleConfig(), rec.fetch, nil, zap.NewNop())
	ctx := context.Background()

	first, err := c.View(ctx)
	require.NoError(t, err)
	assert.False(t, first.Placeholder)

	rec.mu.Lock()
	rec.err = errors.New("backend down")
	rec.mu.Unlock()
	c.SetPage(2)

	second, err := c.View(ctx)
	require.Error(t, err)
	assert.True(t, second.Placeholder)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, 2, second.Query.Page)
	assert.Equal(t, "backend down", second.Error)
}

func TestPageSizeResetsPage(t *testing.T) {
	c := NewController[string](roleConfig(), (&recorder{}).fetch, nil, zap.NewNop())
	c.SetPage(4)
	c.SetPageSize(500)

	s := c.State()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, paging.MaxPageSize, s.PageSize)
}

func TestControllerIsScreen(t *testing.T) {
	var _ Screen = NewController[string](roleConfig(), (&recorder{}).fetch, nil, zap.NewNop())
}
