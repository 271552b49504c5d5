// internal/listview/controller.go
package listview

import (
	"context"
	"sync"

	"msm-console/internal/pkg/debounce"
	"msm-console/internal/pkg/paging"

	"go.uber.org/zap"
)

// Fetcher loads one page, normally through the query cache.
type Fetcher[T any] func(ctx context.Context, q paging.Query) (paging.Result[T], error)

// Filterer yields the company scope filter.
type Filterer interface {
	Filter() string
}

// State is what the shell controls on a list screen.
type State struct {
	SearchTerm      string             `json:"searchTerm"`
	DebouncedSearch string             `json:"debouncedSearch"`
	Page            int                `json:"page"`
	PageSize        int                `json:"pageSize"`
	Sort            string             `json:"sort"`
	ColumnSort      []paging.SortField `json:"columnSort,omitempty"`
	Columns         map[string]bool    `json:"columns"`
}

// View is one rendered list screen.
type View[T any] struct {
	Entity string           `json:"entity"`
	State  State            `json:"state"`
	Query  paging.Query     `json:"query"`
	Result paging.Result[T] `json:"result"`
	// Placeholder is set when Result is the previous page kept on screen
	// because the current fetch failed.
	Placeholder bool   `json:"placeholder"`
	Error       string `json:"error,omitempty"`
}

// Screen is the type-erased controller used by handlers and the push channel.
type Screen interface {
	Entity() string
	SetSearch(term string)
	SetPage(page int)
	SetPageSize(size int)
	SetSort(preset string)
	SetColumnSort(fields []paging.SortField)
	SetColumnVisible(column string, visible bool)
	State() State
	Render(ctx context.Context) (interface{}, error)
	OnRefresh(fn func(view interface{}, err error))
	Close()
}

type Controller[T any] struct {
	cfg       Config
	fetch     Fetcher[T]
	scope     Filterer
	debouncer *debounce.Debouncer
	logger    *zap.Logger

	mu        sync.Mutex
	state     State
	last      *paging.Result[T]
	listeners []func(view interface{}, err error)
}

func NewController[T any](cfg Config, fetch Fetcher[T], scope Filterer, logger *zap.Logger) *Controller[T] {
	cfg = cfg.withDefaults()

	columns := make(map[string]bool, len(cfg.Columns))
	for k, v := range cfg.Columns {
		columns[k] = v
	}

	return &Controller[T]{
		cfg:       cfg,
		fetch:     fetch,
		scope:     scope,
		debouncer: debounce.New(cfg.Debounce),
		logger:    logger.With(zap.String("screen", cfg.Entity)),
		state: State{
			Page:       1,
			PageSize:   cfg.PageSize,
			Sort:       cfg.DefaultSort,
			ColumnSort: append([]paging.SortField(nil), cfg.DefaultColumnSort...),
			Columns:    columns,
		},
	}
}

func (c *Controller[T]) Entity() string { return c.cfg.Entity }

// OnRefresh registers a listener for views produced by a debounced search.
func (c *Controller[T]) OnRefresh(fn func(view interface{}, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// ========== State changes ==========

// SetSearch stores the term at once. The query follows after the quiet
// period, back on page one, with exactly one refetch.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	c.state.SearchTerm = term
	c.mu.Unlock()

	c.debouncer.Trigger(func() {
		c.applySearch(term)
	})
}

func (c *Controller[T]) applySearch(term string) {
	c.mu.Lock()
	c.state.DebouncedSearch = term
	c.state.Page = 1
	listeners := append([]func(interface{}, error){}, c.listeners...)
	c.mu.Unlock()

	view, err := c.render(context.Background())
	if err != nil {
		c.logger.Warn("search refetch failed", zap.String("term", term), zap.Error(err))
	}
	for _, l := range listeners {
		l(view, err)
	}
}

func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = page
}

func (c *Controller[T]) SetPageSize(size int) {
	if size < 1 {
		size = c.cfg.PageSize
	}
	if size > paging.MaxPageSize {
		size = paging.MaxPageSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PageSize = size
	c.state.Page = 1
}

// SetSort picks a preset sort and drops any column sort.
func (c *Controller[T]) SetSort(preset string) {
	if preset == "" {
		preset = c.cfg.DefaultSort
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = preset
	c.state.ColumnSort = nil
}

func (c *Controller[T]) SetColumnSort(fields []paging.SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ColumnSort = append([]paging.SortField(nil), fields...)
}

func (c *Controller[T]) SetColumnVisible(column string, visible bool) {
	if _, ok := c.cfg.Columns[column]; !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Columns[column] = visible
}

// State returns a copy of the screen state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyStateLocked()
}

func (c *Controller[T]) copyStateLocked() State {
	s := c.state
	s.ColumnSort = append([]paging.SortField(nil), c.state.ColumnSort...)
	s.Columns = make(map[string]bool, len(c.state.Columns))
	for k, v := range c.state.Columns {
		s.Columns[k] = v
	}
	return s
}

// ========== Query ==========

// Query builds the backend request from the debounced state.
func (c *Controller[T]) Query() paging.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

func (c *Controller[T]) queryLocked() paging.Query {
	var scopeFilter string
	if c.cfg.Scoped && c.scope != nil {
		scopeFilter = c.scope.Filter()
	}

	sorts := c.state.Sort
	if cs := c.state.ColumnSort; len(cs) > 0 && cs[0].Field != c.cfg.PresetColumn {
		sorts = paging.FormatSorts(c.cfg.Dialect, cs...)
	}

	return paging.Query{
		Page:     c.state.Page,
		PageSize: c.state.PageSize,
		Filters:  paging.And(scopeFilter, paging.Contains(c.state.DebouncedSearch, c.cfg.SearchFields...)),
		Sorts:    sorts,
	}
}

// ========== Rendering ==========

func (c *Controller[T]) Render(ctx context.Context) (interface{}, error) {
	return c.render(ctx)
}

// View fetches the current page. On failure the previous page is returned
// as a placeholder together with the error.
func (c *Controller[T]) View(ctx context.Context) (View[T], error) {
	return c.render(ctx)
}

func (c *Controller[T]) render(ctx context.Context) (View[T], error) {
	c.mu.Lock()
	q := c.queryLocked()
	state := c.copyStateLocked()
	c.mu.Unlock()

	view := View[T]{Entity: c.cfg.Entity, State: state, Query: q}

	res, err := c.fetch(ctx, q)
	if err != nil {
		c.mu.Lock()
		if c.last != nil {
			view.Result = *c.last
		} else {
			view.Result = paging.Empty[T](q)
		}
		c.mu.Unlock()
		view.Placeholder = true
		view.Error = err.Error()
		return view, err
	}

	c.mu.Lock()
	c.last = &res
	c.mu.Unlock()

	view.Result = res
	return view, nil
}

// Close stops a pending debounced search.
func (c *Controller[T]) Close() {
	c.debouncer.Stop()
}
