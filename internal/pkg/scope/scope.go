// internal/pkg/scope/scope.go
package scope

import (
	"context"
	"fmt"
	"sync"

	"msm-console/internal/pkg/paging"
	"msm-console/internal/repository"

	"go.uber.org/zap"
)

// CompanyField is the filter field list queries are scoped by.
const CompanyField = "companyId"

// Company holds the active company of a workspace. It only parameterizes
// queries; the backend still decides what the user may see.
type Company struct {
	store  repository.LocalStore
	logger *zap.Logger

	mu        sync.RWMutex
	selected  string
	listeners []func(id string)
}

func NewCompany(store repository.LocalStore, logger *zap.Logger) *Company {
	return &Company{store: store, logger: logger}
}

// Load restores the persisted selection.
func (c *Company) Load(ctx context.Context) (string, error) {
	id, _, err := c.store.Get(ctx, repository.KeySelectedCompanyID)
	if err != nil {
		return "", fmt.Errorf("failed to read selected company: %w", err)
	}

	c.mu.Lock()
	c.selected = id
	c.mu.Unlock()
	return id, nil
}

// Select persists id as the active company. An empty id clears the scope.
func (c *Company) Select(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = c.store.Delete(ctx, repository.KeySelectedCompanyID)
	} else {
		err = c.store.Set(ctx, repository.KeySelectedCompanyID, id)
	}
	if err != nil {
		return fmt.Errorf("failed to store selected company: %w", err)
	}

	c.mu.Lock()
	changed := c.selected != id
	c.selected = id
	listeners := append([]func(string){}, c.listeners...)
	c.mu.Unlock()

	if changed {
		c.logger.Info("company scope changed", zap.String("company_id", id))
		for _, l := range listeners {
			l(id)
		}
	}
	return nil
}

// Selected returns the active company id or "".
func (c *Company) Selected() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Filter returns "companyId|eq|<id>" or "" with no selection.
func (c *Company) Filter() string {
	return paging.Eq(CompanyField, c.Selected())
}

// OnChange registers a listener for selection changes.
func (c *Company) OnChange(fn func(id string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}
