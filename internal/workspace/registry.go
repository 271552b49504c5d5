// internal/workspace/registry.go
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"msm-console/internal/listview"
	"msm-console/internal/repository"

	"go.uber.org/zap"
)

// Registry owns the live workspaces of the process. Workspace state lives in
// the store, so an evicted or restarted workspace is rebuilt from its id.
type Registry struct {
	deps    Deps
	idleTTL time.Duration
	logger  *zap.Logger

	mu         sync.RWMutex
	workspaces map[string]*Workspace
	onEvict    []func(id string)
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:       deps,
		idleTTL:    deps.Config.WorkspaceIdleTTL,
		logger:     deps.Logger,
		workspaces: make(map[string]*Workspace),
	}
}

// persistedKeys make up the stored state of a workspace.
var persistedKeys = []string{
	repository.KeyToken,
	repository.KeyRefreshToken,
	repository.KeyUser,
	repository.KeySelectedCompanyID,
}

// OnEvict registers a callback run when a workspace id is retired, either
// swept for idleness or replaced by Rotate.
func (r *Registry) OnEvict(fn func(id string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = append(r.onEvict, fn)
}

// Resolve returns the workspace of id, rebuilding it when the id is not
// loaded but the store still holds its state. Any other id yields a fresh
// workspace; client-chosen ids are never adopted.
func (r *Registry) Resolve(ctx context.Context, id string) (*Workspace, error) {
	now := time.Now()
	if ValidID(id) {
		r.mu.RLock()
		w, ok := r.workspaces[id]
		r.mu.RUnlock()
		if ok {
			w.touch(now)
			return w, nil
		}
		if !r.stored(ctx, id) {
			id = NewID()
		}
	} else {
		id = NewID()
	}

	r.mu.Lock()
	if w, ok := r.workspaces[id]; ok {
		r.mu.Unlock()
		w.touch(now)
		return w, nil
	}
	w := New(id, r.deps)
	r.workspaces[id] = w
	r.mu.Unlock()

	state, err := w.Init(ctx)
	if err != nil {
		r.logger.Warn("workspace restored with errors",
			zap.String("workspace_id", id),
			zap.Error(err),
		)
	} else {
		r.logger.Debug("workspace ready",
			zap.String("workspace_id", id),
			zap.String("session_state", string(state)),
		)
	}
	return w, nil
}

// stored reports whether the store holds any state for id.
func (r *Registry) stored(ctx context.Context, id string) bool {
	store := r.deps.Backend.Scope(id)
	for _, key := range persistedKeys {
		_, ok, err := store.Get(ctx, key)
		if err != nil {
			r.logger.Warn("failed to read workspace store",
				zap.String("workspace_id", id),
				zap.Error(err),
			)
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

// Rotate moves the stored state of old to a freshly issued id and retires
// old. Login calls it so a session never lives under an id the browser had
// before authenticating.
func (r *Registry) Rotate(ctx context.Context, old *Workspace) (*Workspace, error) {
	id := NewID()
	dst := r.deps.Backend.Scope(id)
	for _, key := range persistedKeys {
		v, ok, err := old.Store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.Set(ctx, key, v); err != nil {
			return nil, fmt.Errorf("copy %s: %w", key, err)
		}
	}
	if err := old.Store.Delete(ctx, persistedKeys...); err != nil {
		r.logger.Warn("failed to clear retired workspace",
			zap.String("workspace_id", old.ID),
			zap.Error(err),
		)
	}

	w := New(id, r.deps)
	w.Nav.SetLocation(old.Nav.Location())

	r.mu.Lock()
	if cur, ok := r.workspaces[old.ID]; ok && cur == old {
		delete(r.workspaces, old.ID)
	}
	r.workspaces[id] = w
	callbacks := append([]func(string){}, r.onEvict...)
	r.mu.Unlock()

	old.Close()
	for _, fn := range callbacks {
		fn(old.ID)
	}

	if _, err := w.Init(ctx); err != nil {
		r.logger.Warn("rotated workspace restored with errors",
			zap.String("workspace_id", id),
			zap.Error(err),
		)
	}
	r.logger.Info("workspace rotated",
		zap.String("from", old.ID),
		zap.String("to", id),
	)
	return w, nil
}

// Get returns a loaded workspace.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workspaces[id]
	return w, ok
}

// Screen resolves a list screen for the push channel.
func (r *Registry) Screen(workspaceID, entity string) (listview.Screen, bool) {
	w, ok := r.Get(workspaceID)
	if !ok {
		return nil, false
	}
	return w.Screen(entity)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// Sweep drops workspaces idle for longer than the configured TTL and returns
// how many were dropped.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	var evicted []*Workspace
	for id, w := range r.workspaces {
		if w.idleSince(now) > r.idleTTL {
			evicted = append(evicted, w)
			delete(r.workspaces, id)
		}
	}
	callbacks := append([]func(string){}, r.onEvict...)
	r.mu.Unlock()

	for _, w := range evicted {
		w.Close()
		for _, fn := range callbacks {
			fn(w.ID)
		}
		r.logger.Info("workspace evicted", zap.String("workspace_id", w.ID))
	}
	return len(evicted)
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.workspaces {
		w.Close()
		delete(r.workspaces, id)
	}
}
