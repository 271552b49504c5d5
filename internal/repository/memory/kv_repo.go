package memory

import (
	"context"
	"sync"

	"msm-console/internal/repository"
)

// Backend keeps workspace storage in process memory. State is lost on
// restart, which matches a browser with cleared storage.
type Backend struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewBackend() *Backend {
	return &Backend{data: make(map[string]map[string]string)}
}

func (b *Backend) Scope(workspaceID string) repository.LocalStore {
	return &store{backend: b, workspace: workspaceID}
}

func (b *Backend) Close() error { return nil }

type store struct {
	backend   *Backend
	workspace string
}

func (s *store) Get(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	v, ok := s.backend.data[s.workspace][key]
	return v, ok, nil
}

func (s *store) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	ns, ok := s.backend.data[s.workspace]
	if !ok {
		ns = make(map[string]string)
		s.backend.data[s.workspace] = ns
	}
	ns[key] = value
	return nil
}

func (s *store) Delete(_ context.Context, keys ...string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	ns, ok := s.backend.data[s.workspace]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(s.backend.data, s.workspace)
	}
	return nil
}
