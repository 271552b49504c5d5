// internal/repository/storage.go
package repository

import "context"

// Keys persisted per workspace. They mirror what the browser console kept in
// localStorage and carry no schema or expiry metadata.
const (
	KeyToken             = "token"
	KeyRefreshToken      = "refreshToken"
	KeyUser              = "user"
	KeySelectedCompanyID = "selectedCompanyId"
)

// LocalStore is the key/value storage of a single workspace.
type LocalStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Backend hands out workspace-scoped stores over one shared driver.
type Backend interface {
	Scope(workspaceID string) LocalStore
	Close() error
}
