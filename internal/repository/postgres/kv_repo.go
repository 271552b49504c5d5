// internal/repository/postgres/kv_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"msm-console/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS console_local_storage (
		workspace_id TEXT        NOT NULL,
		key          TEXT        NOT NULL,
		value        TEXT        NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (workspace_id, key)
	)
`

// KVRepository persists workspace storage in a single postgres table.
type KVRepository struct {
	db *pgxpool.Pool
}

func NewKVRepository(db *pgxpool.Pool) *KVRepository {
	return &KVRepository{db: db}
}

// EnsureSchema creates the storage table when missing.
func (r *KVRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create console_local_storage: %w", err)
	}
	return nil
}

func (r *KVRepository) Scope(workspaceID string) repository.LocalStore {
	return &scoped{repo: r, workspace: workspaceID}
}

func (r *KVRepository) Close() error {
	r.db.Close()
	return nil
}

// Get retrieves a value by workspace and key
func (r *KVRepository) Get(ctx context.Context, workspaceID, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM console_local_storage
		WHERE workspace_id = $1 AND key = $2
	`

	var value string
	err := r.db.QueryRow(ctx, query, workspaceID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a value
func (r *KVRepository) Set(ctx context.Context, workspaceID, key, value string) error {
	query := `
		INSERT INTO console_local_storage (workspace_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (workspace_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, workspaceID, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Delete removes keys of one workspace
func (r *KVRepository) Delete(ctx context.Context, workspaceID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query := `
		DELETE FROM console_local_storage
		WHERE workspace_id = $1 AND key = ANY($2)
	`

	if _, err := r.db.Exec(ctx, query, workspaceID, keys); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

type scoped struct {
	repo      *KVRepository
	workspace string
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, s.workspace, key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, s.workspace, key, value)
}

func (s *scoped) Delete(ctx context.Context, keys ...string) error {
	return s.repo.Delete(ctx, s.workspace, keys...)
}
