package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/thoufiq2326/NexusAI/repositories"
	"go.uber.org/zap"
)

// SnapshotRepository implements repositories.SnapshotRepository on the app_state table
type SnapshotRepository struct {
	db        *DB
	txManager repositories.TransactionManager
	logger    *zap.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB, txManager repositories.TransactionManager, logger *zap.Logger) repositories.SnapshotRepository {
	return &SnapshotRepository{
		db:        db,
		txManager: txManager,
		logger:    logger,
	}
}

// Save upserts every key inside a single transaction
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *repositories.Snapshot) error {
	values, err := repositories.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	return r.txManager.InTransaction(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.db)
		for _, key := range repositories.SnapshotKeys {
			if _, err := executor.ExecContext(ctx, query, key, string(values[key])); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Load reads every known key
func (r *SnapshotRepository) Load(ctx context.Context) (*repositories.Snapshot, error) {
	query := `SELECT key, value FROM app_state WHERE key = ANY($1)`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, pq.Array(repositories.SnapshotKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer rows.Close()

	values := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		values[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	if len(values) == 0 {
		return nil, repositories.ErrSnapshotNotFound
	}

	r.logger.Debug("snapshot loaded", zap.Int("keys", len(values)))
	return repositories.DecodeSnapshot(values)
}

// Clear deletes every stored key
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM app_state`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// HealthCheck delegates to the connection pool
func (r *SnapshotRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
