package repositories

import (
	"context"
	"errors"

	"github.com/thoufiq2326/NexusAI/models"
)

// Snapshot keys, one row per key
const (
	KeyLeads      = "leads"
	KeyLogs       = "logs"
	KeyAuditTrail = "audit_trail"
)

// SnapshotKeys lists every persisted key in write order
var SnapshotKeys = []string{KeyLeads, KeyLogs, KeyAuditTrail}

// ErrSnapshotNotFound is returned by Load when nothing has been persisted yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// TransactionManager runs a unit of work atomically
type TransactionManager interface {
	// InTransaction commits when fn returns nil and rolls back otherwise
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Snapshot is the wholesale persisted pipeline state. The corpus is not part of it.
type Snapshot struct {
	Leads      []*models.Lead
	Logs       []models.LogEntry
	AuditTrail []models.AuditEntry
}

// SnapshotRepository persists and restores pipeline snapshots
type SnapshotRepository interface {
	// Save overwrites every key atomically
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load returns the stored snapshot or ErrSnapshotNotFound.
	// Keys that were never written are left empty.
	Load(ctx context.Context) (*Snapshot, error)

	// Clear removes every stored key
	Clear(ctx context.Context) error

	// HealthCheck reports whether the backing store is reachable
	HealthCheck(ctx context.Context) error
}
