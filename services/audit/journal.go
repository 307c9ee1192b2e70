package audit

import (
	"fmt"
	"sync"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/utils"
	"go.uber.org/zap"
)

// Publisher receives every new log entry after it has been stored.
// Implementations must not block.
type Publisher interface {
	PublishLog(entry models.LogEntry)
}

// Config holds configuration for the Journal
type Config struct {
	LogCapacity int // Maximum number of log entries kept in the feed
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		LogCapacity: 200,
	}
}

// Journal is the dual store behind the operator feed and the compliance trail.
// The log feed is newest-first and bounded; the audit trail is append-only.
type Journal struct {
	mu        sync.RWMutex
	logs      []models.LogEntry
	trail     []models.AuditEntry
	capacity  int
	publisher Publisher
	logger    *zap.Logger
}

// NewJournal creates a new empty Journal
func NewJournal(logger *zap.Logger, config Config) *Journal {
	if config.LogCapacity <= 0 {
		config.LogCapacity = DefaultConfig().LogCapacity
	}
	return &Journal{
		logs:     make([]models.LogEntry, 0, config.LogCapacity),
		capacity: config.LogCapacity,
		logger:   logger,
	}
}

// SetPublisher attaches the fan-out target for new log entries
func (j *Journal) SetPublisher(p Publisher) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.publisher = p
}

// Log inserts a new entry at the head of the feed, evicting the oldest entry
// once the feed is full, and hands it to the publisher.
func (j *Journal) Log(agent, message string, severity models.Severity) models.LogEntry {
	entry := models.NewLogEntry(agent, message, severity)

	j.mu.Lock()
	if len(j.logs) >= j.capacity {
		j.logs = j.logs[:j.capacity-1]
	}
	j.logs = append(j.logs, models.LogEntry{})
	copy(j.logs[1:], j.logs[:len(j.logs)-1])
	j.logs[0] = entry
	publisher := j.publisher
	j.mu.Unlock()

	if publisher != nil {
		publisher.PublishLog(entry)
	}
	return entry
}

// Append validates the entry and adds it to the end of the audit trail
func (j *Journal) Append(entry *models.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("audit entry is nil")
	}
	if err := utils.ValidateStruct(entry); err != nil {
		return fmt.Errorf("invalid audit entry: %w", err)
	}

	j.mu.Lock()
	j.trail = append(j.trail, *entry)
	j.mu.Unlock()
	return nil
}

// Logs returns up to limit entries, newest first. A limit <= 0 returns the whole feed.
func (j *Journal) Logs(limit int) []models.LogEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.logs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.LogEntry, n)
	copy(out, j.logs[:n])
	return out
}

// Trail returns a copy of the audit trail in append order
func (j *Journal) Trail() []models.AuditEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]models.AuditEntry, len(j.trail))
	copy(out, j.trail)
	return out
}

// RetrievalStats counts content generation entries and how many of them hit the corpus
func (j *Journal) RetrievalStats() (hits, total int) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, e := range j.trail {
		if e.Action != models.AuditActionContentGen {
			continue
		}
		total++
		if e.Retrieval == models.RetrievalHit {
			hits++
		}
	}
	return hits, total
}

// Restore replaces both stores with previously persisted content.
// Logs beyond the capacity are dropped from the tail.
func (j *Journal) Restore(logs []models.LogEntry, trail []models.AuditEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(logs) > j.capacity {
		logs = logs[:j.capacity]
	}
	j.logs = append(make([]models.LogEntry, 0, j.capacity), logs...)
	j.trail = append([]models.AuditEntry(nil), trail...)

	j.logger.Info("restored journal",
		zap.Int("logs", len(j.logs)),
		zap.Int("audit_entries", len(j.trail)))
}

// Reset empties both stores
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.logs = make([]models.LogEntry, 0, j.capacity)
	j.trail = nil
}

// GetStats returns statistics about the journal
func (j *Journal) GetStats() Stats {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return Stats{
		LogCapacity:  j.capacity,
		LogEntries:   len(j.logs),
		AuditEntries: len(j.trail),
	}
}

// Stats represents journal statistics
type Stats struct {
	LogCapacity  int
	LogEntries   int
	AuditEntries int
}
