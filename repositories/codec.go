package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/thoufiq2326/NexusAI/models"
)

// EncodeSnapshot serializes each part of the snapshot under its key
func EncodeSnapshot(s *Snapshot) (map[string][]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	parts := map[string]interface{}{
		KeyLeads:      nonNil(s.Leads),
		KeyLogs:       nonNilLogs(s.Logs),
		KeyAuditTrail: nonNilTrail(s.AuditTrail),
	}

	out := make(map[string][]byte, len(parts))
	for _, key := range SnapshotKeys {
		b, err := json.Marshal(parts[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = b
	}
	return out, nil
}

// DecodeSnapshot rebuilds a snapshot from stored values. Missing keys stay empty.
func DecodeSnapshot(values map[string][]byte) (*Snapshot, error) {
	s := &Snapshot{}
	if b, ok := values[KeyLeads]; ok {
		if err := json.Unmarshal(b, &s.Leads); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", KeyLeads, err)
		}
	}
	if b, ok := values[KeyLogs]; ok {
		if err := json.Unmarshal(b, &s.Logs); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", KeyLogs, err)
		}
	}
	if b, ok := values[KeyAuditTrail]; ok {
		if err := json.Unmarshal(b, &s.AuditTrail); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", KeyAuditTrail, err)
		}
	}
	return s, nil
}

func nonNil(leads []*models.Lead) []*models.Lead {
	if leads == nil {
		return []*models.Lead{}
	}
	return leads
}

func nonNilLogs(logs []models.LogEntry) []models.LogEntry {
	if logs == nil {
		return []models.LogEntry{}
	}
	return logs
}

func nonNilTrail(trail []models.AuditEntry) []models.AuditEntry {
	if trail == nil {
		return []models.AuditEntry{}
	}
	return trail
}
