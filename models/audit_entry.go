package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionScored           AuditAction = "ICP Scored"
	AuditActionCompliancePassed AuditAction = "Compliance Passed"
	AuditActionComplianceFailed AuditAction = "Compliance Failed"
	AuditActionContentGen       AuditAction = "Content Gen"
	AuditActionCRMSync          AuditAction = "CRM Sync"
)

// AuditEntry is one record of the durable compliance trail
type AuditEntry struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"time"`
	Agent     string      `json:"agent" validate:"required"`
	Action    AuditAction `json:"action" validate:"required"`
	Target    string      `json:"target" validate:"required"`
	Detail    string      `json:"detail,omitempty"`
	LeadID    string      `json:"lead_id,omitempty"`

	// Retrieval is only set on content generation entries
	Retrieval Retrieval `json:"retrieval,omitempty"`
}

// NewAuditEntry creates a new AuditEntry instance
func NewAuditEntry(agent string, action AuditAction, target string) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Agent:     agent,
		Action:    action,
		Target:    target,
	}
}

// WithDetail sets the free-text detail
func (a *AuditEntry) WithDetail(detail string) *AuditEntry {
	a.Detail = detail
	return a
}

// WithLead sets the lead the entry refers to
func (a *AuditEntry) WithLead(leadID string) *AuditEntry {
	a.LeadID = leadID
	return a
}

// WithRetrieval records the retrieval outcome of a content generation step
func (a *AuditEntry) WithRetrieval(r Retrieval) *AuditEntry {
	a.Retrieval = r
	return a
}
