package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a log entry for the operator feed
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Agent names used as log and audit sources
const (
	AgentSystem    = "SYSTEM"
	AgentHunter    = "HUNTER"
	AgentGuardian  = "GUARDIAN"
	AgentProfessor = "PROFESSOR"
	AgentCloser    = "CLOSER"
)

// LogEntry is one immutable line of the operator feed
type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// NewLogEntry creates a new LogEntry stamped with the current time
func NewLogEntry(agent, message string, severity Severity) LogEntry {
	if severity == "" {
		severity = SeverityInfo
	}
	return LogEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Agent:     agent,
		Message:   message,
		Severity:  severity,
	}
}
