package swarm

import (
	"context"

	"github.com/thoufiq2326/NexusAI/models"
)

// Content generation modes
const (
	ModeLive       = "Live AI"
	ModeSimulation = "Simulation"
)

// Names used on audit entries
const (
	auditHunter    = "Hunter"
	auditGuardian  = "Guardian"
	auditProfessor = "Professor"
	auditCloser    = "Closer"
)

// Outcome describes what an agent did during a step
type Outcome string

const (
	// OutcomeAdvanced means a lead moved through the agent's stage
	OutcomeAdvanced Outcome = "advanced"
	// OutcomeHeld means a lead was parked instead of advanced
	OutcomeHeld Outcome = "held"
	// OutcomeWaiting means the agent had work but lacked a precondition
	OutcomeWaiting Outcome = "waiting"
	// OutcomeIdle means the agent found nothing to do
	OutcomeIdle Outcome = "idle"
)

// StepResult describes the effect of one agent run
type StepResult struct {
	Agent     string             `json:"agent,omitempty"`
	Outcome   Outcome            `json:"outcome"`
	LeadID    string             `json:"lead_id,omitempty"`
	Company   string             `json:"lead,omitempty"`
	Score     int                `json:"score,omitempty"`
	Verdict   models.SafetyCheck `json:"status,omitempty"`
	Subject   string             `json:"subject,omitempty"`
	Retrieval models.Retrieval   `json:"retrieval,omitempty"`
}

// Acted reports whether the step should end the cycle
func (r StepResult) Acted() bool {
	return r.Outcome != OutcomeIdle && r.Outcome != ""
}

func idle(agent string) StepResult {
	return StepResult{Agent: agent, Outcome: OutcomeIdle}
}

// Agent is one stage of the pipeline. Run mutates at most one lead.
type Agent interface {
	Name() string
	Run(ctx context.Context, st *State) StepResult
}

// Recorder receives the operator log lines and audit entries agents produce
type Recorder interface {
	Log(agent, message string, severity models.Severity) models.LogEntry
	Append(entry *models.AuditEntry) error
}
