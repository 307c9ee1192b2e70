package swarm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/models"
)

// Closer marks nurtured leads with outreach content as CRM opportunities.
// The CRM sync itself is simulated.
type Closer struct {
	recorder Recorder
	logger   *zap.Logger
}

// NewCloser creates a new Closer
func NewCloser(recorder Recorder, logger *zap.Logger) *Closer {
	return &Closer{recorder: recorder, logger: logger}
}

// Name returns the agent name
func (c *Closer) Name() string {
	return models.AgentCloser
}

// Run converts one lead
func (c *Closer) Run(ctx context.Context, st *State) StepResult {
	lead := st.First(func(l *models.Lead) bool {
		return l.Status == models.LeadStatusNurtured && l.HasContent() && !l.IsHeld()
	})
	if lead == nil {
		return idle(c.Name())
	}

	lead.Status = models.LeadStatusOpportunity
	c.recorder.Log(c.Name(), fmt.Sprintf("Opportunity! %s synced to Salesforce.", lead.Company), models.SeverityInfo)

	// the transition stands even when the audit trail rejects the entry
	entry := models.NewAuditEntry(auditCloser, models.AuditActionCRMSync, lead.Company).WithLead(lead.ID)
	if err := c.recorder.Append(entry); err != nil {
		c.logger.Warn("audit append failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	return StepResult{
		Agent:   c.Name(),
		Outcome: OutcomeAdvanced,
		LeadID:  lead.ID,
		Company: lead.Company,
	}
}
