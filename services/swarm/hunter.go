package swarm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/models"
)

// Hunter scores the first New lead against the ideal customer profile
type Hunter struct {
	recorder Recorder
	logger   *zap.Logger
}

// NewHunter creates a new Hunter
func NewHunter(recorder Recorder, logger *zap.Logger) *Hunter {
	return &Hunter{recorder: recorder, logger: logger}
}

// Name returns the agent name
func (h *Hunter) Name() string {
	return models.AgentHunter
}

// Run scores one lead
func (h *Hunter) Run(ctx context.Context, st *State) StepResult {
	lead := st.First(func(l *models.Lead) bool {
		return l.Status == models.LeadStatusNew
	})
	if lead == nil {
		return idle(h.Name())
	}

	card := Score(lead.Role, lead.Location, lead.Employees, lead.Budget)
	breakdown := card.Breakdown()

	lead.ICPScore = card.ICP
	lead.ScoreBreakdown = breakdown
	lead.Status = models.LeadStatusScored
	lead.LastLog = fmt.Sprintf("ICP Score: %d%%", card.ICP)

	h.recorder.Log(h.Name(),
		fmt.Sprintf("Scored %s [%s] - ICP %d%% | %s", lead.Company, lead.Location, card.ICP, breakdown),
		models.SeverityInfo)

	entry := models.NewAuditEntry(auditHunter, models.AuditActionScored, lead.Company).
		WithLead(lead.ID).
		WithDetail(breakdown)
	if err := h.recorder.Append(entry); err != nil {
		h.logger.Warn("audit append failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	return StepResult{
		Agent:   h.Name(),
		Outcome: OutcomeAdvanced,
		LeadID:  lead.ID,
		Company: lead.Company,
		Score:   card.ICP,
	}
}
