package swarm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/internal/compliance"
	"github.com/thoufiq2326/NexusAI/models"
)

// Compliance gate parameters
const (
	ComplianceChecks   = 5
	CompliancePassMark = 4
	BiasThreshold      = 40.0
	MinBudget          = 50
	MaxBudget          = 600
)

var allowedLocations = map[string]bool{
	"Hyderabad":      true,
	"Visakhapatnam":  true,
	"Vijayawada":     true,
	"Chennai":        true,
	"Bengaluru":      true,
	"Andhra Pradesh": true,
}

var seniorRoles = map[string]bool{
	"CISO":             true,
	"CTO":              true,
	"VP Engineering":   true,
	"IT Director":      true,
	"Security Manager": true,
	"CEO":              true,
	"COO":              true,
}

// Guardian runs the five-point compliance audit on scored leads
type Guardian struct {
	recorder Recorder
	logger   *zap.Logger
}

// NewGuardian creates a new Guardian
func NewGuardian(recorder Recorder, logger *zap.Logger) *Guardian {
	return &Guardian{recorder: recorder, logger: logger}
}

// Name returns the agent name
func (g *Guardian) Name() string {
	return models.AgentGuardian
}

// Run audits one lead
func (g *Guardian) Run(ctx context.Context, st *State) StepResult {
	lead := st.First(func(l *models.Lead) bool {
		return l.Status == models.LeadStatusScored && l.SafetyCheck == models.SafetyPending
	})
	if lead == nil {
		return idle(g.Name())
	}

	mean, _ := st.ScoredMean()
	report := Audit(lead, mean)

	verdict := models.SafetyFailed
	if report.Passed >= CompliancePassMark {
		verdict = models.SafetyPassed
	}

	lead.SafetyCheck = verdict
	lead.ComplianceReport = report
	if verdict == models.SafetyPassed {
		lead.Status = models.LeadStatusNurtured
		lead.LastLog = fmt.Sprintf("Guardian: %d/%d checks passed", report.Passed, report.Total)
	} else {
		lead.LastLog = fmt.Sprintf("Guardian: only %d/%d checks passed", report.Passed, report.Total)
	}

	severity := models.SeverityInfo
	if verdict == models.SafetyFailed {
		severity = models.SeverityWarning
	}
	g.recorder.Log(g.Name(),
		fmt.Sprintf("Compliance Audit: %s | %d/%d checks | Bias:%s | %s",
			lead.Company, report.Passed, report.Total, formatBias(report.BiasScore), strings.ToUpper(string(verdict))),
		severity)

	action := models.AuditActionCompliancePassed
	if verdict == models.SafetyFailed {
		action = models.AuditActionComplianceFailed
	}
	entry := models.NewAuditEntry(auditGuardian, action, lead.Company).
		WithLead(lead.ID).
		WithDetail(fmt.Sprintf("%d/%d, bias:%s", report.Passed, report.Total, formatBias(report.BiasScore)))
	if err := g.recorder.Append(entry); err != nil {
		g.logger.Warn("audit append failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	return StepResult{
		Agent:   g.Name(),
		Outcome: OutcomeAdvanced,
		LeadID:  lead.ID,
		Company: lead.Company,
		Verdict: verdict,
	}
}

// Audit runs the five checks against a lead. mean is the average score of
// all scored leads and feeds the bias check.
func Audit(lead *models.Lead, mean float64) *models.ComplianceReport {
	deviation := math.Abs(float64(lead.ICPScore) - mean)
	budget := ParseBudget(lead.Budget)

	piiFree := !compliance.ContainsPII(serialize(lead))
	piiDetail := "No PII"
	if !piiFree {
		piiDetail = "PII FOUND"
	}

	checks := []models.CheckResult{
		{Name: "PII Scan", Passed: piiFree, Detail: piiDetail},
		{Name: "Bias Check", Passed: deviation < BiasThreshold, Detail: fmt.Sprintf("Score %d vs avg %.0f", lead.ICPScore, mean)},
		{Name: "Location Whitelist", Passed: allowedLocations[lead.Location], Detail: lead.Location},
		{Name: "Budget Sanity", Passed: budget >= MinBudget && budget <= MaxBudget, Detail: fmt.Sprintf("%dL", budget)},
		{Name: "Role Authority", Passed: seniorRoles[lead.Role], Detail: lead.Role},
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	return &models.ComplianceReport{
		Checks:    checks,
		Passed:    passed,
		Total:     ComplianceChecks,
		BiasScore: math.Round(deviation*10) / 10,
		Timestamp: time.Now(),
	}
}

func serialize(lead *models.Lead) string {
	b, err := json.Marshal(lead)
	if err != nil {
		return fmt.Sprintf("%+v", *lead)
	}
	return string(b)
}

func formatBias(b float64) string {
	return fmt.Sprintf("%.1f", b)
}
