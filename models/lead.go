package models

import (
	"time"
)

// LeadStatus is the pipeline stage marker of a lead. It only moves forward.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "New"
	LeadStatusScored      LeadStatus = "Scored"
	LeadStatusNurtured    LeadStatus = "Nurtured"
	LeadStatusOpportunity LeadStatus = "Opportunity"
)

// Rank returns the position of the status in the pipeline, or -1 if unknown.
func (s LeadStatus) Rank() int {
	switch s {
	case LeadStatusNew:
		return 0
	case LeadStatusScored:
		return 1
	case LeadStatusNurtured:
		return 2
	case LeadStatusOpportunity:
		return 3
	default:
		return -1
	}
}

// LeadStatuses lists every status in pipeline order
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusScored,
	LeadStatusNurtured,
	LeadStatusOpportunity,
}

// SafetyCheck is the outcome of the compliance gate
type SafetyCheck string

const (
	SafetyPending SafetyCheck = "Pending"
	SafetyPassed  SafetyCheck = "Passed"
	SafetyFailed  SafetyCheck = "Failed"
)

// Retrieval marks whether content generation found the lead's location in the corpus
type Retrieval string

const (
	RetrievalHit  Retrieval = "RAG HIT"
	RetrievalMiss Retrieval = "RAG MISS"
)

// CheckResult is the outcome of a single compliance check
type CheckResult struct {
	Name   string `json:"check"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// ComplianceReport is the structured result of the five-point audit
type ComplianceReport struct {
	Checks    []CheckResult `json:"checks"`
	Passed    int           `json:"passed"`
	Total     int           `json:"total"`
	BiasScore float64       `json:"bias_score"`
	Timestamp time.Time     `json:"timestamp"`
}

// Lead represents one sales prospect moving through the swarm pipeline
type Lead struct {
	ID        string `json:"id"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	Location  string `json:"location"`
	Employees int    `json:"employees"`
	Budget    string `json:"budget"`

	Status           LeadStatus        `json:"status"`
	ICPScore         int               `json:"icp_score"`
	ScoreBreakdown   string            `json:"score_breakdown"`
	SafetyCheck      SafetyCheck       `json:"safety_check"`
	ComplianceReport *ComplianceReport `json:"compliance_report,omitempty"`
	LastLog          string            `json:"last_log"`

	EmailSubject     string     `json:"email_subject"`
	EmailBody        string     `json:"email_body"`
	EmailGeneratedAt *time.Time `json:"email_generated_at,omitempty"`
	Retrieval        Retrieval  `json:"retrieval,omitempty"`

	// HoldReason is set when content generation refused the lead; held leads are skipped.
	HoldReason string `json:"hold_reason,omitempty"`
}

// NewLead creates a lead in its initial pipeline state
func NewLead(id, company, role, location string, employees int, budget string) *Lead {
	return &Lead{
		ID:          id,
		Company:     company,
		Role:        role,
		Location:    location,
		Employees:   employees,
		Budget:      budget,
		Status:      LeadStatusNew,
		SafetyCheck: SafetyPending,
	}
}

// HasContent reports whether outreach content has been generated for the lead
func (l *Lead) HasContent() bool {
	return l.EmailGeneratedAt != nil
}

// IsHeld reports whether the lead was parked by content generation
func (l *Lead) IsHeld() bool {
	return l.HoldReason != ""
}

// Clone returns a deep copy of the lead
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	c := *l
	if l.ComplianceReport != nil {
		report := *l.ComplianceReport
		report.Checks = append([]CheckResult(nil), l.ComplianceReport.Checks...)
		c.ComplianceReport = &report
	}
	if l.EmailGeneratedAt != nil {
		at := *l.EmailGeneratedAt
		c.EmailGeneratedAt = &at
	}
	return &c
}

// CloneLeads deep-copies a lead slice
func CloneLeads(leads []*Lead) []*Lead {
	out := make([]*Lead, len(leads))
	for i, l := range leads {
		out[i] = l.Clone()
	}
	return out
}
