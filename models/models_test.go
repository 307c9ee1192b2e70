package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lead tests
func TestNewLead(t *testing.T) {
	lead := NewLead("L-900", "Acme", "CISO", "Pune", 250, "80")

	assert.Equal(t, "L-900", lead.ID)
	assert.Equal(t, "Acme", lead.Company)
	assert.Equal(t, 250, lead.Employees)
	assert.Equal(t, LeadStatusNew, lead.Status)
	assert.Equal(t, SafetyPending, lead.SafetyCheck)
	assert.Zero(t, lead.ICPScore)
	assert.False(t, lead.HasContent())
	assert.False(t, lead.IsHeld())
}

func TestLeadStatus_Rank(t *testing.T) {
	for i, status := range LeadStatuses {
		assert.Equal(t, i, status.Rank(), string(status))
	}
	assert.Equal(t, -1, LeadStatus("Won").Rank())
}

func TestLead_Clone(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	lead := NewLead("L-1", "Co", "CTO", "Hyderabad", 100, "10")
	lead.ComplianceReport = &ComplianceReport{
		Checks: []CheckResult{{Name: "GDPR", Passed: true, Detail: "ok"}},
		Passed: 1,
		Total:  1,
	}
	lead.EmailGeneratedAt = &at

	clone := lead.Clone()
	require.NotSame(t, lead, clone)
	require.NotSame(t, lead.ComplianceReport, clone.ComplianceReport)
	require.NotSame(t, lead.EmailGeneratedAt, clone.EmailGeneratedAt)

	clone.ComplianceReport.Checks[0].Passed = false
	*clone.EmailGeneratedAt = at.Add(time.Hour)
	clone.Status = LeadStatusScored

	assert.True(t, lead.ComplianceReport.Checks[0].Passed)
	assert.Equal(t, at, *lead.EmailGeneratedAt)
	assert.Equal(t, LeadStatusNew, lead.Status)
	assert.True(t, clone.HasContent())

	var nilLead *Lead
	assert.Nil(t, nilLead.Clone())
}

func TestLead_JSONMarshaling(t *testing.T) {
	lead := NewLead("L-101", "Vizag Pharma", "CISO", "Visakhapatnam", 1200, "150")

	data, err := json.Marshal(lead)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "New", fields["status"])
	assert.Equal(t, "Pending", fields["safety_check"])
	assert.Equal(t, float64(0), fields["icp_score"])
	assert.NotContains(t, fields, "compliance_report")
	assert.NotContains(t, fields, "email_generated_at")
	assert.NotContains(t, fields, "hold_reason")
}

func TestSeedLeads(t *testing.T) {
	first := SeedLeads()
	second := SeedLeads()

	require.Len(t, first, 4)
	assert.Equal(t, []string{"L-101", "L-102", "L-103", "L-104"},
		[]string{first[0].ID, first[1].ID, first[2].ID, first[3].ID})

	first[0].Status = LeadStatusOpportunity
	assert.Equal(t, LeadStatusNew, second[0].Status)
	assert.Equal(t, LeadStatusNew, SeedLeads()[0].Status)
}

// Log entry tests
func TestNewLogEntry(t *testing.T) {
	entry := NewLogEntry(AgentHunter, "Scored Acme", SeverityWarning)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, AgentHunter, entry.Agent)
	assert.Equal(t, "Scored Acme", entry.Message)
	assert.Equal(t, SeverityWarning, entry.Severity)
	assert.False(t, entry.Timestamp.IsZero())

	assert.Equal(t, SeverityInfo, NewLogEntry(AgentSystem, "x", "").Severity)
}

// Audit entry tests
func TestNewAuditEntry(t *testing.T) {
	entry := NewAuditEntry("Hunter-Agent", AuditActionScored, "Acme")

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "Hunter-Agent", entry.Agent)
	assert.Equal(t, AuditActionScored, entry.Action)
	assert.Equal(t, "Acme", entry.Target)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestAuditEntry_BuilderMethods(t *testing.T) {
	entry := NewAuditEntry("Professor-Agent", AuditActionContentGen, "Acme").
		WithLead("L-1").
		WithDetail("subject drafted").
		WithRetrieval(RetrievalHit)

	assert.Equal(t, "L-1", entry.LeadID)
	assert.Equal(t, "subject drafted", entry.Detail)
	assert.Equal(t, RetrievalHit, entry.Retrieval)

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action":"Content Gen"`)
	assert.Contains(t, string(data), `"retrieval":"RAG HIT"`)
}
