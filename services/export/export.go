// Package export renders the lead list and the audit trail as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services"
)

// Content types of the exported files
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeJSON = "application/json"
)

// LeadColumns is the CSV header in column order
var LeadColumns = []string{
	"id", "company", "role", "location", "employees", "budget",
	"status", "icp_score", "safety_check", "last_log", "score_breakdown",
}

// File is a rendered export
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Leads renders the leads as CSV. An empty list is ErrNoLeads.
func Leads(leads []*models.Lead, now time.Time) (*File, error) {
	if len(leads) == 0 {
		return nil, services.ErrNoLeads
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(LeadColumns); err != nil {
		return nil, services.WrapInternal("failed to write csv header", err)
	}
	for _, l := range leads {
		record := []string{
			l.ID,
			l.Company,
			l.Role,
			l.Location,
			strconv.Itoa(l.Employees),
			l.Budget,
			string(l.Status),
			strconv.Itoa(l.ICPScore),
			string(l.SafetyCheck),
			l.LastLog,
			l.ScoreBreakdown,
		}
		if err := w.Write(record); err != nil {
			return nil, services.WrapInternal("failed to write csv row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, services.WrapInternal("failed to flush csv", err)
	}

	return &File{
		Name:        Filename("nexus-leads", "csv", now),
		ContentType: ContentTypeCSV,
		Body:        buf.Bytes(),
	}, nil
}

// AuditTrail renders the trail as JSON indented by two spaces.
// An empty trail is ErrNoAuditTrail.
func AuditTrail(trail []models.AuditEntry, now time.Time) (*File, error) {
	if len(trail) == 0 {
		return nil, services.ErrNoAuditTrail
	}

	body, err := json.MarshalIndent(trail, "", "  ")
	if err != nil {
		return nil, services.WrapInternal("failed to encode audit trail", err)
	}

	return &File{
		Name:        Filename("nexus-audit", "json", now),
		ContentType: ContentTypeJSON,
		Body:        body,
	}, nil
}

// Filename stamps an export name with the local time, e.g. nexus-leads-20250101-093000.csv
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("20060102-150405"), ext)
}
