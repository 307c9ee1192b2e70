package swarm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/audit"
	"github.com/thoufiq2326/NexusAI/services/corpus"
)

func newTestJournal(t *testing.T) *audit.Journal {
	return audit.NewJournal(zaptest.NewLogger(t), audit.DefaultConfig())
}

// failingRecorder stores log lines but rejects every audit entry
type failingRecorder struct {
	*audit.Journal
}

func (f failingRecorder) Append(*models.AuditEntry) error {
	return errors.New("audit trail unavailable")
}

// stubCompleter replies with canned text per call, or fails
type stubCompleter struct {
	replies []string
	err     error
	prompts []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("no reply")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func stateWith(leads ...*models.Lead) *State {
	return &State{Leads: leads, Corpus: corpus.New()}
}

func intelCorpus() corpus.Document {
	return corpus.Document{
		Text:     "Regional threat report. Hyderabad fintech firms saw a ransomware surge. Chennai ports were scanned.",
		Filename: "intel.pdf",
		Pages:    2,
	}
}

func messages(logs []models.LogEntry) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.Message
	}
	return out
}
