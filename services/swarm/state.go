package swarm

import (
	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/corpus"
)

// State is the mutable pipeline state shared by the agents. It carries no
// lock of its own; the Engine serializes all access.
type State struct {
	Leads  []*models.Lead
	Corpus *corpus.Corpus

	// APIKey selects generated content when non-empty
	APIKey string

	// Completer is nil in templated mode
	Completer Completer

	// release, when set, runs a slow call with the owner's lock dropped
	release func(fn func())
}

// NewState creates a state holding the seed leads and an empty corpus
func NewState() *State {
	return &State{
		Leads:  models.SeedLeads(),
		Corpus: corpus.New(),
	}
}

// Reset restores the seed leads and drops the corpus. Credentials survive a reset.
func (s *State) Reset() {
	s.Leads = models.SeedLeads()
	s.Corpus.Clear()
}

// Unlocked runs fn through the release hook, or directly when there is none.
// fn must not touch the state.
func (s *State) Unlocked(fn func()) {
	if s.release == nil {
		fn()
		return
	}
	s.release(fn)
}

// First returns the first lead in insertion order matching the predicate
func (s *State) First(match func(*models.Lead) bool) *models.Lead {
	for _, l := range s.Leads {
		if match(l) {
			return l
		}
	}
	return nil
}

// ScoredMean returns the mean ICP score of all leads with a positive score
func (s *State) ScoredMean() (float64, int) {
	sum, n := 0, 0
	for _, l := range s.Leads {
		if l.ICPScore > 0 {
			sum += l.ICPScore
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

// CountByStatus returns the number of leads in each pipeline status
func (s *State) CountByStatus() map[models.LeadStatus]int {
	counts := make(map[models.LeadStatus]int, len(models.LeadStatuses))
	for _, st := range models.LeadStatuses {
		counts[st] = 0
	}
	for _, l := range s.Leads {
		counts[l.Status]++
	}
	return counts
}

// Mode reports the content generation mode shown to operators
func (s *State) Mode() string {
	if s.APIKey != "" {
		return ModeLive
	}
	return ModeSimulation
}
