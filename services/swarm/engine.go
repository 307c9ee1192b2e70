// Package swarm implements the lead pipeline: the four stage agents, the
// orchestrator that advances one lead per step, and the Engine that owns the
// pipeline state and serializes every mutation.
package swarm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/internal/observability"
	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/repositories"
	"github.com/thoufiq2326/NexusAI/services/audit"
	"github.com/thoufiq2326/NexusAI/services/corpus"
	"github.com/thoufiq2326/NexusAI/services/notify"
	"github.com/thoufiq2326/NexusAI/services/providers"
)

// Broadcaster pushes messages to live subscribers
type Broadcaster interface {
	Publish(msg notify.Message) error
	SubscriberCount() int
}

// EngineConfig holds engine settings
type EngineConfig struct {
	Version           string
	Model             string
	LogsPageSize      int
	CycleLogsPageSize int
	PersistTimeout    time.Duration
	Professor         ProfessorConfig
}

// DefaultEngineConfig returns the stock settings
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Version:           "2.0.0",
		Model:             "gemini-1.5-flash",
		LogsPageSize:      50,
		CycleLogsPageSize: 20,
		PersistTimeout:    5 * time.Second,
		Professor:         DefaultProfessorConfig(),
	}
}

// CycleResult is returned by Advance
type CycleResult struct {
	Leads       []*models.Lead    `json:"leads"`
	Logs        []models.LogEntry `json:"logs"`
	ExecutionMS int64             `json:"execution_ms"`
	Result      StepResult        `json:"result"`
}

// Status is the dashboard summary
type Status struct {
	TotalLeads     int    `json:"total_leads"`
	Opportunities  int    `json:"opportunities"`
	ComplianceRate int    `json:"compliance_rate"`
	PDFLoaded      bool   `json:"pdf_loaded"`
	PDFChars       int    `json:"pdf_chars"`
	GeminiActive   bool   `json:"gemini_active"`
	Mode           string `json:"mode"`
	ROI            string `json:"roi"`
}

// Analytics is the derived pipeline report
type Analytics struct {
	PipelineStages map[models.LeadStatus]int `json:"pipeline_stages"`
	AvgICPScore    float64                   `json:"avg_icp_score"`
	ICPMatchRate   float64                   `json:"icp_match_rate"`
	RAGHitRate     float64                   `json:"rag_hit_rate"`
	RAGHits        int                       `json:"rag_hits"`
	RAGTotal       int                       `json:"rag_total"`
	ROIMultiplier  float64                   `json:"roi_multiplier"`
	TotalLogs      int                       `json:"total_logs"`
	AuditEntries   int                       `json:"audit_entries"`
}

// Health is the liveness report
type Health struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	GeminiConnected  bool   `json:"gemini_connected"`
	GeminiModel      string `json:"gemini_model"`
	PDFLoaded        bool   `json:"pdf_loaded"`
	PDFChars         int    `json:"pdf_chars"`
	LeadsTotal       int    `json:"leads_total"`
	WebsocketClients int    `json:"websocket_clients"`
}

// ConfigResult is returned by SetAPIKey
type ConfigResult struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// Engine owns the pipeline state. Mutations are serialized by advanceMu and
// take the write lock, reads take the read lock and receive copies. Provider
// calls during Advance run with the write lock released, so reads never wait
// on the network.
type Engine struct {
	advanceMu    sync.Mutex
	mu           sync.RWMutex
	state        *State
	orchestrator *Orchestrator
	professor    *Professor

	journal     *audit.Journal
	store       repositories.SnapshotRepository
	hub         Broadcaster
	ingestor    *corpus.Ingestor
	newProvider providers.Factory
	metrics     *observability.Metrics
	logger      *zap.Logger

	config    EngineConfig
	startedAt time.Time
}

// NewEngine wires the agents in pipeline order around a fresh seeded state.
// newProvider may be nil, in which case API keys are recorded but content
// is always templated.
func NewEngine(
	config EngineConfig,
	journal *audit.Journal,
	store repositories.SnapshotRepository,
	hub Broadcaster,
	ingestor *corpus.Ingestor,
	newProvider providers.Factory,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Engine {
	professor := NewProfessor(journal, metrics, logger, config.Professor)
	orchestrator := NewOrchestrator(journal, logger,
		NewHunter(journal, logger),
		NewGuardian(journal, logger),
		professor,
		NewCloser(journal, logger),
	)

	e := &Engine{
		state:        NewState(),
		orchestrator: orchestrator,
		professor:    professor,
		journal:      journal,
		store:        store,
		hub:          hub,
		ingestor:     ingestor,
		newProvider:  newProvider,
		metrics:      metrics,
		logger:       logger,
		config:       config,
		startedAt:    time.Now(),
	}
	e.state.release = e.unlocked
	return e
}

// unlocked drops the write lock around fn. Callers hold advanceMu, which keeps
// every other mutation out until the lock is taken back.
func (e *Engine) unlocked(fn func()) {
	e.mu.Unlock()
	defer e.mu.Lock()
	fn()
}

// Restore loads the persisted snapshot, if any, and announces the engine.
// A missing snapshot keeps the seed leads.
func (e *Engine) Restore(ctx context.Context) error {
	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot, err := e.store.Load(ctx)
	switch {
	case errors.Is(err, repositories.ErrSnapshotNotFound):
		e.logger.Info("no snapshot found, starting from seed leads")
	case err != nil:
		return fmt.Errorf("failed to load snapshot: %w", err)
	default:
		if len(snapshot.Leads) > 0 {
			e.state.Leads = snapshot.Leads
		}
		e.journal.Restore(snapshot.Logs, snapshot.AuditTrail)
		e.logger.Info("snapshot restored",
			zap.Int("leads", len(snapshot.Leads)),
			zap.Int("logs", len(snapshot.Logs)),
			zap.Int("audit_entries", len(snapshot.AuditTrail)),
		)
	}

	e.journal.Log(models.AgentSystem, "Nexus AI Backend online - agents ready", models.SeverityInfo)
	e.recordLeadsLocked()
	return nil
}

// Advance runs one orchestrator step
func (e *Engine) Advance(ctx context.Context) (*CycleResult, error) {
	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	result := e.orchestrator.Step(ctx, e.state)
	elapsed := time.Since(start)
	elapsedMS := elapsed.Milliseconds()

	e.journal.Log(models.AgentSystem, fmt.Sprintf("Swarm cycle complete in %dms", elapsedMS), models.SeverityInfo)
	e.persistLocked(ctx)

	e.metrics.RecordCycle(result.Agent, string(result.Outcome), elapsed)
	e.recordLeadsLocked()

	return &CycleResult{
		Leads:       models.CloneLeads(e.state.Leads),
		Logs:        e.journal.Logs(e.config.CycleLogsPageSize),
		ExecutionMS: elapsedMS,
		Result:      result,
	}, nil
}

// Reset restores the seed leads and empties logs, audit trail and corpus.
// The persisted snapshot is cleared rather than rewritten.
func (e *Engine) Reset(ctx context.Context) error {
	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Reset()
	e.journal.Reset()
	e.professor.Reset()

	clearCtx, cancel := e.persistContext(ctx)
	defer cancel()
	if err := e.store.Clear(clearCtx); err != nil {
		e.logger.Error("failed to clear snapshot", zap.Error(err))
		e.metrics.RecordSnapshotFailure()
	}

	if err := e.hub.Publish(notify.Message{Type: notify.MessageReset}); err != nil {
		e.logger.Debug("reset notification not delivered", zap.Error(err))
	}

	e.recordLeadsLocked()
	e.logger.Info("system reset - all state cleared")
	return nil
}

// SetAPIKey switches between generated and templated content
func (e *Engine) SetAPIKey(apiKey string) ConfigResult {
	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.APIKey = apiKey
	e.state.Completer = nil
	if apiKey != "" {
		if e.newProvider != nil {
			e.state.Completer = NewProviderCompleter(e.newProvider(apiKey), e.config.Model)
		}
		e.journal.Log(models.AgentSystem, "Gemini API key configured - Live AI mode", models.SeverityInfo)
	} else {
		e.journal.Log(models.AgentSystem, "No API key - running in Simulation mode", models.SeverityInfo)
	}

	return ConfigResult{Status: "ok", Mode: e.state.Mode()}
}

// Upload validates and indexes a document, replacing the corpus
func (e *Engine) Upload(ctx context.Context, up corpus.Upload) (*corpus.Summary, error) {
	// extraction runs outside the lock
	doc, err := e.ingestor.Ingest(ctx, up)
	if err != nil {
		e.metrics.RecordUpload("rejected")
		return nil, err
	}

	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Corpus.Load(*doc)
	e.journal.Log(models.AgentSystem,
		fmt.Sprintf("PDF indexed: %s (%dp, %s chars)", doc.Filename, doc.Pages, formatCount(doc.Chars)),
		models.SeverityInfo)
	e.persistLocked(ctx)
	e.metrics.RecordUpload("ok")

	summary := corpus.Summarize(*doc, e.ingestor.Limits().PreviewChars)
	return &summary, nil
}

// Leads returns a copy of every lead
func (e *Engine) Leads() []*models.Lead {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return models.CloneLeads(e.state.Leads)
}

// Logs returns the most recent page of log entries
func (e *Engine) Logs() []models.LogEntry {
	return e.journal.Logs(e.config.LogsPageSize)
}

// Audit returns the full audit trail
func (e *Engine) Audit() []models.AuditEntry {
	return e.journal.Trail()
}

// Status returns the dashboard summary
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := len(e.state.Leads)
	passed, opportunities := 0, 0
	for _, l := range e.state.Leads {
		if l.SafetyCheck == models.SafetyPassed {
			passed++
		}
		if l.Status == models.LeadStatusOpportunity {
			opportunities++
		}
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(passed) / float64(total) * 100))
	}

	return Status{
		TotalLeads:     total,
		Opportunities:  opportunities,
		ComplianceRate: rate,
		PDFLoaded:      !e.state.Corpus.Empty(),
		PDFChars:       e.state.Corpus.Chars(),
		GeminiActive:   e.state.APIKey != "",
		Mode:           e.state.Mode(),
		ROI:            fmt.Sprintf("%.1fx", round1(1+float64(rate)/25)),
	}
}

// Analytics returns the derived pipeline report. The retrieval hit rate is
// computed over content generation entries in the audit trail.
func (e *Engine) Analytics() Analytics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	mean, n := e.state.ScoredMean()
	avg := 0.0
	if n > 0 {
		avg = round1(mean)
	}

	hits, total := e.journal.RetrievalStats()
	hitRate := 0.0
	if total > 0 {
		hitRate = round1(float64(hits) / float64(total) * 100)
	}

	matchRate, roi := 87.0, 4.2
	if avg > 0 {
		matchRate = avg
		roi = round1(1 + avg/100*4.2)
	}

	stats := e.journal.GetStats()
	return Analytics{
		PipelineStages: e.state.CountByStatus(),
		AvgICPScore:    avg,
		ICPMatchRate:   matchRate,
		RAGHitRate:     hitRate,
		RAGHits:        hits,
		RAGTotal:       total,
		ROIMultiplier:  roi,
		TotalLogs:      stats.LogEntries,
		AuditEntries:   stats.AuditEntries,
	}
}

// Health returns the liveness report
func (e *Engine) Health() Health {
	e.mu.RLock()
	defer e.mu.RUnlock()

	uptime := int64(time.Since(e.startedAt).Seconds())
	return Health{
		Status:           "online",
		Version:          e.config.Version,
		Uptime:           fmt.Sprintf("%02d:%02d:%02d", uptime/3600, (uptime%3600)/60, uptime%60),
		UptimeSeconds:    uptime,
		GeminiConnected:  e.state.APIKey != "",
		GeminiModel:      e.config.Model,
		PDFLoaded:        !e.state.Corpus.Empty(),
		PDFChars:         e.state.Corpus.Chars(),
		LeadsTotal:       len(e.state.Leads),
		WebsocketClients: e.hub.SubscriberCount(),
	}
}

// CheckStore reports whether the snapshot store is reachable
func (e *Engine) CheckStore(ctx context.Context) error {
	return e.store.HealthCheck(ctx)
}

func (e *Engine) persistLocked(ctx context.Context) {
	snapshot := &repositories.Snapshot{
		Leads:      models.CloneLeads(e.state.Leads),
		Logs:       e.journal.Logs(0),
		AuditTrail: e.journal.Trail(),
	}

	saveCtx, cancel := e.persistContext(ctx)
	defer cancel()
	if err := e.store.Save(saveCtx, snapshot); err != nil {
		e.logger.Error("failed to persist snapshot", zap.Error(err))
		e.metrics.RecordSnapshotFailure()
	}
}

// persistContext ignores request cancellation and bounds the write by PersistTimeout
func (e *Engine) persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := e.config.PersistTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func (e *Engine) recordLeadsLocked() {
	if e.metrics == nil {
		return
	}
	counts := make(map[string]int)
	for status, n := range e.state.CountByStatus() {
		counts[string(status)] = n
	}
	e.metrics.SetLeadCounts(counts)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatCount renders n with comma thousands separators
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatCount(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
