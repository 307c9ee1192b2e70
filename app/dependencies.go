package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/config"
	"github.com/thoufiq2326/NexusAI/internal/observability"
	"github.com/thoufiq2326/NexusAI/repositories"
	"github.com/thoufiq2326/NexusAI/repositories/memory"
	"github.com/thoufiq2326/NexusAI/repositories/postgres"
	"github.com/thoufiq2326/NexusAI/services/audit"
	"github.com/thoufiq2326/NexusAI/services/corpus"
	"github.com/thoufiq2326/NexusAI/services/notify"
	"github.com/thoufiq2326/NexusAI/services/providers"
	"github.com/thoufiq2326/NexusAI/services/providers/openai"
	"github.com/thoufiq2326/NexusAI/services/swarm"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// RepoFactory is nil when snapshots are kept in memory
	RepoFactory *postgres.RepositoryFactory
	Snapshots   repositories.SnapshotRepository

	// Pipeline
	Journal  *audit.Journal
	Hub      *notify.Hub
	Ingestor *corpus.Ingestor
	Engine   *swarm.Engine
}

// NewDependencies creates and wires up all application dependencies and
// restores the last persisted snapshot.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Observability.MetricsEnabled {
		deps.Metrics = observability.NewMetrics()
	}

	if err := deps.initStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	if err := deps.initNotifications(cfg); err != nil {
		deps.closeStore()
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	deps.initEngine(cfg)

	if err := deps.Engine.Restore(ctx); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to restore pipeline state: %w", err)
	}

	if cfg.Generation.APIKey != "" {
		deps.Engine.SetAPIKey(cfg.Generation.APIKey)
	}

	logger.Info("all dependencies initialized successfully",
		zap.Bool("database", deps.RepoFactory != nil),
		zap.Bool("metrics", deps.Metrics != nil))
	return deps, nil
}

// initStore opens PostgreSQL when configured and falls back to memory otherwise
func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.Enabled() {
		d.Snapshots = memory.NewSnapshotRepository()
		d.Logger.Warn("no database configured, snapshots are kept in memory")
		return nil
	}

	factory, err := postgres.NewRepositoryFactory(cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		_ = factory.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.RepoFactory = factory
	d.Snapshots = factory.NewSnapshotRepository()

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))
	return nil
}

// initNotifications starts the hub and attaches it to the journal
func (d *Dependencies) initNotifications(cfg *config.Config) error {
	d.Journal = audit.NewJournal(d.Logger, audit.Config{LogCapacity: cfg.Pipeline.LogCapacity})

	d.Hub = notify.NewHub(d.Logger, notify.DefaultConfig())
	d.Hub.OnDrop(d.Metrics.RecordHubDrop, d.Metrics.RecordHubPrune)
	if err := d.Hub.Start(); err != nil {
		return err
	}

	d.Journal.SetPublisher(d.Hub)
	return nil
}

func (d *Dependencies) initEngine(cfg *config.Config) {
	limits := corpus.Limits{
		MaxBytes:     cfg.Pipeline.MaxUploadBytes,
		MinBytes:     cfg.Pipeline.MinUploadBytes,
		MinChars:     cfg.Pipeline.MinCorpusChars,
		PreviewChars: cfg.Pipeline.PreviewChars,
	}
	d.Ingestor = corpus.NewIngestor(corpus.NewPDFExtractor(d.Logger), limits, d.Logger)

	engineConfig := swarm.EngineConfig{
		Version:           cfg.Version,
		Model:             cfg.Generation.Model,
		LogsPageSize:      cfg.Pipeline.LogsPageSize,
		CycleLogsPageSize: cfg.Pipeline.CycleLogsPageSize,
		PersistTimeout:    cfg.Pipeline.PersistTimeout,
		Professor: swarm.ProfessorConfig{
			RetrievalWindow: cfg.Pipeline.RetrievalWindow,
			WaitingLogEvery: cfg.Pipeline.WaitingLogEvery,
		},
	}

	d.Engine = swarm.NewEngine(engineConfig, d.Journal, d.Snapshots, d.Hub, d.Ingestor,
		NewProviderFactory(cfg.Generation), d.Metrics, d.Logger)
}

// NewProviderFactory returns a factory building a completion provider for the
// configured endpoint with the given key
func NewProviderFactory(gen config.GenerationConfig) providers.Factory {
	return func(apiKey string) providers.Provider {
		pc := providers.DefaultProviderConfig()
		pc.Name = "gemini"
		pc.APIKey = apiKey
		pc.BaseURL = gen.BaseURL
		pc.Model = gen.Model
		pc.Timeout = gen.Timeout
		pc.MaxRetries = gen.MaxRetries
		return openai.NewOpenAIAdapter(pc)
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Hub != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err := d.Hub.Stop(timeout); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop notification hub: %w", err))
		}
	}

	if err := d.closeStore(); err != nil {
		errs = append(errs, err)
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

func (d *Dependencies) closeStore() error {
	if d.RepoFactory == nil {
		return nil
	}
	if err := d.RepoFactory.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.RepoFactory = nil
	d.Logger.Info("database connection closed")
	return nil
}
