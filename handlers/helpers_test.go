package handlers

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/thoufiq2326/NexusAI/repositories/memory"
	"github.com/thoufiq2326/NexusAI/services/audit"
	"github.com/thoufiq2326/NexusAI/services/corpus"
	"github.com/thoufiq2326/NexusAI/services/notify"
	"github.com/thoufiq2326/NexusAI/services/swarm"
)

const threatReport = "Quarterly threat report. Hyderabad fintech firms saw a ransomware surge. Chennai ports were scanned."

type textExtractor struct {
	text  string
	pages int
	err   error
}

func (e textExtractor) Extract(ctx context.Context, data []byte) (*corpus.Extraction, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &corpus.Extraction{Text: e.text, Pages: e.pages}, nil
}

type testEnv struct {
	engine  *swarm.Engine
	journal *audit.Journal
	hub     *notify.Hub
	store   *memory.SnapshotRepository
}

func newTestEnv(t *testing.T, extractor corpus.Extractor) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	if extractor == nil {
		extractor = textExtractor{text: threatReport, pages: 2}
	}

	env := &testEnv{
		journal: audit.NewJournal(logger, audit.DefaultConfig()),
		hub:     notify.NewHub(logger, notify.DefaultConfig()),
		store:   memory.NewSnapshotRepository(),
	}
	ingestor := corpus.NewIngestor(extractor, corpus.DefaultLimits(), logger)
	env.engine = swarm.NewEngine(swarm.DefaultEngineConfig(), env.journal, env.store, env.hub, ingestor, nil, nil, logger)
	return env
}
