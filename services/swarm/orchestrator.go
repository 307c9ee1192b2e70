package swarm

import (
	"context"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/models"
)

// PipelineCompleteMessage is logged when no agent finds work
const PipelineCompleteMessage = "All leads processed. Pipeline complete."

// Orchestrator runs the agents in priority order and stops at the first one
// that acts, so a step mutates at most one lead.
type Orchestrator struct {
	agents   []Agent
	recorder Recorder
	logger   *zap.Logger
}

// NewOrchestrator creates a new Orchestrator. Agents run in the given order.
func NewOrchestrator(recorder Recorder, logger *zap.Logger, agents ...Agent) *Orchestrator {
	return &Orchestrator{
		agents:   agents,
		recorder: recorder,
		logger:   logger,
	}
}

// Step performs one pipeline step
func (o *Orchestrator) Step(ctx context.Context, st *State) StepResult {
	for _, agent := range o.agents {
		result := agent.Run(ctx, st)
		if result.Acted() {
			o.logger.Debug("agent acted",
				zap.String("agent", result.Agent),
				zap.String("outcome", string(result.Outcome)),
				zap.String("lead_id", result.LeadID),
			)
			return result
		}
	}

	o.recorder.Log(models.AgentSystem, PipelineCompleteMessage, models.SeverityInfo)
	return StepResult{Agent: models.AgentSystem, Outcome: OutcomeIdle}
}
