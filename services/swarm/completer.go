package swarm

import (
	"context"

	"github.com/thoufiq2326/NexusAI/services/providers"
)

// Completer turns a prompt into generated text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderCompleter adapts a chat provider to the Completer interface
type ProviderCompleter struct {
	provider providers.Provider
	model    string
}

// NewProviderCompleter creates a new ProviderCompleter
func NewProviderCompleter(provider providers.Provider, model string) *ProviderCompleter {
	return &ProviderCompleter{provider: provider, model: model}
}

// Complete sends the prompt as a single user message
func (c *ProviderCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return providers.Complete(ctx, c.provider, c.model, prompt)
}
