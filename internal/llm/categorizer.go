package llm

import (
	"context"
	"fmt"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/worker"
)

// Categorizer wraps a Provider with rate limiting. A nil Categorizer (or one
// with no provider) is valid and simply disabled, so the pipeline can carry
// it unconditionally.
type Categorizer struct {
	provider Provider
	limiter  *worker.Limiter
	config   Config
}

// NewCategorizer builds a categorizer from configuration. It returns a
// disabled categorizer when no provider is configured.
func NewCategorizer(config Config, requestsPerSecond float64, burst int) (*Categorizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Categorizer{
		provider: provider,
		limiter:  worker.NewLimiter(requestsPerSecond, burst),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (c *Categorizer) IsEnabled() bool {
	return c != nil && c.provider != nil
}

// Categorize suggests a category for the candidate, honoring the provider
// rate limit. The suggestion never alters the candidate's confidence.
func (c *Categorizer) Categorize(ctx context.Context, candidate model.TransactionCandidate) (string, error) {
	if !c.IsEnabled() {
		return "", fmt.Errorf("categorization not configured")
	}

	if err := c.limiter.Wait(ctx, c.provider.Name()); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.provider.Categorize(ctx, CategorizeRequest{
		Candidate: candidate,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	return resp.Category, nil
}
