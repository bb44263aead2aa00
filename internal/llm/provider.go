// Package llm suggests an expense category for an extracted transaction
// candidate. Categorization is optional and strictly decorative: it never
// changes the extraction result or its confidence.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/finshare/finx/internal/model"
)

// Categories is the fixed FinShare expense category list. The model must
// answer with one of these; anything else is normalized to OTHER.
var Categories = []string{
	"FOOD", "TRANSPORTATION", "ACCOMMODATION", "GROCERIES",
	"ENTERTAINMENT", "SHOPPING", "UTILITIES", "HEALTHCARE", "OTHER",
}

// Provider defines the interface for categorization backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Categorize suggests a category for the candidate
	Categorize(ctx context.Context, req CategorizeRequest) (*CategorizeResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// CategorizeRequest contains the input for category suggestion
type CategorizeRequest struct {
	// Candidate is the extracted transaction to categorize
	Candidate model.TransactionCandidate

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CategorizeResponse contains the provider's suggestion
type CategorizeResponse struct {
	// Category is one of Categories
	Category string

	// Model is the model that produced the suggestion
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings for self-hosted endpoints behind a corporate proxy.
	// Empty values fall back to the standard environment variables.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 100,
	}
}

// BuildPrompt constructs the categorization prompt. The merchant and raw SMS
// text are the only evidence offered; the category list is closed.
func BuildPrompt(candidate model.TransactionCandidate) string {
	return fmt.Sprintf(`Classify this card/bank transaction into exactly one expense category.

Allowed categories (answer with one word from this list and nothing else):
%s

Transaction:
- Merchant: %s
- Amount: %.2f
- Direction: %s
- Original message: %s

Category:`, strings.Join(Categories, ", "),
		candidate.Merchant, candidate.Amount, candidate.Direction, candidate.RawText)
}

// NormalizeCategory maps a model answer onto the closed category list.
// Unrecognized answers become OTHER rather than leaking free text into the
// product.
func NormalizeCategory(answer string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(answer))
	cleaned = strings.Trim(cleaned, ".\"' ")
	for _, c := range Categories {
		if cleaned == c {
			return c
		}
	}
	// Some models answer in a sentence; take a contained category if there
	// is exactly one.
	var found string
	for _, c := range Categories {
		if strings.Contains(cleaned, c) {
			if found != "" {
				return "OTHER"
			}
			found = c
		}
	}
	if found != "" {
		return found
	}
	return "OTHER"
}
