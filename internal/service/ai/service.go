// Package ai implements the Gemini-backed assistant flows: build
// suggestions, compatibility checks, price discovery and product
// enrichment. Every flow declares a JSON response schema and validates
// the model output server side; anything unusable surfaces as
// domain.ErrAIFlow.
package ai

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

// llmClient defines the structured-generation interface needed by the flows.
type llmClient interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// catalogReader gives the flows read access to the component catalog.
type catalogReader interface {
	List(ctx context.Context, filter product.ListFilter) ([]*domain.Component, error)
	GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error)
}

// Service implements the AI flows.
type Service struct {
	log     *slog.Logger
	llm     llmClient
	catalog catalogReader
}

// NewService creates a new AI flow service instance.
func NewService(logger *slog.Logger, llm llmClient, catalog catalogReader) *Service {
	return &Service{
		log:     logger.With("service", "ai"),
		llm:     llm,
		catalog: catalog,
	}
}
