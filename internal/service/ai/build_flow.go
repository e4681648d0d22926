package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

// BuildSuggestion is one existing catalog slug per configurator slot.
type BuildSuggestion struct {
	Components map[domain.Category]string
}

// catalogEntry is the compact component view given to the model as context.
type catalogEntry struct {
	Slug     string            `json:"slug"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Brand    string            `json:"brand"`
	MinPrice int64             `json:"minPrice"`
	Specs    map[string]string `json:"specs,omitempty"`
}

var buildSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"cpu":         {Type: genai.TypeString, Description: "slug of the chosen CPU"},
		"motherboard": {Type: genai.TypeString, Description: "slug of the chosen motherboard"},
		"ram":         {Type: genai.TypeString, Description: "slug of the chosen RAM kit"},
		"gpu":         {Type: genai.TypeString, Description: "slug of the chosen graphics card"},
		"storage":     {Type: genai.TypeString, Description: "slug of the chosen storage drive"},
		"powerSupply": {Type: genai.TypeString, Description: "slug of the chosen power supply"},
		"case":        {Type: genai.TypeString, Description: "slug of the chosen case"},
	},
	Required: []string{"cpu", "motherboard", "ram", "gpu", "storage", "powerSupply", "case"},
}

// slotKeys maps the schema property names onto slot categories.
var slotKeys = map[string]domain.Category{
	"cpu":         domain.CategoryCPU,
	"motherboard": domain.CategoryMotherboard,
	"ram":         domain.CategoryRAM,
	"gpu":         domain.CategoryGPU,
	"storage":     domain.CategoryStorage,
	"powerSupply": domain.CategoryPowerSupply,
	"case":        domain.CategoryCase,
}

// SuggestBuild asks the model to assemble a complete PC from the current
// catalog based on a free-text description of needs and budget. Every
// returned slug must exist in the catalog.
func (s *Service) SuggestBuild(ctx context.Context, description string) (*BuildSuggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "description", Message: "required"},
		}}
	}

	components, err := s.catalog.List(ctx, product.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("ai.SuggestBuild list catalog: %w", err)
	}

	entries := make([]catalogEntry, 0, len(components))
	for _, c := range components {
		if !c.Category.IsBuildSlot() {
			continue
		}
		entries = append(entries, catalogEntry{
			Slug:     c.Slug,
			Name:     c.Name,
			Category: c.Category.String(),
			Brand:    c.Brand,
			MinPrice: c.BestPrice(),
			Specs:    c.Specs,
		})
	}
	catalogJSON, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("ai.SuggestBuild marshal catalog: %w", err)
	}

	prompt := fmt.Sprintf(`You are a PC building assistant for a Chilean hardware store.
Pick exactly one component per slot from the catalog below to satisfy the customer's request.
Only use "slug" values that appear in the catalog. Prices are in Chilean pesos.

Customer request: %s

Catalog:
%s`, description, catalogJSON)

	raw, err := s.llm.GenerateJSON(ctx, prompt, buildSchema)
	if err != nil {
		s.log.ErrorContext(ctx, "build suggestion flow failed", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.ErrorContext(ctx, "build suggestion returned invalid JSON", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	suggestion := &BuildSuggestion{Components: make(map[domain.Category]string, len(slotKeys))}
	var slugs []string
	for key, cat := range slotKeys {
		slug := out[key]
		if slug == "" {
			s.log.WarnContext(ctx, "build suggestion missing slot", slog.String("slot", key))
			return nil, domain.ErrAIFlow
		}
		suggestion.Components[cat] = slug
		slugs = append(slugs, slug)
	}

	// The model is not trusted: every slug must resolve.
	resolved, err := s.catalog.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("ai.SuggestBuild resolve: %w", err)
	}
	for cat, slug := range suggestion.Components {
		c, ok := resolved[slug]
		if !ok {
			s.log.WarnContext(ctx, "build suggestion referenced unknown slug",
				slog.String("slug", slug))
			return nil, domain.ErrAIFlow
		}
		if c.Category != cat {
			s.log.WarnContext(ctx, "build suggestion put component in wrong slot",
				slog.String("slug", slug),
				slog.String("slot", cat.String()))
			return nil, domain.ErrAIFlow
		}
	}

	return suggestion, nil
}
