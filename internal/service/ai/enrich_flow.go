package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"armatupc/internal/domain"
)

// ProductDraft is the model's proposal for a new catalog entry. It is a
// starting point for the superuser, not a finished product.
type ProductDraft struct {
	SKU         string            `json:"sku"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	ImageURL    string            `json:"imageUrl"`
	Price       int64             `json:"price"`
	Stock       int               `json:"stock"`
	Specs       map[string]string `json:"specs"`
}

var enrichSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sku":   {Type: genai.TypeString},
		"brand": {Type: genai.TypeString},
		"category": {
			Type: genai.TypeString,
			Enum: []string{
				"CPU", "Motherboard", "RAM", "GPU", "Storage",
				"Power Supply", "Case", "Cooling", "Other",
			},
		},
		"description": {Type: genai.TypeString},
		"imageUrl":    {Type: genai.TypeString},
		"price":       {Type: genai.TypeInteger, Description: "estimated price in Chilean pesos"},
		"stock":       {Type: genai.TypeInteger},
		"specs": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"key":   {Type: genai.TypeString},
					"value": {Type: genai.TypeString},
				},
				Required: []string{"key", "value"},
			},
		},
	},
	Required: []string{"brand", "category", "description", "price"},
}

type enrichOutput struct {
	SKU         string `json:"sku"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Specs       []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"specs"`
}

// EnrichProduct asks the model to fill in the catalog fields for a
// product given only its name. The category must be one of the nine
// known categories or the flow fails.
func (s *Service) EnrichProduct(ctx context.Context, productName string) (*ProductDraft, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "productName", Message: "required"},
		}}
	}

	prompt := `You are a PC hardware catalog assistant for a Chilean store.
Fill in the catalog fields for this product. Prices are in Chilean pesos, no decimals. Use realistic specs.

Product name: ` + productName

	raw, err := s.llm.GenerateJSON(ctx, prompt, enrichSchema)
	if err != nil {
		s.log.ErrorContext(ctx, "product enrichment flow failed", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	var out enrichOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.ErrorContext(ctx, "product enrichment returned invalid JSON", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	if !domain.Category(out.Category).IsValid() {
		s.log.WarnContext(ctx, "product enrichment returned unknown category",
			slog.String("category", out.Category))
		return nil, domain.ErrAIFlow
	}
	if out.Brand == "" || out.Price < 0 {
		return nil, domain.ErrAIFlow
	}

	draft := &ProductDraft{
		SKU:         out.SKU,
		Brand:       out.Brand,
		Category:    out.Category,
		Description: out.Description,
		ImageURL:    out.ImageURL,
		Price:       out.Price,
		Stock:       out.Stock,
	}
	if len(out.Specs) > 0 {
		draft.Specs = make(map[string]string, len(out.Specs))
		for _, kv := range out.Specs {
			if kv.Key != "" {
				draft.Specs[kv.Key] = kv.Value
			}
		}
	}

	return draft, nil
}
