package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"armatupc/internal/domain"
)

var priceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"prices": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"storeId": {Type: genai.TypeString, Description: "id of one of the listed stores"},
					"price":   {Type: genai.TypeInteger, Description: "price in Chilean pesos"},
					"url":     {Type: genai.TypeString, Description: "product page URL at that store"},
				},
				Required: []string{"storeId", "price", "url"},
			},
		},
	},
	Required: []string{"prices"},
}

type priceOutput struct {
	Prices []struct {
		StoreID string `json:"storeId"`
		Price   int64  `json:"price"`
		URL     string `json:"url"`
	} `json:"prices"`
}

// DiscoverPrices asks the model where the product is sold among the
// tracked stores. Entries for unknown stores or without a URL are
// dropped with a warning; an output with no usable entries is a flow
// error.
func (s *Service) DiscoverPrices(ctx context.Context, productName string) ([]domain.PriceEntry, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "productName", Message: "required"},
		}}
	}

	storesJSON, err := json.Marshal(domain.KnownStores)
	if err != nil {
		return nil, fmt.Errorf("ai.DiscoverPrices marshal stores: %w", err)
	}

	prompt := fmt.Sprintf(`You are a price research assistant for the Chilean PC hardware market.
Find current listings for the product below at the tracked stores. Only use storeId values from the store list. Prices are in Chilean pesos, no decimals.

Product: %s

Stores:
%s`, productName, storesJSON)

	raw, err := s.llm.GenerateJSON(ctx, prompt, priceSchema)
	if err != nil {
		s.log.ErrorContext(ctx, "price discovery flow failed", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	var out priceOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.ErrorContext(ctx, "price discovery returned invalid JSON", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	var entries []domain.PriceEntry
	for _, p := range out.Prices {
		if _, ok := domain.StoreByID(p.StoreID); !ok {
			s.log.WarnContext(ctx, "price discovery returned unknown store",
				slog.String("store_id", p.StoreID))
			continue
		}
		if p.URL == "" || p.Price < 0 {
			s.log.WarnContext(ctx, "price discovery returned malformed entry",
				slog.String("store_id", p.StoreID))
			continue
		}
		entries = append(entries, domain.PriceEntry{
			StoreID: p.StoreID,
			Price:   p.Price,
			URL:     p.URL,
		})
	}
	if len(entries) == 0 {
		return nil, domain.ErrAIFlow
	}

	return entries, nil
}
