// Package gemini wraps the Google GenAI client for structured JSON
// generation.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"armatupc/internal/config"
)

// Client generates schema-constrained JSON responses from a Gemini model.
type Client struct {
	client *genai.Client
	model  string
	cfg    config.AIConfig
}

// New creates a Gemini client from config. The API key must be set.
func New(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		cfg:    cfg,
	}, nil
}

// GenerateJSON sends the prompt and returns the model's raw JSON output,
// constrained to the given response schema.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}
	return []byte(text), nil
}

// Close releases the underlying client. The genai client holds no
// resources that require explicit release, so this is a no-op.
func (c *Client) Close() error {
	return nil
}

// Disabled is a stand-in used when no API key is configured. Every call
// fails, which surfaces to clients as the generic assistant error.
type Disabled struct{}

// GenerateJSON always fails.
func (Disabled) GenerateJSON(context.Context, string, *genai.Schema) ([]byte, error) {
	return nil, fmt.Errorf("gemini: assistant disabled")
}
