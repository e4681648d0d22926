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

// CompatibilityInput describes the component the user wants to pair.
type CompatibilityInput struct {
	ComponentType    string
	ComponentName    string
	ComponentDetails string
}

// Validate validates the compatibility input.
func (i CompatibilityInput) Validate() error {
	var errs []domain.FieldError

	if i.ComponentType == "" {
		errs = append(errs, domain.FieldError{Field: "componentType", Message: "required"})
	}
	if i.ComponentName == "" {
		errs = append(errs, domain.FieldError{Field: "componentName", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CompatiblePart is one model-suggested pairing.
type CompatiblePart struct {
	PartType string `json:"partType"`
	PartName string `json:"partName"`
	Reason   string `json:"reason"`
}

// CompatibilityResult is the flow output.
type CompatibilityResult struct {
	CompatibleParts []CompatiblePart `json:"compatibleParts"`
	PotentialIssues []string         `json:"potentialIssues,omitempty"`
}

var compatibilitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"compatibleParts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"partType": {Type: genai.TypeString},
					"partName": {Type: genai.TypeString},
					"reason":   {Type: genai.TypeString},
				},
				Required: []string{"partType", "partName", "reason"},
			},
		},
		"potentialIssues": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"compatibleParts"},
}

// CheckCompatibility asks the model which parts pair well with the given
// component and what to watch out for.
func (s *Service) CheckCompatibility(ctx context.Context, input CompatibilityInput) (*CompatibilityResult, error) {
	input.ComponentType = strings.TrimSpace(input.ComponentType)
	input.ComponentName = strings.TrimSpace(input.ComponentName)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a PC hardware compatibility expert.
Given the component below, list the part types it pairs with, a concrete recommendation for each, and any compatibility pitfalls.

Component type: %s
Component name: %s`, input.ComponentType, input.ComponentName)
	if input.ComponentDetails != "" {
		prompt += "\nDetails: " + input.ComponentDetails
	}

	raw, err := s.llm.GenerateJSON(ctx, prompt, compatibilitySchema)
	if err != nil {
		s.log.ErrorContext(ctx, "compatibility flow failed", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}

	var result CompatibilityResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.log.ErrorContext(ctx, "compatibility flow returned invalid JSON", slog.String("error", err.Error()))
		return nil, domain.ErrAIFlow
	}
	if len(result.CompatibleParts) == 0 {
		return nil, domain.ErrAIFlow
	}

	return &result, nil
}
