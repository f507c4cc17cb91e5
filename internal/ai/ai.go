package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"terreins-inventory-api/internal/model"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultReorderQuantity is used when the model answers without a number.
const DefaultReorderQuantity = 10

var digitsRE = regexp.MustCompile(`\d+`)

// Service wraps the Gemini client for the two AI assist operations:
// product description generation and reorder quantity suggestions.
type Service struct {
	client *genai.Client
	model  string
}

// New initializes the Gemini client.
func New(ctx context.Context, apiKey, modelName string) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &Service{client: client, model: modelName}, nil
}

// GenerateDescription asks the model for a short product description for
// a part. The caller is responsible for surfacing failures to the user.
func (s *Service) GenerateDescription(ctx context.Context, partName string, category model.PartCategory) (string, error) {
	prompt := fmt.Sprintf(`Generate a compelling, concise, and professional product description for a motorcycle part for the brand "Terreins". The description should be around 2-3 sentences. Do not use markdown.

Part Name: %s
Category: %s

Description:`, partName, category)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SuggestReorderQuantity asks the model for a reorder quantity and
// extracts the first number from its answer, falling back to
// DefaultReorderQuantity when it answers in prose.
func (s *Service) SuggestReorderQuantity(ctx context.Context, partName string, category model.PartCategory, currentStock int) (int, error) {
	prompt := fmt.Sprintf(`As an expert inventory manager for a motorcycle parts company named "Terreins", suggest a reorder quantity for the following item.
The goal is to maintain a healthy stock level for the next quarter. Base your suggestion on the part category and assume moderate but steady sales velocity.
Consider that items in categories like 'Brakes' or 'Wheels' might be sold less frequently but in higher value transactions than 'Accessories' or 'Lighting'.

Part Name: %s
Category: %s
Current Stock: %d

Suggested Reorder Quantity (provide only a single number):`, partName, category, currentStock)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to suggest reorder quantity: %w", err)
	}
	return parseQuantity(text), nil
}

// parseQuantity extracts the first number from a model answer, falling
// back to DefaultReorderQuantity when the answer contains none.
func parseQuantity(text string) int {
	match := digitsRE.FindString(text)
	if match == "" {
		return DefaultReorderQuantity
	}
	qty, err := strconv.Atoi(match)
	if err != nil {
		return DefaultReorderQuantity
	}
	return qty
}

// generate sends a single prompt and concatenates the text parts of the
// first candidate.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	m := s.client.GenerativeModel(s.model)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}
