package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Errors returned by the completion adapter. Neither is retried here; retry
// policy, if any, belongs to the caller.
var (
	// ErrUnavailable indicates a transport failure or non-success status
	// from the completion service.
	ErrUnavailable = errors.New("completion service unavailable")
	// ErrEmptyResponse indicates the service answered with no usable text.
	ErrEmptyResponse = errors.New("completion service returned an empty response")
)

// Fixed generation parameters. One external call per invocation, no backoff,
// no caching.
const (
	generationTemperature = 0.4
	maxOutputTokens       = 2048
)

// GeminiService generates answers grounded in a supplied document text using
// Google Gemini via langchaingo.
type GeminiService struct {
	model llms.Model
}

// NewGeminiService creates the Gemini-backed completion service.
func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiService{model: model}, nil
}

// buildPrompt embeds the instruction to answer only from the supplied
// document text, then the question.
func buildPrompt(question, docContext string) string {
	var b strings.Builder
	b.WriteString("System instruction: You are a helpful assistant. Based on the document text, answer the question. Use Markdown for formatting. Document: ")
	b.WriteString(docContext)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// Generate submits a single prompt built from the question and document
// context and returns the completion text.
func (s *GeminiService) Generate(ctx context.Context, question, docContext string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, s.model, buildPrompt(question, docContext),
		llms.WithTemperature(generationTemperature),
		llms.WithMaxTokens(maxOutputTokens),
	)
	if err != nil {
		log.Printf("ERROR [GeminiService] completion call failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if strings.TrimSpace(completion) == "" {
		log.Println("ERROR [GeminiService] completion call returned empty text")
		return "", ErrEmptyResponse
	}

	return completion, nil
}
