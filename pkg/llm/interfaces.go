// Package llm provides clients for external generative-text services.
package llm

import (
	"context"
)

// Client defines the single generation operation the analysis pipeline
// needs. Use this interface for dependency injection to enable mocking in
// tests.
type Client interface {
	// GenerateText submits a composed prompt and returns the raw response
	// text. Failures are classified; see ClassifyError.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Model returns the configured model name.
	Model() string
}

// Config holds configuration for creating a generation client.
type Config struct {
	Provider string // "gemini" (default), "openai", or "anthropic"
	Model    string // Model name, e.g. "gemini-1.5-flash"
	APIKey   string
	Endpoint string // Base URL for OpenAI-compatible endpoints, optional
}

// Compile-time interface checks.
var (
	_ Client = (*GeminiClient)(nil)
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
	_ Client = (*MockClient)(nil)
)
