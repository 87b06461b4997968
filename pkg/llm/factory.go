package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewClient creates a generation client for the configured provider.
// Returns the Client interface to enable dependency injection of mocks.
func NewClient(ctx context.Context, cfg *Config, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiClient(ctx, cfg, logger)
	case "openai":
		return NewOpenAIClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
