package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/madetect-tw/madetect-engine/pkg/logging"
)

// GeminiClient generates text via Google's Gemini API. This is the default
// provider.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient creates a Gemini generation client.
func NewGeminiClient(ctx context.Context, cfg *Config, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger.Named("llm"),
	}, nil
}

// GenerateText implements Client.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("generation request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Error("generation request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", NewError(ErrorTypeAPI, "empty response", false, nil)
	}

	c.logger.Info("generation request completed",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// Model implements Client.
func (c *GeminiClient) Model() string {
	return c.model
}
