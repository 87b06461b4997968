package llm

import (
	"context"
)

// MockClient is a configurable mock for testing generation functionality.
// Set the function field to control behavior in tests.
type MockClient struct {
	// GenerateTextFunc is called when GenerateText is invoked.
	// If nil, returns an empty string and nil error.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	GenerateTextCalls int
	Prompts           []string
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// GenerateText implements Client.
func (m *MockClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.GenerateTextCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "", nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}
