package llm

import (
	"context"
)

// MockTextGenerator is a configurable mock for testing generation flows.
// Set the function fields to control behavior in tests.
type MockTextGenerator struct {
	// GenerateFunc is called when Generate is invoked.
	// If nil, returns empty string and nil error.
	GenerateFunc func(ctx context.Context, prompt string, temperature float32) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	GenerateCalls int
	LastPrompt    string
}

// NewMockTextGenerator creates a new mock with sensible defaults.
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{
		Model: "mock-model",
	}
}

// Generate implements TextGenerator.
func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.GenerateCalls++
	m.LastPrompt = prompt
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, temperature)
	}
	return "", nil
}

// GetModel implements TextGenerator.
func (m *MockTextGenerator) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

var _ TextGenerator = (*MockTextGenerator)(nil)
