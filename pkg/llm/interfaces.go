package llm

import (
	"context"
)

// TextGenerator defines the interface for text-generation operations.
// Use this interface for dependency injection to enable mocking in tests.
type TextGenerator interface {
	// Generate sends a prompt and returns the generated text.
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure Client implements TextGenerator at compile time.
var _ TextGenerator = (*Client)(nil)
