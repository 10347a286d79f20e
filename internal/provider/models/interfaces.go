package models

import (
	"context"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Name returns the provider's identifier (e.g. "openai", "deepseek").
	Name() string

	// Model returns the currently active model name.
	Model() string

	// Generate sends a request to the model and returns the response.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
