package adapter

import (
	"context"

	provider "github.com/dirant/dirant/internal/provider/models"
)

// Tool is a named, schema-described operation the orchestrating model
// may request.
type Tool interface {
	// Name returns the tool's unique identifier.
	Name() string

	// Description returns the natural-language description shown to
	// the model.
	Description() string

	// Definition returns the full schema presented to the model.
	Definition() provider.ToolDefinition

	// Execute runs the tool with the model-supplied arguments and
	// returns the observation string.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
