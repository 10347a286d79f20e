package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	provider "github.com/dirant/dirant/internal/provider/models"
)

// Validator is implemented by request types that support validation.
type Validator interface {
	Validate() error
}

// Executor runs a tool with a typed request.
type Executor[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// BaseAdapter implements Tool for a typed request/response pair.
// It centralizes argument decoding (mapstructure), request validation,
// execution, and observation rendering so the individual tools stay
// declarative.
type BaseAdapter[Req, Resp any] struct {
	name        string
	description string
	definition  provider.ToolDefinition
	executor    Executor[Req, Resp]
}

// NewBaseAdapter creates an adapter from a schema and executor.
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	params *provider.ParameterSchema,
	executor Executor[Req, Resp],
) *BaseAdapter[Req, Resp] {
	return &BaseAdapter[Req, Resp]{
		name:        name,
		description: description,
		definition: provider.ToolDefinition{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		executor: executor,
	}
}

// Name implements Tool.
func (b *BaseAdapter[Req, Resp]) Name() string { return b.name }

// Description implements Tool.
func (b *BaseAdapter[Req, Resp]) Description() string { return b.description }

// Definition implements Tool.
func (b *BaseAdapter[Req, Resp]) Definition() provider.ToolDefinition { return b.definition }

// Execute decodes args into the typed request, validates it when the
// request implements Validator, runs the executor, and renders the
// response. String responses pass through verbatim; everything else is
// marshaled to JSON.
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req
	if err := mapstructure.Decode(args, &req); err != nil {
		return "", fmt.Errorf("invalid arguments for %s: %w", b.name, err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	resp, err := b.executor(ctx, req)
	if err != nil {
		return "", err
	}

	if s, ok := any(resp).(string); ok {
		return s, nil
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s response: %w", b.name, err)
	}
	return string(out), nil
}
