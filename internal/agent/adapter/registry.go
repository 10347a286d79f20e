package adapter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	provider "github.com/dirant/dirant/internal/provider/models"
)

// Registry is the single source of truth mapping tool names to
// handlers. It is validated at construction: every name maps to
// exactly one tool.
type Registry struct {
	tools map[string]Tool
	order []string
	log   *zap.Logger
}

// NewRegistry builds a registry from the given tools. Duplicate names
// are a construction error, not a runtime surprise.
func NewRegistry(log *zap.Logger, tools ...Tool) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}

	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		log:   log,
	}
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}

	log.Debug("tool registry initialized", zap.Int("tools", len(tools)))
	return r, nil
}

// Execute dispatches a named tool call. Unknown names fail fast with
// an error enumerating the valid names. Tool failures are logged and
// returned unchanged so the orchestration loop can observe them.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("Tool '%s' not found. Available tools: %s", name, strings.Join(r.Names(), ", "))
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		r.log.Warn("tool execution failed", zap.String("tool", name), zap.Error(err))
		return "", err
	}

	r.log.Debug("tool executed", zap.String("tool", name))
	return result, nil
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns tool name to description, for help and server surfaces.
func (r *Registry) List() map[string]string {
	out := make(map[string]string, len(r.tools))
	for name, t := range r.tools {
		out[name] = t.Description()
	}
	return out
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns the schema set presented to the model, in
// registration order.
func (r *Registry) Definitions() []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}
