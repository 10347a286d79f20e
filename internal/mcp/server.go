// Package mcp exposes the agent and its file tools over the Model
// Context Protocol so external clients can drive them via stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/agent"
	"github.com/dirant/dirant/internal/agent/adapter"
)

const serverInstructions = `This server manages files inside a sandboxed base directory.

Use the "ask" tool for natural-language requests; it runs the full
agent pipeline (validation, reasoning, tool execution) and returns a
structured JSON response. The remaining tools invoke single file
operations directly and return their raw results.`

// Config describes an MCP server over an agent and its tool registry.
type Config struct {
	Name    string
	Version string
}

// Server bridges the agent and tool registry onto an MCP stdio
// transport.
type Server struct {
	srv      *mcpgo.Server
	agent    *agent.Agent
	registry *adapter.Registry
	log      *zap.Logger
}

type askRequest struct {
	Query string `json:"query"`
}

// NewServer builds an MCP server exposing the "ask" tool plus one
// tool per registered file operation.
func NewServer(a *agent.Agent, registry *adapter.Registry, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: "Natural-language file operations agent",
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	srv := mcpgo.NewServer(info, mcpgo.WithInstructions(serverInstructions))

	s := &Server{
		srv:      srv,
		agent:    a,
		registry: registry,
		log:      log,
	}

	srv.Tool("ask").
		Description("Process a natural-language file operation request through the agent. Accepts {\"query\": string} and returns the agent's structured JSON response.").
		Handler(s.handleAsk)

	for _, t := range registry.Tools() {
		s.registerTool(t)
	}

	return s
}

func (s *Server) handleAsk(ctx context.Context, input json.RawMessage) (string, error) {
	var req askRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return "", fmt.Errorf("invalid ask input: %w", err)
	}
	if strings.TrimSpace(req.Query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	s.log.Info("processing ask request", zap.String("query", req.Query))

	resp := s.agent.ProcessQuery(ctx, req.Query)
	out, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	return string(out), nil
}

func (s *Server) registerTool(t adapter.Tool) {
	s.srv.Tool(t.Name()).
		Description(t.Description()).
		Handler(s.toolHandler(t.Name()))
}

func (s *Server) toolHandler(name string) func(context.Context, json.RawMessage) (string, error) {
	return func(ctx context.Context, input json.RawMessage) (string, error) {
		args := map[string]any{}
		if len(input) > 0 {
			if err := json.Unmarshal(input, &args); err != nil {
				return "", fmt.Errorf("invalid %s input: %w", name, err)
			}
		}

		s.log.Info("executing tool", zap.String("tool", name))

		result, err := s.registry.Execute(ctx, name, args)
		if err != nil {
			return "", err
		}
		return result, nil
	}
}

// ServeStdio runs the server over stdin and stdout until the context
// is cancelled or the transport closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.log.Info("starting MCP server on stdio")
	return mcpgo.ServeStdio(ctx, s.srv, mcpgo.WithMiddleware(mcpgo.Recover(), mcpgo.RequestID()))
}
