package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/agent/adapter"
	provider "github.com/dirant/dirant/internal/provider/models"
	"github.com/dirant/dirant/internal/validator"
)

// Defaults for the orchestration loop.
const (
	DefaultMaxIterations      = 5
	DefaultTemperature        = 0.1
	DefaultMaxTokens          = 1500
	DefaultSynthesisMaxTokens = 2000
)

// Config tunes the orchestration loop.
type Config struct {
	MaxIterations      int
	HistoryWindow      int
	Temperature        float32
	MaxTokens          int32
	SynthesisMaxTokens int32
}

func (c *Config) applyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.SynthesisMaxTokens <= 0 {
		c.SynthesisMaxTokens = DefaultSynthesisMaxTokens
	}
}

// Agent processes natural-language file operation requests: it
// validates each query, drives the reasoning loop against the
// orchestrating model, and records completed turns.
type Agent struct {
	provider provider.Provider
	registry *adapter.Registry
	chain    *validator.Chain
	memory   *Memory
	baseDir  string
	system   string
	cfg      Config
	log      *zap.Logger
}

// New assembles an agent over the given model provider, tool registry
// and validation chain, sandboxed to baseDir.
func New(p provider.Provider, registry *adapter.Registry, chain *validator.Chain, baseDir string, cfg Config, log *zap.Logger) *Agent {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{
		provider: p,
		registry: registry,
		chain:    chain,
		memory:   NewMemory(cfg.HistoryWindow),
		baseDir:  baseDir,
		system:   systemPrompt(baseDir),
		cfg:      cfg,
		log:      log,
	}
}

// ProcessQuery runs one query through validation and the reasoning
// loop. It never returns an error: every failure path yields a
// structured response with Success=false and an explanatory message.
func (a *Agent) ProcessQuery(ctx context.Context, query string) *Response {
	verdict := a.chain.Validate(ctx, query)
	if !verdict.Approved {
		a.log.Info("query rejected",
			zap.String("category", string(verdict.Category)))
		return &Response{
			Success:   false,
			Message:   verdict.Message,
			Type:      OpRejected,
			Reasoning: "Query rejected by safety validator",
		}
	}

	a.log.Info("processing query", zap.String("model", a.provider.Model()))

	message, ops, err := a.runReactLoop(ctx, query)
	if err != nil {
		a.log.Error("orchestrating model failed", zap.Error(err))
		return fallbackResponse(query, err)
	}

	a.memory.Append(Turn{Query: query, Response: message, Category: verdict.Category})

	return buildResponse(message, ops)
}

// fallbackResponse is the last line of defense when the orchestrating
// model itself is unreachable: a topic-appropriate apology with the raw
// technical error, instead of a bare failure.
func fallbackResponse(query string, err error) *Response {
	msg := "I encountered some technical difficulties, but let me try to help you anyway. "

	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "list") || strings.Contains(q, "files"):
		msg += "You asked about listing files. Try listing the directory contents from your shell."
	case strings.Contains(q, "read"):
		msg += "You asked to read a file. Try opening the file directly with a text editor."
	case strings.Contains(q, "write") || strings.Contains(q, "create"):
		msg += "You asked to write/create a file. Try using a text editor or basic file commands."
	case strings.Contains(q, "delete"):
		msg += "You asked to delete a file. Please use a file manager or the command line carefully."
	default:
		msg += "Please try rephrasing your request or use basic file operations."
	}
	msg += fmt.Sprintf("\n\nTechnical error: %v", err)

	return &Response{
		Success:   false,
		Message:   msg,
		Type:      OpError,
		Reasoning: fmt.Sprintf("Provided fallback assistance despite error: %v", err),
	}
}

// History returns a copy of all recorded turns.
func (a *Agent) History() []Turn {
	return a.memory.History()
}

// ClearHistory empties the conversation log.
func (a *Agent) ClearHistory() {
	a.memory.Clear()
	a.log.Debug("conversation history cleared")
}

// Info describes the agent's configuration for shells and diagnostics.
type Info struct {
	AgentType          string   `json:"agent_type"`
	ModelName          string   `json:"model_name"`
	ModelProvider      string   `json:"model_provider"`
	BaseDirectory      string   `json:"base_directory"`
	AvailableTools     []string `json:"available_tools"`
	ConversationLength int      `json:"conversation_length"`
	Capabilities       []string `json:"capabilities"`
}

// Info reports the agent's models, tools and conversation state.
func (a *Agent) Info() Info {
	return Info{
		AgentType:          "LLM-powered File Operations Agent",
		ModelName:          a.provider.Model(),
		ModelProvider:      a.provider.Name(),
		BaseDirectory:      a.baseDir,
		AvailableTools:     a.registry.Names(),
		ConversationLength: a.memory.Len(),
		Capabilities: []string{
			"Natural language understanding",
			"ReAct reasoning pattern",
			"Intelligent tool orchestration",
			"Safety validation with lightweight model",
			"Context-aware conversations",
		},
	}
}

// Help returns usage guidance for interactive shells.
func (a *Agent) Help() string {
	return `I'm an AI assistant specialized in file operations. I understand natural language and use tools to help you manage files.

**What I can do:**
- **List files**: "Show me all files" or "What files are in the directory?"
- **Read files**: "Read the content of example.txt" or "What's in the Python file?"
- **Write files**: "Create a file called notes.txt with content 'Hello World'"
- **Delete files**: "Delete the file old_data.csv"
- **Intelligent analysis**: "What's the largest file?" or "Which files contain code?"

**Key features:**
- Natural language understanding (no need for exact commands)
- Multi-step reasoning (I can combine multiple operations)
- Safety validation (inappropriate requests are filtered out)
- Context awareness (I remember our conversation)

**Examples:**
- "Find the file that was modified most recently and show me its content"
- "Create a summary of all text files in the directory"
- "What does hello.py do?"`
}
