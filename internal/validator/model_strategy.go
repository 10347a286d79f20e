package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	provider "github.com/dirant/dirant/internal/provider/models"
)

const validationPrompt = `You are a safety validator for a file operations agent. Your job is to classify user queries into categories.

The agent can ONLY help with file operations in a specific directory:
- Listing files
- Reading file contents
- Writing/creating files
- Deleting files
- Answering questions about file contents and their functionality

APPROVE queries that are:
- File operation requests ("list files", "read example.txt")
- Questions about files or their contents ("what does script.py do?", "what's in config.json?")
- File analysis questions ("analyze hello.py", "what is the purpose of data.csv?")
- File management tasks ("create", "delete", "write")

REJECT queries that are:
- Personal greetings without file context ("hello", "how are you?")
- General programming help not about specific files ("how to write Python?")
- System operations outside the directory ("access /etc/passwd")
- General knowledge questions ("what is Python?")
- Questions about non-file topics ("weather", "news")

IMPORTANT: Questions about what a specific file does (like "cosa fa hello.py?") are APPROVED file analysis queries.

Respond with a JSON object:
{
    "status": "approved" | "rejected_inappropriate" | "rejected_unsafe" | "rejected_off_topic",
    "reason": "Brief explanation of your decision",
    "category": "file_operation" | "information_request" | "inappropriate" | "unsafe" | "off_topic"
}

When in doubt about file-related queries, APPROVE them.`

// ModelConfig tunes the validation model call.
type ModelConfig struct {
	Temperature float32
	MaxTokens   int32
}

// verdict is the strict JSON shape the validation models must return.
type verdict struct {
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}

// ModelStrategy classifies queries with a language model in JSON mode.
// Any model failure is reported as an error so the chain degrades to
// the next stage.
type ModelStrategy struct {
	provider provider.Provider
	cfg      ModelConfig
	log      *zap.Logger
}

// NewModelStrategy wraps a provider as a validation stage.
func NewModelStrategy(p provider.Provider, cfg ModelConfig, log *zap.Logger) *ModelStrategy {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 200
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ModelStrategy{provider: p, cfg: cfg, log: log}
}

// Name implements Strategy.
func (s *ModelStrategy) Name() string {
	return fmt.Sprintf("model:%s", s.provider.Name())
}

// Validate implements Strategy by asking the model for a structured
// verdict.
func (s *ModelStrategy) Validate(ctx context.Context, query string) (*Result, error) {
	temp := s.cfg.Temperature
	maxTokens := s.cfg.MaxTokens

	resp, err := s.provider.Generate(ctx, &provider.GenerateRequest{
		System: validationPrompt,
		Messages: []provider.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Validate this query: '%s'", query),
		}},
		Config: &provider.GenerateConfig{
			Temperature: &temp,
			MaxTokens:   &maxTokens,
			JSONMode:    true,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Content.Type != provider.ResponseTypeText {
		return nil, fmt.Errorf("unexpected response type %q from validation model", resp.Content.Type)
	}

	var v verdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Content.Text)), &v); err != nil {
		return nil, fmt.Errorf("malformed validation verdict: %w", err)
	}

	s.log.Debug("validation verdict",
		zap.String("model", s.provider.Model()),
		zap.String("status", v.Status),
		zap.String("reason", v.Reason))

	return resultFromVerdict(v), nil
}

// resultFromVerdict maps the model's verdict onto a Result, formatting
// rejection messages with the fixed template.
func resultFromVerdict(v verdict) *Result {
	reason := v.Reason
	if reason == "" {
		reason = "Unknown validation error"
	}

	switch v.Status {
	case "approved":
		return &Result{Approved: true, Message: reason, Category: CategoryApproved}
	case "rejected_inappropriate":
		return &Result{
			Approved: false,
			Message:  formatRejection(reason, CategoryRejectedInappropriate),
			Category: CategoryRejectedInappropriate,
		}
	case "rejected_unsafe":
		return &Result{
			Approved: false,
			Message:  formatRejection(reason, CategoryRejectedUnsafe),
			Category: CategoryRejectedUnsafe,
		}
	case "rejected_off_topic":
		return &Result{
			Approved: false,
			Message:  formatRejection(reason, CategoryRejectedOffTopic),
			Category: CategoryRejectedOffTopic,
		}
	default:
		return &Result{Approved: false, Message: "Query validation failed", Category: CategoryError}
	}
}
