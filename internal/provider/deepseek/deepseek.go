package deepseek

import (
	"context"
	"errors"
	"strings"

	deepseek "github.com/cohesion-org/deepseek-go"
	"github.com/cohesion-org/deepseek-go/constants"
	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/provider/models"
)

const DefaultModel = deepseek.DeepSeekChat

// ChatService is the slice of the DeepSeek SDK the provider uses.
type ChatService interface {
	CreateChatCompletion(ctx context.Context, request *deepseek.ChatCompletionRequest) (*deepseek.ChatCompletionResponse, error)
}

// Provider adapts the DeepSeek chat API. It serves as the lightweight
// validation model: fast, cheap, JSON-mode classification. It does not
// support tool calling.
type Provider struct {
	service ChatService
	model   string
	log     *zap.Logger
}

// New creates a DeepSeek provider with the given credentials.
func New(apiKey, model string, log *zap.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("deepseek API key is required")
	}
	return NewWithService(deepseek.NewClient(apiKey), model, log), nil
}

// NewWithService creates a provider over a caller-supplied service.
// Used by tests.
func NewWithService(service ChatService, model string, log *zap.Logger) *Provider {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{service: service, model: model, log: log}
}

// Name implements models.Provider.
func (p *Provider) Name() string { return "deepseek" }

// Model implements models.Provider.
func (p *Provider) Model() string { return p.model }

// Generate implements models.Provider for plain text and JSON-mode
// requests. Tool definitions are rejected.
func (p *Provider) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeInvalidRequest,
			Message: "at least one message is required",
		}
	}
	if len(req.Tools) > 0 {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeInvalidRequest,
			Message: "tool calling is not supported by the deepseek provider",
		}
	}

	request := &deepseek.ChatCompletionRequest{
		Model:    p.model,
		Messages: toMessages(req.System, req.Messages),
	}
	if cfg := req.Config; cfg != nil {
		if cfg.Temperature != nil {
			request.Temperature = *cfg.Temperature
		}
		if cfg.MaxTokens != nil {
			request.MaxTokens = int(*cfg.MaxTokens)
		}
		request.JSONMode = cfg.JSONMode
	}

	resp, err := p.service.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeEmptyResponse,
			Message: "model returned no content",
		}
	}

	p.log.Debug("completion received",
		zap.String("model", p.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return &models.GenerateResponse{
		Content: models.ResponseContent{
			Type: models.ResponseTypeText,
			Text: resp.Choices[0].Message.Content,
		},
		Metadata: models.ResponseMetadata{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			ModelUsed:        resp.Model,
		},
	}, nil
}

func toMessages(system string, msgs []models.Message) []deepseek.ChatCompletionMessage {
	out := make([]deepseek.ChatCompletionMessage, 0, len(msgs)+1)
	if system != "" {
		out = append(out, deepseek.ChatCompletionMessage{
			Role:    constants.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range msgs {
		role := constants.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = constants.ChatMessageRoleAssistant
		}
		out = append(out, deepseek.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

// mapError folds SDK failures into the provider error enumeration.
// The SDK surfaces API failures as rendered strings, so classification
// is by substring.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &models.ProviderError{
			Code:       models.ErrorCodeTimeout,
			Message:    "request cancelled or timed out",
			Underlying: err,
			Retryable:  true,
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication"):
		return &models.ProviderError{
			Code:       models.ErrorCodeAuth,
			Message:    "invalid API key",
			Underlying: err,
		}
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return &models.ProviderError{
			Code:       models.ErrorCodeRateLimit,
			Message:    "rate limit exceeded",
			Underlying: err,
			Retryable:  true,
		}
	case strings.Contains(msg, "insufficient balance") || strings.Contains(msg, "402"):
		return &models.ProviderError{
			Code:       models.ErrorCodeQuota,
			Message:    "quota exceeded",
			Underlying: err,
		}
	default:
		return &models.ProviderError{
			Code:       models.ErrorCodeNetwork,
			Message:    "request failed",
			Underlying: err,
			Retryable:  true,
		}
	}
}
