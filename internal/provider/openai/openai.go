package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/provider/models"
)

const DefaultModel = "gpt-4o"

// Provider adapts the OpenAI chat completion API to the Provider
// interface. It is the default orchestrating and analysis model.
type Provider struct {
	service ChatService
	model   string
	log     *zap.Logger
}

// New creates an OpenAI provider with the given credentials.
func New(apiKey, model string, log *zap.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return NewWithService(newChatService(apiKey), model, log), nil
}

// NewWithService creates a provider over a caller-supplied chat
// service. Used by tests.
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
func (p *Provider) Name() string { return "openai" }

// Model implements models.Provider.
func (p *Provider) Model() string { return p.model }

// Generate implements models.Provider.
func (p *Provider) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeInvalidRequest,
			Message: "at least one message is required",
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: toMessages(req.System, req.Messages),
	}
	if len(req.Tools) > 0 {
		params.Tools = toTools(req.Tools)
	}
	applyConfig(&params, req.Config)

	resp, err := p.service.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeEmptyResponse,
			Message: "model returned no choices",
		}
	}

	out, err := fromCompletion(resp)
	if err != nil {
		return nil, err
	}

	p.log.Debug("completion received",
		zap.String("model", p.model),
		zap.String("type", string(out.Content.Type)),
		zap.Int("total_tokens", out.Metadata.TotalTokens))

	return out, nil
}

// fromCompletion converts an API completion into the neutral response
// shape, parsing tool call arguments.
func fromCompletion(resp *openai.ChatCompletion) (*models.GenerateResponse, error) {
	msg := resp.Choices[0].Message

	out := &models.GenerateResponse{
		Metadata: models.ResponseMetadata{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			ModelUsed:        resp.Model,
		},
	}

	switch {
	case len(msg.ToolCalls) > 0:
		calls, err := parseToolCalls(msg.ToolCalls)
		if err != nil {
			return nil, err
		}
		out.Content = models.ResponseContent{
			Type:      models.ResponseTypeToolCall,
			ToolCalls: calls,
		}
	case msg.Refusal != "":
		out.Content = models.ResponseContent{
			Type:          models.ResponseTypeRefusal,
			RefusalReason: msg.Refusal,
		}
	default:
		out.Content = models.ResponseContent{
			Type: models.ResponseTypeText,
			Text: msg.Content,
		}
	}
	return out, nil
}

func parseToolCalls(calls []openai.ChatCompletionMessageToolCall) ([]models.ToolCall, error) {
	out := make([]models.ToolCall, 0, len(calls))
	for _, tc := range calls {
		args, err := parseArguments(tc.Function.Arguments)
		if err != nil {
			return nil, &models.ProviderError{
				Code:    models.ErrorCodeInvalidRequest,
				Message: fmt.Sprintf("malformed arguments for tool %s: %v", tc.Function.Name, err),
			}
		}
		out = append(out, models.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return out, nil
}
