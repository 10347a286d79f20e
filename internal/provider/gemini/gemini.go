package gemini

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/provider/models"
)

const DefaultModel = "gemini-2.0-flash"

// Provider implements the Provider interface for Google Gemini. It is
// an alternate orchestrating model selectable via configuration.
type Provider struct {
	client Client
	model  string
	log    *zap.Logger
}

// New creates a Gemini provider over the given API client.
func New(client Client, model string, log *zap.Logger) (*Provider, error) {
	if client == nil {
		return nil, errors.New("gemini client is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{client: client, model: model, log: log}, nil
}

// Name implements models.Provider.
func (p *Provider) Name() string { return "gemini" }

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

	contents := toContents(req.Messages)
	config := toConfig(req.System, req.Config)
	if len(req.Tools) > 0 {
		config.Tools = toTools(req.Tools)
	}

	resp, err := p.client.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapError(err)
	}

	out, err := fromResponse(resp, p.model)
	if err != nil {
		return nil, err
	}

	p.log.Debug("completion received",
		zap.String("model", p.model),
		zap.String("type", string(out.Content.Type)),
		zap.Int("total_tokens", out.Metadata.TotalTokens))

	return out, nil
}
