package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/agent"
	"github.com/dirant/dirant/internal/agent/adapter"
	"github.com/dirant/dirant/internal/config"
	"github.com/dirant/dirant/internal/provider/deepseek"
	"github.com/dirant/dirant/internal/provider/gemini"
	provider "github.com/dirant/dirant/internal/provider/models"
	"github.com/dirant/dirant/internal/provider/openai"
	"github.com/dirant/dirant/internal/sandbox"
	"github.com/dirant/dirant/internal/validator"
)

// components holds everything a command needs after wiring.
type components struct {
	agent    *agent.Agent
	registry *adapter.Registry
}

// buildComponents assembles the sandbox, tools, providers, validation
// chain, and agent from configuration.
func buildComponents(ctx context.Context, cfg *config.Config, log *zap.Logger) (*components, error) {
	sb, err := sandbox.New(cfg.BaseDir, sandbox.Config{
		MaxFileSize:      cfg.Sandbox.MaxFileSize,
		BinarySampleSize: cfg.Sandbox.BinarySampleSize,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("initialize sandbox: %w", err)
	}

	orchestrator, err := orchestratorProvider(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	analyzer := sandbox.NewAnalyzer(sb, orchestrator, sandbox.AnalyzerConfig{
		Temperature: cfg.Analysis.Temperature,
		MaxTokens:   cfg.Analysis.MaxTokens,
	}, log)

	registry, err := adapter.NewRegistry(log, adapter.DefaultTools(sb, analyzer)...)
	if err != nil {
		return nil, fmt.Errorf("initialize tools: %w", err)
	}

	chain := validator.NewChain(log, validationStages(cfg, orchestrator, log)...)

	a := agent.New(orchestrator, registry, chain, sb.BaseDir(), agent.Config{
		MaxIterations:      cfg.Agent.MaxIterations,
		HistoryWindow:      cfg.Agent.HistoryWindow,
		Temperature:        cfg.Agent.Temperature,
		MaxTokens:          cfg.Agent.MaxTokens,
		SynthesisMaxTokens: cfg.Agent.SynthesisMaxTokens,
	}, log)

	return &components{agent: a, registry: registry}, nil
}

// orchestratorProvider builds the main reasoning model named by the
// configuration.
func orchestratorProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (provider.Provider, error) {
	switch cfg.Providers.Orchestrator {
	case "openai":
		p, err := openai.New(cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.Model, log)
		if err != nil {
			return nil, fmt.Errorf("initialize openai provider: %w", err)
		}
		return p, nil
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.Providers.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("initialize gemini client: %w", err)
		}
		p, err := gemini.New(client, cfg.Providers.Gemini.Model, log)
		if err != nil {
			return nil, fmt.Errorf("initialize gemini provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown orchestrator provider %q", cfg.Providers.Orchestrator)
	}
}

// validationStages builds the model validation stages available from
// the configured credentials: the lightweight model first, then the
// main reasoning model as a second opinion. The chain itself supplies
// the pattern stage, so an empty result still yields a working
// validator.
func validationStages(cfg *config.Config, capable provider.Provider, log *zap.Logger) []validator.Strategy {
	modelCfg := validator.ModelConfig{
		Temperature: cfg.Validator.Temperature,
		MaxTokens:   cfg.Validator.MaxTokens,
	}

	var stages []validator.Strategy

	if cfg.Providers.DeepSeek.APIKey != "" {
		p, err := deepseek.New(cfg.Providers.DeepSeek.APIKey, cfg.Providers.DeepSeek.Model, log)
		if err != nil {
			log.Warn("deepseek validator unavailable", zap.Error(err))
		} else {
			stages = append(stages, validator.NewModelStrategy(p, modelCfg, log))
		}
	}

	if capable != nil {
		stages = append(stages, validator.NewModelStrategy(capable, modelCfg, log))
	}

	return stages
}
