package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dirant/dirant/internal/config"
)

func TestVersionCommandPrintsVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dirant 0.1.0")
}

func TestOrchestratorProviderSelection(t *testing.T) {
	cfg := &config.Config{}
	cfg.Providers.Orchestrator = "openai"
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Providers.OpenAI.Model = "gpt-4o"

	p, err := orchestratorProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestOrchestratorProviderRejectsUnknown(t *testing.T) {
	cfg := &config.Config{}
	cfg.Providers.Orchestrator = "anthropic"

	_, err := orchestratorProvider(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown orchestrator provider")
}

func TestValidationStagesWithoutCredentials(t *testing.T) {
	cfg := &config.Config{}

	stages := validationStages(cfg, nil, zap.NewNop())
	assert.Empty(t, stages)
}

func TestValidationStagesOrdering(t *testing.T) {
	cfg := &config.Config{}
	cfg.Providers.DeepSeek.APIKey = "ds-test"
	cfg.Providers.DeepSeek.Model = "deepseek-chat"
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Providers.OpenAI.Model = "gpt-4o"
	cfg.Validator.Temperature = 0.1
	cfg.Validator.MaxTokens = 200

	cfg.Providers.Orchestrator = "openai"
	capable, err := orchestratorProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	stages := validationStages(cfg, capable, zap.NewNop())
	require.Len(t, stages, 2)
	assert.Equal(t, "model:deepseek", stages[0].Name())
	assert.Equal(t, "model:openai", stages[1].Name())
}

func TestBuildComponents(t *testing.T) {
	cfg := &config.Config{}
	cfg.BaseDir = t.TempDir()
	cfg.Providers.Orchestrator = "openai"
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Providers.OpenAI.Model = "gpt-4o"

	comps, err := buildComponents(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, comps.agent)
	assert.True(t, comps.registry.Has("list_files"))
	assert.True(t, comps.registry.Has("answer_question_about_files"))
}
