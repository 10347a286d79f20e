package deepseek

import (
	"context"
	"errors"
	"testing"

	deepseek "github.com/cohesion-org/deepseek-go"
	"github.com/cohesion-org/deepseek-go/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirant/dirant/internal/provider/models"
)

type mockChatService struct {
	createFunc func(ctx context.Context, req *deepseek.ChatCompletionRequest) (*deepseek.ChatCompletionResponse, error)
	request    *deepseek.ChatCompletionRequest
}

func (m *mockChatService) CreateChatCompletion(ctx context.Context, req *deepseek.ChatCompletionRequest) (*deepseek.ChatCompletionResponse, error) {
	m.request = req
	return m.createFunc(ctx, req)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestGenerateJSONVerdict(t *testing.T) {
	svc := &mockChatService{
		createFunc: func(context.Context, *deepseek.ChatCompletionRequest) (*deepseek.ChatCompletionResponse, error) {
			return &deepseek.ChatCompletionResponse{
				Model: "deepseek-chat",
				Choices: []deepseek.Choice{{
					Message: deepseek.Message{
						Role:    constants.ChatMessageRoleAssistant,
						Content: `{"status": "approved", "reason": "file op", "category": "file_operation"}`,
					},
				}},
				Usage: deepseek.Usage{PromptTokens: 50, CompletionTokens: 20, TotalTokens: 70},
			}, nil
		},
	}
	p := NewWithService(svc, "", nil)

	temp := float32(0.1)
	maxTokens := int32(200)
	resp, err := p.Generate(context.Background(), &models.GenerateRequest{
		System:   "classify queries",
		Messages: []models.Message{{Role: "user", Content: "Validate this query: 'read notes.txt'"}},
		Config:   &models.GenerateConfig{Temperature: &temp, MaxTokens: &maxTokens, JSONMode: true},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeText, resp.Content.Type)
	assert.Contains(t, resp.Content.Text, `"approved"`)
	assert.Equal(t, 70, resp.Metadata.TotalTokens)

	require.NotNil(t, svc.request)
	assert.True(t, svc.request.JSONMode)
	assert.InDelta(t, 0.1, float64(svc.request.Temperature), 0.001)
	assert.Equal(t, 200, svc.request.MaxTokens)

	require.Len(t, svc.request.Messages, 2)
	assert.Equal(t, constants.ChatMessageRoleSystem, svc.request.Messages[0].Role)
	assert.Equal(t, constants.ChatMessageRoleUser, svc.request.Messages[1].Role)
}

func TestGenerateRejectsTools(t *testing.T) {
	p := NewWithService(&mockChatService{}, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
		Tools:    []models.ToolDefinition{{Name: "list_files"}},
	})

	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ErrorCodeInvalidRequest, perr.Code)
}

func TestGenerateEmptyResponse(t *testing.T) {
	svc := &mockChatService{
		createFunc: func(context.Context, *deepseek.ChatCompletionRequest) (*deepseek.ChatCompletionResponse, error) {
			return &deepseek.ChatCompletionResponse{}, nil
		},
	}
	p := NewWithService(svc, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
	})

	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ErrorCodeEmptyResponse, perr.Code)
}

func TestMapErrorClassification(t *testing.T) {
	tests := []struct {
		err  error
		code models.ErrorCode
	}{
		{errors.New("status code: 401, unauthorized"), models.ErrorCodeAuth},
		{errors.New("status code: 429, rate limit reached"), models.ErrorCodeRateLimit},
		{errors.New("status code: 402, insufficient balance"), models.ErrorCodeQuota},
		{errors.New("dial tcp: connection refused"), models.ErrorCodeNetwork},
		{context.DeadlineExceeded, models.ErrorCodeTimeout},
	}
	for _, tt := range tests {
		err := mapError(tt.err)

		var perr *models.ProviderError
		require.ErrorAs(t, err, &perr, tt.err.Error())
		assert.Equal(t, tt.code, perr.Code, tt.err.Error())
	}
}
