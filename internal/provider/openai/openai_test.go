package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirant/dirant/internal/provider/models"
)

type mockChatService struct {
	newFunc func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	params  openai.ChatCompletionNewParams
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.params = params
	return m.newFunc(ctx, params)
}

func textCompletion(body string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Model: "gpt-4o",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: body}},
		},
		Usage: openai.CompletionUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestGenerateText(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return textCompletion("hello there"), nil
		},
	}
	p := NewWithService(svc, "", nil)

	temp := float32(0.1)
	maxTokens := int32(1500)
	resp, err := p.Generate(context.Background(), &models.GenerateRequest{
		System:   "be useful",
		Messages: []models.Message{{Role: "user", Content: "hi"}},
		Config:   &models.GenerateConfig{Temperature: &temp, MaxTokens: &maxTokens},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeText, resp.Content.Type)
	assert.Equal(t, "hello there", resp.Content.Text)
	assert.Equal(t, 15, resp.Metadata.TotalTokens)

	// System instruction leads the conversation.
	require.Len(t, svc.params.Messages, 2)
	assert.NotNil(t, svc.params.Messages[0].OfSystem)
	assert.NotNil(t, svc.params.Messages[1].OfUser)
	assert.InDelta(t, 0.1, svc.params.Temperature.Value, 0.001)
	assert.Equal(t, int64(1500), svc.params.MaxTokens.Value)
}

func TestGenerateToolCalls(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{
						ToolCalls: []openai.ChatCompletionMessageToolCall{{
							ID: "call_1",
							Function: openai.ChatCompletionMessageToolCallFunction{
								Name:      "read_file",
								Arguments: `{"filename": "notes.txt"}`,
							},
						}},
					},
				}},
			}, nil
		},
	}
	p := NewWithService(svc, "", nil)

	resp, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "read notes.txt"}},
		Tools: []models.ToolDefinition{{
			Name:        "read_file",
			Description: "Read a file",
			Parameters: &models.ParameterSchema{
				Type: "object",
				Properties: map[string]models.PropertySchema{
					"filename": {Type: "string"},
				},
				Required: []string{"filename"},
			},
		}},
	})
	require.NoError(t, err)

	require.Equal(t, models.ResponseTypeToolCall, resp.Content.Type)
	require.Len(t, resp.Content.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.Content.ToolCalls[0].ID)
	assert.Equal(t, "read_file", resp.Content.ToolCalls[0].Name)
	assert.Equal(t, "notes.txt", resp.Content.ToolCalls[0].Args["filename"])

	require.Len(t, svc.params.Tools, 1)
	assert.Equal(t, "read_file", svc.params.Tools[0].Function.Name)
}

func TestGenerateReplaysToolConversation(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return textCompletion("done"), nil
		},
	}
	p := NewWithService(svc, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{
			{Role: "user", Content: "list files"},
			{Role: "assistant", ToolCalls: []models.ToolCall{{
				ID: "call_1", Name: "list_files", Args: map[string]any{},
			}}},
			{Role: "tool", ToolResults: []models.ToolResult{{
				ID: "call_1", Name: "list_files", Content: "[]",
			}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, svc.params.Messages, 3)
	require.NotNil(t, svc.params.Messages[1].OfAssistant)
	assert.Len(t, svc.params.Messages[1].OfAssistant.ToolCalls, 1)
	require.NotNil(t, svc.params.Messages[2].OfTool)
}

func TestGenerateJSONMode(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return textCompletion(`{"status": "approved"}`), nil
		},
	}
	p := NewWithService(svc, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "validate"}},
		Config:   &models.GenerateConfig{JSONMode: true},
	})
	require.NoError(t, err)
	assert.NotNil(t, svc.params.ResponseFormat.OfJSONObject)
}

func TestGenerateEmptyChoices(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{}, nil
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

func TestGenerateMalformedToolArguments(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{
						ToolCalls: []openai.ChatCompletionMessageToolCall{{
							ID: "call_1",
							Function: openai.ChatCompletionMessageToolCallFunction{
								Name:      "read_file",
								Arguments: `{not json`,
							},
						}},
					},
				}},
			}, nil
		},
	}
	p := NewWithService(svc, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "read"}},
	})

	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ErrorCodeInvalidRequest, perr.Code)
}

func TestGenerateMapsTransportError(t *testing.T) {
	svc := &mockChatService{
		newFunc: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	p := NewWithService(svc, "", nil)

	_, err := p.Generate(context.Background(), &models.GenerateRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
	})

	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ErrorCodeNetwork, perr.Code)
	assert.True(t, perr.Retryable)
}

func TestMapAPIErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		code   models.ErrorCode
	}{
		{401, models.ErrorCodeAuth},
		{403, models.ErrorCodePermission},
		{429, models.ErrorCodeRateLimit},
		{400, models.ErrorCodeInvalidRequest},
		{500, models.ErrorCodeUnavailable},
		{503, models.ErrorCodeUnavailable},
	}
	for _, tt := range tests {
		err := mapError(&openai.Error{StatusCode: tt.status})

		var perr *models.ProviderError
		require.ErrorAs(t, err, &perr, tt.status)
		assert.Equal(t, tt.code, perr.Code, tt.status)
	}
}
