package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatService is the slice of the OpenAI SDK the provider depends on.
// The concrete chat completion service satisfies it; tests substitute a
// mock.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

func newChatService(apiKey string) ChatService {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &client.Chat.Completions
}
