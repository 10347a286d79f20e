package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client is the slice of the Gemini SDK the provider depends on.
// The real SDK client satisfies it through a thin wrapper; tests
// substitute a mock.
type Client interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// sdkClient wraps the official SDK client to satisfy Client.
type sdkClient struct {
	client *genai.Client
}

func (c *sdkClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

// NewClient builds a Gemini API client with the given key.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &sdkClient{client: client}, nil
}
