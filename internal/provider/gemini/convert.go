package gemini

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/dirant/dirant/internal/provider/models"
)

// toContents converts the neutral conversation to Gemini Content
// format. Empty messages are skipped.
func toContents(msgs []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, msg := range msgs {
		if content := toContent(msg); content != nil {
			contents = append(contents, content)
		}
	}
	return contents
}

func toContent(msg models.Message) *genai.Content {
	role := "user"
	if msg.Role == "assistant" || msg.Role == "model" {
		role = "model"
	}

	parts := make([]*genai.Part, 0)
	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}

	for _, call := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: call.Name,
				Args: call.Args,
			},
		})
	}

	for _, result := range msg.ToolResults {
		responseContent := result.Content
		if result.Error != "" {
			responseContent = fmt.Sprintf("Error: %s", result.Error)
		}
		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name: result.Name,
				Response: map[string]any{
					"content": responseContent,
				},
			},
		})
	}

	if len(parts) == 0 {
		return nil
	}
	return &genai.Content{Role: role, Parts: parts}
}

// toConfig converts the neutral generation config, attaching the
// system instruction and permissive safety settings.
func toConfig(system string, config *models.GenerateConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
	if system != "" {
		out.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(system)},
		}
	}
	if config == nil {
		return out
	}

	if config.Temperature != nil {
		out.Temperature = config.Temperature
	}
	if config.MaxTokens != nil {
		out.MaxOutputTokens = *config.MaxTokens
	}
	if config.JSONMode {
		out.ResponseMIMEType = "application/json"
	}
	return out
}

func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// toTools converts tool definitions to Gemini function declarations.
func toTools(tools []models.ToolDefinition) []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.Parameters != nil {
			fd.Parameters = toSchema(tool.Parameters)
		}
		declarations = append(declarations, fd)
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func toSchema(params *models.ParameterSchema) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject}

	if params.Properties != nil {
		schema.Properties = make(map[string]*genai.Schema, len(params.Properties))
		for name, prop := range params.Properties {
			ps := &genai.Schema{
				Type:        toType(prop.Type),
				Description: prop.Description,
			}
			if len(prop.Enum) > 0 {
				ps.Enum = prop.Enum
			}
			schema.Properties[name] = ps
		}
	}
	if len(params.Required) > 0 {
		schema.Required = params.Required
	}
	return schema
}

func toType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromResponse converts a Gemini response to the neutral format.
func fromResponse(resp *genai.GenerateContentResponse, modelUsed string) (*models.GenerateResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeEmptyResponse,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &models.ProviderError{
			Code:    models.ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.FunctionCall != nil {
				return buildToolCallResponse(candidate, resp.UsageMetadata, modelUsed), nil
			}
		}
	}
	return buildTextResponse(candidate, resp.UsageMetadata, modelUsed), nil
}

func buildTextResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *models.GenerateResponse {
	var text string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
	}
	return &models.GenerateResponse{
		Content: models.ResponseContent{
			Type: models.ResponseTypeText,
			Text: text,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

func buildToolCallResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *models.GenerateResponse {
	var calls []models.ToolCall
	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, models.ToolCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}
	return &models.GenerateResponse{
		Content: models.ResponseContent{
			Type:      models.ResponseTypeToolCall,
			ToolCalls: calls,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

func buildMetadata(usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) models.ResponseMetadata {
	metadata := models.ResponseMetadata{ModelUsed: modelUsed}
	if usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}
	return metadata
}

// mapError maps Gemini API errors to the provider error enumeration.
func mapError(err error) error {
	if apiErr, ok := err.(genai.APIError); ok {
		return mapAPIError(&apiErr)
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		return mapAPIError(apiErr)
	}

	return &models.ProviderError{
		Code:       models.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

func mapAPIError(apiErr *genai.APIError) error {
	switch apiErr.Code {
	case 401, 403:
		return &models.ProviderError{
			Code:       models.ErrorCodeAuth,
			Message:    "authentication failed",
			Underlying: apiErr,
		}
	case 429:
		return &models.ProviderError{
			Code:       models.ErrorCodeRateLimit,
			Message:    "rate limit exceeded",
			Underlying: apiErr,
			Retryable:  true,
		}
	case 400:
		return &models.ProviderError{
			Code:       models.ErrorCodeInvalidRequest,
			Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
			Underlying: apiErr,
		}
	case 500, 502, 503, 504:
		return &models.ProviderError{
			Code:       models.ErrorCodeUnavailable,
			Message:    "service unavailable",
			Underlying: apiErr,
			Retryable:  true,
		}
	default:
		return &models.ProviderError{
			Code:       models.ErrorCodeNetwork,
			Message:    fmt.Sprintf("API error: %s", apiErr.Message),
			Underlying: apiErr,
			Retryable:  true,
		}
	}
}
