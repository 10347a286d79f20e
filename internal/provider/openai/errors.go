package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"

	"github.com/dirant/dirant/internal/provider/models"
)

// mapError translates SDK failures into the closed provider error
// enumeration.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &models.ProviderError{
			Code:       models.ErrorCodeTimeout,
			Message:    "request cancelled or timed out",
			Underlying: err,
			Retryable:  true,
		}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return mapAPIError(apiErr)
	}

	return &models.ProviderError{
		Code:       models.ErrorCodeNetwork,
		Message:    "request failed",
		Underlying: err,
		Retryable:  true,
	}
}

func mapAPIError(apiErr *openai.Error) error {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return &models.ProviderError{
			Code:       models.ErrorCodeAuth,
			Message:    "invalid API key",
			Underlying: apiErr,
		}
	case http.StatusForbidden:
		return &models.ProviderError{
			Code:       models.ErrorCodePermission,
			Message:    "access denied",
			Underlying: apiErr,
		}
	case http.StatusTooManyRequests:
		return &models.ProviderError{
			Code:       models.ErrorCodeRateLimit,
			Message:    "rate limit exceeded",
			Underlying: apiErr,
			Retryable:  true,
		}
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return &models.ProviderError{
			Code:       models.ErrorCodeInvalidRequest,
			Message:    "request rejected",
			Underlying: apiErr,
		}
	default:
		if apiErr.StatusCode >= 500 {
			return &models.ProviderError{
				Code:       models.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: apiErr,
				Retryable:  true,
			}
		}
		return &models.ProviderError{
			Code:       models.ErrorCodeNetwork,
			Message:    "unexpected API error",
			Underlying: apiErr,
			Retryable:  true,
		}
	}
}
