package openai

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrProvider marks failures originating at the model provider.
var ErrProvider = errors.New("model provider error")

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with ErrProvider so callers can branch on origin.
func parseAPIError(op string, err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%s API error %d: %s: %w",
			op, reqErr.HTTPStatusCode, string(reqErr.Body), ErrProvider)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s API error %d: %s: %w",
			op, apiErr.HTTPStatusCode, apiErr.Message, ErrProvider)
	}

	return fmt.Errorf("%s request failed: %v: %w", op, err, ErrProvider)
}
