package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBackendUnavailable indicates a transport-level failure before any
// HTTP status was received
var ErrBackendUnavailable = errors.New("api: backend unavailable")

// APIError is the uniform failure shape for every non-2xx backend response.
// Message carries a human-readable description extracted from the body.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized returns true for authentication failures
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// errorBody matches the two error payload shapes the backend produces:
// a flat detail/message string, or a structured validation-error list
// under detail.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// validationItem is a single entry of a structured validation-error list
type validationItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// normalizeError converts a non-2xx response body into an APIError.
// Preference order: flat detail string, flattened validation list,
// message field, then a bare "HTTP <status>" fallback.
func normalizeError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	if len(parsed.Detail) > 0 {
		var flat string
		if err := json.Unmarshal(parsed.Detail, &flat); err == nil && flat != "" {
			apiErr.Message = flat
			return apiErr
		}

		var items []validationItem
		if err := json.Unmarshal(parsed.Detail, &items); err == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				apiErr.Message = strings.Join(msgs, "; ")
				return apiErr
			}
		}
	}

	if parsed.Message != "" {
		apiErr.Message = parsed.Message
	}
	return apiErr
}
