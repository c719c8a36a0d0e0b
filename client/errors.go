package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrSessionExpired marks a 401 that could not be recovered by a token refresh.
	ErrSessionExpired = errors.New("session expired")
	// ErrNoRefreshToken is the refresh failure reported when no refresh token is stored.
	ErrNoRefreshToken = errors.New("no refresh token")
)

// APIError represents a non-2xx response from the backend
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns the backend's explanation, or the status text
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Detail:     extractDetail(body),
		Body:       body,
	}
}

// extractDetail reads FastAPI style {"detail": ...} bodies as well as
// {"message": ...} and {"error": ...}.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil {
			return text
		}
		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg == "" {
					continue
				}
				if field := lastLoc(item.Loc); field != "" {
					msgs = append(msgs, field+": "+item.Msg)
				} else {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized returns true for 401 responses
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true for 403 responses
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsNotFound returns true for 404 responses
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
