package flasharray

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a single error entry returned by the array. Context
// identifies which sub-operation or batch item failed; it is empty for flat
// (message-only) error bodies.
type APIError struct {
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
	Message string `json:"message"           yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Context, e.Message)
	}

	return e.Message
}

// ErrorResponse represents a terminal API-level failure. It is returned as an
// error value alongside the raw response so callers can branch on it with
// errors.As rather than catching anything.
type ErrorResponse struct {
	StatusCode int         `json:"status_code" yaml:"status_code"`
	Errors     []APIError  `json:"errors"      yaml:"errors"`
	Headers    http.Header `json:"-"           yaml:"-"`
}

// Error implements the error interface for ErrorResponse.
func (e *ErrorResponse) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Errors[0].Error())
	}

	parts := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		parts = append(parts, e.Errors[i].Error())
	}

	return fmt.Sprintf("API errors (status %d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// FirstError returns the first error entry or nil.
func (e *ErrorResponse) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// flatErrorStatus reports whether the status's body carries a single
// top-level "message" field instead of a structured "errors" list.
func flatErrorStatus(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// NewErrorResponse classifies a failed transport result into an ErrorResponse.
// The body is parsed as JSON when possible; an unparseable body yields an
// ErrorResponse with no entries but the status and headers intact.
func NewErrorResponse(statusCode int, headers http.Header, body []byte) *ErrorResponse {
	resp := &ErrorResponse{
		StatusCode: statusCode,
		Headers:    headers,
	}

	if len(body) == 0 {
		return resp
	}

	if flatErrorStatus(statusCode) {
		var flat struct {
			Message string `json:"message"`
		}

		if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
			resp.Errors = []APIError{{Message: flat.Message}}
		}

		return resp
	}

	var structured struct {
		Errors []APIError `json:"errors"`
	}

	if err := json.Unmarshal(body, &structured); err == nil {
		resp.Errors = structured.Errors
	}

	return resp
}

// AuthenticationError indicates that the credential exchange itself failed.
// It is raised directly rather than wrapped into an ErrorResponse, because
// the client cannot proceed at all without a token.
type AuthenticationError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ConfigurationError indicates construction-time misconfiguration, such as
// supplying both credential variants at once.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "invalid client configuration: " + e.Reason
}

// InvalidReferenceError indicates that a reference collection could not be
// resolved into any of the candidate parameters.
type InvalidReferenceError struct {
	Candidates []string
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf(
		"references must uniformly expose an id or a name to populate one of %v",
		e.Candidates)
}

// Static errors that can be wrapped with context.
var (
	ErrNoMoreItems        = errors.New("no more items")
	ErrConfigRequired     = errors.New("config is required")
	ErrEndpointRequired   = errors.New("array endpoint is required")
	ErrNoCredentials      = errors.New("no credentials configured")
	ErrNoRESTVersion      = errors.New("no supported REST version reported by array")
	ErrCacheMiss          = errors.New("cache miss")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrUnsupportedCache   = errors.New("unsupported cache type")
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS cache")
)

// IsNotFound checks if the error is a not-found error response.
func IsNotFound(err error) bool {
	return errorStatusIs(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error response.
func IsUnauthorized(err error) bool {
	return errorStatusIs(err, http.StatusUnauthorized)
}

// IsRateLimited checks if the error is a rate-limit error response.
func IsRateLimited(err error) bool {
	return errorStatusIs(err, http.StatusTooManyRequests)
}

func errorStatusIs(err error, status int) bool {
	errResp := &ErrorResponse{}
	if errors.As(err, &errResp) {
		return errResp.StatusCode == status
	}

	return false
}
