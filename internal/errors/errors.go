// Package errors provides custom error types for the ragchat backend client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyQuery      = errors.New("query is empty")
	ErrBusy            = errors.New("a request is already in flight")
	ErrInvalidResponse = errors.New("invalid response format")
)

// NetworkError represents a transport-level failure
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error during %s", e.Op)
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with another NetworkError
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// APIError represents a non-success status from the backend
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with another APIError
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError carrying the response body
// for diagnostics
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Body:       body,
	}
}

// ContentTypeError represents a response declaring a content type the
// client does not understand
type ContentTypeError struct {
	ContentType string
	Endpoint    string
}

func (e *ContentTypeError) Error() string {
	if e.ContentType == "" {
		return "response has no content type"
	}
	return fmt.Sprintf("unexpected content type %q", e.ContentType)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ContentTypeError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ContentTypeError)
	return ok
}

// NewContentTypeError creates a new ContentTypeError
func NewContentTypeError(contentType, endpoint string) *ContentTypeError {
	return &ContentTypeError{ContentType: contentType, Endpoint: endpoint}
}

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is a non-success status from the backend
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsContentTypeError reports whether err is an unrecognized content type
func IsContentTypeError(err error) bool {
	var ce *ContentTypeError
	return errors.As(err, &ce)
}

// GetHTTPStatus extracts the HTTP status code from an error chain,
// returning 0 when none is present
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error chain, returning ""
// when none is present
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	var ce *ContentTypeError
	if errors.As(err, &ce) {
		return ce.Endpoint
	}
	return ""
}

// GetResponseBody extracts the error response body from an error chain,
// returning "" when none is present
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}
