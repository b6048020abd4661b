// Package errors defines common error types used throughout the StackExchange API wrapper.
package errors

import (
	"fmt"
	"strings"
)

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// ArgumentCountError indicates an endpoint was invoked with too many or too few
// positional arguments.
type ArgumentCountError struct {
	// Endpoint is the display name of the endpoint
	Endpoint string
	// Min and Max are the accepted bounds, inclusive
	Min int
	Max int
	// Got is the number of arguments actually passed
	Got int
}

func (e *ArgumentCountError) Error() string {
	if e.Got > e.Max {
		return fmt.Sprintf("too many arguments for '%s': expected at most %d, got %d", e.Endpoint, e.Max, e.Got)
	}
	return fmt.Sprintf("not enough arguments for '%s': expected at least %d, got %d", e.Endpoint, e.Min, e.Got)
}

// UnboundFetchError indicates an attempt to resolve or invoke an endpoint that
// is not attached to an API root.
type UnboundFetchError struct {
	// Endpoint is the display name of the endpoint
	Endpoint string
	// Operation is what was attempted (e.g. "resolve path")
	Operation string
}

func (e *UnboundFetchError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("can't %s of unbound fetcher '%s'", e.Operation, e.Endpoint)
	}
	return fmt.Sprintf("can't fetch of unbound fetcher '%s'", e.Endpoint)
}

// NoSuchChildError indicates a chained lookup for a sub-endpoint that was never declared.
type NoSuchChildError struct {
	// Endpoint is the display name of the endpoint the lookup ran against
	Endpoint string
	// Child is the requested name
	Child string
	// Available lists the declared children, sorted
	Available []string
}

func (e *NoSuchChildError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("'%s' has no child '%s'", e.Endpoint, e.Child)
	}
	return fmt.Sprintf("'%s' has no child '%s' (available: %s)", e.Endpoint, e.Child, strings.Join(e.Available, ", "))
}

// DecodeError indicates a response body that could not be decoded as JSON.
type DecodeError struct {
	// URL is the URL the body was fetched from
	URL string
	// Err contains the underlying decoding error
	Err error
}

func (e *DecodeError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("decode error for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestError indicates a problem building an API request.
type RequestError struct {
	// Operation is the name of the operation that failed
	Operation string
	// URL is the URL that was being accessed
	URL string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *RequestError) Error() string {
	// Use Message if available, otherwise use Err.Error()
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	} else if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the StackExchange API.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// ErrorID is the numeric error_id from the error wrapper (0 if absent)
	ErrorID int
	// ErrorName is the error_name from the error wrapper (e.g. "throttle_violation")
	ErrorName string
	// Message is the error_message from the error wrapper, or the HTTP status text
	Message string
	// URL is the request URL
	URL string
}

func (e *APIError) Error() string {
	if e.ErrorName != "" {
		return fmt.Sprintf("stackexchange API error (status %d, %s %d): %s", e.StatusCode, e.ErrorName, e.ErrorID, e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}
