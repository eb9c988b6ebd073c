package futures

import (
	"errors"
	"fmt"
	"time"
)

// Error is the root of the SDK error taxonomy. Every failure the library
// produces satisfies this interface, so callers can catch broadly:
//
//	var sdkErr futures.Error
//	if errors.As(err, &sdkErr) { ... }
//
// or narrowly with one of the concrete kinds below. The kinds are mutually
// exclusive: any given failure is classified as exactly one of them.
type Error interface {
	error
	sdkError()
}

// ConfigurationError reports invalid or missing client settings at
// construction time. Not retriable; fix the configuration.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (*ConfigurationError) sdkError() {}

// AuthenticationError reports a rejected credential: an HTTP 401, an
// auth-failure envelope code, or a signature-verification failure (code 602).
// Not retriable without a fresh WEB token.
type AuthenticationError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *AuthenticationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "authentication failed, the WEB token may be expired or invalid"
	}
	if e.Code != 0 {
		return fmt.Sprintf("authentication error (code %d): %s", e.Code, msg)
	}
	return fmt.Sprintf("authentication error: %s", msg)
}

func (*AuthenticationError) sdkError() {}

// RateLimitError reports that the exchange throttled the request (HTTP 429
// or envelope code 510). Retriable after RetryAfter.
type RateLimitError struct {
	// RetryAfter is taken from the Retry-After response header when present,
	// otherwise DefaultRetryAfter.
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}
	return fmt.Sprintf("%s, retry after %s", msg, e.RetryAfter)
}

func (*RateLimitError) sdkError() {}

// ValidationError reports a request parameter that failed local validation,
// or a response payload that did not match the declared schema. Not
// retriable without changing the input.
type ValidationError struct {
	Field        string
	ExpectedType string
	Message      string
}

func (e *ValidationError) Error() string {
	if e.ExpectedType != "" {
		return fmt.Sprintf("validation error: field %q: expected %s", e.Field, e.ExpectedType)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (*ValidationError) sdkError() {}

// APIError reports any other non-success response: an envelope with
// success=false, an unexpected HTTP status, or a body that is not a valid
// envelope (RawBody carries it for inspection). May or may not be
// retriable; inspect Code and Message.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	RawBody    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): unexpected response body", e.StatusCode)
}

func (*APIError) sdkError() {}

// NetworkError reports a transport failure: connection refused, DNS or TLS
// failure, or timeout expiry (Timeout=true). Retriable with backoff.
type NetworkError struct {
	Cause   error
	Timeout bool
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("network error: request timed out: %v", e.Cause)
	}
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

func (*NetworkError) sdkError() {}

// Retriable reports whether retrying the failed call can succeed without
// changing the input or the credential: true for NetworkError and
// RateLimitError, false for every other kind. RateLimitError callers should
// wait RetryAfter first; the Retrier does this automatically.
func Retriable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
