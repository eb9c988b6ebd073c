package futures

import (
	"encoding/json"
	"net/http"
	"time"
)

// DefaultRetryAfter is the wait reported by RateLimitError when the
// exchange does not send a Retry-After header.
const DefaultRetryAfter = time.Second

// Envelope codes the exchange uses for failures the taxonomy singles out.
// 602 is the web-signature verification failure; a rejected signature means
// the WEB token itself is stale, so it classifies as an authentication
// error.
const (
	codeUnauthorized = 401
	codeTokenExpired = 402
	codeSignatureBad = 602
	codeRateLimited  = 510
)

// Response wraps a decoded payload with the envelope's diagnostic code and
// message. The SDK does not mutate the value after returning it.
type Response[T any] struct {
	Code    int
	Message string
	Data    T
}

// envelope is the wire shape shared by every endpoint:
// {success, code, message?, data?}. Success is a pointer because a few
// public endpoints (contract depth) reply with the bare payload and no
// envelope at all.
type envelope struct {
	Success *bool           `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decode classifies a buffered response and coerces its payload into T.
//
// Classification is total and deterministic, in precedence order:
// HTTP 401 always means AuthenticationError, whatever the body says,
// because a rejected credential invalidates the whole response. HTTP 429
// means RateLimitError with the Retry-After header (or DefaultRetryAfter).
// Then the envelope is consulted: auth/signature failure codes,
// rate-limit code, success=false, and finally payload coercion, where any
// shape mismatch is a ValidationError rather than a silently wrong value.
//
// decode is a pure function of the rawResponse: interpreting the same
// response twice yields equal results.
func decode[T any](raw *rawResponse) (*Response[T], error) {
	if raw.status == http.StatusUnauthorized {
		return nil, &AuthenticationError{StatusCode: raw.status}
	}
	if raw.status == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAfter: raw.retryAfter(DefaultRetryAfter)}
	}

	var env envelope
	if err := json.Unmarshal(raw.body, &env); err != nil {
		return nil, &APIError{StatusCode: raw.status, RawBody: string(raw.body)}
	}

	if env.Success == nil {
		// Bare payload without an envelope (contract depth does this):
		// the whole body is the data.
		return coerce[T](0, "", raw.body)
	}

	switch env.Code {
	case codeUnauthorized, codeTokenExpired, codeSignatureBad:
		return nil, &AuthenticationError{StatusCode: raw.status, Code: env.Code, Message: env.Message}
	case codeRateLimited:
		return nil, &RateLimitError{RetryAfter: raw.retryAfter(DefaultRetryAfter), Message: env.Message}
	}

	if !*env.Success {
		return nil, &APIError{
			StatusCode: raw.status,
			Code:       env.Code,
			Message:    env.Message,
			RawBody:    string(raw.body),
		}
	}

	return coerce[T](env.Code, env.Message, env.Data)
}

// coerce unmarshals data into T, mapping shape mismatches to
// ValidationError so callers never receive a value that does not satisfy
// its declared schema.
func coerce[T any](code int, message string, data json.RawMessage) (*Response[T], error) {
	out := &Response[T]{Code: code, Message: message}

	if len(data) == 0 || string(data) == "null" {
		// Operations without a meaningful payload declare json.RawMessage
		// and accept an empty one; every other schema requires data.
		if _, ok := any(out.Data).(json.RawMessage); ok {
			return out, nil
		}
		return nil, &ValidationError{Field: "data", Message: "missing in successful response"}
	}

	if err := json.Unmarshal(data, &out.Data); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			field := typeErr.Field
			if field == "" {
				field = "data"
			}
			return nil, &ValidationError{Field: field, ExpectedType: typeErr.Type.String()}
		}
		return nil, &ValidationError{Field: "data", Message: err.Error()}
	}
	return out, nil
}
