package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEnvelope indicates a response body that matches none of the
// tolerated shapes. Malformed payloads fail loudly instead of being coerced.
var ErrMalformedEnvelope = errors.New("malformed response envelope")

// envelope mirrors the platform API's response wrapper. Endpoints are
// inconsistent about it: some return {data: T}, some {success, data|error},
// some the bare payload.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// decodeEnvelope unwraps a response body into out, tolerating the three
// wrapper shapes above. An explicit success=false is surfaced as a
// RejectionError carrying the envelope's message.
func decodeEnvelope(raw []byte, status int, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		if out == nil {
			return nil
		}
		return fmt.Errorf("%w: empty body", ErrMalformedEnvelope)
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil {
		if env.Success != nil && !*env.Success {
			return &RejectionError{Status: status, Message: messageFrom(env)}
		}
		if env.Data != nil {
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
			}
			return nil
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return nil
}

// errorMessage extracts the most specific failure text from an error body.
// Empty when the body carries none; callers apply their own fallback.
func errorMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(raw), &env); err != nil {
		return ""
	}
	return messageFrom(env)
}

func messageFrom(env envelope) string {
	if env.Error != nil {
		var text string
		if err := json.Unmarshal(env.Error, &text); err == nil && text != "" {
			return text
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return env.Message
}
