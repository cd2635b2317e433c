package protocol

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const maxMessageSize = 64 * 1024 // 64KB max message size

// Envelope is the wire form of every message: a tagged event name and an
// optional payload. One payload schema exists per event name.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode wraps the payload in an envelope for the given event and marshals it.
// A nil payload produces an envelope without a data field.
func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, errors.New("empty event name")
	}

	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %q payload: %w", event, err)
		}
		env.Data = data
	}

	out, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	if len(out) > maxMessageSize {
		return nil, fmt.Errorf("message size %d exceeds maximum %d bytes", len(out), maxMessageSize)
	}
	return out, nil
}

// Decode parses an envelope and returns the event name and raw payload.
// The payload is nil when the envelope carries no data field.
func Decode(data []byte) (string, json.RawMessage, error) {
	if len(data) > maxMessageSize {
		return "", nil, fmt.Errorf("message size %d exceeds maximum %d bytes", len(data), maxMessageSize)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, err
	}
	if env.Event == "" {
		return "", nil, errors.New("missing event name")
	}
	return env.Event, env.Data, nil
}
