package feed

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Payload is one decoded upstream message or snapshot document.
type Payload map[string]any

// ErrNotObject is returned when a message does not decode to a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

var envelopeKeys = []string{"data", "payload", "snapshot"}

// DecodePayload parses raw message bytes. Objects double-encoded as JSON strings are unwrapped,
// as are data/payload envelopes; fields on the envelope itself are kept when the inner object lacks them.
func DecodePayload(raw []byte) (Payload, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if s, ok := value.(string); ok {
		if err := json.Unmarshal([]byte(s), &value); err != nil {
			return nil, fmt.Errorf("decode wrapped payload: %w", err)
		}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return unwrapEnvelope(obj), nil
}

func unwrapEnvelope(obj map[string]any) Payload {
	for _, key := range envelopeKeys {
		inner, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		out := make(Payload, len(inner)+len(obj))
		for k, v := range obj {
			if k != key {
				out[k] = v
			}
		}
		for k, v := range inner {
			out[k] = v
		}
		return out
	}
	return Payload(obj)
}
