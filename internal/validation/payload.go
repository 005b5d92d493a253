package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vitalog/vitalog/internal/models"
)

// ErrInvalidPayload marks a payload rejected before it reaches the
// outbox. Callers check it with errors.Is.
var ErrInvalidPayload = errors.New("invalid payload")

// MaxPayloadSize is the maximum serialized payload size in bytes
const MaxPayloadSize = 256 * 1024

// ValidatePayload checks the payload shape for the given entity kind.
// A failed validation is returned synchronously to the caller; nothing
// is stored or queued.
func ValidatePayload(kind models.Kind, payload json.RawMessage) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, kind)
	}

	if len(payload) == 0 {
		return fmt.Errorf("%w: payload cannot be empty", ErrInvalidPayload)
	}

	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidPayload, MaxPayloadSize)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return fmt.Errorf("%w: payload is not a JSON object: %v", ErrInvalidPayload, err)
	}

	switch kind {
	case models.KindProfile:
		return nil // Profile fields are free-form key/value pairs
	case models.KindWorkout:
		return requireString(fields, "name")
	case models.KindMeal:
		return requireString(fields, "name")
	case models.KindMeasurement:
		return requireNumber(fields, "value")
	}

	return nil
}

// requireString checks that the field exists and is a non-empty JSON string
func requireString(fields map[string]json.RawMessage, name string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing required field %q", ErrInvalidPayload, name)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("%w: field %q must be a string", ErrInvalidPayload, name)
	}

	if s == "" {
		return fmt.Errorf("%w: field %q cannot be empty", ErrInvalidPayload, name)
	}

	return nil
}

// requireNumber checks that the field exists and is a JSON number
func requireNumber(fields map[string]json.RawMessage, name string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing required field %q", ErrInvalidPayload, name)
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("%w: field %q must be a number", ErrInvalidPayload, name)
	}

	return nil
}
