package protocol

import (
	"encoding/json"
	"fmt"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encoding envelope without a type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encoding nil payload for type %q", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decoding empty envelope")
	}
	var e Envelope
	err := json.Unmarshal(b, &e)
	if err != nil {
		return Envelope{}, err
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("envelope missing type")
	}
	return e, nil
}

// DecodePayload unmarshals an envelope's payload into the event's concrete
// type. Payload shape must be checked before any state is mutated, so types
// carrying client input implement Validating and are checked here.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, err
	}
	if v, ok := any(out).(Validating); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("invalid %q payload: %w", env.T, err)
		}
	}
	return out, nil
}

// Validating is implemented by inbound payloads that carry required fields.
type Validating interface {
	Validate() error
}
