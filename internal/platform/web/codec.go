package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Envelope is a decoded message: its type and still-encoded payload.
type Envelope struct {
	T string
	P []byte
}

// Codec encodes envelopes for one connection.
// Both codecs use the same {t, p} shape.
type Codec interface {
	Name() string
	// MessageType is the WebSocket frame type the codec writes.
	MessageType() int
	Encode(t string, payload any) ([]byte, error)
	Decode(b []byte) (Envelope, error)
	Unmarshal(p []byte, v any) error
}

// CodecFor returns the codec named by the ?codec= query value.
// Anything but "msgpack" selects JSON.
func CodecFor(name string) Codec {
	if name == "msgpack" {
		return msgpackCodec{}
	}
	return jsonCodec{}
}

// DecodePayload decodes an envelope's payload into T.
func DecodePayload[T any](c Codec, env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("web: empty payload for %q", env.T)
	}
	if err := c.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("web: bad %q payload: %w", env.T, err)
	}
	return out, nil
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return "json" }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("web: empty message type")
	}
	e := jsonEnvelope{T: t}
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		e.P = pb
	}
	return json.Marshal(e)
}

func (jsonCodec) Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("web: empty message")
	}
	var e jsonEnvelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (jsonCodec) Unmarshal(p []byte, v any) error {
	return json.Unmarshal(p, v)
}

type msgpackEnvelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p,omitempty"`
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string     { return "msgpack" }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("web: empty message type")
	}
	e := msgpackEnvelope{T: t}
	if payload != nil {
		pb, err := msgpack.Marshal(payload)
		if err != nil {
			return nil, err
		}
		e.P = pb
	}
	return msgpack.Marshal(&e)
}

func (msgpackCodec) Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("web: empty message")
	}
	var e msgpackEnvelope
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (msgpackCodec) Unmarshal(p []byte, v any) error {
	return msgpack.Unmarshal(p, v)
}
