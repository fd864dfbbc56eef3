package payload

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/securecookie"
)

const codecName = "payload"

// Codec serializes payload envelopes into opaque, HMAC-signed strings.
// Payloads travel through the messenger and come back on a later turn, so
// a payload that fails authentication is rejected before it can route
// anything.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec builds a codec keyed with the given secret. Payloads carried by
// the persistent menu live indefinitely, so encoded values never expire.
func NewCodec(secret []byte) *Codec {
	sc := securecookie.New(secret, nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(0)
	return &Codec{sc: sc}
}

// Encode wraps data in an Envelope for the given route and signs it.
// A nil data encodes a route-only payload.
func (c *Codec) Encode(route string, data any) (string, error) {
	env := Envelope{V: Version, Route: route}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("payload: marshal data: %w", err)
		}
		env.Data = raw
	}
	encoded, err := c.sc.Encode(codecName, env)
	if err != nil {
		return "", fmt.Errorf("payload: encode: %w", err)
	}
	return encoded, nil
}

// Decode authenticates and opens an encoded payload.
func (c *Codec) Decode(value string) (Envelope, error) {
	var env Envelope
	if err := c.sc.Decode(codecName, value, &env); err != nil {
		return Envelope{}, fmt.Errorf("payload: decode: %w", err)
	}
	if env.V != Version {
		return Envelope{}, fmt.Errorf("payload: unsupported version %d", env.V)
	}
	return env, nil
}
