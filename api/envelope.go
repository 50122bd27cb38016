package api

import (
	"encoding/json"

	"github.com/ledgerline/ledgerline-go/internal/errors"
)

// envelope is the backend's uniform response wrapper: success responses carry
// a data object, failures carry an error object with a message.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *envelopeError  `json:"error"`
}

type envelopeError struct {
	Message string `json:"message"`
}

// decodeInto decodes a resolved response (status in [200,500)) once at the
// boundary. 2xx responses unmarshal their data object into out; anything else
// becomes a typed *Error built from the envelope, with a generic fallback
// message when the body carries none.
func decodeInto(status int, body []byte, out any) error {
	if status >= 200 && status < 300 {
		if out == nil || len(body) == 0 {
			return nil
		}
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return errors.Wrapf(err, "api.decodeInto envelope")
		}
		if len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "api.decodeInto data")
		}
		return nil
	}

	message := "Request failed"
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}
	return &Error{Status: status, Message: message}
}
