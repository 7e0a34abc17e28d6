package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Handler processes one event with a typed payload.
//
// The type parameter T is the payload type. The payload is decoded from the
// event's raw JSON for each handler separately, and validated if T
// implements Validate() error.
//
// Example:
//
//	type PingHandler struct {
//	    rest RESTClient
//	}
//
//	func (h *PingHandler) Handle(c *gateway.Context, m model.Message) error {
//	    if m.Content != "!ping" {
//	        return nil
//	    }
//	    return h.rest.Reply(c, m.ChannelID, "pong")
//	}
type Handler[T any] interface {
	Handle(c *Context, payload T) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc[T any] func(c *Context, payload T) error

// Handle implements the Handler interface.
func (f HandlerFunc[T]) Handle(c *Context, payload T) error {
	return f(c, payload)
}

// AnyHandler processes an event without decoding its payload. It is used for
// catch-all and unmatched-event handlers.
type AnyHandler interface {
	HandleAny(c *Context) error
}

// AnyHandlerFunc is a function adapter for AnyHandler.
type AnyHandlerFunc func(c *Context) error

// HandleAny implements the AnyHandler interface.
func (f AnyHandlerFunc) HandleAny(c *Context) error {
	return f(c)
}

// validatable is the interface for payload validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}

// invoker wraps a typed handler so handlers of different payload types can be
// stored side by side. Static entries and router routes share it.
type invoker func(c *Context, payload json.RawMessage) error

func newInvoker[T any](h Handler[T]) invoker {
	return func(c *Context, payload json.RawMessage) error {
		data, err := decodePayload[T](c.Kind(), payload)
		if err != nil {
			return err
		}
		return h.Handle(c, data)
	}
}

// decodePayload decodes raw into T. Kinds without a payload yield the zero T
// without touching raw.
func decodePayload[T any](kind Kind, raw json.RawMessage) (T, error) {
	var data T
	if !kind.HasPayload() {
		return data, nil
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, &decodeError{err: err}
	}

	if v, ok := any(data).(validatable); ok {
		if err := v.Validate(); err != nil {
			return data, &validationError{err: err}
		}
	} else if v, ok := any(&data).(validatable); ok {
		if err := v.Validate(); err != nil {
			return data, &validationError{err: err}
		}
	}
	return data, nil
}

// IsDecodeError reports whether err came from decoding or validating a
// handler's payload rather than from the handler itself.
func IsDecodeError(err error) bool {
	var derr *decodeError
	var verr *validationError
	return errors.As(err, &derr) || errors.As(err, &verr)
}

// decodeError wraps unmarshal errors so we can identify them.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode payload: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// validationError wraps validation errors so we can identify them.
type validationError struct {
	err error
}

func (e *validationError) Error() string { return "validate payload: " + e.err.Error() }
func (e *validationError) Unwrap() error { return e.err }

// PanicError is reported when a handler panics. The dispatch carries on with
// the next handler.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}
