package gateway

import (
	"context"
	"time"
)

// OnDispatchFunc is called once per dispatched event, before any handler.
type OnDispatchFunc func(c *Context)

// OnSuccessFunc is called after a handler returns nil.
type OnSuccessFunc func(c *Context, handler string, duration time.Duration)

// OnFailureFunc is called after a handler returns an error or panics.
type OnFailureFunc func(c *Context, handler string, err error, duration time.Duration)

// OnDecodeErrorFunc is called when a handler's payload cannot be decoded or
// fails validation. The handler is skipped.
type OnDecodeErrorFunc func(c *Context, handler string, err error)

// OnUnmatchedFunc is called when no one-shot, persistent or static handler
// matched the event, alongside the unknown-event handlers.
type OnUnmatchedFunc func(c *Context)

// OnParseErrorFunc is called when a raw frame cannot be parsed. The frame is
// dropped.
type OnParseErrorFunc func(ctx context.Context, raw []byte, err error)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch    []OnDispatchFunc
	onSuccess     []OnSuccessFunc
	onFailure     []OnFailureFunc
	onDecodeError []OnDecodeErrorFunc
	onUnmatched   []OnUnmatchedFunc
	onParseError  []OnParseErrorFunc
}

// WithOnDispatch adds a hook called once per event before handlers run.
// Multiple hooks are called in order.
//
// Example:
//
//	gateway.WithOnDispatch(func(c *gateway.Context) {
//	    c.Logger().Debug().Msg("dispatching")
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onDispatch = append(d.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after each handler that returns nil.
// Multiple hooks are called in order.
//
// Example:
//
//	gateway.WithOnSuccess(func(c *gateway.Context, handler string, d time.Duration) {
//	    metrics.Timing("gateway.handler", d, "handler:"+handler)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onSuccess = append(d.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after each handler that fails or panics.
// Multiple hooks are called in order.
func WithOnFailure(fn OnFailureFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onFailure = append(d.hooks.onFailure, fn)
	}
}

// WithOnDecodeError adds a hook called when a handler is skipped because its
// payload could not be decoded or validated.
func WithOnDecodeError(fn OnDecodeErrorFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onDecodeError = append(d.hooks.onDecodeError, fn)
	}
}

// WithOnUnmatched adds a hook called when an event matched no handler.
func WithOnUnmatched(fn OnUnmatchedFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onUnmatched = append(d.hooks.onUnmatched, fn)
	}
}

// WithOnParseError adds a hook called when a raw frame is malformed.
//
// Example:
//
//	gateway.WithOnParseError(func(ctx context.Context, raw []byte, err error) {
//	    deadLetters.Store(raw)
//	})
func WithOnParseError(fn OnParseErrorFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onParseError = append(d.hooks.onParseError, fn)
	}
}
