package gateway

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Context is handed to every handler invocation. It carries the dispatch
// context.Context, the client state given to the Dispatcher, and the event
// being delivered.
//
// A fresh Context is built for each handler; the state and event behind it
// are shared, never copied, so handlers must not mutate them.
type Context struct {
	context.Context

	state any
	event *Event
	log   zerolog.Logger
}

func newContext(ctx context.Context, state any, ev *Event, log zerolog.Logger) *Context {
	return &Context{Context: ctx, state: state, event: ev, log: log}
}

// State returns the shared client state configured with WithState.
func (c *Context) State() any { return c.state }

// Event returns the event being dispatched.
func (c *Context) Event() *Event { return c.event }

// Kind returns the kind of the event being dispatched.
func (c *Context) Kind() Kind { return c.event.Kind }

// Sequence returns the gateway sequence number of the event.
func (c *Context) Sequence() int64 { return c.event.Sequence }

// Payload returns the undecoded event payload.
func (c *Context) Payload() json.RawMessage { return c.event.Payload }

// Logger returns the dispatcher logger annotated with the event id, kind and
// sequence.
func (c *Context) Logger() zerolog.Logger { return c.log }

// StateAs returns the client state asserted to S.
//
//	bot, ok := gateway.StateAs[*Bot](c)
func StateAs[S any](c *Context) (S, bool) {
	s, ok := c.state.(S)
	return s, ok
}
