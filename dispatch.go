package gateway

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Dispatcher delivers decoded events to the handlers of a Router and a
// static Registry in a fixed order.
//
// Dispatcher is safe for concurrent use. Each event's handlers run one after
// another; separate events may be dispatched concurrently.
type Dispatcher struct {
	router      *Router
	registry    *Registry
	state       any
	log         zerolog.Logger
	concurrency int
	hooks       hooks
}

// NewDispatcher creates a Dispatcher over a router and a frozen registry.
// Either may be nil.
//
// By default the dispatcher logs through zerolog's global logger. Use
// WithLogger to override.
//
// Example:
//
//	d := gateway.NewDispatcher(router, gateway.NewRegistry(handlers.All...),
//	    gateway.WithState(bot),
//	    gateway.WithLogger(logger),
//	)
func NewDispatcher(router *Router, registry *Registry, opts ...Option) *Dispatcher {
	if router == nil {
		router = NewRouter()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Dispatcher{
		router:      router,
		registry:    registry,
		log:         log.Logger,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithState sets the shared client state exposed by Context.State.
func WithState(state any) Option {
	return func(d *Dispatcher) {
		d.state = state
	}
}

// WithLogger sets the logger used for dispatch diagnostics and handed to
// handlers through Context.Logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithConcurrency sets how many frames Serve dispatches at once. Values
// below 1 are treated as 1. With more than one, frames are not delivered in
// order.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		if n < 1 {
			n = 1
		}
		d.concurrency = n
	}
}

// Router returns the router the dispatcher reads from.
func (d *Dispatcher) Router() *Router { return d.router }

// Dispatch delivers one event. The order is:
//  1. every catch-all handler, in registration order
//  2. the one-shot handlers for the kind, removed before any of them runs
//  3. the persistent handlers for the kind, in registration order
//  4. the static handlers for the kind, in declaration order
//  5. the unknown-event handlers, only if steps 2-4 found no handler
//
// Each handler runs to completion before the next starts. Decode failures,
// handler errors and panics are logged and reported to hooks; they never stop
// the remaining handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) {
	if ev.ID == "" {
		cp := *ev
		cp.ID = uuid.NewString()
		ev = &cp
	}
	l := d.log.With().
		Str("event_id", ev.ID).
		Stringer("kind", ev.Kind).
		Int64("seq", ev.Sequence).
		Logger()

	c := newContext(ctx, d.state, ev, l)
	l.Debug().Msg("dispatching event")
	for _, fn := range d.hooks.onDispatch {
		fn(c)
	}

	for _, ar := range d.router.anyRoutes() {
		if ar.filter != nil && !ar.filter.Match(ev) {
			continue
		}
		d.run(ctx, ev, l, ar.name, func(c *Context) error {
			return ar.handler.HandleAny(c)
		})
	}

	matched := false

	for _, rt := range d.router.takeOnce(ev.Kind) {
		matched = true
		d.run(ctx, ev, l, rt.name, bind(rt.invoke))
	}

	for _, rt := range d.router.persistent(ev.Kind) {
		matched = true
		d.run(ctx, ev, l, rt.name, bind(rt.invoke))
	}

	for e := range d.registry.Match(ev.Kind) {
		matched = true
		d.run(ctx, ev, l, e.Name, bind(e.invoke))
	}

	if matched {
		return
	}

	for _, fn := range d.hooks.onUnmatched {
		fn(c)
	}
	for _, ar := range d.router.unknownRoutes() {
		d.run(ctx, ev, l, ar.name, func(c *Context) error {
			return ar.handler.HandleAny(c)
		})
	}
}

// DispatchRaw parses, decodes and dispatches one raw frame. It reports
// whether the frame reached Dispatch.
//
// Malformed JSON is logged as a warning and the frame is dropped. Frames that
// are not dispatches, have no event name, or name an unknown event are
// dropped silently.
func (d *Dispatcher) DispatchRaw(ctx context.Context, raw []byte) bool {
	env, err := ParseEnvelope(raw)
	if err != nil {
		d.log.Warn().Err(err).Int("bytes", len(raw)).Msg("dropping malformed gateway frame")
		for _, fn := range d.hooks.onParseError {
			fn(ctx, raw, err)
		}
		return false
	}

	ev, ok := Decode(env)
	if !ok {
		return false
	}
	d.Dispatch(ctx, ev)
	return true
}

// Serve dispatches frames from a channel until it is closed or ctx is done.
// It returns nil after the channel closes and all in-flight dispatches have
// finished, or ctx.Err() on cancellation.
//
// Example:
//
//	frames := make(chan []byte, 64)
//	go session.Pump(ctx, frames)
//	if err := d.Serve(ctx, frames); err != nil && !errors.Is(err, context.Canceled) {
//	    return err
//	}
func (d *Dispatcher) Serve(ctx context.Context, frames <-chan []byte) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

loop:
	for {
		select {
		case <-gctx.Done():
			break loop
		case raw, ok := <-frames:
			if !ok {
				break loop
			}
			if d.concurrency == 1 {
				d.DispatchRaw(ctx, raw)
				continue
			}
			g.Go(func() error {
				d.DispatchRaw(ctx, raw)
				return nil
			})
		}
	}

	_ = g.Wait()
	return ctx.Err()
}

func bind(inv invoker) func(c *Context) error {
	return func(c *Context) error {
		return inv(c, c.Payload())
	}
}

// run invokes one handler with a fresh Context, isolating panics and
// reporting the outcome.
func (d *Dispatcher) run(ctx context.Context, ev *Event, l zerolog.Logger, name string, fn func(c *Context) error) {
	c := newContext(ctx, d.state, ev, l.With().Str("handler", name).Logger())

	start := time.Now()
	err := protect(c, fn)
	duration := time.Since(start)

	switch {
	case err == nil:
		for _, hook := range d.hooks.onSuccess {
			hook(c, name, duration)
		}
	case IsDecodeError(err):
		l.Warn().Err(err).Str("handler", name).Msg("skipping handler: payload does not match")
		for _, hook := range d.hooks.onDecodeError {
			hook(c, name, err)
		}
	default:
		var perr *PanicError
		if errors.As(err, &perr) {
			l.Error().Err(err).Str("handler", name).Str("stack", perr.Stack).Msg("handler panicked")
		} else {
			l.Warn().Err(err).Str("handler", name).Dur("duration", duration).Msg("handler failed")
		}
		for _, hook := range d.hooks.onFailure {
			hook(c, name, err, duration)
		}
	}
}

func protect(c *Context, fn func(c *Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()
	return fn(c)
}
