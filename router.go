package gateway

import (
	"fmt"
	"sync"
)

// route is one typed handler registered at run time.
type route struct {
	name   string
	invoke invoker
}

// anyRoute is a catch-all or unknown-event handler. filter is nil for
// handlers that see every event.
type anyRoute struct {
	name    string
	filter  Filter
	handler AnyHandler
}

// Router holds handlers registered at run time, keyed by event kind.
//
// Usage:
//  1. Create a router with NewRouter
//  2. Register handlers with Register, RegisterOnce, RegisterAny and
//     RegisterUnknown
//  3. Hand the router to NewDispatcher
//
// Router is safe for concurrent use. Handlers may register further handlers
// while they run; a registration made during a dispatch is seen from the
// next event on.
type Router struct {
	mu      sync.RWMutex
	routes  map[Kind][]route
	any     []anyRoute
	unknown []anyRoute

	// onceMu guards once. A bucket is taken and cleared in one critical
	// section so two dispatches of the same kind cannot both run it.
	onceMu sync.Mutex
	once   map[Kind][]route
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[Kind][]route),
		once:   make(map[Kind][]route),
	}
}

// Register adds a persistent handler for kind. Registering the same handler
// twice is allowed; every registration fires, in registration order.
//
// This is a package-level function (not a method) due to Go generics limitations:
// methods cannot have type parameters independent of the receiver.
//
// Example:
//
//	gateway.Register(r, gateway.MessageCreate, &PingHandler{rest: rest})
func Register[T any](r *Router, kind Kind, h Handler[T]) {
	rt := route{name: kind.String(), invoke: newInvoker(h)}

	r.mu.Lock()
	r.routes[kind] = append(r.routes[kind], rt)
	r.mu.Unlock()
}

// RegisterFunc is a convenience function for registering a handler function.
//
// Example:
//
//	gateway.RegisterFunc(r, gateway.Ready, func(c *gateway.Context, p model.Ready) error {
//	    c.Logger().Info().Str("session", p.SessionID).Msg("ready")
//	    return nil
//	})
func RegisterFunc[T any](r *Router, kind Kind, fn func(c *Context, payload T) error) {
	Register(r, kind, HandlerFunc[T](fn))
}

// RegisterOnce adds a handler that fires for the next event of kind and is
// then removed. It is removed when the event is dispatched, whether or not
// its payload decodes.
func RegisterOnce[T any](r *Router, kind Kind, h Handler[T]) {
	rt := route{name: kind.String() + " (once)", invoke: newInvoker(h)}

	r.onceMu.Lock()
	r.once[kind] = append(r.once[kind], rt)
	r.onceMu.Unlock()
}

// RegisterOnceFunc is a convenience function for registering a one-shot
// handler function.
func RegisterOnceFunc[T any](r *Router, kind Kind, fn func(c *Context, payload T) error) {
	RegisterOnce(r, kind, HandlerFunc[T](fn))
}

// RegisterAny adds a handler called for every dispatched event, before any
// kind-specific handler. It receives only the Context.
func (r *Router) RegisterAny(h AnyHandler) {
	r.RegisterAnyWhen(nil, h)
}

// RegisterAnyFunc is a convenience wrapper around RegisterAny.
func (r *Router) RegisterAnyFunc(fn func(c *Context) error) {
	r.RegisterAny(AnyHandlerFunc(fn))
}

// RegisterAnyWhen adds a catch-all handler that only runs for events the
// filter matches. A nil filter matches everything.
//
// Example:
//
//	r.RegisterAnyWhen(gateway.OfKind(gateway.GuildCreate, gateway.GuildDelete), auditor)
func (r *Router) RegisterAnyWhen(f Filter, h AnyHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.any = append(r.any, anyRoute{
		name:    fmt.Sprintf("any#%d", len(r.any)),
		filter:  f,
		handler: h,
	})
}

// RegisterUnknown adds a handler called only for events that no one-shot,
// persistent or static handler matched.
func (r *Router) RegisterUnknown(h AnyHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unknown = append(r.unknown, anyRoute{
		name:    fmt.Sprintf("unknown#%d", len(r.unknown)),
		handler: h,
	})
}

// RegisterUnknownFunc is a convenience wrapper around RegisterUnknown.
func (r *Router) RegisterUnknownFunc(fn func(c *Context) error) {
	r.RegisterUnknown(AnyHandlerFunc(fn))
}

// Routes returns the number of persistent handlers for kind.
func (r *Router) Routes(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes[kind])
}

// Pending returns the number of one-shot handlers waiting for kind.
func (r *Router) Pending(kind Kind) int {
	r.onceMu.Lock()
	defer r.onceMu.Unlock()
	return len(r.once[kind])
}

// The accessors below return snapshots. Appends made after the snapshot is
// taken never write into the returned slice's visible range.

func (r *Router) anyRoutes() []anyRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.any
}

func (r *Router) unknownRoutes() []anyRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unknown
}

func (r *Router) persistent(kind Kind) []route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routes[kind]
}

// takeOnce removes and returns the whole one-shot bucket for kind.
func (r *Router) takeOnce(kind Kind) []route {
	r.onceMu.Lock()
	defer r.onceMu.Unlock()
	bucket := r.once[kind]
	delete(r.once, kind)
	return bucket
}
