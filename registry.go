package gateway

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"runtime"
)

// Entry is one statically declared handler: the kind it targets, a
// diagnostic name used in logs and metrics, and a shim that decodes the
// payload and calls the user function.
//
// Entries are plain values so they can be declared anywhere in a program and
// collected into a Registry at startup:
//
//	var Handlers = []gateway.Entry{
//	    gateway.On(gateway.MessageCreate, "ping", onPing),
//	    gateway.OnEvent(gateway.Resumed, "resumed", onResumed),
//	}
type Entry struct {
	Kind Kind
	Name string

	invoke invoker
}

// On declares a static handler for kind with a typed payload. If name is
// empty the function's symbol name is used.
func On[T any](kind Kind, name string, fn func(c *Context, payload T) error) Entry {
	return Entry{
		Kind:   kind,
		Name:   entryName(name, fn),
		invoke: newInvoker[T](HandlerFunc[T](fn)),
	}
}

// OnHandler declares a static handler backed by a Handler implementation.
func OnHandler[T any](kind Kind, name string, h Handler[T]) Entry {
	if name == "" {
		name = fmt.Sprintf("%T", h)
	}
	return Entry{Kind: kind, Name: name, invoke: newInvoker(h)}
}

// OnEvent declares a static handler that takes no payload. The payload is
// never decoded.
func OnEvent(kind Kind, name string, fn func(c *Context) error) Entry {
	return Entry{
		Kind: kind,
		Name: entryName(name, fn),
		invoke: func(c *Context, _ json.RawMessage) error {
			return fn(c)
		},
	}
}

func entryName(name string, fn any) string {
	if name != "" {
		return name
	}
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return "anonymous"
}

// RegistryBuilder collects entries before the dispatcher starts.
type RegistryBuilder struct {
	entries []Entry
}

// NewRegistryBuilder creates an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// Add appends entries in the given order. Entries without a shim (the zero
// Entry) are ignored.
func (b *RegistryBuilder) Add(entries ...Entry) *RegistryBuilder {
	for _, e := range entries {
		if e.invoke == nil {
			continue
		}
		b.entries = append(b.entries, e)
	}
	return b
}

// Freeze returns an immutable Registry holding a copy of the entries added so
// far. Entries added to the builder afterwards do not affect it.
func (b *RegistryBuilder) Freeze() *Registry {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return &Registry{entries: entries}
}

// Registry is a frozen table of static handlers. It is read-only and safe
// for concurrent use without locking.
type Registry struct {
	entries []Entry
}

// NewRegistry freezes the given entries into a Registry.
func NewRegistry(entries ...Entry) *Registry {
	return NewRegistryBuilder().Add(entries...).Freeze()
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Match yields the entries for kind in declaration order.
func (r *Registry) Match(kind Kind) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if r == nil {
			return
		}
		for _, e := range r.entries {
			if e.Kind != kind {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
