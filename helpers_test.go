package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

type testPayload struct {
	Value string `json:"value"`
}

// recorder collects handler calls in order. Safe for concurrent use.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) anyFunc(label string) func(*Context) error {
	return func(*Context) error {
		r.add(label)
		return nil
	}
}

func testFuncFor[T any](r *recorder, label string) func(*Context, T) error {
	return func(*Context, T) error {
		r.add(label)
		return nil
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers, for capturing
// log output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger() (zerolog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return zerolog.New(buf).Level(zerolog.InfoLevel), buf
}

func event(kind Kind, seq int64, payload string) *Event {
	return &Event{ID: "test", Kind: kind, Sequence: seq, Payload: json.RawMessage(payload)}
}

func dispatchAll(d *Dispatcher, evs ...*Event) {
	for _, ev := range evs {
		d.Dispatch(context.Background(), ev)
	}
}
