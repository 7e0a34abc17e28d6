package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameFor(kind Kind, seq int) []byte {
	return fmt.Appendf(nil, `{"op":0,"s":%d,"t":%q,"d":{"value":"%d"}}`, seq, kind.String(), seq)
}

func TestDispatcher_Serve(t *testing.T) {
	t.Run("dispatches in order until the channel closes", func(t *testing.T) {
		r := NewRouter()
		var seqs []int64
		RegisterFunc(r, MessageCreate, func(c *Context, _ testPayload) error {
			seqs = append(seqs, c.Sequence())
			return nil
		})
		d := NewDispatcher(r, nil)

		frames := make(chan []byte, 8)
		for i := 1; i <= 5; i++ {
			frames <- frameFor(MessageCreate, i)
		}
		frames <- []byte(`{"op":11}`)
		close(frames)

		err := d.Serve(context.Background(), frames)

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, seqs)
	})

	t.Run("returns the context error on cancellation", func(t *testing.T) {
		d := NewDispatcher(nil, nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- d.Serve(ctx, make(chan []byte)) }()
		cancel()

		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
	})

	t.Run("concurrent dispatch handles every frame", func(t *testing.T) {
		r := NewRouter()
		var n atomic.Int64
		var inFlight, peak atomic.Int32
		RegisterFunc(r, MessageCreate, func(*Context, testPayload) error {
			cur := inFlight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
			n.Add(1)
			return nil
		})
		d := NewDispatcher(r, nil, WithConcurrency(4))

		frames := make(chan []byte, 100)
		for i := range 100 {
			frames <- frameFor(MessageCreate, i)
		}
		close(frames)

		require.NoError(t, d.Serve(context.Background(), frames))
		assert.Equal(t, int64(100), n.Load())
		assert.LessOrEqual(t, peak.Load(), int32(4))
	})

	t.Run("concurrency below one is treated as one", func(t *testing.T) {
		d := NewDispatcher(nil, nil, WithConcurrency(0))
		assert.Equal(t, 1, d.concurrency)
	})
}

func TestNewDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(nil, nil)

	require.NotNil(t, d.Router())
	assert.Equal(t, 0, d.registry.Len())
	assert.Nil(t, d.state)

	r := NewRouter()
	assert.Same(t, r, NewDispatcher(r, nil).Router())
}

func TestStateAs(t *testing.T) {
	type session struct{ id string }
	c := newContext(context.Background(), &session{id: "s1"}, event(Ready, 1, `{}`), zerolog.Nop())

	s, ok := StateAs[*session](c)
	require.True(t, ok)
	assert.Equal(t, "s1", s.id)

	_, ok = StateAs[string](c)
	assert.False(t, ok)
}

func TestContext_LoggerCarriesEventFields(t *testing.T) {
	log, buf := testLogger()
	r := NewRouter()
	r.RegisterAnyFunc(func(c *Context) error {
		c.Logger().Info().Msg("from handler")
		return nil
	})
	d := NewDispatcher(r, nil, WithLogger(log))

	d.Dispatch(context.Background(), &Event{ID: "evt-1", Kind: GuildCreate, Sequence: 12})

	out := buf.String()
	assert.Contains(t, out, `"event_id":"evt-1"`)
	assert.Contains(t, out, `"kind":"GUILD_CREATE"`)
	assert.Contains(t, out, `"seq":12`)
	assert.Contains(t, out, `"handler":"any#0"`)
}

