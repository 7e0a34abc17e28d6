// Package gateway turns Discord Gateway frames into typed handler calls.
//
// Raw frames are parsed into an Envelope, narrowed to a dispatch Event, and
// delivered by a Dispatcher to handlers from two sources: a Router populated
// at run time, and a frozen Registry of handlers declared up front. Payloads
// stay raw until a handler asks for them, so each handler decodes its own
// projection of the data and one handler's bad payload never blocks another.
//
// # Quick Start
//
// Declare handlers and build a dispatcher:
//
//	func onPing(c *gateway.Context, m model.Message) error {
//	    if m.Content != "!ping" {
//	        return nil
//	    }
//	    bot, _ := gateway.StateAs[*Bot](c)
//	    return bot.Reply(c, m.ChannelID, "pong")
//	}
//
//	var Handlers = []gateway.Entry{
//	    gateway.On(gateway.MessageCreate, "ping", onPing),
//	}
//
//	r := gateway.NewRouter()
//	d := gateway.NewDispatcher(r, gateway.NewRegistry(Handlers...), gateway.WithState(bot))
//
//	// For every frame read from the websocket
//	d.DispatchRaw(ctx, frame)
//
// # Decoding
//
// ParseEnvelope reads op, s, t and d with gjson without decoding the payload.
// Decode then keeps only dispatch frames (op 0) that name a known event.
// Everything else - heartbeat acks, hello, events added to the gateway after
// this library - is dropped silently. Malformed JSON is logged as a warning
// and the frame is dropped.
//
// # Static Handlers
//
// Go has no link-time collection, so static handlers are plain Entry values
// built with On, OnHandler and OnEvent and frozen into a Registry before the
// dispatcher starts:
//
//	reg := gateway.NewRegistryBuilder().
//	    Add(moderation.Handlers...).
//	    Add(music.Handlers...).
//	    Freeze()
//
// A Registry is immutable and needs no locking.
//
// # Run-time Handlers
//
// The Router accepts handlers while the program runs:
//
//   - Register / RegisterFunc: persistent, fire for every event of the kind
//   - RegisterOnce / RegisterOnceFunc: fire for the next event of the kind only
//   - RegisterAny / RegisterAnyWhen: fire for every event, payload not decoded
//   - RegisterUnknown: fire only when nothing else matched the event
//
// # Delivery Order
//
// For each event the Dispatcher runs catch-all handlers, then the one-shot
// bucket for the kind (taken and cleared atomically before any of it runs),
// then persistent handlers, then static entries, and finally unknown-event
// handlers if none of the previous three matched. Handlers of one event run
// one at a time, each to completion.
//
// # Hooks
//
// Hooks observe the dispatch without changing it:
//
//	d := gateway.NewDispatcher(r, reg,
//	    gateway.WithOnSuccess(func(c *gateway.Context, handler string, d time.Duration) {
//	        metrics.Timing("gateway.handler", d, "handler:"+handler)
//	    }),
//	    gateway.WithOnDecodeError(func(c *gateway.Context, handler string, err error) {
//	        metrics.Incr("gateway.decode_error", "kind:"+c.Kind().String())
//	    }),
//	)
//
// # Error Handling
//
// Nothing in a dispatch propagates back to the frame source. A payload that
// does not decode into a handler's type (or fails its Validate method) skips
// that handler with a warning. A handler error is logged and reported to
// OnFailure. A panicking handler is recovered into a PanicError. In all cases
// the remaining handlers still run.
//
// # Thread Safety
//
// Router, Registry and Dispatcher are safe for concurrent use. Frames may be
// dispatched concurrently; ordering is only guaranteed among the handlers of
// one frame.
package gateway
