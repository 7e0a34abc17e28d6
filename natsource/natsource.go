// Package natsource feeds raw gateway frames published on a NATS subject into
// a gateway Dispatcher. It lets a shard process that owns the websocket
// publish frames while handlers run elsewhere.
package natsource

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/bjaus/gateway"
)

// Connect opens a NATS connection with reconnect handling logged to log.
func Connect(url, name string, log zerolog.Logger) (*nats.Conn, error) {
	log.Info().Str("url", url).Str("name", name).Msg("connecting to NATS")

	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// Option configures a Source.
type Option func(*Source)

// WithQueue joins a queue group so frames are spread across subscribers.
func WithQueue(group string) Option {
	return func(s *Source) {
		s.queue = group
	}
}

// WithBuffer sets the capacity of the channel between the subscription and
// the dispatcher.
func WithBuffer(n int) Option {
	return func(s *Source) {
		if n >= 0 {
			s.buffer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) {
		s.log = l
	}
}

// Source subscribes to one subject and dispatches every message body as a
// raw gateway frame.
type Source struct {
	nc      *nats.Conn
	subject string
	queue   string
	buffer  int
	d       *gateway.Dispatcher
	log     zerolog.Logger
}

// New creates a Source. Nothing is subscribed until Run.
func New(nc *nats.Conn, subject string, d *gateway.Dispatcher, opts ...Option) *Source {
	s := &Source{
		nc:      nc,
		subject: subject,
		buffer:  256,
		d:       d,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run subscribes and dispatches frames until ctx is done. It returns
// ctx.Err() on cancellation, or an error if the subscription fails.
func (s *Source) Run(ctx context.Context) error {
	msgs := make(chan *nats.Msg, s.buffer)

	var (
		sub *nats.Subscription
		err error
	)
	if s.queue != "" {
		sub, err = s.nc.ChanQueueSubscribe(s.subject, s.queue, msgs)
	} else {
		sub, err = s.nc.ChanSubscribe(s.subject, msgs)
	}
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			s.log.Warn().Err(err).Str("subject", s.subject).Msg("unsubscribe failed")
		}
	}()

	s.log.Info().Str("subject", s.subject).Str("queue", s.queue).Msg("subscribed to gateway frames")

	frames := make(chan []byte)
	go func() {
		defer close(frames)
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-msgs:
				select {
				case frames <- m.Data:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return s.d.Serve(ctx, frames)
}
