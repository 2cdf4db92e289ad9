package broadcast

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/tari-project/pubsub/broadcast"
)

type subscriber[Msg any] struct {
	*cursor[Msg]
	id      uuid.UUID
	channel chan Msg
}

func makeSubscriber[Msg any](c *cursor[Msg]) broadcast.Subscriber[Msg] {
	res := &subscriber[Msg]{
		cursor:  c,
		id:      c.id,
		channel: startSubscriber(c),
	}
	runtime.SetFinalizer(res, subscriberDebugFinalizer[Msg])
	return res
}

func (s *subscriber[Msg]) Receive() <-chan Msg {
	return s.channel
}

// startSubscriber starts the goroutine that pulls entries past the cursor
// and offers them on the returned channel. The channel is closed when the
// subscriber itself is closed, or once the Channel has completed and the
// cursor is fully drained
func startSubscriber[Msg any](c *cursor[Msg]) chan Msg {
	ch := make(chan Msg)
	go func() {
		defer close(ch)
		next := c.channel.config.BackoffGenerator()
		for {
			select {
			case <-c.IsClosed():
				return
			default:
			}
			if e, ok := c.head(); ok {
				select {
				case <-c.IsClosed():
					return
				case ch <- e:
					c.advance()
				}
				next = c.channel.config.BackoffGenerator()
				continue
			}
			if c.channel.isCompleted() {
				// completion follows every put, so a miss observed after
				// completion means the cursor is drained for good
				if _, ok := c.head(); !ok {
					return
				}
				continue
			}
			var d time.Duration
			d, next = next()
			select {
			case <-c.IsClosed():
				return
			case <-c.channel.completed.IsClosed():
			case <-c.ready.Wait():
			case <-time.After(d):
			}
		}
	}()
	return ch
}

func subscriberDebugFinalizer[Msg any](s *subscriber[Msg]) {
	select {
	case <-s.IsClosed():
	default:
		slog.Debug("subscriber not closed before garbage collection",
			"id", s.id, "label", s.cursor.channel.Label())
	}
}
