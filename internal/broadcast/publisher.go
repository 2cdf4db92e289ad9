package broadcast

import (
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"github.com/tari-project/pubsub/broadcast"
	"github.com/tari-project/pubsub/closer"
)

type publisher[Msg any] struct {
	closer.Closer
	id      uuid.UUID
	channel *Channel[Msg]
	feed    chan Msg
}

func makePublisher[Msg any](ch *Channel[Msg]) broadcast.Publisher[Msg] {
	feed := startPublisher(ch)
	res := &publisher[Msg]{
		id:      uuid.New(),
		channel: ch,
		feed:    feed,
		Closer: makeCloser(func() {
			close(feed)
		}),
	}
	runtime.SetFinalizer(res, publisherDebugFinalizer[Msg])
	return res
}

func (p *publisher[Msg]) Send() chan<- Msg {
	return p.feed
}

// startPublisher registers a publisher with the Channel and starts the
// goroutine that moves messages from the feed channel into the log, blocking
// in put while the Channel is at capacity. The publisher is released only
// after the feed is fully drained, guaranteeing that every accepted message
// is stored before the Channel can complete
func startPublisher[Msg any](ch *Channel[Msg]) chan Msg {
	feed := make(chan Msg)
	ch.acquirePublisher()
	go func() {
		defer func() {
			// probably because the feed channel was closed
			recover()
		}()
		defer ch.releasePublisher()
		for m := range feed {
			ch.put(m)
		}
	}()
	return feed
}

func publisherDebugFinalizer[Msg any](p *publisher[Msg]) {
	select {
	case <-p.IsClosed():
	default:
		slog.Debug("publisher not closed before garbage collection",
			"id", p.id, "label", p.channel.Label())
	}
}
