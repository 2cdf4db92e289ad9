package pubsub

import (
	"iter"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/tari-project/pubsub/broadcast"
	"github.com/tari-project/pubsub/closer"
)

type (
	// TopicSubscriptionFactory holds the subscriber side of a pub-sub
	// channel and produces filtered subscriptions on demand. The factory
	// owns no subscriber state of its own: every call to GetSubscription
	// attaches a brand-new, independently advancing cursor
	TopicSubscriptionFactory[Topic comparable, Msg any] struct {
		channel broadcast.Channel[TopicPayload[Topic, Msg]]
	}

	// Subscription is a single-consumer sequence of the messages published
	// under one topic, in publish order. Receiving blocks while the topic is
	// merely quiet; the channel is closed once the publisher side has closed
	// and everything buffered has been drained, or when the Subscription
	// itself is closed
	Subscription[Msg any] struct {
		closer.Closer
		channel chan Msg
	}

	// FusedSubscription is a Subscription that additionally surfaces its
	// terminal state, so a consumer can ask "permanently done?" without
	// conflating it with "nothing available right now"
	FusedSubscription[Msg any] struct {
		*Subscription[Msg]
		exhausted atomic.Bool
	}
)

// NewTopicSubscriptionFactory wraps the subscriber side of a broadcast
// channel carrying TopicPayloads. Most callers obtain a factory from New
// rather than constructing one directly
func NewTopicSubscriptionFactory[Topic comparable, Msg any](
	ch broadcast.Channel[TopicPayload[Topic, Msg]],
) *TopicSubscriptionFactory[Topic, Msg] {
	return &TopicSubscriptionFactory[Topic, Msg]{
		channel: ch,
	}
}

// GetSubscription attaches a fresh cursor to the underlying broadcast
// channel and returns a Subscription yielding only the messages whose topic
// equals the provided one. Payloads published under other topics are
// silently discarded as the cursor advances past them. Subscriptions are
// fully independent of one another, whether their topics match or not
func (f *TopicSubscriptionFactory[Topic, Msg]) GetSubscription(
	topic Topic,
) *Subscription[Msg] {
	return makeSubscription(f.channel.NewSubscriber(), topic)
}

// GetSubscriptionFused returns a fused version of the subscription so that
// consumers polling for completion don't need to track it themselves
func (f *TopicSubscriptionFactory[Topic, Msg]) GetSubscriptionFused(
	topic Topic,
) *FusedSubscription[Msg] {
	return f.GetSubscription(topic).Fuse()
}

func makeSubscription[Topic comparable, Msg any](
	sub broadcast.Subscriber[TopicPayload[Topic, Msg]], topic Topic,
) *Subscription[Msg] {
	out := make(chan Msg)
	go func() {
		defer close(out)
		for p := range sub.Receive() {
			if p.Topic() != topic {
				continue
			}
			select {
			case <-sub.IsClosed():
				return
			case out <- p.Message():
			}
		}
	}()
	res := &Subscription[Msg]{
		Closer:  sub,
		channel: out,
	}
	runtime.SetFinalizer(res, subscriptionDebugFinalizer[Msg])
	return res
}

// Receive returns the channel on which this Subscription's messages are
// delivered
func (s *Subscription[Msg]) Receive() <-chan Msg {
	return s.channel
}

// Fuse wraps this Subscription in a FusedSubscription. The result shares
// the Subscription's cursor; consume one or the other, not both
func (s *Subscription[Msg]) Fuse() *FusedSubscription[Msg] {
	return &FusedSubscription[Msg]{
		Subscription: s,
	}
}

// Next returns the next matching message, blocking until one arrives. Once
// it reports false, the subscription is exhausted and every subsequent call
// deterministically reports false again
func (s *FusedSubscription[Msg]) Next() (Msg, bool) {
	m, ok := <-s.Receive()
	if !ok {
		s.exhausted.Store(true)
	}
	return m, ok
}

// Poll waits up to the specified Duration for a matching message. A false
// result with IsExhausted false means nothing was available yet; with
// IsExhausted true the subscription is permanently done
func (s *FusedSubscription[Msg]) Poll(d time.Duration) (Msg, bool) {
	select {
	case <-time.After(d):
		var zero Msg
		return zero, false
	case m, ok := <-s.Receive():
		if !ok {
			s.exhausted.Store(true)
		}
		return m, ok
	}
}

// IsExhausted returns whether this subscription has reported its terminal
// state. Exhaustion is permanent
func (s *FusedSubscription[Msg]) IsExhausted() bool {
	return s.exhausted.Load()
}

// All returns an iterator over the remaining matching messages, terminating
// once the subscription is exhausted
func (s *FusedSubscription[Msg]) All() iter.Seq[Msg] {
	return func(yield func(Msg) bool) {
		for m := range s.Receive() {
			if !yield(m) {
				return
			}
		}
		s.exhausted.Store(true)
	}
}

func subscriptionDebugFinalizer[Msg any](s *Subscription[Msg]) {
	select {
	case <-s.IsClosed():
	default:
		slog.Debug("subscription not closed before garbage collection")
	}
}
