package pubsub

import (
	"github.com/tari-project/pubsub/broadcast"
	"github.com/tari-project/pubsub/broadcast/config"
	"github.com/tari-project/pubsub/message"

	internal "github.com/tari-project/pubsub/internal/broadcast"
)

type (
	// TopicPublisher is the sending end of a topic-based pub-sub channel
	TopicPublisher[Topic comparable, Msg any] broadcast.Publisher[TopicPayload[Topic, Msg]]

	// TopicSubscriber is an unfiltered receiving end of a topic-based
	// pub-sub channel
	TopicSubscriber[Topic comparable, Msg any] broadcast.Subscriber[TopicPayload[Topic, Msg]]
)

// DefaultLabel is the diagnostic label applied by New
const DefaultLabel = "pubsub"

// New creates a topic-based pub-sub channel buffering up to size payloads,
// returning the publisher side of the channel and a TopicSubscriptionFactory
// that can produce any number of filtered subscriptions. The channel is
// labeled with DefaultLabel
func New[Topic comparable, Msg any](size int) (
	TopicPublisher[Topic, Msg], *TopicSubscriptionFactory[Topic, Msg],
) {
	return NewWithLabel[Topic, Msg](size, DefaultLabel)
}

// NewWithLabel creates a topic-based pub-sub channel buffering up to size
// payloads. The label identifies the channel in debug logging, which makes
// tracing simpler; it never influences delivery. An invalid size panics with
// config.ErrInvalidCapacity
func NewWithLabel[Topic comparable, Msg any](size int, label string) (
	TopicPublisher[Topic, Msg], *TopicSubscriptionFactory[Topic, Msg],
) {
	ch := NewBroadcast[TopicPayload[Topic, Msg]](
		config.Capacity(size),
		config.Label(label),
	)
	return ch.NewPublisher(), NewTopicSubscriptionFactory(ch)
}

// NewBroadcast creates the raw broadcast transport that topic-based channels
// are layered over. Most callers want New instead
func NewBroadcast[Msg any](o ...config.Option) broadcast.Channel[Msg] {
	return internal.Make[Msg](o...)
}

// Publish wraps topic and msg in a TopicPayload and sends it, blocking while
// the channel is at capacity. It reports false if the publisher is closed
func Publish[Topic comparable, Msg any](
	p TopicPublisher[Topic, Msg], topic Topic, msg Msg,
) bool {
	return message.Send(p, NewTopicPayload(topic, msg))
}
