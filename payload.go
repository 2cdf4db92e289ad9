package pubsub

// TopicPayload is the carrier for a message passed along a pub-sub channel.
// It pairs a Topic, which identifies the kind of message for routing, with
// the message itself. A TopicPayload is never mutated after construction
type TopicPayload[Topic comparable, Msg any] struct {
	topic   Topic
	message Msg
}

// NewTopicPayload returns an immutable pairing of topic and message
func NewTopicPayload[Topic comparable, Msg any](
	t Topic, m Msg,
) TopicPayload[Topic, Msg] {
	return TopicPayload[Topic, Msg]{
		topic:   t,
		message: m,
	}
}

// Topic returns the routing key this payload was published under
func (p TopicPayload[Topic, _]) Topic() Topic {
	return p.topic
}

// Message returns the message carried by this payload
func (p TopicPayload[_, Msg]) Message() Msg {
	return p.message
}
