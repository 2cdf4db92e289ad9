package broadcast

import "github.com/tari-project/pubsub/message"

type (
	// Channel is a bounded multi-subscriber broadcast log. Every message
	// published to it is capable of being independently received by each
	// attached Subscriber
	Channel[Msg any] interface {
		// Length returns the total number of messages ever published
		Length() uint64

		// Label returns the diagnostic label attached at construction. It
		// never influences delivery
		Label() string

		// NewPublisher returns a new Publisher for this Channel
		NewPublisher() Publisher[Msg]

		// NewSubscriber returns a new Subscriber for this Channel. Each
		// Subscriber independently tracks its own position, starting at the
		// earliest message the Channel still buffers
		NewSubscriber() Subscriber[Msg]
	}

	// Publisher exposes a way to push messages to its associated Channel.
	// Closing the last Publisher completes the Channel: Subscribers drain
	// whatever remains buffered and then observe exhaustion
	Publisher[Msg any] message.ClosingSender[Msg]

	// Subscriber exposes a way to receive messages from its associated
	// Channel at the Subscriber's own pace
	Subscriber[Msg any] message.ClosingReceiver[Msg]
)
