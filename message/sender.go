package message

import (
	"errors"

	"github.com/tari-project/pubsub/closer"
)

type (
	// Sender is a type that is capable of accepting a Message via a channel
	Sender[Msg any] interface {
		Send() chan<- Msg
	}

	// ClosingSender is a Sender that is capable of being closed
	ClosingSender[Msg any] interface {
		closer.Closer
		Sender[Msg]
	}
)

var ErrSenderClosed = errors.New("sender closed")

// Send attempts to enqueue a message, blocking while the Sender's buffer is
// full, and reports whether the message was accepted. A false result means
// the Sender has been closed and will never accept another message
func Send[Msg any](s ClosingSender[Msg], m Msg) (sent bool) {
	defer func() {
		// a racing Close may have closed the send channel out from under us
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case <-s.IsClosed():
		return false
	case s.Send() <- m:
		return true
	}
}

// MustSend will send to a Sender or panic if it is closed
func MustSend[Msg any](s ClosingSender[Msg], m Msg) {
	if !Send(s, m) {
		panic(ErrSenderClosed)
	}
}
