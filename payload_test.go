package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tari-project/pubsub"
)

func TestTopicPayload(t *testing.T) {
	as := assert.New(t)

	p := pubsub.NewTopicPayload("block-added", dummy{a: 9, b: "nine"})
	as.Equal("block-added", p.Topic())
	as.Equal(9, p.Message().a)
	as.Equal("nine", p.Message().b)
}

func TestTopicPayloadCopies(t *testing.T) {
	as := assert.New(t)

	m := dummy{a: 1, b: "one"}
	p := pubsub.NewTopicPayload(1, m)

	// the payload carries its own copy of the message
	m.a = 2
	as.Equal(1, p.Message().a)
}
