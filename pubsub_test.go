package pubsub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tari-project/pubsub"
)

type dummy struct {
	a int
	b string
}

func TestTopicPubSub(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, dummy](10)

	first := []pubsub.TopicPayload[string, dummy]{
		pubsub.NewTopicPayload("Topic1", dummy{a: 1, b: "one"}),
		pubsub.NewTopicPayload("Topic2", dummy{a: 2, b: "two"}),
		pubsub.NewTopicPayload("Topic1", dummy{a: 3, b: "three"}),
		pubsub.NewTopicPayload("Topic2", dummy{a: 4, b: "four"}),
		pubsub.NewTopicPayload("Topic1", dummy{a: 5, b: "five"}),
		pubsub.NewTopicPayload("Topic2", dummy{a: 6, b: "six"}),
		pubsub.NewTopicPayload("Topic1", dummy{a: 7, b: "seven"}),
	}
	for _, p := range first {
		pub.Send() <- p
	}

	sub1 := factory.GetSubscriptionFused("Topic1")

	var topic1a []dummy
	for {
		m, ok := sub1.Poll(100 * time.Millisecond)
		if !ok {
			break
		}
		topic1a = append(topic1a, m)
	}

	as.Len(topic1a, 4)
	as.Equal(1, topic1a[0].a)
	as.Equal(3, topic1a[1].a)
	as.Equal(5, topic1a[2].a)
	as.Equal(7, topic1a[3].a)
	as.False(sub1.IsExhausted())

	second := []pubsub.TopicPayload[string, dummy]{
		pubsub.NewTopicPayload("Topic1", dummy{a: 11, b: "one one"}),
		pubsub.NewTopicPayload("Topic2", dummy{a: 22, b: "two two"}),
		pubsub.NewTopicPayload("Topic1", dummy{a: 33, b: "three three"}),
	}
	for _, p := range second {
		pub.Send() <- p
	}
	pub.Close()

	var topic1b []dummy
	for m := range sub1.All() {
		topic1b = append(topic1b, m)
	}

	as.Len(topic1b, 2)
	as.Equal(11, topic1b[0].a)
	as.Equal(33, topic1b[1].a)
	as.True(sub1.IsExhausted())

	sub2 := factory.GetSubscriptionFused("Topic2")

	var topic2 []dummy
	for m := range sub2.All() {
		topic2 = append(topic2, m)
	}

	as.Len(topic2, 4)
	as.Equal(2, topic2[0].a)
	as.Equal(4, topic2[1].a)
	as.Equal(6, topic2[2].a)
	as.Equal(22, topic2[3].a)
	as.True(sub2.IsExhausted())
}

func TestPublish(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, int](8)
	sub := factory.GetSubscription("numbers")

	as.True(pubsub.Publish(pub, "numbers", 42))
	as.Equal(42, <-sub.Receive())

	pub.Close()
	as.False(pubsub.Publish(pub, "numbers", 43))
	sub.Close()
}

func TestNewWithLabel(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.NewWithLabel[string, string](4, "diagnostics")
	as.NotNil(pub)
	as.NotNil(factory)
	pub.Close()
}

func TestInvalidSize(t *testing.T) {
	as := assert.New(t)
	defer func() {
		as.Error(recover().(error))
	}()
	pubsub.New[string, int](0)
}
