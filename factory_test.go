package pubsub_test

import (
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tari-project/pubsub"
	"github.com/tari-project/pubsub/broadcast/config"
	"github.com/tari-project/pubsub/closer"
	testutil "github.com/tari-project/pubsub/internal/testing"
)

func collect[Msg any](s *pubsub.FusedSubscription[Msg]) []Msg {
	var res []Msg
	for m := range s.All() {
		res = append(res, m)
	}
	return res
}

func TestOrderPreservation(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, int](16)
	for _, p := range []struct {
		topic string
		value int
	}{
		{"A", 1}, {"B", 1}, {"A", 2}, {"B", 2}, {"A", 3},
	} {
		pubsub.Publish(pub, p.topic, p.value)
	}
	pub.Close()

	as.Equal([]int{1, 2, 3}, collect(factory.GetSubscriptionFused("A")))
	as.Equal([]int{1, 2}, collect(factory.GetSubscriptionFused("B")))
}

func TestIndependence(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, int](16)
	sub1 := factory.GetSubscriptionFused("evens")
	sub2 := factory.GetSubscriptionFused("evens")

	for i := 1; i <= 8; i++ {
		topic := "odds"
		if i%2 == 0 {
			topic = "evens"
		}
		pubsub.Publish(pub, topic, i)
	}
	pub.Close()

	// fully consuming one subscription leaves the other untouched
	as.Equal([]int{2, 4, 6, 8}, collect(sub1))
	as.Equal([]int{2, 4, 6, 8}, collect(sub2))
}

func TestLateSubscriberIsolation(t *testing.T) {
	as := assert.New(t)

	ch := pubsub.NewBroadcast[pubsub.TopicPayload[string, int]](
		config.Capacity(4),
		config.SegmentIncrement(2),
		config.Label("isolation"),
	)
	pub := ch.NewPublisher()
	factory := pubsub.NewTopicSubscriptionFactory(ch)

	early := factory.GetSubscription("T")
	for i := 1; i <= 4; i++ {
		pubsub.Publish(pub, "T", i)
	}
	for i := 1; i <= 4; i++ {
		as.Equal(i, <-early.Receive())
	}
	for i := 5; i <= 8; i++ {
		pubsub.Publish(pub, "T", i)
	}
	for i := 5; i <= 8; i++ {
		as.Equal(i, <-early.Receive())
	}

	// give the vacuum a chance to reclaim everything beyond the bound
	time.Sleep(50 * time.Millisecond)
	pub.Close()

	// the late subscriber only observes what the transport still buffers
	late := collect(factory.GetSubscriptionFused("T"))
	as.Equal([]int{5, 6, 7, 8}, late)
	early.Close()
}

func TestFusedTermination(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, string](4)
	sub := factory.GetSubscriptionFused("done")
	pubsub.Publish(pub, "done", "only")
	pub.Close()

	m, ok := sub.Next()
	as.True(ok)
	as.Equal("only", m)

	for i := 0; i < 3; i++ {
		_, ok = sub.Next()
		as.False(ok)
		as.True(sub.IsExhausted())
	}
}

func TestSubscriptionAbandoned(t *testing.T) {
	as := assert.New(t)

	pub, factory := pubsub.New[string, int](4)
	defer pub.Close()
	sub := factory.GetSubscription("T")
	pubsub.Publish(pub, "T", 1)
	as.Equal(1, <-sub.Receive())

	sub.Close()
	as.True(closer.IsClosed(sub))

	_, ok := <-sub.Receive()
	as.False(ok)
}

func TestSubscriptionGC(t *testing.T) {
	as := assert.New(t)

	h := testutil.NewTestSlogHandler()
	oldHandler := slog.Default()
	slog.SetDefault(slog.New(h))
	defer slog.SetDefault(oldHandler)

	pub, factory := pubsub.New[string, int](4)
	defer pub.Close()
	factory.GetSubscription("T")
	runtime.GC()
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	select {
	case r := <-h.Logs:
		as.Contains(r.Message, "not closed")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debug log")
	}
}
