package retention_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tari-project/pubsub"
	"github.com/tari-project/pubsub/broadcast/config"
	"github.com/tari-project/pubsub/broadcast/retention"
)

func TestPermanentPolicy(t *testing.T) {
	as := assert.New(t)
	p := retention.MakePermanentPolicy()
	as.NotNil(p)

	_, keep := p.Retain(p.InitialState(), &retention.Statistics{
		Log:     &retention.LogStatistics{Length: 1000},
		Entries: &retention.EntriesStatistics{LastOffset: 0},
	})
	as.True(keep)
}

func TestPermanent(t *testing.T) {
	as := assert.New(t)

	ch := pubsub.NewBroadcast[any](config.Permanent)
	p := ch.NewPublisher()

	for i := 0; i < 500; i++ {
		p.Send() <- i
	}

	done := make(chan bool)
	go func() {
		c := ch.NewSubscriber()
		for i := 0; i < 500; i++ {
			as.Equal(i, <-c.Receive())
		}
		c.Close()
		done <- true
	}()

	<-done
	p.Close()
}
