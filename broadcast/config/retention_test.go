package config_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tari-project/pubsub"
	"github.com/tari-project/pubsub/broadcast/config"
	"github.com/tari-project/pubsub/broadcast/retention"
)

// recordingRetentionPolicy counts Retain calls and keeps everything
type recordingRetentionPolicy struct {
	calls atomic.Int32
}

func TestRetentionConflict(t *testing.T) {
	as := assert.New(t)

	defer func() {
		rec := recover()
		as.NotNil(rec)
		as.ErrorIs(rec.(error), config.ErrRetentionPolicyAlreadySet)
	}()

	pubsub.NewBroadcast[any](config.Timed(5*time.Second), config.Counted(10))
}

func TestRetentionPolicyOption(t *testing.T) {
	as := assert.New(t)

	p := &recordingRetentionPolicy{}
	ch := pubsub.NewBroadcast[any](
		config.RetentionPolicy(p),
		config.SegmentIncrement(1),
	)
	pub := ch.NewPublisher()
	defer pub.Close()

	// filling a segment triggers a vacuum sweep, which consults the policy
	for i := 0; i < 8; i++ {
		pub.Send() <- i
	}

	as.Eventually(func() bool {
		return p.calls.Load() > 0
	}, time.Second, 10*time.Millisecond)
}

func (*recordingRetentionPolicy) InitialState() retention.State {
	return nil
}

func (p *recordingRetentionPolicy) Retain(
	s retention.State, _ *retention.Statistics,
) (retention.State, bool) {
	p.calls.Add(1)
	return s, true
}
