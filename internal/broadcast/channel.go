package broadcast

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tari-project/pubsub/broadcast"
	"github.com/tari-project/pubsub/broadcast/config"
	"github.com/tari-project/pubsub/broadcast/retention"
	"github.com/tari-project/pubsub/closer"
	"github.com/tari-project/pubsub/internal/sync/channel"
)

type (
	// Channel is the internal implementation of a broadcast Channel: a
	// bounded multi-subscriber log in which every attached cursor advances
	// independently over the same published sequence
	Channel[Msg any] struct {
		closer.Closer
		config      *config.Config
		log         *log[Msg]
		cursors     *cursors[Msg]
		observers   *channelObservers
		vacuumReady *channel.ReadyWait
		spaceReady  *channel.ReadyWait
		completed   closer.Closer
		publishers  atomic.Int32
	}

	// channelObservers manages a set of callbacks interested in the arrival
	// of new entries
	channelObservers struct {
		callbacks map[uuid.UUID]func()
		mu        sync.RWMutex
	}
)

// Make instantiates a new internal Channel instance, panicking if any of the
// provided Options is invalid
func Make[Msg any](o ...config.Option) broadcast.Channel[Msg] {
	cfg, err := config.Apply(o...)
	if err != nil {
		panic(err)
	}
	ch := &Channel[Msg]{
		config:      cfg,
		cursors:     makeCursors[Msg](),
		observers:   makeChannelObservers(),
		log:         makeLog[Msg](uint32(cfg.SegmentIncrement)),
		spaceReady:  channel.MakeReadyWait(),
		vacuumReady: channel.MakeReadyWait(),
		completed:   makeCloser(nil),
	}
	ch.Closer = makeCloser(func() {
		ch.vacuumReady.Close()
		ch.spaceReady.Close()
		ch.completed.Close()
	})
	ch.startVacuuming()
	return ch
}

// Length returns the total number of entries ever published to this Channel
func (ch *Channel[_]) Length() uint64 {
	return ch.log.length()
}

// Label returns the diagnostic label this Channel was constructed with
func (ch *Channel[_]) Label() string {
	return ch.config.Label
}

// NewPublisher instantiates a new Publisher for this Channel
func (ch *Channel[Msg]) NewPublisher() broadcast.Publisher[Msg] {
	return makePublisher(ch)
}

// NewSubscriber instantiates a new Subscriber, whose cursor starts at the
// earliest entry this Channel still buffers
func (ch *Channel[Msg]) NewSubscriber() broadcast.Subscriber[Msg] {
	return makeSubscriber(ch.makeCursor())
}

// get consumes an entry starting at the specified virtual offset. If the
// offset is no longer being retained, the next available offset is consumed.
// The offset actually read is returned
func (ch *Channel[Msg]) get(o uint64) (Msg, uint64, bool) {
	defer ch.vacuumReady.Notify()
	e, o, ok := ch.log.get(o)
	return e.msg, o, ok
}

// put appends the message to the log, suspending while a configured capacity
// bound would be exceeded. It reports false if the Channel was torn down
// before space became available
func (ch *Channel[Msg]) put(msg Msg) bool {
	if !ch.waitForSpace() {
		return false
	}
	ch.log.put(msg)
	ch.notifyObservers()
	return true
}

// waitForSpace blocks while the slowest attached cursor trails the log by
// the full capacity bound. An unbounded Channel, or one with no attached
// cursors, never blocks
func (ch *Channel[Msg]) waitForSpace() bool {
	capacity := ch.config.Capacity
	if capacity == 0 {
		return true
	}
	next := ch.config.BackoffGenerator()
	for {
		slowest, ok := ch.cursors.minOffset()
		if !ok || ch.log.length()-slowest < capacity {
			return true
		}
		var d time.Duration
		d, next = next()
		select {
		case <-ch.IsClosed():
			return false
		case <-ch.spaceReady.Wait():
		case <-time.After(d):
		}
	}
}

func (ch *Channel[_]) acquirePublisher() {
	ch.publishers.Add(1)
}

// releasePublisher completes the Channel once its last publisher has closed
// and drained. Completion is permanent: subscribers observe it after
// consuming whatever remains buffered
func (ch *Channel[_]) releasePublisher() {
	if ch.publishers.Add(-1) == 0 {
		ch.completed.Close()
		slog.Debug("channel completed", "label", ch.Label())
		ch.notifyObservers()
	}
}

// isCompleted returns whether every publisher has closed, meaning no further
// entries will ever arrive
func (ch *Channel[_]) isCompleted() bool {
	return closer.IsClosed(ch.completed)
}

func (ch *Channel[_]) startVacuuming() {
	vacuumID := uuid.New()
	ready := ch.vacuumReady
	ch.observers.add(vacuumID, ready.Notify)

	go func() {
		for {
			select {
			case <-ch.IsClosed():
				return
			case <-ready.Wait():
				if ch.log.canVacuum() {
					ch.vacuum()
				}
			}
		}
	}()
}

// vacuum sweeps reclaimable leading segments past the retention policy,
// stopping at the first segment the policy retains
func (ch *Channel[Msg]) vacuum() {
	policy := ch.config.RetentionPolicy
	state := policy.InitialState()
	stats := &retention.Statistics{
		CurrentTime: time.Now(),
		Log: &retention.LogStatistics{
			Length:        ch.log.length(),
			CursorOffsets: ch.cursors.offsets(),
		},
	}
	ch.log.vacuum(func(s *segment[Msg]) bool {
		first := ch.log.start()
		firstTS, lastTS := s.timestamps()
		stats.Entries = &retention.EntriesStatistics{
			FirstOffset:    first,
			LastOffset:     first + uint64(s.length()) - 1,
			FirstTimestamp: firstTS,
			LastTimestamp:  lastTS,
		}
		var retain bool
		state, retain = policy.Retain(state, stats)
		return retain
	})
}

func (ch *Channel[Msg]) makeCursor() *cursor[Msg] {
	c := makeCursor(ch)
	ch.cursors.track(c)
	ch.observers.add(c.id, c.ready.Notify)
	return c
}

func (ch *Channel[_]) notifyObservers() {
	ch.observers.notify()
}

func makeChannelObservers() *channelObservers {
	return &channelObservers{
		callbacks: map[uuid.UUID]func(){},
	}
}

func (o *channelObservers) add(i uuid.UUID, cb func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.callbacks[i] = cb
}

func (o *channelObservers) remove(i uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.callbacks, i)
}

func (o *channelObservers) notify() {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, cb := range o.callbacks {
		cb()
	}
}
