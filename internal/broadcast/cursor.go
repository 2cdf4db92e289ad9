package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tari-project/pubsub/closer"
	"github.com/tari-project/pubsub/internal/sync/channel"
)

type (
	// cursors manages the set of cursors attached to a Channel
	cursors[Msg any] struct {
		sync.RWMutex
		cursors map[uuid.UUID]*cursor[Msg]
	}

	// cursor tracks one subscriber's position in the Channel's log. A fresh
	// cursor starts at the earliest offset the log still buffers
	cursor[Msg any] struct {
		closer.Closer
		id      uuid.UUID
		channel *Channel[Msg]
		ready   *channel.ReadyWait
		offset  uint64
	}
)

func makeCursor[Msg any](ch *Channel[Msg]) *cursor[Msg] {
	cID := uuid.New()
	ready := channel.MakeReadyWait()
	if ch.Length() != 0 {
		ready.Notify()
	}

	return &cursor[Msg]{
		id:      cID,
		channel: ch,
		ready:   ready,
		offset:  ch.log.start(),
		Closer: makeCloser(func() {
			ready.Close()
			ch.cursors.remove(cID)
			ch.observers.remove(cID)
			// the slowest cursor going away may unblock publishers
			ch.spaceReady.Notify()
		}),
	}
}

func (c *cursor[Msg]) head() (Msg, bool) {
	off := atomic.LoadUint64(&c.offset)
	if e, o, ok := c.channel.get(off); ok {
		atomic.StoreUint64(&c.offset, o)
		return e, true
	}
	var zero Msg
	return zero, false
}

func (c *cursor[_]) advance() {
	atomic.AddUint64(&c.offset, 1)
	c.channel.spaceReady.Notify()
}

func makeCursors[Msg any]() *cursors[Msg] {
	return &cursors[Msg]{
		cursors: map[uuid.UUID]*cursor[Msg]{},
	}
}

func (c *cursors[Msg]) track(cursor *cursor[Msg]) {
	c.Lock()
	defer c.Unlock()
	i := cursor.id
	if _, ok := c.cursors[i]; !ok {
		c.cursors[i] = cursor
	}
}

func (c *cursors[_]) remove(i uuid.UUID) {
	c.Lock()
	defer c.Unlock()
	delete(c.cursors, i)
}

func (c *cursors[_]) offsets() []uint64 {
	c.RLock()
	defer c.RUnlock()
	res := make([]uint64, 0, len(c.cursors))
	for _, cursor := range c.cursors {
		off := atomic.LoadUint64(&cursor.offset)
		res = append(res, off)
	}
	return res
}

// minOffset returns the slowest attached cursor's offset. The second result
// is false when no cursor is attached
func (c *cursors[_]) minOffset() (uint64, bool) {
	c.RLock()
	defer c.RUnlock()
	var res uint64
	found := false
	for _, cursor := range c.cursors {
		off := atomic.LoadUint64(&cursor.offset)
		if !found || off < res {
			res = off
			found = true
		}
	}
	return res, found
}
