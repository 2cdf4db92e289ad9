package broadcast

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tari-project/pubsub/internal/sync/mutex"
)

type (
	// log manages the segments that buffer a Channel's published entries.
	// Offsets are virtual: they increase monotonically for the lifetime of
	// the Channel, even as leading segments are reclaimed
	log[Msg any] struct {
		tail          tailSegment[Msg]
		head          headSegment[Msg]
		startOffset   uint64
		virtualLength uint64
		capIncrement  uint32
	}

	logEntry[Msg any] struct {
		msg Msg
		ts  time.Time
	}

	headSegment[Msg any] struct {
		segment *segment[Msg]
		mu      sync.RWMutex
	}

	tailSegment[Msg any] struct {
		segment *segment[Msg]
		mu      sync.Mutex
	}

	// segment stores a fixed-capacity run of entries along with the times
	// at which they were published
	segment[Msg any] struct {
		log     *log[Msg]
		next    *segment[Msg]
		entries []*logEntry[Msg]
		mu      mutex.InitialMutex
		len     uint32
		cap     uint32
	}

	// retentionQuery is called during vacuuming to determine whether a
	// segment should be retained or reclaimed
	retentionQuery[Msg any] func(*segment[Msg]) bool
)

func makeLog[Msg any](segmentSize uint32) *log[Msg] {
	return &log[Msg]{
		capIncrement: segmentSize,
	}
}

// start returns the earliest offset still buffered
func (l *log[_]) start() uint64 {
	return atomic.LoadUint64(&l.startOffset)
}

// length returns the total number of entries ever published
func (l *log[_]) length() uint64 {
	return atomic.LoadUint64(&l.virtualLength)
}

func (l *log[Msg]) put(msg Msg) {
	entry := &logEntry[Msg]{
		msg: msg,
		ts:  time.Now(),
	}

	l.tail.mu.Lock()
	defer l.tail.mu.Unlock()
	tail := l.tail.segment
	if tail == nil {
		l.head.mu.Lock()
		defer l.head.mu.Unlock()
		tail = l.makeSegment()
		l.head.segment = tail
		l.tail.segment = tail
	}
	if s := tail.append(entry); s != tail {
		l.tail.segment = s
	}
	atomic.AddUint64(&l.virtualLength, uint64(1))
}

func (l *log[Msg]) makeSegment() *segment[Msg] {
	c := l.capIncrement
	return &segment[Msg]{
		log:     l,
		cap:     c,
		entries: make([]*logEntry[Msg], c),
	}
}

// get reads the entry at offset o, clamping o forward to the earliest
// buffered offset if the requested one has been reclaimed. The offset
// actually read is returned
func (l *log[Msg]) get(o uint64) (*logEntry[Msg], uint64, bool) {
	l.head.mu.RLock()
	o, pos := l.relativePos(o)
	curr := l.head.segment
	l.head.mu.RUnlock()

	for ; curr != nil && pos >= uint64(curr.cap); curr = curr.getNext() {
		pos -= uint64(curr.cap)
	}
	if curr != nil {
		p := int(pos)
		if p < int(curr.length()) {
			return curr.entries[p], o, true
		}
	}
	return &logEntry[Msg]{}, o, false
}

func (l *log[_]) relativePos(o uint64) (uint64, uint64) {
	eo := l.startOffset
	if o < eo { // if requested is less than actual, we start at actual
		o = eo
	}
	return o, o - eo
}

func (l *log[_]) canVacuum() bool {
	l.head.mu.RLock()
	defer l.head.mu.RUnlock()
	if head := l.head.segment; head != nil {
		return !head.isActive()
	}
	return false
}

// vacuum reclaims leading segments until the retentionQuery asks that one be
// kept. Only inactive (full) segments are candidates
func (l *log[Msg]) vacuum(retain retentionQuery[Msg]) {
	l.head.mu.Lock()
	defer l.head.mu.Unlock()

	for curr := l.head.segment; curr != nil; {
		if curr.isActive() || retain(curr) {
			return
		}
		l.startOffset += uint64(curr.cap)
		if curr = curr.getNext(); curr != nil {
			l.head.segment = curr
			continue
		}
		l.tail.mu.Lock()
		l.head.segment = nil
		l.tail.segment = nil
		l.tail.mu.Unlock()
		return
	}
}

func (s *segment[Msg]) getNext() *segment[Msg] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (s *segment[Msg]) append(entry *logEntry[Msg]) *segment[Msg] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.len == s.cap {
		s.next = s.log.makeSegment()
		s.mu.DisableLock()
		return s.next.append(entry)
	}
	s.entries[s.len] = entry
	atomic.AddUint32(&s.len, uint32(1))
	return s
}

func (s *segment[_]) length() uint32 {
	return atomic.LoadUint32(&s.len)
}

// timestamps returns the publication times of the first and last entries in
// this segment. Only meaningful once the segment is inactive
func (s *segment[_]) timestamps() (time.Time, time.Time) {
	n := s.length()
	if n == 0 {
		return time.Time{}, time.Time{}
	}
	return s.entries[0].ts, s.entries[n-1].ts
}

func (s *segment[_]) isActive() bool {
	return !s.isFull()
}

func (s *segment[_]) isFull() bool {
	return s.length() == s.cap
}
