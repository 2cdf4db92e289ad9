package retention

type (
	// Count is the number of trailing entries a CountedPolicy retains
	Count uint64

	// CountedPolicy retains only the most recently published Count entries,
	// regardless of whether they have been consumed. This is the ring-buffer
	// retention used by bounded channels
	CountedPolicy struct {
		count Count
	}
)

// MakeCountedPolicy returns a Policy that retains the newest n entries
func MakeCountedPolicy(n Count) *CountedPolicy {
	return &CountedPolicy{count: n}
}

// Count returns the number of trailing entries this Policy retains
func (p *CountedPolicy) Count() Count {
	return p.count
}

func (*CountedPolicy) InitialState() State {
	return nil
}

func (p *CountedPolicy) Retain(s State, stats *Statistics) (State, bool) {
	length := stats.Log.Length
	if length <= uint64(p.count) {
		return s, true
	}
	oldest := length - uint64(p.count)
	return s, stats.Entries.LastOffset >= oldest
}
