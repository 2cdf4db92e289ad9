package retention

import "time"

// TimedPolicy retains entries for a fixed Duration after publication,
// regardless of whether they have been consumed
type TimedPolicy struct {
	duration time.Duration
}

// MakeTimedPolicy returns a Policy that discards entries older than d
func MakeTimedPolicy(d time.Duration) *TimedPolicy {
	return &TimedPolicy{duration: d}
}

// Duration returns how long this Policy retains an entry
func (p *TimedPolicy) Duration() time.Duration {
	return p.duration
}

func (*TimedPolicy) InitialState() State {
	return nil
}

func (p *TimedPolicy) Retain(s State, stats *Statistics) (State, bool) {
	cutoff := stats.CurrentTime.Add(-p.duration)
	return s, stats.Entries.LastTimestamp.After(cutoff)
}
