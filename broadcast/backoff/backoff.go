package backoff

import "time"

type (
	// Next reports how long a poller should wait before checking again,
	// along with the continuation of the sequence
	Next func() (time.Duration, Next)

	// Generator instantiates a fresh backoff sequence. Wait loops call the
	// Generator once per waiting episode so that each episode starts the
	// sequence over
	Generator func() Next
)

// Fixed returns a Generator whose sequence always reports the same Duration
func Fixed(d time.Duration) Generator {
	var next Next
	next = func() (time.Duration, Next) {
		return d, next
	}
	return func() Next {
		return next
	}
}

// Fibonacci returns a Generator whose sequence grows along the Fibonacci
// numbers, scaled by unit and capped at unit*limit
func Fibonacci(unit time.Duration, limit uint64) Generator {
	return func() Next {
		var next func(uint64, uint64) Next
		next = func(prev, curr uint64) Next {
			return func() (time.Duration, Next) {
				n := curr
				if n > limit {
					n = limit
				}
				return unit * time.Duration(n), next(curr, prev+curr)
			}
		}
		return next(0, 1)
	}
}
