package config

import (
	"errors"
	"time"

	"github.com/tari-project/pubsub/broadcast/backoff"
)

var ErrBackoffAlreadySet = errors.New("backoff generator already set")

// BackoffGenerator instructs the Channel's wait loops to re-check for
// progress on the cadence produced by the provided Generator
func BackoffGenerator(g backoff.Generator) Option {
	return func(c *Config) error {
		if c.BackoffGenerator != nil {
			return ErrBackoffAlreadySet
		}
		c.BackoffGenerator = g
		return nil
	}
}

// FixedBackoffSequence instructs the Channel's wait loops to re-check on a
// fixed cadence
func FixedBackoffSequence(d time.Duration) Option {
	return BackoffGenerator(backoff.Fixed(d))
}

// FibonacciBackoffSequence instructs the Channel's wait loops to re-check on
// a Fibonacci cadence, scaled by unit and capped at unit*limit
func FibonacciBackoffSequence(unit time.Duration, limit uint64) Option {
	return BackoffGenerator(backoff.Fibonacci(unit, limit))
}
