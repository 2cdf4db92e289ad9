package config

import (
	"errors"
	"time"

	"github.com/tari-project/pubsub/broadcast/backoff"
	"github.com/tari-project/pubsub/broadcast/retention"
)

type (
	// Config conveys the properties of a broadcast Channel that one can
	// configure using Options
	Config struct {
		RetentionPolicy  retention.Policy
		BackoffGenerator backoff.Generator
		Capacity         uint64
		SegmentIncrement uint16
		Label            string
	}

	// Option applies an option to a Channel configuration instance
	Option func(*Config) error
)

// Defaults
const (
	DefaultSegmentIncrement = 32
	DefaultLabel            = "broadcast"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be at least one")
	ErrLabelAlreadySet = errors.New("label already set")

	ErrInvalidSegmentIncrement = errors.New(
		"segment increment must be at least one",
	)
)

// Defaults resets a Config to its initial state, discarding any previously
// applied Options
func Defaults(c *Config) error {
	*c = Config{}
	return nil
}

// Capacity bounds the Channel to the specified number of buffered entries.
// Publishers block rather than overrun the slowest attached cursor by more
// than this count
func Capacity(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return ErrInvalidCapacity
		}
		c.Capacity = uint64(n)
		return nil
	}
}

// Label attaches a diagnostic label to the Channel. The label appears in
// debug logging and never influences delivery
func Label(l string) Option {
	return func(c *Config) error {
		if c.Label != "" {
			return ErrLabelAlreadySet
		}
		c.Label = l
		return nil
	}
}

// SegmentIncrement sets the entry capacity of each newly allocated log
// segment. Reclamation granularity follows segment size
func SegmentIncrement(n uint16) Option {
	return func(c *Config) error {
		if n < 1 {
			return ErrInvalidSegmentIncrement
		}
		c.SegmentIncrement = n
		return nil
	}
}

// Apply folds the provided Options over a fresh Config, filling any fields
// still unset with their defaults
func Apply(o ...Option) (*Config, error) {
	c := &Config{}
	for _, opt := range o {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.RetentionPolicy == nil {
		if c.Capacity > 0 {
			c.RetentionPolicy = retention.MakeCountedPolicy(
				retention.Count(c.Capacity),
			)
		} else {
			c.RetentionPolicy = retention.MakePermanentPolicy()
		}
	}
	if c.BackoffGenerator == nil {
		c.BackoffGenerator = backoff.Fibonacci(time.Millisecond, 100)
	}
	if c.SegmentIncrement == 0 {
		c.SegmentIncrement = DefaultSegmentIncrement
	}
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	return c, nil
}
