package config

import (
	"errors"
	"time"

	"github.com/tari-project/pubsub/broadcast/retention"
)

var ErrRetentionPolicyAlreadySet = errors.New("retention policy already set")

// RetentionPolicy instructs the Channel to reclaim buffered entries
// according to the provided Policy
func RetentionPolicy(p retention.Policy) Option {
	return func(c *Config) error {
		if c.RetentionPolicy != nil {
			return ErrRetentionPolicyAlreadySet
		}
		c.RetentionPolicy = p
		return nil
	}
}

// Permanent instructs the Channel to never reclaim buffered entries
func Permanent(c *Config) error {
	return RetentionPolicy(retention.MakePermanentPolicy())(c)
}

// Consumed instructs the Channel to reclaim entries that every attached
// cursor has moved past
func Consumed(c *Config) error {
	return RetentionPolicy(retention.MakeConsumedPolicy())(c)
}

// Counted instructs the Channel to retain only the newest n entries
func Counted(n retention.Count) Option {
	return RetentionPolicy(retention.MakeCountedPolicy(n))
}

// Timed instructs the Channel to retain entries only for the specified
// Duration after publication
func Timed(d time.Duration) Option {
	return RetentionPolicy(retention.MakeTimedPolicy(d))
}
