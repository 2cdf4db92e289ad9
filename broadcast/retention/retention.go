package retention

import "time"

type (
	// Policy describes and implements a policy that a broadcast Channel will
	// use to discard buffered entries
	Policy interface {
		InitialState() State
		Retain(State, *Statistics) (State, bool)
	}

	// State allows a Policy to accumulate state between Retain calls made
	// during a single reclamation sweep
	State any

	// Statistics provides just enough information about the Channel's log
	// and a range of its entries to be useful to a Policy
	Statistics struct {
		CurrentTime time.Time
		Log         *LogStatistics
		Entries     *EntriesStatistics
	}

	// LogStatistics provides retention information about the log as a whole
	LogStatistics struct {
		Length        uint64
		CursorOffsets []uint64
	}

	// EntriesStatistics provides retention information about a contiguous
	// range of log entries
	EntriesStatistics struct {
		FirstOffset    uint64
		LastOffset     uint64
		FirstTimestamp time.Time
		LastTimestamp  time.Time
	}
)
