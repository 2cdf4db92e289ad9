package retention

// Consumed discards entries once every attached cursor has moved past them.
// Entries published while no cursor is attached are immediately reclaimable
type consumedPolicy struct{}

// MakeConsumedPolicy returns a Policy that discards fully-consumed entries
func MakeConsumedPolicy() Policy {
	return consumedPolicy{}
}

func (consumedPolicy) InitialState() State {
	return nil
}

func (consumedPolicy) Retain(s State, stats *Statistics) (State, bool) {
	for _, o := range stats.Log.CursorOffsets {
		if o <= stats.Entries.LastOffset {
			return s, true
		}
	}
	return s, false
}
