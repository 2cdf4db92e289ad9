package retention

// Permanent retains every entry forever. It is the policy of last resort for
// channels whose consumers may attach arbitrarily late
type permanentPolicy struct{}

// MakePermanentPolicy returns a Policy that never discards entries
func MakePermanentPolicy() Policy {
	return permanentPolicy{}
}

func (permanentPolicy) InitialState() State {
	return nil
}

func (permanentPolicy) Retain(s State, _ *Statistics) (State, bool) {
	return s, true
}
