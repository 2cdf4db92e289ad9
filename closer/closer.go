package closer

// Closer is a type whose lifecycle can be terminated exactly once, and whose
// termination can be observed via a channel suitable for select
type Closer interface {
	// Close terminates this instance. Calling Close more than once is a
	// harmless no-op
	Close()

	// IsClosed returns a channel that is closed once this instance has
	// been terminated
	IsClosed() <-chan struct{}
}

// IsClosed returns whether the provided Closer has already been closed
func IsClosed(c Closer) bool {
	select {
	case <-c.IsClosed():
		return true
	default:
		return false
	}
}
