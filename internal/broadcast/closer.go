package broadcast

import "github.com/tari-project/pubsub/closer"

type closerImpl struct {
	closed  chan struct{}
	onClose func()
}

func makeCloser(onClose func()) closer.Closer {
	return &closerImpl{
		closed:  make(chan struct{}),
		onClose: onClose,
	}
}

func (c *closerImpl) Close() {
	select {
	case <-c.closed:
		return
	default:
		close(c.closed)
		if c.onClose != nil {
			c.onClose()
		}
	}
}

func (c *closerImpl) IsClosed() <-chan struct{} {
	return c.closed
}
