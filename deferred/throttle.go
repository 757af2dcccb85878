package deferred

import (
	"sync"
	"time"
)

// Throttle runs operations after a delay. Operations are identified by an id;
// scheduling an operation replaces a pending one with the same id, which
// moves its due time into the future.
type Throttle struct {
	mu      sync.Mutex
	pending map[string]*timedOp
	seq     uint64
	stopped bool
}

type timedOp struct {
	timer *time.Timer
	seq   uint64
}

// NewThrottle creates a throttle without pending operations.
func NewThrottle() *Throttle {
	return &Throttle{pending: make(map[string]*timedOp)}
}

// Schedule runs op after delay, unless it is cancelled or replaced before.
// op runs on its own goroutine. Schedule returns false after Stop.
func (th *Throttle) Schedule(id string, delay time.Duration, op func()) bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	if th.stopped {
		return false
	}
	if old, ok := th.pending[id]; ok {
		old.timer.Stop()
		tracer().Debugf("throttle: re-scheduling %q", id)
	}
	th.seq++
	top := &timedOp{seq: th.seq}
	top.timer = time.AfterFunc(delay, func() {
		th.mu.Lock()
		current, ok := th.pending[id]
		if !ok || current.seq != top.seq { // replaced or cancelled meanwhile
			th.mu.Unlock()
			return
		}
		delete(th.pending, id)
		th.mu.Unlock()
		op()
	})
	th.pending[id] = top
	return true
}

// Cancel drops a pending operation and reports whether there was one.
func (th *Throttle) Cancel(id string) bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	top, ok := th.pending[id]
	if ok {
		top.timer.Stop()
		delete(th.pending, id)
	}
	return ok
}

// Pending returns the number of operations waiting to run.
func (th *Throttle) Pending() int {
	th.mu.Lock()
	defer th.mu.Unlock()
	return len(th.pending)
}

// Stop cancels all pending operations. Operations already running are not
// affected. The throttle does not accept new operations afterwards.
func (th *Throttle) Stop() {
	th.mu.Lock()
	defer th.mu.Unlock()
	for id, top := range th.pending {
		top.timer.Stop()
		delete(th.pending, id)
	}
	th.stopped = true
}
