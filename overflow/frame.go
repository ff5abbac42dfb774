package overflow

import "sync"

// Handle identifies a requested frame callback. The zero Handle is never issued.
type Handle uint64

// FrameQueue collects callbacks to run on the next frame, after layout has
// been committed. It is flushed by whoever owns the render loop.
type FrameQueue struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[Handle]func())}
}

// Request schedules fn for the next frame.
func (q *FrameQueue) Request(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// Cancel drops a pending callback. Unknown or already run handles are ignored.
func (q *FrameQueue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunFrame runs the callbacks pending when it was called, in request order,
// and returns how many ran. Callbacks requested while running wait for the
// following frame.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	fns := make([]func(), 0, len(q.pending))
	for _, h := range order {
		if fn, ok := q.pending[h]; ok {
			fns = append(fns, fn)
			delete(q.pending, h)
		}
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
