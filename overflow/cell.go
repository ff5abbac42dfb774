package overflow

import "sync"

// Scheduler defers work to the next frame and lets pending work be cancelled.
type Scheduler interface {
	Request(func()) Handle
	Cancel(Handle)
}

// Cell tracks the overflow state of one day cell. Resizes and row changes
// don't measure right away: they schedule a measurement on the next frame,
// replacing any measurement still pending, so at most one is in flight.
type Cell struct {
	mu      sync.Mutex
	sched   Scheduler
	height  float64
	rows    []float64
	pending Handle
	result  Result

	// OnChange is called after a measurement changed the hidden count.
	OnChange func(Result)
}

func NewCell(s Scheduler) *Cell {
	return &Cell{sched: s}
}

// Resize records the new container height and schedules a measurement.
func (c *Cell) Resize(height float64) {
	c.mu.Lock()
	c.height = height
	c.mu.Unlock()
	c.Schedule()
}

// SetRows records the heights of the rendered rows, in display order, and
// schedules a measurement.
func (c *Cell) SetRows(heights ...float64) {
	c.mu.Lock()
	c.rows = append(c.rows[:0:0], heights...)
	c.mu.Unlock()
	c.Schedule()
}

// Schedule replaces any pending measurement with a new one for the next frame.
func (c *Cell) Schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != 0 {
		c.sched.Cancel(c.pending)
	}
	var h Handle
	h = c.sched.Request(func() { c.measure(h) })
	c.pending = h
}

func (c *Cell) measure(h Handle) {
	c.mu.Lock()
	if c.pending == h {
		c.pending = 0
	}
	prev := c.result
	c.result = Measure(Box{Bottom: c.height}, Stack(c.rows...))
	res := c.result
	onChange := c.OnChange
	c.mu.Unlock()

	if onChange != nil && res.Hidden != prev.Hidden {
		onChange(res)
	}
}

// Result returns the outcome of the last measurement.
func (c *Cell) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Pending reports whether a measurement is waiting for the next frame.
func (c *Cell) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != 0
}

// Stop cancels the pending measurement, if any.
func (c *Cell) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != 0 {
		c.sched.Cancel(c.pending)
		c.pending = 0
	}
}
