package overflow

import "testing"

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	var ran []int
	a := q.Request(func() { ran = append(ran, 1) })
	q.Request(func() { ran = append(ran, 2) })
	q.Cancel(a)
	q.Cancel(Handle(999))

	if q.Pending() != 1 {
		t.Fatalf("expected 1 pending callback, got %d", q.Pending())
	}
	if n := q.RunFrame(); n != 1 {
		t.Errorf("RunFrame() = %d, want 1", n)
	}
	if len(ran) != 1 || ran[0] != 2 {
		t.Errorf("unexpected callbacks %v", ran)
	}
	if n := q.RunFrame(); n != 0 {
		t.Errorf("callbacks must only run once, ran %d", n)
	}
}

func TestFrameQueueRequestDuringFrame(t *testing.T) {
	q := NewFrameQueue()
	count := 0
	q.Request(func() {
		count++
		q.Request(func() { count++ })
	})
	q.RunFrame()
	if count != 1 || q.Pending() != 1 {
		t.Fatalf("nested request must wait for the next frame, count=%d pending=%d", count, q.Pending())
	}
	q.RunFrame()
	if count != 2 {
		t.Errorf("expected nested request to run, count=%d", count)
	}
}

func TestCellMeasuresOnNextFrame(t *testing.T) {
	q := NewFrameQueue()
	c := NewCell(q)

	c.Resize(100)
	c.SetRows(40, 40, 40)
	if got := c.Result(); got.Total != 0 {
		t.Fatalf("measurement must not happen synchronously, got %+v", got)
	}
	if q.Pending() != 1 {
		t.Fatalf("expected triggers to be debounced to one measurement, %d pending", q.Pending())
	}
	if !c.Pending() {
		t.Errorf("expected the cell to report a pending measurement")
	}

	q.RunFrame()
	res := c.Result()
	if res.Visible != 2 || res.Hidden != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if c.Pending() {
		t.Errorf("no measurement should be pending after the frame")
	}
}

func TestCellOnChange(t *testing.T) {
	q := NewFrameQueue()
	c := NewCell(q)
	calls := 0
	var last Result
	c.OnChange = func(r Result) {
		calls++
		last = r
	}

	c.Resize(100)
	c.SetRows(40, 40, 40)
	q.RunFrame()
	if calls != 1 || last.Hidden != 1 {
		t.Fatalf("expected one change to 1 hidden, got %d calls %+v", calls, last)
	}

	// same hidden count
	c.Resize(110)
	q.RunFrame()
	if calls != 1 {
		t.Errorf("unchanged hidden count must not notify, got %d calls", calls)
	}

	c.SetRows(40, 40)
	q.RunFrame()
	if calls != 2 || last.ShowMore() {
		t.Errorf("expected the overflow to clear, got %d calls %+v", calls, last)
	}
}

func TestCellNotLaidOut(t *testing.T) {
	q := NewFrameQueue()
	c := NewCell(q)
	c.SetRows(10, 10)
	q.RunFrame()
	if res := c.Result(); res.Visible != 0 || res.Hidden != 2 {
		t.Errorf("unexpected result before layout %+v", res)
	}
	c.Resize(25)
	q.RunFrame()
	if res := c.Result(); res.Visible != 2 || res.Hidden != 0 {
		t.Errorf("unexpected result after layout %+v", res)
	}
}

func TestCellStop(t *testing.T) {
	q := NewFrameQueue()
	c := NewCell(q)
	c.SetRows(10)
	c.Stop()
	if q.Pending() != 0 || c.Pending() {
		t.Errorf("expected the pending measurement to be cancelled")
	}
}
