package modal

import (
	"testing"
	"time"
)

var may1 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestLifecycle(t *testing.T) {
	var m Modal
	if m.Visible() || m.State() != Closed {
		t.Fatalf("zero modal must be closed")
	}
	if !m.Open(AddEvent, may1, "") {
		t.Fatalf("open from closed must be accepted")
	}
	if !m.IsOpen() || m.Kind() != AddEvent || !m.Date().Equal(may1) {
		t.Errorf("unexpected modal %+v", m)
	}
	if !m.Close() || !m.IsClosing() || !m.Visible() {
		t.Errorf("close must start the closing transition, state %s", m.State())
	}
	if m.Close() {
		t.Errorf("closing twice must be rejected")
	}
	if !m.TransitionFinished() || m.Visible() || m.Kind() != None {
		t.Errorf("transition end must close and reset the modal, state %s", m.State())
	}
	if m.TransitionFinished() {
		t.Errorf("transition end without closing must be rejected")
	}
}

func TestReopenWhileClosing(t *testing.T) {
	var m Modal
	m.Open(Overflow, may1, "")
	m.Close()
	if !m.Open(EditEvent, may1, "ev-1") {
		t.Fatalf("reopening a closing modal must be accepted")
	}
	if m.State() != Open || m.EventID() != "ev-1" {
		t.Errorf("unexpected modal %+v", m)
	}
	// the stale transition end of the cancelled close arrives late
	if m.TransitionFinished() || !m.IsOpen() {
		t.Errorf("a stale transition end must not close an open modal")
	}
}

func TestOpenWhileOpen(t *testing.T) {
	var m Modal
	m.Open(AddEvent, may1, "")
	if m.Open(Overflow, may1, "") {
		t.Errorf("opening another kind over an open modal must be rejected")
	}
	if !m.Open(AddEvent, may1.AddDate(0, 0, 1), "") {
		t.Errorf("opening the same kind must be accepted")
	}
}

func TestSwitch(t *testing.T) {
	var m Modal
	if m.Switch(EditEvent, "x") {
		t.Errorf("switch on a closed modal must be rejected")
	}
	m.Open(Overflow, may1, "")
	if !m.Switch(EditEvent, "ev-2") || m.Kind() != EditEvent || m.EventID() != "ev-2" || !m.Date().Equal(may1) {
		t.Errorf("unexpected modal after switch %+v", m)
	}
}

func TestStrings(t *testing.T) {
	if Closing.String() != "closing" || Overflow.String() != "overflow" {
		t.Errorf("unexpected names")
	}
}
