// Package modal models the lifecycle of the calendar dialogs as a single state
// machine, so "should be closed" and "finished animating" can't disagree.
package modal

import "time"

type State int

const (
	Closed State = iota
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

type Kind int

const (
	None Kind = iota
	AddEvent
	EditEvent
	Overflow
)

func (k Kind) String() string {
	switch k {
	case AddEvent:
		return "add"
	case EditEvent:
		return "edit"
	case Overflow:
		return "overflow"
	default:
		return "none"
	}
}

// Modal is the state of the single dialog shown above the month grid, along
// with the selection it was opened for.
type Modal struct {
	state   State
	kind    Kind
	date    time.Time
	eventID string
}

func (m Modal) State() State { return m.state }
func (m Modal) Kind() Kind { return m.kind }
func (m Modal) Date() time.Time { return m.date }
func (m Modal) EventID() string { return m.eventID }
func (m Modal) IsOpen() bool { return m.state == Open }
func (m Modal) IsClosing() bool { return m.state == Closing }

// Visible is true while the dialog is on screen, including its closing transition.
func (m Modal) Visible() bool {
	return m.state != Closed
}

// Open shows a dialog of kind for date and eventID. It's accepted when
// the modal is closed, or when it is closing, which cancels the close.
// Opening a different kind while one is open is rejected.
func (m *Modal) Open(kind Kind, date time.Time, eventID string) bool {
	if m.state == Open && m.kind != kind {
		return false
	}
	m.state = Open
	m.kind = kind
	m.date = date
	m.eventID = eventID
	return true
}

// Close starts the closing transition of an open dialog.
func (m *Modal) Close() bool {
	if m.state != Open {
		return false
	}
	m.state = Closing
	return true
}

// TransitionFinished completes a close.
func (m *Modal) TransitionFinished() bool {
	if m.state != Closing {
		return false
	}
	*m = Modal{}
	return true
}

// Switch replaces the content of an open dialog, as when the overflow list
// opens the edit form of one of its events. The date is kept.
func (m *Modal) Switch(kind Kind, eventID string) bool {
	if m.state != Open {
		return false
	}
	m.kind = kind
	m.eventID = eventID
	return true
}
