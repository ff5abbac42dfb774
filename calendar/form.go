package calendar

import (
	"strings"
	"time"

	"github.com/go-ap/errors"
)

var (
	ErrMissingName    = errors.Newf("event name is required")
	ErrMissingTimes   = errors.Newf("start and end times are required if event is not all-day")
	ErrInvalidTime    = errors.Newf("times must be in 24-hour hh:mm format")
	ErrEndBeforeStart = errors.Newf("end time must not be before start time")
	ErrInvalidColor   = errors.Newf("color must be one of red, green, blue")
)

// EventForm holds the values collected by an add or edit form before they
// reach the store.
type EventForm struct {
	Name   string
	AllDay bool
	Start  string
	End    string
	Color  Color
}

// DefaultForm mirrors the empty add event form.
func DefaultForm() EventForm {
	return EventForm{AllDay: true, Color: Red}
}

// FormFromEvent loads an existing event into a form for editing.
func FormFromEvent(e Event) EventForm {
	return EventForm{
		Name:   e.Name,
		AllDay: e.AllDay,
		Start:  e.Start,
		End:    e.End,
		Color:  e.Color,
	}
}

func parseTimeOfDay(s string) (time.Time, bool) {
	if len(s) != len(TimeFormat) {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeFormat, s)
	return t, err == nil
}

func (f EventForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrMissingName
	}
	if !f.Color.IsValid() {
		return ErrInvalidColor
	}
	if f.AllDay {
		return nil
	}
	if f.Start == "" || f.End == "" {
		return ErrMissingTimes
	}
	st, ok := parseTimeOfDay(f.Start)
	if !ok {
		return errors.Annotatef(ErrInvalidTime, "start %q", f.Start)
	}
	et, ok := parseTimeOfDay(f.End)
	if !ok {
		return errors.Annotatef(ErrInvalidTime, "end %q", f.End)
	}
	if et.Before(st) {
		return ErrEndBeforeStart
	}
	return nil
}

// Event builds the event described by the form, keeping id. Times are dropped
// for all-day events.
func (f EventForm) Event(id string) Event {
	e := Event{
		ID:     id,
		Name:   strings.TrimSpace(f.Name),
		AllDay: f.AllDay,
		Color:  f.Color,
	}
	if !f.AllDay {
		e.Start = f.Start
		e.End = f.End
	}
	return e
}
