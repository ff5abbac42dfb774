package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// KeyFormat is the layout of the day keys used to index the events mapping.
const KeyFormat = "2006-01-02"

// TimeFormat is the layout of the start and end time of timed events.
const TimeFormat = "15:04"

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

var Colors = []Color{Red, Green, Blue}

func (c Color) IsValid() bool {
	for _, col := range Colors {
		if c == col {
			return true
		}
	}
	return false
}

// Next cycles through the known colors, it's used by the form to toggle the color tag.
func (c Color) Next() Color {
	for i, col := range Colors {
		if c == col {
			return Colors[(i+1)%len(Colors)]
		}
	}
	return Colors[0]
}

type Event struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AllDay bool   `json:"allDay"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
	Color  Color  `json:"color"`
}

type Events []Event

type EventsMap map[string]Events

func (e Event) IsValid() bool {
	return e.ID != "" && FormFromEvent(e).Validate() == nil
}

func (e Event) Equals(other Event) bool {
	return e.ID == other.ID &&
		e.Name == other.Name &&
		e.AllDay == other.AllDay &&
		e.Start == other.Start &&
		e.End == other.End &&
		e.Color == other.Color
}

func (e Event) String() string {
	if e.AllDay {
		return e.Name
	}
	return fmt.Sprintf("%s %s", e.Start, e.Name)
}

func (e Event) GoString() string {
	when := "all-day"
	if !e.AllDay {
		when = fmt.Sprintf("%s-%s", e.Start, e.End)
	}
	return fmt.Sprintf("<[%s] %s @ %s//%s>", e.ID, e.Name, when, e.Color)
}

func (e Events) String() string {
	return e.GoString()
}

func (e Events) GoString() string {
	ss := make([]string, len(e))
	for i, ev := range e {
		ss[i] = ev.GoString()
	}
	return fmt.Sprintf("Events[%d]:\n\t%s\n", len(e), strings.Join(ss, "\n\t"))
}

func (e Events) Contains(inc Event) bool {
	for _, ev := range e {
		if ev.Equals(inc) {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the event with id, or -1.
func (e Events) IndexOf(id string) int {
	for i, ev := range e {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the mapping.
func (m EventsMap) Clone() EventsMap {
	out := make(EventsMap, len(m))
	for k, events := range m {
		out[k] = append(Events(nil), events...)
	}
	return out
}

// Keys returns the day keys of the mapping in ascending order.
func (m EventsMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DayKey formats the calendar date of t as a canonical day key.
// Only the year, month and day fields of t are used, so two times on the same
// wall-clock day always produce the same key.
func DayKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// ParseDayKey parses a canonical day key into midnight of that day, in UTC.
func ParseDayKey(s string) (time.Time, error) {
	t, err := time.Parse(KeyFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return t, nil
}

// Day truncates t to midnight of its calendar day, keeping its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SortForDisplay returns a copy of events with the all-day events first and the
// timed ones ascending by start time.
func SortForDisplay(events Events) Events {
	sorted := append(Events(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		if a.AllDay {
			return false
		}
		return a.Start < b.Start
	})
	return sorted
}
