package ical

import (
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-ap/errors"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

// EventAdder is the part of the event store used by Import.
type EventAdder interface {
	GetEventsForDate(time.Time) calendar.Events
	AddEvent(time.Time, calendar.Event) calendar.Event
}

type ImportResult struct {
	Added   int
	Skipped int
}

const (
	endOfDay   = "23:59"
	dateFormat = "20060102"
)

func isAllDay(ve *ics.VEvent) bool {
	p := ve.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ve *ics.VEvent, prop ics.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

// toEvent maps a VEVENT to the day it starts on and a calendar event.
// Timed events ending on a later day are cut at the end of their first day.
func toEvent(ve *ics.VEvent, color calendar.Color, loc *time.Location) (time.Time, calendar.EventForm, string, error) {
	form := calendar.EventForm{
		Name:   propValue(ve, ics.ComponentPropertySummary),
		AllDay: isAllDay(ve),
		Color:  color,
	}
	uid := propValue(ve, ics.ComponentPropertyUniqueId)

	if form.AllDay {
		// date values carry no zone, keep their wall clock date
		raw := propValue(ve, ics.ComponentPropertyDtStart)
		if len(raw) < len(dateFormat) {
			return time.Time{}, form, uid, errors.Newf("invalid DTSTART %q", raw)
		}
		day, err := time.Parse(dateFormat, raw[:len(dateFormat)])
		if err != nil {
			return time.Time{}, form, uid, errors.Annotatef(err, "invalid DTSTART")
		}
		return day, form, uid, nil
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, form, uid, errors.Annotatef(err, "invalid DTSTART")
	}
	start = start.In(loc)
	form.Start = start.Format(calendar.TimeFormat)
	form.End = endOfDay
	if end, err := ve.GetEndAt(); err == nil {
		end = end.In(loc)
		if calendar.DayKey(end) == calendar.DayKey(start) && !end.Before(start) {
			form.End = end.Format(calendar.TimeFormat)
		}
	}
	return start, form, uid, nil
}

// Import adds the events found in the iCal document read from r to st.
// Events whose UID is already stored on the same day, or that don't make a
// valid event, are skipped.
func Import(r io.Reader, st EventAdder, color calendar.Color, loc *time.Location) (ImportResult, error) {
	res := ImportResult{}
	if loc == nil {
		loc = time.Local
	}
	if !color.IsValid() {
		color = calendar.Red
	}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return res, errors.Annotatef(err, "unable to parse calendar")
	}
	for _, ve := range cal.Events() {
		day, form, uid, err := toEvent(ve, color, loc)
		if err != nil || form.Validate() != nil {
			res.Skipped++
			continue
		}
		if uid != "" && st.GetEventsForDate(day).IndexOf(uid) >= 0 {
			res.Skipped++
			continue
		}
		st.AddEvent(day, form.Event(uid))
		res.Added++
	}
	return res, nil
}
