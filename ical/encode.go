package ical

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/soh335/ical"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

const (
	DefaultName = "monthcal"
	ContentType = "text/calendar; charset=utf-8"
)

type Options struct {
	Version  string
	Name     string
	URL      string
	Location *time.Location
	// Stamp is used as DTSTAMP of every event, it defaults to the current time.
	Stamp time.Time
}

func eventTimes(day time.Time, ev calendar.Event, loc *time.Location) (time.Time, time.Time, error) {
	y, m, d := day.Date()
	if ev.AllDay {
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), nil
	}
	st, err := time.Parse(calendar.TimeFormat, ev.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", ev.Start, err)
	}
	et, err := time.Parse(calendar.TimeFormat, ev.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", ev.End, err)
	}
	start := time.Date(y, m, d, st.Hour(), st.Minute(), 0, 0, loc)
	end := time.Date(y, m, d, et.Hour(), et.Minute(), 0, 0, loc)
	return start, end, nil
}

// zoneName returns the IANA name of loc. For time.Local it's looked up in $TZ
// and the /etc/localtime link. It's empty when no name can be found.
func zoneName(loc *time.Location) string {
	if name := loc.String(); name != "Local" {
		return name
	}
	candidates := []string{strings.TrimPrefix(os.Getenv("TZ"), ":")}
	if link, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(link, "zoneinfo/"); i >= 0 {
			candidates = append(candidates, link[i+len("zoneinfo/"):])
		}
	}
	for _, name := range candidates {
		if name == "" || name == "Local" {
			continue
		}
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	return ""
}

// feedZone is the TZID of the feed. Zones without a name are written as UTC.
func feedZone(loc *time.Location) (string, bool) {
	if name := zoneName(loc); name != "" {
		return name, false
	}
	return "UTC", true
}

// VEvents converts the stored events to iCal components, ordered by day and
// then by display order. Events with unusable times are skipped.
func VEvents(events calendar.EventsMap, o Options) ([]ical.VComponent, error) {
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	stamp := o.Stamp
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	tz, toUTC := feedZone(loc)

	comps := make([]ical.VComponent, 0)
	var skipped error
	for _, key := range events.Keys() {
		day, err := calendar.ParseDayKey(key)
		if err != nil {
			skipped = err
			continue
		}
		for _, ev := range calendar.SortForDisplay(events[key]) {
			start, end, err := eventTimes(day, ev, loc)
			if err != nil {
				skipped = err
				continue
			}
			if toUTC && !ev.AllDay {
				start, end = start.UTC(), end.UTC()
			}
			comps = append(comps, &ical.VEvent{
				UID:         ev.ID,
				DTSTAMP:     stamp,
				DTSTART:     start,
				DTEND:       end,
				SUMMARY:     ev.Name,
				DESCRIPTION: fmt.Sprintf("color: %s", ev.Color),
				TZID:        tz,
				AllDay:      ev.AllDay,
			})
		}
	}
	return comps, skipped
}

// Encode writes events as a VCALENDAR document to w.
func Encode(w io.Writer, events calendar.EventsMap, o Options) error {
	name := o.Name
	if name == "" {
		name = DefaultName
	}
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	o.Location = loc

	cal := ical.NewBasicVCalendar()
	cal.PRODID = fmt.Sprintf("-//MONTHCAL//%s//EN", o.Version)
	cal.VERSION = "2.0"
	cal.URL = o.URL
	cal.NAME = name
	cal.X_WR_CALNAME = name
	cal.DESCRIPTION = name
	cal.X_WR_CALDESC = name

	tz, _ := feedZone(loc)
	cal.TIMEZONE_ID = tz
	cal.X_WR_TIMEZONE = tz

	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"
	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	// events with invalid times are left out of the feed
	cal.VComponent, _ = VEvents(events, o)

	return cal.Encode(w)
}
