package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-ap/errors"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

var List = cli.Command{
	Name:  "list",
	Usage: "Lists saved calendar events",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "date",
			Usage: "Only list the events of this day, as yyyy-mm-dd",
		},
		&cli.StringFlag{
			Name:  "month",
			Usage: "Only list the events of this month, as yyyy-mm",
		},
	},
	Action: listEvents,
}

var eventFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "name",
		Usage: "The name of the event",
	},
	&cli.BoolFlag{
		Name:  "all-day",
		Usage: "The event lasts the whole day",
	},
	&cli.StringFlag{
		Name:  "start",
		Usage: "Start time, as hh:mm",
	},
	&cli.StringFlag{
		Name:  "end",
		Usage: "End time, as hh:mm",
	},
	&cli.StringFlag{
		Name:  "color",
		Usage: "One of red, green, blue",
	},
}

var Add = cli.Command{
	Name:   "add",
	Usage:  "Adds an event",
	Flags:  append([]cli.Flag{dateFlag("date", "The day of the event")}, eventFlags...),
	Action: addEvent,
}

var Edit = cli.Command{
	Name:  "edit",
	Usage: "Changes an event, only the passed fields are modified",
	Flags: append([]cli.Flag{
		dateFlag("date", "The day of the event"),
		&cli.StringFlag{
			Name:  "id",
			Usage: "The id of the event",
		},
		&cli.BoolFlag{
			Name:  "timed",
			Usage: "The event is not all-day, it needs --start and --end",
		},
	}, eventFlags...),
	Action: editEvent,
}

var Delete = cli.Command{
	Name:  "delete",
	Usage: "Removes an event",
	Flags: []cli.Flag{
		dateFlag("date", "The day of the event"),
		&cli.StringFlag{
			Name:  "id",
			Usage: "The id of the event",
		},
	},
	Action: deleteEvent,
}

func printEvents(w io.Writer, key string, events calendar.Events) {
	for _, e := range calendar.SortForDisplay(events) {
		when := "all day    "
		if !e.AllDay {
			when = fmt.Sprintf("%s-%s", e.Start, e.End)
		}
		fmt.Fprintf(w, "%s %s [%s] %s (%s)\n", key, when, e.ID, e.Name, e.Color)
	}
}

// filterEvents keeps the days of events for which keep returns true.
func filterEvents(events calendar.EventsMap, keep func(time.Time) bool) calendar.EventsMap {
	out := make(calendar.EventsMap)
	for key, ev := range events {
		d, err := calendar.ParseDayKey(key)
		if err != nil || !keep(d) {
			continue
		}
		out[key] = ev
	}
	return out
}

func listEvents(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}

	events := e.st.Events()
	switch {
	case c.String("date") != "":
		day, err := parseDate(c, "date")
		if err != nil {
			return err
		}
		key := calendar.DayKey(day)
		events = filterEvents(events, func(d time.Time) bool { return calendar.DayKey(d) == key })
	case c.String("month") != "":
		month, err := parseMonth(c.String("month"))
		if err != nil {
			return err
		}
		events = filterEvents(events, func(d time.Time) bool { return calendar.SameMonth(d, month) })
	}

	if len(events) == 0 {
		info("nothing found")
		return nil
	}
	for _, key := range events.Keys() {
		printEvents(os.Stdout, key, events[key])
	}
	return nil
}

// applyFlags overrides the fields of f with the event flags that were passed.
func applyFlags(c *cli.Context, f calendar.EventForm) calendar.EventForm {
	if c.IsSet("name") {
		f.Name = c.String("name")
	}
	if c.IsSet("start") {
		f.Start = c.String("start")
	}
	if c.IsSet("end") {
		f.End = c.String("end")
	}
	if c.IsSet("color") {
		f.Color = calendar.Color(c.String("color"))
	}
	return f
}

func addEvent(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}
	day, err := parseDate(c, "date")
	if err != nil {
		return err
	}

	form := calendar.DefaultForm()
	form.Color = e.conf.DefaultColor
	form = applyFlags(c, form)
	form.AllDay = c.Bool("all-day") || (form.Start == "" && form.End == "")
	if err := form.Validate(); err != nil {
		return err
	}

	ev := e.st.AddEvent(day, form.Event(""))
	if err := e.persisted(); err != nil {
		return err
	}
	e.l.WithContext(lw.Ctx{"date": calendar.DayKey(day), "id": ev.ID}).Debugf("event added")
	info("%s", ev.ID)
	return nil
}

func editEvent(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}
	day, err := parseDate(c, "date")
	if err != nil {
		return err
	}
	id := c.String("id")
	if id == "" {
		return errors.Newf("missing --id")
	}

	events := e.st.GetEventsForDate(day)
	i := events.IndexOf(id)
	if i < 0 {
		return errors.NotFoundf("event %s not found on %s", id, calendar.DayKey(day))
	}
	form := applyFlags(c, calendar.FormFromEvent(events[i]))
	switch {
	case c.Bool("all-day"):
		form.AllDay = true
	case c.Bool("timed"):
		form.AllDay = false
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := e.st.UpdateEvent(day, id, form.Event(id)); err != nil {
		return err
	}
	if err := e.persisted(); err != nil {
		return err
	}
	e.l.WithContext(lw.Ctx{"date": calendar.DayKey(day), "id": id}).Debugf("event updated")
	return nil
}

func deleteEvent(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}
	day, err := parseDate(c, "date")
	if err != nil {
		return err
	}
	id := c.String("id")
	if id == "" {
		return errors.Newf("missing --id")
	}
	if err := e.st.DeleteEvent(day, id); err != nil {
		return err
	}
	if err := e.persisted(); err != nil {
		return err
	}
	e.l.WithContext(lw.Ctx{"date": calendar.DayKey(day), "id": id}).Debugf("event deleted")
	return nil
}
