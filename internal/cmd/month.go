package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

var Month = cli.Command{
	Name:  "month",
	Usage: "Prints the month grid, days with events are marked with the number of events",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "month",
			Usage: "The month to print, as yyyy-mm",
		},
	},
	Action: printMonth,
}

const dayWidth = 6

func writeMonth(w io.Writer, month time.Time, weekStart time.Weekday, events calendar.EventsMap) {
	title := month.Format("January 2006")
	pad := (dayWidth*7 - len(title)) / 2
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), title)

	for _, wd := range calendar.Weekdays(weekStart) {
		fmt.Fprintf(w, "%-*s", dayWidth, wd)
	}
	fmt.Fprintln(w)

	dates := calendar.VisibleDates(month, weekStart)
	for i, d := range dates {
		cell := ""
		if calendar.SameMonth(d, month) {
			cell = fmt.Sprintf("%2d", d.Day())
			if n := len(events[calendar.DayKey(d)]); n > 0 {
				cell += fmt.Sprintf("(%d)", n)
			}
		}
		fmt.Fprintf(w, "%-*s", dayWidth, cell)
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
}

func printMonth(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}
	month, err := parseMonth(c.String("month"))
	if err != nil {
		return err
	}
	writeMonth(os.Stdout, month, e.conf.FirstWeekday(), e.st.Events())
	return nil
}
