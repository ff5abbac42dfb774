package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-ap/errors"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/ical"
)

var Export = cli.Command{
	Name:  "export",
	Usage: "Writes the saved events as an iCal calendar",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "output",
			Usage: "The file to write to, defaults to standard output",
		},
		&cli.IntFlag{
			Name:  "year",
			Usage: "Only export the events of this year",
		},
	},
	Action: exportEvents,
}

var Import = cli.Command{
	Name:      "import",
	Usage:     "Adds the events of iCal files, use - for standard input",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "color",
			Usage: "The color of the imported events, defaults to the configured one",
		},
	},
	Action: importEvents,
}

func exportEvents(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}

	events := e.st.Events()
	if year := c.Int("year"); year > 0 {
		events = filterEvents(events, func(d time.Time) bool { return d.Year() == year })
	}

	var w io.Writer = os.Stdout
	if out := c.String("output"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Annotatef(err, "unable to create %s", out)
		}
		defer f.Close()
		w = f
	}
	return ical.Encode(w, events, ical.Options{
		Version:  AppVersion,
		Name:     ical.DefaultName,
		Location: time.Local,
	})
}

func importEvents(c *cli.Context) error {
	e, err := openEnv(c, logger(c))
	if err != nil {
		return err
	}
	if !c.Args().Present() {
		return errors.Newf("no files to import")
	}
	color := e.conf.DefaultColor
	if c.IsSet("color") {
		color = calendar.Color(c.String("color"))
		if !color.IsValid() {
			return calendar.ErrInvalidColor
		}
	}

	failed := make([]string, 0)
	for _, name := range c.Args() {
		res, err := importFile(name, e.st, color)
		if err != nil {
			errFn("Unable to import %s: %s", name, err)
			failed = append(failed, name)
			continue
		}
		info("%s: %d added, %d skipped", name, res.Added, res.Skipped)
	}
	if err := e.persisted(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return errors.Newf("unable to import %s", strings.Join(failed, ", "))
	}
	return nil
}

// importFile imports the events of the named file, - being standard input.
func importFile(name string, st ical.EventAdder, color calendar.Color) (ical.ImportResult, error) {
	if name == "-" {
		return ical.Import(os.Stdin, st, color, time.Local)
	}
	f, err := os.Open(name)
	if err != nil {
		return ical.ImportResult{}, err
	}
	defer f.Close()
	return ical.Import(f, st, color, time.Local)
}
