package cmd

import (
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/internal/tui"
)

var UI = cli.Command{
	Name:   "ui",
	Usage:  "Opens the month view",
	Action: uiStart,
}

func uiStart(c *cli.Context) error {
	l, closeFn := fileLogger(c)
	defer closeFn()

	e, err := openEnv(c, l)
	if err != nil {
		return err
	}
	l.Infof("Starting month view")
	return tui.Run(e.st, tui.Config{
		WeekStart:    e.conf.FirstWeekday(),
		CellRows:     e.conf.CellRows,
		DefaultColor: e.conf.DefaultColor,
		Logger:       l,
	})
}
