package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/internal/cmd"
)

var version = "(unknown)"

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sctl", cmd.AppName),
		Usage:   "A month calendar for the terminal",
		Version: version,
		Flags:   cmd.Flags,
		Commands: []cli.Command{
			cmd.UI,
			cmd.List,
			cmd.Add,
			cmd.Edit,
			cmd.Delete,
			cmd.Month,
			cmd.Export,
			cmd.Import,
			cmd.Server,
			cmd.Config,
		},
		Action: cmd.UI.Action,
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
