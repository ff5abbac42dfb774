package cmd

import (
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/internal/config"
)

var Config = cli.Command{
	Name:  "config",
	Usage: "Prints the configuration, or changes it when passing any of the flags",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "week-start",
			Usage: "The first day of the week: sunday or monday",
		},
		&cli.IntFlag{
			Name:  "cell-rows",
			Usage: "How many events a day cell shows before collapsing the rest",
		},
		&cli.StringFlag{
			Name:  "default-color",
			Usage: "The color preselected for new events: red, green or blue",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "The address of the iCal feed server",
		},
		&cli.StringFlag{
			Name:  "storage-path",
			Usage: "The events database file",
		},
	},
	Action: configure,
}

// updateConfig applies the passed flags to conf and reports if anything changed.
func updateConfig(c *cli.Context, conf *config.Config) bool {
	changed := false
	if c.IsSet("week-start") {
		conf.WeekStart = c.String("week-start")
		changed = true
	}
	if c.IsSet("cell-rows") {
		conf.CellRows = c.Int("cell-rows")
		changed = true
	}
	if c.IsSet("default-color") {
		conf.DefaultColor = calendar.Color(c.String("default-color"))
		changed = true
	}
	if c.IsSet("listen") {
		conf.Listen = c.String("listen")
		changed = true
	}
	if c.IsSet("storage-path") {
		conf.StoragePath = c.String("storage-path")
		changed = true
	}
	return changed
}

func configure(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if updateConfig(c, conf) {
		if c.GlobalBool("dry-run") {
			conf.Normalize()
		} else if err := config.Save(configPath(c), conf); err != nil {
			return err
		}
	}
	return yaml.NewEncoder(os.Stdout).Encode(conf)
}
