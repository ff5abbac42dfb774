package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-ap/errors"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/internal/config"
	"git.sr.ht/~mariusor/monthcal/storage"
	"git.sr.ht/~mariusor/monthcal/storage/boltdb"
	"git.sr.ht/~mariusor/monthcal/store"
)

const (
	AppName    = "monthcal"
	AppVersion = "(unknown)"

	debugLogFile = "debug.log"
)

var info = func(s string, args ...interface{}) {
	fmt.Printf(s+"\n", args...)
}

var errFn = func(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
}

func MkDirIfNotExists(p string) error {
	fi, err := os.Stat(p)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(p, os.ModeDir|0700)
	}
	if err != nil {
		return err
	}
	fi, err = os.Stat(p)
	if err != nil {
		return err
	} else if !fi.IsDir() {
		return errors.Newf("path exists, and is not a folder %s", p)
	}
	return nil
}

// DataPath is the default folder for the events database and the configuration.
func DataPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// Flags are the global flags shared by all the commands.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:  "path",
		Usage: "The path for storage",
		Value: DataPath(),
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "The configuration file, defaults to config.yaml in the storage path",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "Output debug messages",
	},
	&cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Don't persist changes to events",
	},
}

func configPath(c *cli.Context) string {
	if p := c.GlobalString("config"); p != "" {
		return p
	}
	return filepath.Join(c.GlobalString("path"), config.DefaultFile)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := MkDirIfNotExists(c.GlobalString("path")); err != nil {
		return nil, errors.Annotatef(err, "unable to create storage path")
	}
	return config.Load(configPath(c))
}

func storagePath(c *cli.Context, conf *config.Config) string {
	if conf.StoragePath != "" && !c.GlobalIsSet("path") {
		return conf.StoragePath
	}
	return filepath.Join(c.GlobalString("path"), boltdb.DefaultFile)
}

func logger(c *cli.Context) lw.Logger {
	if c.GlobalBool("debug") || c.Bool("debug") {
		return lw.Dev()
	}
	return lw.Dev(lw.SetLevel(lw.InfoLevel))
}

// fileLogger is used while the terminal belongs to the month view.
func fileLogger(c *cli.Context) (lw.Logger, func()) {
	if !c.GlobalBool("debug") {
		return lw.Nil(), func() {}
	}
	name := filepath.Join(c.GlobalString("path"), debugLogFile)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		errFn("Unable to open log file %s: %s", name, err)
		return lw.Nil(), func() {}
	}
	return lw.Dev(lw.SetOutput(f)), func() { f.Close() }
}

type env struct {
	conf    *config.Config
	l       lw.Logger
	backend storage.Backend
	st      *store.Store
}

func backend(c *cli.Context, conf *config.Config, l lw.Logger) storage.Backend {
	path := storagePath(c, conf)
	bolt := boltdb.New(boltdb.Config{
		Path:  path,
		LogFn: l.WithContext(lw.Ctx{"path": path}).Debugf,
		ErrFn: l.WithContext(lw.Ctx{"path": path}).Errorf,
	})
	if !c.GlobalBool("dry-run") {
		return bolt
	}
	// changes stay in memory, seeded with the current record
	events, err := bolt.Load()
	if err != nil {
		l.Warnf("Unable to load events: %s", err)
	}
	raw, _ := storage.Marshal(events)
	return storage.NewMemory(raw)
}

func openEnv(c *cli.Context, l lw.Logger) (*env, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	b := backend(c, conf, l)
	return &env{
		conf:    conf,
		l:       l,
		backend: b,
		st:      store.New(b, store.WithLogger(l)),
	}, nil
}

// persisted reports the last write failure of the store as a command error.
func (e *env) persisted() error {
	if err := e.st.PersistErr(); err != nil {
		return errors.Annotatef(err, "unable to save events")
	}
	return nil
}

func dateFlag(name, usage string) cli.Flag {
	return &cli.StringFlag{
		Name:  name,
		Usage: usage + ", as yyyy-mm-dd",
		Value: calendar.DayKey(time.Now()),
	}
}

func parseDate(c *cli.Context, name string) (time.Time, error) {
	d, err := calendar.ParseDayKey(c.String(name))
	if err != nil {
		return time.Time{}, errors.Annotatef(err, "invalid --%s", name)
	}
	return d, nil
}

const monthFormat = "2006-01"

func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return calendar.StartOfMonth(time.Now()), nil
	}
	m, err := time.Parse(monthFormat, s)
	if err != nil {
		return time.Time{}, errors.Annotatef(err, "invalid month %q, expected yyyy-mm", s)
	}
	return m, nil
}
