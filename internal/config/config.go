package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ap/errors"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

const DefaultFile = "config.yaml"

const (
	defaultWeekStart = "sunday"
	defaultCellRows  = 4
	defaultListen    = "localhost:9999"
)

// Config holds the user preferences, stored as YAML in the data directory.
type Config struct {
	// StoragePath overrides the location of the events database.
	StoragePath string `yaml:"storage_path,omitempty"`

	// WeekStart is the first column of the month grid: "sunday" or "monday".
	WeekStart string `yaml:"week_start"`

	// CellRows is the number of event rows a day cell can show before
	// collapsing the rest behind "+N more".
	CellRows int `yaml:"cell_rows"`

	// DefaultColor is the color preselected by the add event form.
	DefaultColor calendar.Color `yaml:"default_color"`

	// Listen is the address of the iCal feed server.
	Listen string `yaml:"listen"`
}

func DefaultConfig() *Config {
	return &Config{
		WeekStart:    defaultWeekStart,
		CellRows:     defaultCellRows,
		DefaultColor: calendar.Red,
		Listen:       defaultListen,
	}
}

// Normalize replaces missing or unknown values with defaults.
func (c *Config) Normalize() {
	switch strings.ToLower(c.WeekStart) {
	case "monday":
		c.WeekStart = "monday"
	default:
		c.WeekStart = defaultWeekStart
	}
	if c.CellRows <= 0 {
		c.CellRows = defaultCellRows
	}
	if !c.DefaultColor.IsValid() {
		c.DefaultColor = calendar.Red
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
}

func (c Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.Newf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Annotatef(err, "unable to read config %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotatef(err, "invalid config %s", path)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path with 0600 permissions, through a temporary file in
// the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.Newf("config path is empty")
	}
	if cfg == nil {
		return errors.Newf("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".monthcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
