package boltdb

import (
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/storage"
)

type LoggerFn func(string, ...interface{})

type repo struct {
	d    *bolt.DB
	root []byte
	key  []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

const (
	DefaultFile = "monthcal.bdb"

	rootBucket = "cal"
	eventsKey  = "events"
)

// openTimeout bounds how long we wait for the file lock held by another process.
var openTimeout = time.Second

// Config
type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new repo repository
func New(c Config) *repo {
	b := repo{
		root: []byte(rootBucket),
		key:  []byte(eventsKey),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

var _ storage.Backend = new(repo)

func (r *repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("could not open db %s %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		return nil
	})
	if err != nil {
		r.d.Close()
		r.d = nil
	}
	return err
}

// Close closes the boltdb database if possible.
func (r *repo) close() error {
	if r.d == nil {
		return nil
	}
	err := r.d.Close()
	r.d = nil
	return err
}

// Load reads the events mapping. A database without a saved record yields an empty mapping.
func (r *repo) Load() (calendar.EventsMap, error) {
	if _, err := os.Stat(r.path); err != nil && os.IsNotExist(err) {
		r.log("no database found at %s", r.path)
		return make(calendar.EventsMap), nil
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	defer r.close()

	var raw []byte
	err := r.d.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		// the value is only valid for the life of the transaction
		if v := root.Get(r.key); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	events, err := storage.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid record %s/%s: %w", r.root, r.key, err)
	}
	r.log("loaded %d days from %s", len(events), r.path)
	return events, nil
}

// Save replaces the events mapping with events.
func (r *repo) Save(events calendar.EventsMap) error {
	entryBytes, err := storage.Marshal(events)
	if err != nil {
		return err
	}
	if err = r.open(); err != nil {
		return err
	}
	defer r.close()

	err = r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable bucket %s", r.root)
		}
		if err := root.Put(r.key, entryBytes); err != nil {
			return fmt.Errorf("could not store encoded events: %w", err)
		}
		return nil
	})
	if err != nil {
		r.err("Error saving events to %s: %s", r.path, err)
		return err
	}
	r.log("saved %d days to %s", len(events), r.path)
	return nil
}
