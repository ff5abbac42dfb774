// Package store keeps the calendar events of a session, indexed by day, and
// writes the whole mapping to the durable record after every change.
package store

import (
	"sync"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-ap/errors"
	"github.com/google/uuid"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/storage"
)

type Store struct {
	mu      sync.RWMutex
	events  calendar.EventsMap
	backend storage.Backend
	l       lw.Logger
	newID   func() string
	lastErr error
}

type Option func(*Store)

// WithLogger sets the logger used for reporting storage failures.
func WithLogger(l lw.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// WithIDGenerator replaces the random event id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates the store and hydrates it from backend.
// A failed read is logged and the store starts empty.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		l:       lw.Nil(),
		newID:   uuid.NewString,
	}
	for _, fn := range opts {
		fn(s)
	}
	s.events = s.hydrate()
	return s
}

func (s *Store) hydrate() calendar.EventsMap {
	events := make(calendar.EventsMap)
	if s.backend == nil {
		return events
	}
	loaded, err := s.backend.Load()
	if err != nil {
		s.l.WithContext(lw.Ctx{"err": err.Error()}).Errorf("failed to read events, starting empty")
		return events
	}
	for key, dayEvents := range loaded {
		if _, err := calendar.ParseDayKey(key); err != nil {
			s.l.WithContext(lw.Ctx{"key": key, "count": len(dayEvents)}).Warnf("skipping events stored under a non canonical day key")
			continue
		}
		kept := make(calendar.Events, 0, len(dayEvents))
		for _, ev := range dayEvents {
			if !ev.IsValid() || kept.IndexOf(ev.ID) >= 0 {
				s.l.WithContext(lw.Ctx{"key": key, "id": ev.ID}).Warnf("skipping invalid or duplicate event")
				continue
			}
			kept = append(kept, ev)
		}
		if len(kept) == 0 {
			continue
		}
		events[key] = kept
	}
	return events
}

// persist writes the full mapping, it's called with the write lock held.
func (s *Store) persist() {
	if s.backend == nil {
		return
	}
	if err := s.backend.Save(s.events); err != nil {
		s.lastErr = err
		s.l.WithContext(lw.Ctx{"err": err.Error()}).Errorf("failed to write events")
		return
	}
	s.lastErr = nil
}

// update runs fn over the latest events of the day identified by key and
// stores its result. When fn reports no change nothing gets written.
func (s *Store) update(key string, fn func(prev calendar.Events) (calendar.Events, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.events[key]
	next, changed := fn(append(calendar.Events(nil), prev...))
	if !changed {
		return
	}
	if len(next) == 0 {
		delete(s.events, key)
	} else {
		s.events[key] = next
	}
	s.persist()
}

// GetEventsForDate returns the events of date's calendar day, in stored order.
func (s *Store) GetEventsForDate(date time.Time) calendar.Events {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[calendar.DayKey(date)]
	return append(make(calendar.Events, 0, len(events)), events...)
}

// AddEvent appends ev to the events of date. It gets a new id if it has none, or
// if its id is already taken by another event of that day.
func (s *Store) AddEvent(date time.Time, ev calendar.Event) calendar.Event {
	s.update(calendar.DayKey(date), func(prev calendar.Events) (calendar.Events, bool) {
		if ev.ID == "" || prev.IndexOf(ev.ID) >= 0 {
			ev.ID = s.newID()
		}
		return append(prev, ev), true
	})
	return ev
}

// UpdateEvent replaces the fields of the event identified by id with the ones of
// form, keeping the event id and its position.
func (s *Store) UpdateEvent(date time.Time, id string, form calendar.Event) error {
	key := calendar.DayKey(date)
	found := false
	s.update(key, func(prev calendar.Events) (calendar.Events, bool) {
		i := prev.IndexOf(id)
		if i < 0 {
			return prev, false
		}
		found = true
		form.ID = id
		prev[i] = form
		return prev, true
	})
	if !found {
		return errors.NotFoundf("event %s not found on %s", id, key)
	}
	return nil
}

// DeleteEvent removes the event identified by id from the events of date.
func (s *Store) DeleteEvent(date time.Time, id string) error {
	key := calendar.DayKey(date)
	found := false
	s.update(key, func(prev calendar.Events) (calendar.Events, bool) {
		i := prev.IndexOf(id)
		if i < 0 {
			return prev, false
		}
		found = true
		return append(prev[:i], prev[i+1:]...), true
	})
	if !found {
		return errors.NotFoundf("event %s not found on %s", id, key)
	}
	return nil
}

// Events returns a copy of the whole mapping.
func (s *Store) Events() calendar.EventsMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.Clone()
}

// PersistErr returns the error of the last failed write, or nil if the last
// write succeeded.
func (s *Store) PersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
