package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

// Backend is the durable record holding the whole day key to events mapping.
type Backend interface {
	Load() (calendar.EventsMap, error)
	Save(calendar.EventsMap) error
}

// Marshal serializes the mapping as stored in the durable record.
func Marshal(m calendar.EventsMap) ([]byte, error) {
	if m == nil {
		m = calendar.EventsMap{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("could not marshal events: %w", err)
	}
	return raw, nil
}

// Unmarshal decodes a durable record. An empty record is an empty mapping.
func Unmarshal(raw []byte) (calendar.EventsMap, error) {
	m := make(calendar.EventsMap)
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("could not unmarshal events: %w", err)
	}
	if m == nil {
		m = make(calendar.EventsMap)
	}
	return m, nil
}

// Memory keeps the serialized record in memory.
// ReadErr and WriteErr, when set, are returned by Load and Save respectively.
type Memory struct {
	mu       sync.Mutex
	raw      []byte
	writes   int
	ReadErr  error
	WriteErr error
}

func NewMemory(raw []byte) *Memory {
	return &Memory{raw: raw}
}

func (m *Memory) Load() (calendar.EventsMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return Unmarshal(m.raw)
}

func (m *Memory) Save(events calendar.EventsMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	raw, err := Marshal(events)
	if err != nil {
		return err
	}
	m.raw = raw
	m.writes++
	return nil
}

// Raw returns the last successfully saved record.
func (m *Memory) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.raw...)
}

// Writes returns the number of successful saves.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
