package boltdb

import (
	"path/filepath"
	"reflect"
	"testing"

	bolt "go.etcd.io/bbolt"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

func testRepo(t *testing.T) *repo {
	t.Helper()
	return New(Config{
		Path:  filepath.Join(t.TempDir(), DefaultFile),
		ErrFn: t.Logf,
	})
}

func TestLoadMissingFile(t *testing.T) {
	r := testRepo(t)
	events, err := r.Load()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %#v", events)
	}
}

func TestSaveLoad(t *testing.T) {
	r := testRepo(t)
	events := calendar.EventsMap{
		"2024-05-01": {
			{ID: "a", Name: "Labour day", AllDay: true, Color: calendar.Red},
			{ID: "b", Name: "Run", Start: "07:00", End: "08:00", Color: calendar.Green},
		},
	}
	if err := r.Save(events); err != nil {
		t.Fatalf("save: %s", err)
	}

	fresh := New(Config{Path: r.path})
	got, err := fresh.Load()
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if !reflect.DeepEqual(got, events) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, events)
	}

	if err := r.Save(calendar.EventsMap{}); err != nil {
		t.Fatalf("save empty: %s", err)
	}
	got, err = fresh.Load()
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if len(got) != 0 {
		t.Errorf("expected the record to be replaced, got %#v", got)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	r := testRepo(t)
	if err := r.open(); err != nil {
		t.Fatalf("open: %s", err)
	}
	r.close()

	got, err := r.Load()
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty mapping, got %#v", got)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	r := testRepo(t)
	if err := r.open(); err != nil {
		t.Fatalf("open: %s", err)
	}
	err := r.d.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.root).Put(r.key, []byte("{not json"))
	})
	r.close()
	if err != nil {
		t.Fatalf("put: %s", err)
	}
	if _, err := r.Load(); err == nil {
		t.Errorf("expected an error for a corrupt record")
	}
}
