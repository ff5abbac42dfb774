package ical

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/storage"
	"git.sr.ht/~mariusor/monthcal/store"
)

var testEvents = calendar.EventsMap{
	"2024-05-01": {
		{ID: "b", Name: "Standup", Start: "09:00", End: "09:15", Color: calendar.Blue},
		{ID: "a", Name: "Labour day", AllDay: true, Color: calendar.Red},
	},
	"2023-12-31": {
		{ID: "c", Name: "Party", Start: "20:00", End: "23:59", Color: calendar.Green},
	},
}

func TestVEvents(t *testing.T) {
	broken := testEvents.Clone()
	broken["2024-05-02"] = calendar.Events{{ID: "x", Name: "broken", Start: "nine", End: "ten", Color: calendar.Red}}

	comps, err := VEvents(broken, Options{Location: time.UTC})
	if err == nil {
		t.Errorf("expected the broken event to be reported")
	}
	if len(comps) != 3 {
		t.Fatalf("expected 3 events, got %d", len(comps))
	}
}

func TestEncode(t *testing.T) {
	b := bytes.Buffer{}
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := Encode(&b, testEvents, Options{Version: "test", Location: time.UTC, Stamp: stamp}); err != nil {
		t.Fatalf("encode: %s", err)
	}
	out := b.String()
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("expected 3 events, got %d in\n%s", n, out)
	}
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Standup", "SUMMARY:Labour day", "UID:c"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	// the all-day event sorts before the timed one on the same day
	if strings.Index(out, "Labour day") > strings.Index(out, "Standup") {
		t.Errorf("expected display order in the feed")
	}
}

func TestEncodeTimezone(t *testing.T) {
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := calendar.EventsMap{
		"2024-05-01": {{ID: "b", Name: "Standup", Start: "09:00", End: "09:15", Color: calendar.Blue}},
	}

	b := bytes.Buffer{}
	if err := Encode(&b, events, Options{Location: time.Local, Stamp: stamp}); err != nil {
		t.Fatalf("encode: %s", err)
	}
	if strings.Contains(b.String(), "Local") {
		t.Errorf("Local is not a valid zone id\n%s", b.String())
	}

	// a zone without a name is written in UTC
	b.Reset()
	unnamed := time.FixedZone("", 3600)
	if err := Encode(&b, events, Options{Location: unnamed, Stamp: stamp}); err != nil {
		t.Fatalf("encode: %s", err)
	}
	if !strings.Contains(b.String(), "20240501T080000") {
		t.Errorf("expected the start converted to UTC\n%s", b.String())
	}

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("no zone database: %s", err)
	}
	b.Reset()
	if err := Encode(&b, events, Options{Location: berlin, Stamp: stamp}); err != nil {
		t.Fatalf("encode: %s", err)
	}
	if !strings.Contains(b.String(), "Europe/Berlin") {
		t.Errorf("expected the zone name in the feed\n%s", b.String())
	}
}

func TestHandler(t *testing.T) {
	mem := storage.NewMemory(nil)
	if err := mem.Save(testEvents); err != nil {
		t.Fatalf("save: %s", err)
	}
	srv := httptest.NewServer(Routes(mem, "test", nil))
	defer srv.Close()

	tests := []struct {
		path   string
		status int
		events int
	}{
		{"/", http.StatusOK, 3},
		{"/2024", http.StatusOK, 2},
		{"/2023", http.StatusOK, 1},
		{"/1999", http.StatusOK, 0},
		{"/nope", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("get: %s", err)
			}
			defer res.Body.Close()
			if res.StatusCode != tt.status {
				t.Fatalf("status %d, want %d", res.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if ct := res.Header.Get("Content-Type"); ct != ContentType {
				t.Errorf("content type %q", ct)
			}
			b := bytes.Buffer{}
			b.ReadFrom(res.Body)
			if n := strings.Count(b.String(), "BEGIN:VEVENT"); n != tt.events {
				t.Errorf("expected %d events, got %d", tt.events, n)
			}
		})
	}
}

func TestHandlerLoadError(t *testing.T) {
	mem := storage.NewMemory(nil)
	mem.ReadErr = http.ErrServerClosed
	rec := httptest.NewRecorder()
	NewHandler(mem, "test", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

const testICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:holiday-1\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20240501\r\n" +
	"DTEND;VALUE=DATE:20240502\r\n" +
	"SUMMARY:Labour day\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:meeting-1\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240501T090000Z\r\n" +
	"DTEND:20240501T100000Z\r\n" +
	"SUMMARY:Meeting\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:night-1\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240501T220000Z\r\n" +
	"DTEND:20240502T020000Z\r\n" +
	"SUMMARY:Night shift\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nameless-1\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240501T090000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport(t *testing.T) {
	st := store.New(storage.NewMemory(nil))
	res, err := Import(strings.NewReader(testICS), st, calendar.Green, time.UTC)
	if err != nil {
		t.Fatalf("import: %s", err)
	}
	if res.Added != 3 || res.Skipped != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events := calendar.SortForDisplay(st.GetEventsForDate(day))
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %#v", events)
	}
	if !events[0].AllDay || events[0].ID != "holiday-1" || events[0].Color != calendar.Green {
		t.Errorf("unexpected all-day event %#v", events[0])
	}
	if events[1].Start != "09:00" || events[1].End != "10:00" {
		t.Errorf("unexpected timed event %#v", events[1])
	}
	if events[2].Start != "22:00" || events[2].End != "23:59" {
		t.Errorf("expected the night shift to be cut at the end of the day, got %#v", events[2])
	}

	again, err := Import(strings.NewReader(testICS), st, calendar.Green, time.UTC)
	if err != nil {
		t.Fatalf("import: %s", err)
	}
	if again.Added != 0 || len(st.GetEventsForDate(day)) != 3 {
		t.Errorf("importing twice must not duplicate events %+v", again)
	}
}
