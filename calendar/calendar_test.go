package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"midnight", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "2024-05-01"},
		{"end of day", time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC), "2024-05-01"},
		{"local zone keeps wall clock day", time.Date(2024, 5, 1, 23, 59, 0, 0, loc), "2024-05-01"},
		{"single digit month and day", time.Date(987, 1, 2, 12, 0, 0, 0, time.UTC), "0987-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.date); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDayKey(t *testing.T) {
	d, err := ParseDayKey("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if DayKey(d) != "2024-02-29" {
		t.Errorf("round trip failed, got %s", DayKey(d))
	}
	for _, bad := range []string{"5/01/24", "2024-13-01", "", "2024-5-1"} {
		if _, err := ParseDayKey(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestSortForDisplay(t *testing.T) {
	a := Event{ID: "a", Name: "A", AllDay: true, Color: Red}
	b := Event{ID: "b", Name: "B", Start: "09:00", End: "10:00", Color: Green}
	c := Event{ID: "c", Name: "C", Start: "08:00", End: "08:30", Color: Blue}

	in := Events{c, a, b}
	got := SortForDisplay(in)
	want := Events{a, c, b}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortForDisplay() = %#v, want %#v", got, want)
	}
	if in[0].ID != "c" {
		t.Errorf("SortForDisplay must not modify its input")
	}
}

func TestSortForDisplayKeepsAllDayOrder(t *testing.T) {
	first := Event{ID: "1", Name: "first", AllDay: true, Color: Red}
	second := Event{ID: "2", Name: "second", AllDay: true, Color: Red}
	timed := Event{ID: "3", Name: "timed", Start: "00:00", End: "01:00", Color: Red}

	got := SortForDisplay(Events{timed, first, second})
	if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "3" {
		t.Errorf("unexpected order %#v", got)
	}
}

func TestEventsIndexOf(t *testing.T) {
	events := Events{{ID: "x"}, {ID: "y"}}
	if i := events.IndexOf("y"); i != 1 {
		t.Errorf("IndexOf(y) = %d, want 1", i)
	}
	if i := events.IndexOf("z"); i != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", i)
	}
}

func TestEventsMapClone(t *testing.T) {
	m := EventsMap{"2024-01-01": {{ID: "a", Name: "a"}}}
	c := m.Clone()
	c["2024-01-01"][0].Name = "changed"
	if m["2024-01-01"][0].Name != "a" {
		t.Errorf("Clone shares the underlying events")
	}
}

func TestColorNext(t *testing.T) {
	if Red.Next() != Green || Green.Next() != Blue || Blue.Next() != Red {
		t.Errorf("unexpected color cycle")
	}
	if Color("purple").Next() != Red {
		t.Errorf("unknown colors should restart the cycle")
	}
}
