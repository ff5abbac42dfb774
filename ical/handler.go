package ical

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/storage"
)

type handler struct {
	Version string
	st      storage.Backend
	l       lw.Logger
}

// NewHandler serves the events of st as an iCal feed. The record is read on
// every request so the feed reflects changes made by other processes.
func NewHandler(st storage.Backend, version string, l lw.Logger) http.Handler {
	if l == nil {
		l = lw.Nil()
	}
	return &handler{Version: version, st: st, l: l}
}

func inYear(events calendar.EventsMap, year int) calendar.EventsMap {
	out := make(calendar.EventsMap)
	for key, ev := range events {
		d, err := calendar.ParseDayKey(key)
		if err != nil || d.Year() != year {
			continue
		}
		out[key] = ev
	}
	return out
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	events, err := h.st.Load()
	if err != nil {
		h.l.WithContext(lw.Ctx{"err": err.Error()}).Errorf("unable to load events")
		http.Error(w, "unable to load events", http.StatusInternalServerError)
		return
	}

	if yearURL := chi.URLParam(r, "year"); yearURL != "" {
		year, err := strconv.Atoi(yearURL)
		if err != nil || year <= 0 {
			http.Error(w, "invalid year "+yearURL, http.StatusNotFound)
			return
		}
		events = inYear(events, year)
	}

	b := bytes.Buffer{}
	err = Encode(&b, events, Options{
		Version:  h.Version,
		URL:      "http://" + r.Host + r.URL.Path,
		Location: time.Local,
	})
	if err != nil {
		h.l.WithContext(lw.Ctx{"err": err.Error()}).Errorf("unable to encode calendar")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(b.Bytes())
}
