package ical

import (
	"net/http"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/monthcal/storage"
)

func Routes(st storage.Backend, version string, l lw.Logger) http.Handler {
	h := NewHandler(st, version, l)
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", h)
	r.Method(http.MethodGet, "/{year}", h)
	return r
}
