// Package handler exposes the scheduling services over HTTP. The API is a
// thin JSON surface intended for the desk clients on the local network; it
// carries no authentication.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// idParam reads a positive int64 URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("invalid " + name)
	}
	return id, nil
}

// dateQuery reads a required YYYY-MM-DD query parameter.
func dateQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, errors.BadRequest("missing query parameter " + name)
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.BadRequest(name + " must be a YYYY-MM-DD date")
	}
	return date, nil
}

// dateQueryDefault reads an optional YYYY-MM-DD query parameter, falling back
// to the given default.
func dateQueryDefault(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	if r.URL.Query().Get(name) == "" {
		return fallback, nil
	}
	return dateQuery(r, name)
}

// idQuery reads an optional positive int64 query parameter; absent means zero.
func idQuery(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("invalid " + name)
	}
	return id, nil
}
