package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// RosterHandler handles roster query and streaming endpoints
type RosterHandler struct {
	roster *service.RosterService
	logger *logger.Logger
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(roster *service.RosterService, log *logger.Logger) *RosterHandler {
	return &RosterHandler{
		roster: roster,
		logger: log.WithComponent("roster_handler"),
	}
}

// Routes mounts the roster routes
func (h *RosterHandler) Routes(r chi.Router) {
	r.Get("/week", h.Week)
	r.Get("/month", h.Month)
	r.Get("/range", h.Range)
	r.Get("/stream", h.Stream)
}

// filter reads the optional employee_id / branch_id query parameters.
func (h *RosterHandler) filter(r *http.Request) (service.RosterFilter, error) {
	employeeID, err := idQuery(r, "employee_id")
	if err != nil {
		return service.RosterFilter{}, err
	}
	branchID, err := idQuery(r, "branch_id")
	if err != nil {
		return service.RosterFilter{}, err
	}
	return service.RosterFilter{EmployeeID: employeeID, BranchID: branchID}, nil
}

// Week handles GET /api/v1/roster/week?date=YYYY-MM-DD
func (h *RosterHandler) Week(w http.ResponseWriter, r *http.Request) {
	date, err := dateQueryDefault(r, "date", time.Now())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	filter, err := h.filter(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	roster, err := h.roster.Week(r.Context(), date, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, roster)
}

// Month handles GET /api/v1/roster/month?date=YYYY-MM-DD
func (h *RosterHandler) Month(w http.ResponseWriter, r *http.Request) {
	date, err := dateQueryDefault(r, "date", time.Now())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	filter, err := h.filter(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	roster, err := h.roster.Month(r.Context(), date, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, roster)
}

// Range handles GET /api/v1/roster/range?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *RosterHandler) Range(w http.ResponseWriter, r *http.Request) {
	from, err := dateQuery(r, "from")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	to, err := dateQuery(r, "to")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if to.Before(from) {
		httputil.Error(w, errors.BadRequest("to must not be before from"))
		return
	}
	filter, err := h.filter(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	roster, err := h.roster.Range(r.Context(), from, to, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, roster)
}

// Stream handles GET /api/v1/roster/stream?from=...&to=... as Server-Sent
// Events. Each event is a full roster snapshot; a new one is sent whenever
// the underlying records change.
func (h *RosterHandler) Stream(w http.ResponseWriter, r *http.Request) {
	from, err := dateQuery(r, "from")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	to, err := dateQuery(r, "to")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	filter, err := h.filter(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.Error(w, errors.Internal("streaming not supported"))
		return
	}

	snapshots, err := h.roster.Watch(r.Context(), from, to, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case roster, ok := <-snapshots:
			if !ok {
				return
			}
			payload, err := json.Marshal(roster)
			if err != nil {
				h.logger.Error().Err(err).Msg("roster snapshot marshal failed")
				return
			}
			fmt.Fprintf(w, "event: roster\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
