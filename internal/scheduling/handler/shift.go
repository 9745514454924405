package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// ShiftHandler handles shift creation, bulk scheduling and time-off endpoints
type ShiftHandler struct {
	scheduler *service.Scheduler
	timeOff   *repository.TimeOffRepository
	logger    *logger.Logger
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(scheduler *service.Scheduler, timeOff *repository.TimeOffRepository, log *logger.Logger) *ShiftHandler {
	return &ShiftHandler{
		scheduler: scheduler,
		timeOff:   timeOff,
		logger:    log.WithComponent("shift_handler"),
	}
}

// Routes mounts the shift routes
func (h *ShiftHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Post("/range", h.CreateRange)
	r.Get("/time-off", h.ListTimeOff)
	r.Post("/time-off", h.SetTimeOff)
	r.Delete("/time-off", h.ClearTimeOff)
	r.Delete("/time-off/employees/{employeeID}", h.DeleteTimeOff)
	r.Delete("/{shiftID}", h.Delete)
	r.Delete("/", h.Clear)
}

type createShiftRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,min=1"`
	BranchID   int64  `json:"branch_id" validate:"required,min=1"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04:05"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04:05"`
}

// Create handles POST /api/v1/shifts
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createShiftRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(body); err != nil {
		httputil.Error(w, err)
		return
	}

	date, _ := time.Parse(dateLayout, body.Date)
	shift := &repository.Shift{
		EmployeeID: body.EmployeeID,
		BranchID:   body.BranchID,
		Date:       date,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
	}

	if err := h.scheduler.AddSingleShift(r.Context(), shift); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, shift)
}

type createRangeRequest struct {
	BranchID    int64   `json:"branch_id" validate:"required,min=1"`
	FromDate    string  `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate      string  `json:"to_date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04:05"`
	EndTime     string  `json:"end_time" validate:"required,datetime=15:04:05"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

// CreateRange handles POST /api/v1/shifts/range
func (h *ShiftHandler) CreateRange(w http.ResponseWriter, r *http.Request) {
	var body createRangeRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(body); err != nil {
		httputil.Error(w, err)
		return
	}

	from, _ := time.Parse(dateLayout, body.FromDate)
	to, _ := time.Parse(dateLayout, body.ToDate)
	if to.Before(from) {
		httputil.Error(w, errors.Validation(map[string]string{
			"to_date": "must not be before from_date",
		}))
		return
	}

	outcome, err := h.scheduler.AddShiftForEmployeesRange(
		r.Context(), body.BranchID, from, to, body.StartTime, body.EndTime, body.EmployeeIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, outcome)
}

type timeOffRequest struct {
	FromDate    string  `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate      string  `json:"to_date" validate:"required,datetime=2006-01-02"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

// SetTimeOff handles POST /api/v1/shifts/time-off
func (h *ShiftHandler) SetTimeOff(w http.ResponseWriter, r *http.Request) {
	var body timeOffRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(body); err != nil {
		httputil.Error(w, err)
		return
	}

	from, _ := time.Parse(dateLayout, body.FromDate)
	to, _ := time.Parse(dateLayout, body.ToDate)
	if to.Before(from) {
		httputil.Error(w, errors.Validation(map[string]string{
			"to_date": "must not be before from_date",
		}))
		return
	}

	outcome, err := h.scheduler.SetTimeOffForEmployees(r.Context(), from, to, body.EmployeeIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, outcome)
}

// ListTimeOff handles GET /api/v1/shifts/time-off
func (h *ShiftHandler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.timeOff.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, ranges)
}

// ClearTimeOff handles DELETE /api/v1/shifts/time-off. All time-off ranges
// are removed; existing shifts stay.
func (h *ShiftHandler) ClearTimeOff(w http.ResponseWriter, r *http.Request) {
	if err := h.timeOff.Clear(r.Context()); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// DeleteTimeOff handles DELETE /api/v1/shifts/time-off/employees/{employeeID}.
// It removes all time-off ranges of the employee; existing shifts stay.
func (h *ShiftHandler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.timeOff.DeleteForEmployee(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Delete handles DELETE /api/v1/shifts/{shiftID}
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "shiftID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.scheduler.DeleteShift(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Clear handles DELETE /api/v1/shifts
func (h *ShiftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Clear(r.Context()); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
