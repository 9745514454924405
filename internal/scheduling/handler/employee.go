package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employees *service.EmployeeService
	logger    *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		logger:    log.WithComponent("employee_handler"),
	}
}

// Routes mounts the employee routes
func (h *EmployeeHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/", h.Clear)
	r.Get("/{employeeID}", h.Get)
	r.Delete("/{employeeID}", h.Delete)
	r.Get("/{employeeID}/phone", h.GetPhone)
	r.Put("/{employeeID}/phone", h.UpdatePhone)
	r.Put("/{employeeID}/branch", h.UpdateBranch)
	r.Get("/{employeeID}/extra-branches", h.ExtraBranches)
	r.Put("/{employeeID}/extra-branches/{branchID}", h.AddExtraBranch)
	r.Delete("/{employeeID}/extra-branches/{branchID}", h.RemoveExtraBranch)
}

// Create handles POST /api/v1/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEmployeeInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.Error(w, err)
		return
	}

	emp, err := h.employees.Create(r.Context(), input)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, emp)
}

// Get handles GET /api/v1/employees/{employeeID}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	emp, err := h.employees.Get(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, emp)
}

// List handles GET /api/v1/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employees)
}

// Delete handles DELETE /api/v1/employees/{employeeID}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Clear handles DELETE /api/v1/employees
func (h *EmployeeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.employees.Clear(r.Context()); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// GetPhone handles GET /api/v1/employees/{employeeID}/phone
func (h *EmployeeHandler) GetPhone(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	phone, err := h.employees.GetPhone(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"phone_e164": phone})
}

// UpdatePhone handles PUT /api/v1/employees/{employeeID}/phone
func (h *EmployeeHandler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var body struct {
		PhoneE164 string `json:"phone_e164"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.employees.UpdatePhone(r.Context(), id, body.PhoneE164); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// UpdateBranch handles PUT /api/v1/employees/{employeeID}/branch
func (h *EmployeeHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var body struct {
		BranchID int64 `json:"branch_id"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.employees.UpdateBranch(r.Context(), id, body.BranchID); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// ExtraBranches handles GET /api/v1/employees/{employeeID}/extra-branches
func (h *EmployeeHandler) ExtraBranches(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	branches, err := h.employees.ExtraBranches(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, branches)
}

// AddExtraBranch handles PUT /api/v1/employees/{employeeID}/extra-branches/{branchID}
func (h *EmployeeHandler) AddExtraBranch(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	branchID, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.employees.AddExtraBranch(r.Context(), employeeID, branchID); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// RemoveExtraBranch handles DELETE /api/v1/employees/{employeeID}/extra-branches/{branchID}
func (h *EmployeeHandler) RemoveExtraBranch(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	branchID, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.employees.RemoveExtraBranch(r.Context(), employeeID, branchID); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
