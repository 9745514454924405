package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	branches  *service.BranchService
	employees *service.EmployeeService
	logger    *logger.Logger
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branches *service.BranchService, employees *service.EmployeeService, log *logger.Logger) *BranchHandler {
	return &BranchHandler{
		branches:  branches,
		employees: employees,
		logger:    log.WithComponent("branch_handler"),
	}
}

// Routes mounts the branch routes
func (h *BranchHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/", h.Clear)
	r.Get("/{branchID}", h.Get)
	r.Delete("/{branchID}", h.Delete)
	r.Get("/{branchID}/employees", h.ListEmployees)
}

// Create handles POST /api/v1/branches
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}

	branch, err := h.branches.Create(r.Context(), body.Name)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, branch)
}

// Get handles GET /api/v1/branches/{branchID}
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	branch, err := h.branches.Get(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, branch)
}

// List handles GET /api/v1/branches
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branches.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, branches)
}

// Delete handles DELETE /api/v1/branches/{branchID}
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.branches.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Clear handles DELETE /api/v1/branches
func (h *BranchHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.branches.Clear(r.Context()); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// ListEmployees handles GET /api/v1/branches/{branchID}/employees
func (h *BranchHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	employees, err := h.employees.ListByBranch(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employees)
}
