package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// ExportHandler streams monthly report artifacts
type ExportHandler struct {
	exports *service.ExportService
	logger  *logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports *service.ExportService, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		logger:  log.WithComponent("export_handler"),
	}
}

// Routes mounts the export routes
func (h *ExportHandler) Routes(r chi.Router) {
	r.Get("/branches/{branchID}/month.pdf", h.BranchMonthPDF)
	r.Get("/branches/{branchID}/month.xlsx", h.BranchMonthXLSX)
	r.Get("/employees/{employeeID}/month.pdf", h.EmployeeMonthPDF)
}

// BranchMonthPDF handles GET /api/v1/exports/branches/{branchID}/month.pdf?date=YYYY-MM-DD
func (h *ExportHandler) BranchMonthPDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	date, err := dateQueryDefault(r, "date", time.Now())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	export, err := h.exports.BranchMonthPDF(r.Context(), id, date)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	h.send(w, export)
}

// BranchMonthXLSX handles GET /api/v1/exports/branches/{branchID}/month.xlsx?date=YYYY-MM-DD
func (h *ExportHandler) BranchMonthXLSX(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "branchID")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	date, err := dateQueryDefault(r, "date", time.Now())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	export, err := h.exports.BranchMonthXLSX(r.Context(), id, date)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	h.send(w, export)
}

// EmployeeMonthPDF handles GET /api/v1/exports/employees/{employeeID}/month.pdf?date=YYYY-MM-DD
func (h *ExportHandler) EmployeeMonthPDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "employeeID")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	date, err := dateQueryDefault(r, "date", time.Now())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	export, err := h.exports.EmployeeMonthPDF(r.Context(), id, date)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	h.send(w, export)
}

func (h *ExportHandler) send(w http.ResponseWriter, export *service.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}
