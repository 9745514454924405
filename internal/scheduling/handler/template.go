package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// TemplateHandler handles shift template endpoints
type TemplateHandler struct {
	templates *service.TemplateService
	logger    *logger.Logger
}

// NewTemplateHandler creates a new shift template handler
func NewTemplateHandler(templates *service.TemplateService, log *logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		logger:    log.WithComponent("template_handler"),
	}
}

// Routes mounts the template routes
func (h *TemplateHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/", h.Clear)
	r.Delete("/{templateID}", h.Delete)
}

// Create handles POST /api/v1/shift-templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.Error(w, err)
		return
	}

	tmpl, err := h.templates.Create(r.Context(), body.Name, body.StartTime, body.EndTime)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, tmpl)
}

// List handles GET /api/v1/shift-templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, templates)
}

// Clear handles DELETE /api/v1/shift-templates
func (h *TemplateHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Clear(r.Context()); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Delete handles DELETE /api/v1/shift-templates/{templateID}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "templateID")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.templates.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
