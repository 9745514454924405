package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// Handlers bundles the resource handlers the router mounts.
type Handlers struct {
	Branches  *BranchHandler
	Employees *EmployeeHandler
	Templates *TemplateHandler
	Shifts    *ShiftHandler
	Roster    *RosterHandler
	Exports   *ExportHandler
}

// NewRouter builds the chi router with the shared middleware stack, the
// health and metrics endpoints and the versioned API routes.
func NewRouter(h Handlers, db *database.DB, registry *prometheus.Registry, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		health := db.Health(req.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		httputil.JSON(w, status, health)
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/branches", h.Branches.Routes)
		api.Route("/employees", h.Employees.Routes)
		api.Route("/shift-templates", h.Templates.Routes)
		api.Route("/shifts", h.Shifts.Routes)
		api.Route("/roster", h.Roster.Routes)
		api.Route("/exports", h.Exports.Routes)
	})

	return r
}
