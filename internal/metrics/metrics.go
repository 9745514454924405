package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters tracking scheduling outcomes.
type Metrics struct {
	ShiftsAdded     prometheus.Counter
	ShiftsDeleted   prometheus.Counter
	ConflictSkips   prometheus.Counter
	DayOffSkips     prometheus.Counter
	TimeOffGranted  prometheus.Counter
	ReportsExported *prometheus.CounterVec
}

// New creates a Metrics instance registered with the provided Registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ShiftsAdded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aljoud_shifts_added_total",
			Help: "Total number of shifts inserted by the scheduling engine.",
		}),
		ShiftsDeleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aljoud_shifts_deleted_total",
			Help: "Total number of shifts deleted directly.",
		}),
		ConflictSkips: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aljoud_shift_conflict_skips_total",
			Help: "Total number of shift units skipped because of an overlapping shift.",
		}),
		DayOffSkips: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aljoud_shift_day_off_skips_total",
			Help: "Total number of shift units skipped because the day was marked off.",
		}),
		TimeOffGranted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aljoud_time_off_granted_total",
			Help: "Total number of per-employee time-off grants (insert plus shift purge).",
		}),
		ReportsExported: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "aljoud_reports_exported_total",
			Help: "Total number of exported report artifacts.",
		}, []string{"kind"}),
	}

	m.ReportsExported.WithLabelValues("branch_pdf")
	m.ReportsExported.WithLabelValues("employee_pdf")
	m.ReportsExported.WithLabelValues("branch_xlsx")

	return m
}
