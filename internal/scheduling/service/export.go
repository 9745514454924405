package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aljoud/shifts-backend/internal/metrics"
	"github.com/aljoud/shifts-backend/internal/scheduling/report"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// Export is a rendered report artifact. Data is the full file content;
// Filename carries the sanitized display name and month.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders monthly rosters into downloadable artifacts and keeps
// a copy in the export directory.
type ExportService struct {
	shifts    ShiftLister
	branches  *repository.BranchRepository
	employees *repository.EmployeeRepository
	dir       string
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewExportService creates a new export service
func NewExportService(
	shifts ShiftLister,
	branches *repository.BranchRepository,
	employees *repository.EmployeeRepository,
	dir string,
	m *metrics.Metrics,
	log *logger.Logger,
) *ExportService {
	return &ExportService{
		shifts:    shifts,
		branches:  branches,
		employees: employees,
		dir:       dir,
		metrics:   m,
		logger:    log.WithComponent("export"),
	}
}

// BranchMonthPDF renders the branch's calendar month containing the date.
func (s *ExportService) BranchMonthPDF(ctx context.Context, branchID int64, date time.Time) (*Export, error) {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	first, last := MonthRange(date)
	shifts, err := s.shifts.ListForBranchBetween(ctx, branchID, first, last)
	if err != nil {
		return nil, err
	}

	data, err := report.MonthlyBranchPDF(branch.Name, first, shifts)
	if err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    report.BranchFilename(branch.Name, first, "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.persist(export)
	s.metrics.ReportsExported.WithLabelValues("branch_pdf").Inc()

	return export, nil
}

// EmployeeMonthPDF renders the employee's calendar month containing the date.
func (s *ExportService) EmployeeMonthPDF(ctx context.Context, employeeID int64, date time.Time) (*Export, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	first, last := MonthRange(date)
	shifts, err := s.shifts.ListForEmployeeBetween(ctx, employeeID, first, last)
	if err != nil {
		return nil, err
	}

	data, err := report.MonthlyEmployeePDF(emp.FullName, first, shifts)
	if err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    report.EmployeeFilename(emp.FullName, first, "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.persist(export)
	s.metrics.ReportsExported.WithLabelValues("employee_pdf").Inc()

	return export, nil
}

// BranchMonthXLSX renders the branch's calendar month as a spreadsheet.
func (s *ExportService) BranchMonthXLSX(ctx context.Context, branchID int64, date time.Time) (*Export, error) {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	first, last := MonthRange(date)
	shifts, err := s.shifts.ListForBranchBetween(ctx, branchID, first, last)
	if err != nil {
		return nil, err
	}

	data, err := report.MonthlyBranchXLSX(branch.Name, first, shifts)
	if err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    report.BranchFilename(branch.Name, first, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}
	s.persist(export)
	s.metrics.ReportsExported.WithLabelValues("branch_xlsx").Inc()

	return export, nil
}

// persist writes a copy of the artifact into the export directory. The
// download response does not depend on it, so failures are logged and
// swallowed.
func (s *ExportService) persist(export *Export) {
	if s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("export directory not writable")
		return
	}

	path := filepath.Join(s.dir, export.Filename)
	if err := os.WriteFile(path, export.Data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("export copy not written")
		return
	}

	s.logger.Info().Str("path", path).Int("bytes", len(export.Data)).Msg("export written")
}
