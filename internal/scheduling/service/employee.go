package service

import (
	"context"
	"strings"

	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/httputil"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// CreateEmployeeInput carries the fields for creating an employee. The phone
// number is the German E.164 form without the plus sign.
type CreateEmployeeInput struct {
	FullName  string `json:"full_name" validate:"required,min=1,max=120"`
	PhoneE164 string `json:"phone_e164" validate:"required,de_phone"`
	BranchID  int64  `json:"branch_id" validate:"required,min=1"`
}

// EmployeeService manages employees and their branch assignments.
type EmployeeService struct {
	employees *repository.EmployeeRepository
	bus       *events.Bus
	logger    *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees *repository.EmployeeRepository, bus *events.Bus, log *logger.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		bus:       bus,
		logger:    log.WithComponent("employee"),
	}
}

// Create validates and creates an employee under an owning branch.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*repository.Employee, error) {
	input.FullName = strings.TrimSpace(input.FullName)

	if err := httputil.Validate(input); err != nil {
		return nil, err
	}

	emp := &repository.Employee{
		FullName:  input.FullName,
		PhoneE164: input.PhoneE164,
		BranchID:  input.BranchID,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpCreated, ID: emp.ID})
	s.logger.Info().
		Int64("employee_id", emp.ID).
		Int64("branch_id", emp.BranchID).
		Msg("employee created")

	return emp, nil
}

// Get returns an employee by ID with the owning branch name joined in
func (s *EmployeeService) Get(ctx context.Context, id int64) (*repository.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List lists all employees ordered by full name
func (s *EmployeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	return s.employees.List(ctx)
}

// ListByBranch lists employees whose owning branch is the given one
func (s *EmployeeService) ListByBranch(ctx context.Context, branchID int64) ([]*repository.Employee, error) {
	return s.employees.ListByBranch(ctx, branchID)
}

// GetPhone returns an employee's phone number
func (s *EmployeeService) GetPhone(ctx context.Context, id int64) (string, error) {
	return s.employees.GetPhone(ctx, id)
}

// UpdatePhone updates an employee's phone number after validating its format.
func (s *EmployeeService) UpdatePhone(ctx context.Context, id int64, phoneE164 string) error {
	input := struct {
		PhoneE164 string `json:"phone_e164" validate:"required,de_phone"`
	}{PhoneE164: phoneE164}
	if err := httputil.Validate(input); err != nil {
		return err
	}

	if err := s.employees.UpdatePhone(ctx, id, phoneE164); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpUpdated, ID: id})
	s.logger.Info().Int64("employee_id", id).Msg("employee phone updated")

	return nil
}

// UpdateBranch reassigns an employee to another owning branch. Existing
// shifts keep the branch they were scheduled at.
func (s *EmployeeService) UpdateBranch(ctx context.Context, id int64, branchID int64) error {
	if branchID <= 0 {
		return errors.Validation(map[string]string{
			"branch_id": "must reference an existing branch",
		})
	}

	if err := s.employees.UpdateBranch(ctx, id, branchID); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpUpdated, ID: id})
	s.logger.Info().Int64("employee_id", id).Int64("branch_id", branchID).Msg("employee branch updated")

	return nil
}

// Delete deletes an employee; shifts and time-off cascade away
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpDeleted, ID: id})
	s.logger.Info().Int64("employee_id", id).Msg("employee deleted")

	return nil
}

// Clear deletes all employees; their shifts and time-off cascade away
func (s *EmployeeService) Clear(ctx context.Context) error {
	if err := s.employees.Clear(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpDeleted})
	s.logger.Info().Msg("all employees cleared")

	return nil
}

// AddExtraBranch grants an employee additional visibility under another
// branch. The link is additive only and never moves the employee.
func (s *EmployeeService) AddExtraBranch(ctx context.Context, employeeID, branchID int64) error {
	if err := s.employees.AddExtraBranch(ctx, employeeID, branchID); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpUpdated, ID: employeeID})
	return nil
}

// RemoveExtraBranch removes an extra-branch link
func (s *EmployeeService) RemoveExtraBranch(ctx context.Context, employeeID, branchID int64) error {
	if err := s.employees.RemoveExtraBranch(ctx, employeeID, branchID); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityEmployee, Op: events.OpUpdated, ID: employeeID})
	return nil
}

// ExtraBranches lists the additional branches an employee appears under
func (s *EmployeeService) ExtraBranches(ctx context.Context, employeeID int64) ([]*repository.BranchRef, error) {
	return s.employees.ExtraBranches(ctx, employeeID)
}
