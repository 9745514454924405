package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/errors"
)

// Employee represents an employee assigned to an owning branch
type Employee struct {
	ID        int64     `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	PhoneE164 string    `db:"phone_e164" json:"phone_e164"`
	BranchID  int64     `db:"branch_id" json:"branch_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined field (populated by List)
	BranchName *string `db:"branch_name" json:"branch_name,omitempty"`
}

// BranchRef is a lightweight branch reference used for extra-branch listings
type BranchRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// EmployeeRepository handles employee persistence, including the additive
// employee/branch extra-access mapping.
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts an employee
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	query := `
		INSERT INTO employees (full_name, phone_e164, branch_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, emp.FullName, emp.PhoneE164, emp.BranchID).
		Scan(&emp.ID, &emp.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// GetByID gets an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	var emp Employee

	query := `
		SELECT e.id, e.full_name, e.phone_e164, e.branch_id, e.created_at,
		       b.name AS branch_name
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.id = $1
	`
	err := r.db.GetContext(ctx, &emp, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// List lists all employees with their owning branch name, ordered by name
func (r *EmployeeRepository) List(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee

	query := `
		SELECT e.id, e.full_name, e.phone_e164, e.branch_id, e.created_at,
		       b.name AS branch_name
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		ORDER BY e.full_name
	`
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}

	return employees, nil
}

// ListByBranch lists employees whose owning branch is the given one
func (r *EmployeeRepository) ListByBranch(ctx context.Context, branchID int64) ([]*Employee, error) {
	var employees []*Employee

	query := `
		SELECT e.id, e.full_name, e.phone_e164, e.branch_id, e.created_at,
		       b.name AS branch_name
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.branch_id = $1
		ORDER BY e.full_name
	`
	if err := r.db.SelectContext(ctx, &employees, query, branchID); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetPhone gets an employee's phone number
func (r *EmployeeRepository) GetPhone(ctx context.Context, id int64) (string, error) {
	var phone string

	err := r.db.GetContext(ctx, &phone, `SELECT phone_e164 FROM employees WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return "", errors.NotFound("employee")
	}
	if err != nil {
		return "", err
	}

	return phone, nil
}

// UpdatePhone updates an employee's phone number
func (r *EmployeeRepository) UpdatePhone(ctx context.Context, id int64, phoneE164 string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees SET phone_e164 = $2 WHERE id = $1`, id, phoneE164)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}

	return nil
}

// UpdateBranch reassigns an employee to another owning branch
func (r *EmployeeRepository) UpdateBranch(ctx context.Context, id int64, branchID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees SET branch_id = $2 WHERE id = $1`, id, branchID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}

	return nil
}

// Delete deletes an employee; shifts and time-off cascade away with it
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}

	return nil
}

// Clear deletes all employees
func (r *EmployeeRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM employees`)
	return err
}

// AddExtraBranch links an employee to an additional branch. Re-adding an
// existing link is a no-op.
func (r *EmployeeRepository) AddExtraBranch(ctx context.Context, employeeID, branchID int64) error {
	query := `
		INSERT INTO employee_branch_extra (employee_id, branch_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, employeeID, branchID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// RemoveExtraBranch removes an extra-branch link
func (r *EmployeeRepository) RemoveExtraBranch(ctx context.Context, employeeID, branchID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM employee_branch_extra WHERE employee_id = $1 AND branch_id = $2`,
		employeeID, branchID)
	return err
}

// ExtraBranches lists the additional branches an employee appears under,
// ordered by branch name
func (r *EmployeeRepository) ExtraBranches(ctx context.Context, employeeID int64) ([]*BranchRef, error) {
	var branches []*BranchRef

	query := `
		SELECT b.id, b.name
		FROM employee_branch_extra ebe
		JOIN branches b ON b.id = ebe.branch_id
		WHERE ebe.employee_id = $1
		ORDER BY b.name
	`
	if err := r.db.SelectContext(ctx, &branches, query, employeeID); err != nil {
		return nil, err
	}

	return branches, nil
}
