package repository

import (
	"context"
	"time"

	"github.com/aljoud/shifts-backend/pkg/database"
)

// TimeOff is an inclusive date range during which an employee is unavailable.
// Ranges for one employee may overlap each other; no dedup is attempted.
type TimeOff struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID int64     `db:"employee_id" json:"employee_id"`
	FromDate   time.Time `db:"from_date" json:"from_date"`
	ToDate     time.Time `db:"to_date" json:"to_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TimeOffRepository handles time-off persistence
type TimeOffRepository struct {
	db *database.DB
}

// NewTimeOffRepository creates a new time-off repository
func NewTimeOffRepository(db *database.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

// List lists all time-off ranges, most recent first
func (r *TimeOffRepository) List(ctx context.Context) ([]*TimeOff, error) {
	var ranges []*TimeOff

	query := `
		SELECT id, employee_id, from_date, to_date, created_at
		FROM time_off
		ORDER BY from_date DESC
	`
	if err := r.db.SelectContext(ctx, &ranges, query); err != nil {
		return nil, err
	}

	return ranges, nil
}

// IsDayOff reports whether the date falls inside any time-off range of the
// employee (inclusive on both ends).
func (r *TimeOffRepository) IsDayOff(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	var count int

	query := `
		SELECT COUNT(*) FROM time_off
		WHERE employee_id = $1
		  AND $2 BETWEEN from_date AND to_date
	`
	if err := r.db.GetContext(ctx, &count, query, employeeID, date); err != nil {
		return false, err
	}

	return count > 0, nil
}

// DeleteForEmployee deletes all time-off ranges of an employee
func (r *TimeOffRepository) DeleteForEmployee(ctx context.Context, employeeID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_off WHERE employee_id = $1`, employeeID)
	return err
}

// Clear deletes all time-off ranges
func (r *TimeOffRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_off`)
	return err
}
