package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/errors"
)

// Shift is a scheduled work interval for one employee at one branch on one
// date. End is strictly after start; shifts never span midnight.
type Shift struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID int64     `db:"employee_id" json:"employee_id"`
	BranchID   int64     `db:"branch_id" json:"branch_id"`
	Date       time.Time `db:"date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"` // TIME format HH:MM:SS
	EndTime    string    `db:"end_time" json:"end_time"`     // TIME format HH:MM:SS
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ShiftWithNames is a shift joined with the employee and branch display names
type ShiftWithNames struct {
	ID           int64     `db:"id" json:"id"`
	EmployeeID   int64     `db:"employee_id" json:"employee_id"`
	BranchID     int64     `db:"branch_id" json:"branch_id"`
	Date         time.Time `db:"date" json:"date"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	EmployeeName string    `db:"employee_name" json:"employee_name"`
	BranchName   string    `db:"branch_name" json:"branch_name"`
}

// ShiftRepository handles shift persistence and the overlap/day-off reads the
// scheduling engine runs before inserting.
type ShiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Insert inserts a shift
func (r *ShiftRepository) Insert(ctx context.Context, shift *Shift) error {
	query := `
		INSERT INTO shifts (employee_id, branch_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		shift.EmployeeID, shift.BranchID, shift.Date, shift.StartTime, shift.EndTime,
	).Scan(&shift.ID, &shift.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// DeleteByID deletes a shift by ID
func (r *ShiftRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift")
	}

	return nil
}

// Clear deletes all shifts
func (r *ShiftRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shifts`)
	return err
}

// CountOverlaps counts the employee's shifts on the date whose [start,end)
// interval intersects the given window. Touching intervals do not count.
func (r *ShiftRepository) CountOverlaps(ctx context.Context, employeeID int64, date time.Time, start, end string) (int, error) {
	var count int

	query := `
		SELECT COUNT(*) FROM shifts
		WHERE employee_id = $1
		  AND date = $2
		  AND NOT ($4 <= start_time OR $3 >= end_time)
	`
	if err := r.db.GetContext(ctx, &count, query, employeeID, date, start, end); err != nil {
		return 0, err
	}

	return count, nil
}

// FirstOverlap returns the earliest-starting conflicting shift, or nil when
// the window is free.
func (r *ShiftRepository) FirstOverlap(ctx context.Context, employeeID int64, date time.Time, start, end string) (*Shift, error) {
	var shift Shift

	query := `
		SELECT id, employee_id, branch_id, date,
		       start_time::text AS start_time, end_time::text AS end_time,
		       created_at
		FROM shifts
		WHERE employee_id = $1
		  AND date = $2
		  AND NOT ($4 <= start_time OR $3 >= end_time)
		ORDER BY start_time
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &shift, query, employeeID, date, start, end)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

// ListBetween lists all shifts in the inclusive date range, joined with names,
// ordered by date, start time and employee name.
func (r *ShiftRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*ShiftWithNames, error) {
	var shifts []*ShiftWithNames

	query := `
		SELECT s.id, s.employee_id, s.branch_id, s.date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       e.full_name AS employee_name,
		       b.name      AS branch_name
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		JOIN branches  b ON b.id = s.branch_id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date, s.start_time, e.full_name
	`
	if err := r.db.SelectContext(ctx, &shifts, query, from, to); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListForEmployeeBetween lists one employee's shifts in the inclusive range
func (r *ShiftRepository) ListForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*ShiftWithNames, error) {
	var shifts []*ShiftWithNames

	query := `
		SELECT s.id, s.employee_id, s.branch_id, s.date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       e.full_name AS employee_name,
		       b.name      AS branch_name
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		JOIN branches  b ON b.id = s.branch_id
		WHERE s.employee_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.start_time
	`
	if err := r.db.SelectContext(ctx, &shifts, query, employeeID, from, to); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListForBranchBetween lists one branch's shifts in the inclusive range
func (r *ShiftRepository) ListForBranchBetween(ctx context.Context, branchID int64, from, to time.Time) ([]*ShiftWithNames, error) {
	var shifts []*ShiftWithNames

	query := `
		SELECT s.id, s.employee_id, s.branch_id, s.date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       e.full_name AS employee_name,
		       b.name      AS branch_name
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		JOIN branches  b ON b.id = s.branch_id
		WHERE s.branch_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.start_time, e.full_name
	`
	if err := r.db.SelectContext(ctx, &shifts, query, branchID, from, to); err != nil {
		return nil, err
	}

	return shifts, nil
}

// SetTimeOffAndPurge inserts one time-off range for the employee and deletes
// the employee's shifts inside it, as a single transaction. Either both
// mutations commit or neither does.
func (r *ShiftRepository) SetTimeOffAndPurge(ctx context.Context, employeeID int64, from, to time.Time) error {
	return r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO time_off (employee_id, from_date, to_date) VALUES ($1, $2, $3)`,
			employeeID, from, to)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
			return err
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM shifts WHERE employee_id = $1 AND date BETWEEN $2 AND $3`,
			employeeID, from, to)
		return err
	})
}
