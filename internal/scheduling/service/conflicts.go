package service

import (
	"context"
	"time"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
)

// ShiftReader provides the overlap reads the conflict checker needs
type ShiftReader interface {
	CountOverlaps(ctx context.Context, employeeID int64, date time.Time, start, end string) (int, error)
	FirstOverlap(ctx context.Context, employeeID int64, date time.Time, start, end string) (*repository.Shift, error)
}

// TimeOffReader provides the day-off read the conflict checker needs
type TimeOffReader interface {
	IsDayOff(ctx context.Context, employeeID int64, date time.Time) (bool, error)
}

// ConflictChecker answers whether a day is marked off or a time window
// overlaps an existing shift. Pure reads against current store state.
type ConflictChecker struct {
	shifts  ShiftReader
	timeOff TimeOffReader
}

// NewConflictChecker creates a new conflict checker
func NewConflictChecker(shifts ShiftReader, timeOff TimeOffReader) *ConflictChecker {
	return &ConflictChecker{
		shifts:  shifts,
		timeOff: timeOff,
	}
}

// IsDayOff reports whether the date falls in any time-off range of the employee
func (c *ConflictChecker) IsDayOff(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	return c.timeOff.IsDayOff(ctx, employeeID, date)
}

// HasOverlap reports whether any shift of the employee on the date intersects
// the [start,end) window. A shift ending exactly when another begins does not
// overlap.
func (c *ConflictChecker) HasOverlap(ctx context.Context, employeeID int64, date time.Time, start, end string) (bool, error) {
	count, err := c.shifts.CountOverlaps(ctx, employeeID, date, start, end)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FirstOverlap returns the earliest-starting conflicting shift, or nil when
// the window is free. Used to report a concrete conflict reason.
func (c *ConflictChecker) FirstOverlap(ctx context.Context, employeeID int64, date time.Time, start, end string) (*repository.Shift, error) {
	return c.shifts.FirstOverlap(ctx, employeeID, date, start, end)
}
