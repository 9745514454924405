package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aljoud/shifts-backend/internal/metrics"
	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// ShiftStore is the shift persistence surface the scheduling engine writes
// through.
type ShiftStore interface {
	ShiftReader
	Insert(ctx context.Context, shift *repository.Shift) error
	DeleteByID(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	SetTimeOffAndPurge(ctx context.Context, employeeID int64, from, to time.Time) error
}

// RangeOutcome summarizes a bulk range-based shift creation. Partial success
// is normal: each (date, employee) unit is evaluated and committed
// independently.
type RangeOutcome struct {
	Added         int    `json:"added"`
	Conflicts     int    `json:"conflicts"`
	DaysOff       int    `json:"days_off"`
	FirstConflict string `json:"first_conflict,omitempty"`
}

// TimeOffOutcome summarizes a multi-employee time-off grant. Failures are
// independent across employees.
type TimeOffOutcome struct {
	Done   int `json:"done"`
	Failed int `json:"failed"`
}

// Scheduler orchestrates shift creation and time-off assignment, applying the
// conflict checker before every insert.
type Scheduler struct {
	shifts  ShiftStore
	checker *ConflictChecker
	bus     *events.Bus
	metrics *metrics.Metrics
	logger  *logger.Logger

	locks employeeLocks
}

// NewScheduler creates a new scheduling engine
func NewScheduler(
	shifts ShiftStore,
	timeOff TimeOffReader,
	bus *events.Bus,
	m *metrics.Metrics,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		shifts:  shifts,
		checker: NewConflictChecker(shifts, timeOff),
		bus:     bus,
		metrics: m,
		logger:  log.WithComponent("scheduler"),
	}
}

// AddSingleShift validates the window, checks for conflicts and inserts the
// shift. A conflict error carries the window of the earliest conflicting
// shift.
func (s *Scheduler) AddSingleShift(ctx context.Context, shift *repository.Shift) error {
	if !endAfterStart(shift.StartTime, shift.EndTime) {
		return errors.Validation(map[string]string{
			"end_time": "must be after start time",
		})
	}

	unlock := s.locks.lock(shift.EmployeeID)
	defer unlock()

	hasOverlap, err := s.checker.HasOverlap(ctx, shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime)
	if err != nil {
		return err
	}
	if hasOverlap {
		overlap, err := s.checker.FirstOverlap(ctx, shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime)
		if err != nil {
			return err
		}
		s.metrics.ConflictSkips.Inc()
		if overlap != nil {
			return errors.ShiftConflict(overlap.Date.Format("2006-01-02"), overlap.StartTime, overlap.EndTime)
		}
		return errors.Conflict("overlapping shift for the same employee")
	}

	if err := s.shifts.Insert(ctx, shift); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpCreated, ID: shift.ID})
	s.metrics.ShiftsAdded.Inc()

	s.logger.Info().
		Int64("shift_id", shift.ID).
		Int64("employee_id", shift.EmployeeID).
		Time("date", shift.Date).
		Str("start", shift.StartTime).
		Str("end", shift.EndTime).
		Msg("shift added")

	return nil
}

// AddShiftForEmployeesRange creates the same shift window for every employee
// on every date in [from, to]. Day-off and conflicting units are skipped and
// counted; the operation is not atomic across the range. An empty employee
// selection or zero branch is a no-op, not an error.
func (s *Scheduler) AddShiftForEmployeesRange(
	ctx context.Context,
	branchID int64,
	from, to time.Time,
	start, end string,
	employeeIDs []int64,
) (*RangeOutcome, error) {
	if !endAfterStart(start, end) {
		return nil, errors.Validation(map[string]string{
			"end_time": "must be after start time",
		})
	}

	outcome := &RangeOutcome{}
	if branchID == 0 || len(employeeIDs) == 0 {
		return outcome, nil
	}

	opLog := s.logger.WithOperationID(uuid.New().String())
	opLog.Info().
		Int64("branch_id", branchID).
		Time("from", from).
		Time("to", to).
		Int("employees", len(employeeIDs)).
		Msg("bulk shift creation started")

	for _, date := range DatesBetween(from, to) {
		for _, employeeID := range employeeIDs {
			if err := s.addRangeUnit(ctx, branchID, employeeID, date, start, end, outcome, opLog); err != nil {
				return outcome, err
			}
		}
	}

	opLog.Info().
		Int("added", outcome.Added).
		Int("conflicts", outcome.Conflicts).
		Int("days_off", outcome.DaysOff).
		Msg("bulk shift creation finished")

	return outcome, nil
}

// addRangeUnit evaluates and commits one (date, employee) unit under the
// employee's lock.
func (s *Scheduler) addRangeUnit(
	ctx context.Context,
	branchID, employeeID int64,
	date time.Time,
	start, end string,
	outcome *RangeOutcome,
	opLog *logger.Logger,
) error {
	unlock := s.locks.lock(employeeID)
	defer unlock()

	dayOff, err := s.checker.IsDayOff(ctx, employeeID, date)
	if err != nil {
		return err
	}
	if dayOff {
		outcome.DaysOff++
		s.metrics.DayOffSkips.Inc()
		return nil
	}

	hasOverlap, err := s.checker.HasOverlap(ctx, employeeID, date, start, end)
	if err != nil {
		return err
	}
	if hasOverlap {
		outcome.Conflicts++
		s.metrics.ConflictSkips.Inc()
		if outcome.FirstConflict == "" {
			overlap, err := s.checker.FirstOverlap(ctx, employeeID, date, start, end)
			if err != nil {
				return err
			}
			if overlap != nil {
				outcome.FirstConflict = errors.ShiftConflict(
					overlap.Date.Format("2006-01-02"), overlap.StartTime, overlap.EndTime,
				).Message
			}
		}
		return nil
	}

	shift := &repository.Shift{
		EmployeeID: employeeID,
		BranchID:   branchID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
	if err := s.shifts.Insert(ctx, shift); err != nil {
		return err
	}

	outcome.Added++
	s.metrics.ShiftsAdded.Inc()
	s.bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpCreated, ID: shift.ID})

	opLog.Debug().
		Int64("shift_id", shift.ID).
		Int64("employee_id", employeeID).
		Time("date", date).
		Msg("shift added in bulk unit")

	return nil
}

// SetTimeOffForEmployees grants [from, to] as time-off to every employee and
// purges their shifts inside the range. Insert and purge run in one
// transaction per employee; one employee failing does not stop the others.
func (s *Scheduler) SetTimeOffForEmployees(ctx context.Context, from, to time.Time, employeeIDs []int64) (*TimeOffOutcome, error) {
	outcome := &TimeOffOutcome{}
	if len(employeeIDs) == 0 {
		return outcome, nil
	}

	opLog := s.logger.WithOperationID(uuid.New().String())

	for _, employeeID := range employeeIDs {
		unlock := s.locks.lock(employeeID)
		err := s.shifts.SetTimeOffAndPurge(ctx, employeeID, truncateToDay(from), truncateToDay(to))
		unlock()

		if err != nil {
			outcome.Failed++
			opLog.Error().Err(err).
				Int64("employee_id", employeeID).
				Msg("time-off grant failed")
			continue
		}

		outcome.Done++
		s.metrics.TimeOffGranted.Inc()
		s.bus.Publish(events.Change{Entity: events.EntityTimeOff, Op: events.OpCreated, ID: employeeID})
		s.bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpDeleted, ID: employeeID})
	}

	opLog.Info().
		Time("from", from).
		Time("to", to).
		Int("done", outcome.Done).
		Int("failed", outcome.Failed).
		Msg("time-off granted")

	return outcome, nil
}

// DeleteShift deletes a shift directly, no conflict checking needed
func (s *Scheduler) DeleteShift(ctx context.Context, id int64) error {
	if err := s.shifts.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.metrics.ShiftsDeleted.Inc()
	s.bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpDeleted, ID: id})

	s.logger.Info().Int64("shift_id", id).Msg("shift deleted")
	return nil
}

// Clear deletes all shifts
func (s *Scheduler) Clear(ctx context.Context) error {
	if err := s.shifts.Clear(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpDeleted})

	s.logger.Info().Msg("all shifts cleared")
	return nil
}

// employeeLocks serializes check-then-insert sequences per employee so two
// bulk operations touching the same employee cannot interleave between the
// overlap check and the insert.
type employeeLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func (l *employeeLocks) lock(employeeID int64) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[int64]*sync.Mutex)
	}
	em, ok := l.m[employeeID]
	if !ok {
		em = &sync.Mutex{}
		l.m[employeeID] = em
	}
	l.mu.Unlock()

	em.Lock()
	return em.Unlock
}
