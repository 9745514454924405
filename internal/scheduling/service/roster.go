package service

import (
	"context"
	"time"

	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// ShiftLister provides the roster reads, joined with display names.
type ShiftLister interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]*repository.ShiftWithNames, error)
	ListForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*repository.ShiftWithNames, error)
	ListForBranchBetween(ctx context.Context, branchID int64, from, to time.Time) ([]*repository.ShiftWithNames, error)
}

// RosterFilter narrows a roster query to one employee or one branch. Zero
// values mean no filtering on that axis; employee wins when both are set.
type RosterFilter struct {
	EmployeeID int64
	BranchID   int64
}

// Roster is a snapshot of shifts over a date window.
type Roster struct {
	From   time.Time                    `json:"from"`
	To     time.Time                    `json:"to"`
	Shifts []*repository.ShiftWithNames `json:"shifts"`
}

// RosterService answers date-windowed roster queries and streams fresh
// snapshots whenever the underlying records change.
type RosterService struct {
	shifts ShiftLister
	bus    *events.Bus
	logger *logger.Logger
}

// NewRosterService creates a new roster service
func NewRosterService(shifts ShiftLister, bus *events.Bus, log *logger.Logger) *RosterService {
	return &RosterService{
		shifts: shifts,
		bus:    bus,
		logger: log.WithComponent("roster"),
	}
}

// Range returns the roster for an inclusive date range.
func (s *RosterService) Range(ctx context.Context, from, to time.Time, filter RosterFilter) (*Roster, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)

	shifts, err := s.list(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}

	return &Roster{From: from, To: to, Shifts: shifts}, nil
}

// Week returns the roster for the Monday-started week containing the date.
func (s *RosterService) Week(ctx context.Context, date time.Time, filter RosterFilter) (*Roster, error) {
	start := WeekStart(date)
	return s.Range(ctx, start, start.AddDate(0, 0, 6), filter)
}

// Month returns the roster for the calendar month containing the date.
func (s *RosterService) Month(ctx context.Context, date time.Time, filter RosterFilter) (*Roster, error) {
	first, last := MonthRange(date)
	return s.Range(ctx, first, last, filter)
}

// Watch emits the current roster for the window immediately, then a fresh
// snapshot after every relevant store change, until the context is cancelled.
// Intermediate changes may be coalesced into one snapshot.
func (s *RosterService) Watch(ctx context.Context, from, to time.Time, filter RosterFilter) (<-chan *Roster, error) {
	first, err := s.Range(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}

	changes, cancel := s.bus.Subscribe(events.EntityShift, events.EntityEmployee, events.EntityBranch)

	out := make(chan *Roster, 1)
	out <- first

	go func() {
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}

			roster, err := s.Range(ctx, from, to, filter)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error().Err(err).Msg("roster refresh failed")
				continue
			}

			// Drop a stale pending snapshot so the consumer always
			// receives the newest one.
			select {
			case out <- roster:
			default:
				select {
				case <-out:
				default:
				}
				out <- roster
			}
		}
	}()

	return out, nil
}

func (s *RosterService) list(ctx context.Context, from, to time.Time, filter RosterFilter) ([]*repository.ShiftWithNames, error) {
	switch {
	case filter.EmployeeID != 0:
		return s.shifts.ListForEmployeeBetween(ctx, filter.EmployeeID, from, to)
	case filter.BranchID != 0:
		return s.shifts.ListForBranchBetween(ctx, filter.BranchID, from, to)
	default:
		return s.shifts.ListBetween(ctx, from, to)
	}
}
