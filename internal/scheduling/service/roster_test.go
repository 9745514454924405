package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// fakeShiftLister records which list variant was called and returns canned
// snapshots.
type fakeShiftLister struct {
	all      []*repository.ShiftWithNames
	lastCall string
}

func (f *fakeShiftLister) ListBetween(context.Context, time.Time, time.Time) ([]*repository.ShiftWithNames, error) {
	f.lastCall = "all"
	return f.all, nil
}

func (f *fakeShiftLister) ListForEmployeeBetween(_ context.Context, employeeID int64, _, _ time.Time) ([]*repository.ShiftWithNames, error) {
	f.lastCall = "employee"
	var out []*repository.ShiftWithNames
	for _, s := range f.all {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftLister) ListForBranchBetween(_ context.Context, branchID int64, _, _ time.Time) ([]*repository.ShiftWithNames, error) {
	f.lastCall = "branch"
	var out []*repository.ShiftWithNames
	for _, s := range f.all {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func testShifts() []*repository.ShiftWithNames {
	return []*repository.ShiftWithNames{
		{ID: 1, EmployeeID: 1, BranchID: 1, Date: date(2025, time.March, 10), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Amira Hassan", BranchName: "BerlinerTor"},
		{ID: 2, EmployeeID: 2, BranchID: 2, Date: date(2025, time.March, 10), StartTime: "15:00:00", EndTime: "23:00:00", EmployeeName: "Omar Khalil", BranchName: "Hansaplatz"},
	}
}

func TestRosterRangeFilters(t *testing.T) {
	ctx := context.Background()
	log := logger.New("test", "test")

	t.Run("no filter lists everything", func(t *testing.T) {
		lister := &fakeShiftLister{all: testShifts()}
		svc := NewRosterService(lister, events.NewBus(log), log)

		roster, err := svc.Range(ctx, date(2025, time.March, 10), date(2025, time.March, 16), RosterFilter{})
		require.NoError(t, err)
		assert.Equal(t, "all", lister.lastCall)
		assert.Len(t, roster.Shifts, 2)
	})

	t.Run("employee filter wins over branch filter", func(t *testing.T) {
		lister := &fakeShiftLister{all: testShifts()}
		svc := NewRosterService(lister, events.NewBus(log), log)

		roster, err := svc.Range(ctx, date(2025, time.March, 10), date(2025, time.March, 16),
			RosterFilter{EmployeeID: 1, BranchID: 2})
		require.NoError(t, err)
		assert.Equal(t, "employee", lister.lastCall)
		require.Len(t, roster.Shifts, 1)
		assert.Equal(t, int64(1), roster.Shifts[0].EmployeeID)
	})

	t.Run("branch filter", func(t *testing.T) {
		lister := &fakeShiftLister{all: testShifts()}
		svc := NewRosterService(lister, events.NewBus(log), log)

		roster, err := svc.Range(ctx, date(2025, time.March, 10), date(2025, time.March, 16),
			RosterFilter{BranchID: 2})
		require.NoError(t, err)
		assert.Equal(t, "branch", lister.lastCall)
		require.Len(t, roster.Shifts, 1)
		assert.Equal(t, "Hansaplatz", roster.Shifts[0].BranchName)
	})
}

func TestRosterWeekWindow(t *testing.T) {
	ctx := context.Background()
	log := logger.New("test", "test")
	lister := &fakeShiftLister{}
	svc := NewRosterService(lister, events.NewBus(log), log)

	roster, err := svc.Week(ctx, date(2025, time.March, 12), RosterFilter{})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), roster.From)
	assert.Equal(t, date(2025, time.March, 16), roster.To)
}

func TestRosterMonthWindow(t *testing.T) {
	ctx := context.Background()
	log := logger.New("test", "test")
	lister := &fakeShiftLister{}
	svc := NewRosterService(lister, events.NewBus(log), log)

	roster, err := svc.Month(ctx, date(2025, time.February, 14), RosterFilter{})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.February, 1), roster.From)
	assert.Equal(t, date(2025, time.February, 28), roster.To)
}

func TestRosterWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := logger.New("test", "test")
	bus := events.NewBus(log)
	lister := &fakeShiftLister{all: testShifts()}
	svc := NewRosterService(lister, bus, log)

	snapshots, err := svc.Watch(ctx, date(2025, time.March, 10), date(2025, time.March, 16), RosterFilter{})
	require.NoError(t, err)

	// Initial snapshot arrives without any change being published.
	select {
	case roster := <-snapshots:
		assert.Len(t, roster.Shifts, 2)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	lister.all = append(lister.all, &repository.ShiftWithNames{
		ID: 3, EmployeeID: 1, BranchID: 1,
		Date: date(2025, time.March, 11), StartTime: "09:00:00", EndTime: "17:00:00",
		EmployeeName: "Amira Hassan", BranchName: "BerlinerTor",
	})
	bus.Publish(events.Change{Entity: events.EntityShift, Op: events.OpCreated, ID: 3})

	select {
	case roster := <-snapshots:
		assert.Len(t, roster.Shifts, 3)
	case <-time.After(time.Second):
		t.Fatal("no refreshed snapshot after change")
	}

	cancel()

	select {
	case _, open := <-snapshots:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
