package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljoud/shifts-backend/pkg/logger"
)

func newTestBus() *Bus {
	return NewBus(logger.New("test", "test"))
}

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(time.Second):
		t.Fatal("no change received")
		return Change{}
	}
}

func TestBusDeliversToInterestedSubscribers(t *testing.T) {
	bus := newTestBus()

	shifts, cancelShifts := bus.Subscribe(EntityShift)
	defer cancelShifts()
	branches, cancelBranches := bus.Subscribe(EntityBranch)
	defer cancelBranches()

	bus.Publish(Change{Entity: EntityShift, Op: OpCreated, ID: 7})

	got := receive(t, shifts)
	assert.Equal(t, EntityShift, got.Entity)
	assert.Equal(t, int64(7), got.ID)

	select {
	case c := <-branches:
		t.Fatalf("branch subscriber received unrelated change: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusMultiEntitySubscription(t *testing.T) {
	bus := newTestBus()

	ch, cancel := bus.Subscribe(EntityShift, EntityEmployee)
	defer cancel()

	bus.Publish(Change{Entity: EntityEmployee, Op: OpUpdated, ID: 3})
	assert.Equal(t, EntityEmployee, receive(t, ch).Entity)

	bus.Publish(Change{Entity: EntityShift, Op: OpDeleted, ID: 9})
	assert.Equal(t, EntityShift, receive(t, ch).Entity)
}

func TestBusDropsStaleChangeForSlowSubscriber(t *testing.T) {
	bus := newTestBus()

	ch, cancel := bus.Subscribe(EntityShift)
	defer cancel()

	// Nobody is draining; the second publish replaces the first.
	bus.Publish(Change{Entity: EntityShift, Op: OpCreated, ID: 1})
	bus.Publish(Change{Entity: EntityShift, Op: OpCreated, ID: 2})

	got := receive(t, ch)
	assert.Equal(t, int64(2), got.ID)

	select {
	case c := <-ch:
		t.Fatalf("stale change was not dropped: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := newTestBus()

	ch, cancel := bus.Subscribe(EntityShift)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic.
	bus.Publish(Change{Entity: EntityShift, Op: OpCreated, ID: 1})

	// Cancelling twice is safe.
	cancel()
}
