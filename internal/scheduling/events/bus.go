// Package events carries store-change notifications between the services
// that mutate scheduling records and the roster views that project them.
package events

import (
	"sync"

	"github.com/aljoud/shifts-backend/pkg/logger"
)

// Entity identifies the record kind a change applies to.
type Entity string

const (
	EntityBranch   Entity = "branch"
	EntityEmployee Entity = "employee"
	EntityTemplate Entity = "shift_template"
	EntityTimeOff  Entity = "time_off"
	EntityShift    Entity = "shift"
)

// Op identifies the kind of committed mutation.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change describes one committed mutation of the store.
type Change struct {
	Entity Entity `json:"entity"`
	Op     Op     `json:"op"`
	ID     int64  `json:"id,omitempty"`
}

type subscriber struct {
	entities map[Entity]struct{}
	ch       chan Change
}

// Bus is an in-process publish/subscribe channel over store-change events.
// Publishing never blocks: a subscriber that has fallen behind loses
// intermediate changes, which is harmless because consumers re-read a full
// snapshot per notification.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	logger *logger.Logger
}

// NewBus creates a new change bus.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]*subscriber),
		logger: log.WithComponent("events"),
	}
}

// Publish notifies all subscribers interested in the change's entity.
func (b *Bus) Publish(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if _, ok := sub.entities[change.Entity]; !ok {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			// Slow subscriber: replace the stale pending change.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- change:
			default:
			}
		}
	}

	b.logger.Debug().
		Str("entity", string(change.Entity)).
		Str("op", string(change.Op)).
		Int64("id", change.ID).
		Msg("store change published")
}

// Subscribe registers interest in changes to the given entities. The returned
// cancel function must be called to release the subscription.
func (b *Bus) Subscribe(entities ...Entity) (<-chan Change, func()) {
	set := make(map[Entity]struct{}, len(entities))
	for _, e := range entities {
		set[e] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	sub := &subscriber{
		entities: set,
		ch:       make(chan Change, 1),
	}
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}

	return sub.ch, cancel
}
