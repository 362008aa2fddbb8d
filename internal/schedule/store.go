package schedule

import (
	"fmt"

	"github.com/google/uuid"
)

// Action is the sealed set of store mutations. Keeping the set closed
// makes an unhandled kind impossible for external callers; a nil Action
// is still a programmer error and Reduce treats it as fatal.
type Action interface {
	isAction()
}

// AddEvent appends the event to the end of the sequence.
type AddEvent struct {
	Event Event
}

// RemoveEvent removes the first event with a matching id. Removing an
// unknown id is a deliberate no-op, not an error: the caller cannot
// always know whether an earlier removal already happened.
type RemoveEvent struct {
	ID string
}

// UpdateEvent replaces the first event whose id matches. It never
// inserts; updating an unknown id is a no-op.
type UpdateEvent struct {
	Event Event
}

// SetEvents replaces the entire sequence.
type SetEvents struct {
	Events []Event
}

func (AddEvent) isAction()    {}
func (RemoveEvent) isAction() {}
func (UpdateEvent) isAction() {}
func (SetEvents) isAction()   {}

// Reduce applies an action to a state and returns a fresh snapshot.
// The input state is never modified. Dispatching a nil action panics:
// it indicates a caller defect, not a runtime condition, and is kept
// distinct from the not-found no-ops above. The panic is catchable at
// the host boundary.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddEvent:
		events := make([]Event, 0, len(state.Events)+1)
		events = append(events, state.Events...)
		events = append(events, a.Event)
		return State{Events: events}
	case RemoveEvent:
		idx := indexByID(state.Events, a.ID)
		if idx < 0 {
			return state
		}
		events := make([]Event, 0, len(state.Events)-1)
		events = append(events, state.Events[:idx]...)
		events = append(events, state.Events[idx+1:]...)
		return State{Events: events}
	case UpdateEvent:
		idx := indexByID(state.Events, a.Event.ID)
		if idx < 0 {
			return state
		}
		events := make([]Event, len(state.Events))
		copy(events, state.Events)
		events[idx] = a.Event
		return State{Events: events}
	case SetEvents:
		events := make([]Event, len(a.Events))
		copy(events, a.Events)
		return State{Events: events}
	default:
		panic(fmt.Sprintf("schedule: unhandled action %T", action))
	}
}

// indexByID returns the position of the first event with the given id,
// or -1. Id uniqueness is caller discipline; with duplicates, first
// match wins for both update and remove.
func indexByID(events []Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Store owns the in-memory event sequence for the lifetime of one
// scheduler instance. All methods are synchronous; each mutation swaps
// in a new immutable snapshot, so snapshots handed out earlier remain
// safe to read from any view.
type Store struct {
	state State
}

// NewStore creates a store seeded with the given events.
func NewStore(events ...Event) *Store {
	return &Store{state: Reduce(State{}, SetEvents{Events: events})}
}

// Add appends the event, assigning a fresh id when the caller left it
// empty, and returns the event as stored.
func (s *Store) Add(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.state = Reduce(s.state, AddEvent{Event: e})
	return e
}

// Remove deletes the first event with the given id, if any.
func (s *Store) Remove(id string) {
	s.state = Reduce(s.state, RemoveEvent{ID: id})
}

// Update replaces the first event matching e.ID, if any.
func (s *Store) Update(e Event) {
	s.state = Reduce(s.state, UpdateEvent{Event: e})
}

// SetAll atomically replaces the whole sequence.
func (s *Store) SetAll(events []Event) {
	s.state = Reduce(s.state, SetEvents{Events: events})
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() State {
	return s.state
}

// Events returns the current event sequence. The slice belongs to the
// snapshot and must not be mutated by callers.
func (s *Store) Events() []Event {
	return s.state.Events
}

// Len reports the number of stored events.
func (s *Store) Len() int {
	return len(s.state.Events)
}
