package store

import "github.com/kwahlin/daybook/internal/domain"

// Status is the lifecycle phase of one request kind.
// There is no transition back to Idle; a new request of the same kind simply
// re-enters Requested.
type Status int

const (
	// StatusIdle means no request of this kind has been issued yet.
	StatusIdle Status = iota
	// StatusRequested means a request is in flight.
	StatusRequested
	// StatusSucceeded means the most recent request completed successfully.
	StatusSucceeded
	// StatusFailed means the most recent request failed; the collection was
	// left untouched.
	StatusFailed
)

// String implements fmt.Stringer for log lines and test failure messages.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequested:
		return "requested"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState is the observable state of one request kind.
// Message is a user-facing failure message; it is only non-empty when
// Status is StatusFailed and the operation defines one (load does, create
// and delete fail silently).
type RequestState struct {
	Status  Status
	Message string
}

// State is the full event-store state: a normalized event table plus the
// lifecycle of each request kind.
//
// ByID and AllIDs always agree: every id in AllIDs has an entry in ByID and
// vice versa, and no id appears twice in AllIDs. AllIDs defines display
// order — a load replaces it with server order, a create appends, a delete
// removes.
type State struct {
	ByID   map[int64]domain.Event
	AllIDs []int64

	Load   RequestState
	Create RequestState
	Delete RequestState
}

// newState returns an empty initial state.
func newState() State {
	return State{
		ByID:   make(map[int64]domain.Event),
		AllIDs: []int64{},
	}
}

// clone returns a deep copy of s, so snapshots handed to callers can never
// alias the store's live maps and slices.
func (s State) clone() State {
	next := s
	next.ByID = make(map[int64]domain.Event, len(s.ByID))
	for id, ev := range s.ByID {
		next.ByID[id] = ev
	}
	next.AllIDs = append([]int64(nil), s.AllIDs...)
	return next
}
