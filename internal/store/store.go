// Package store holds the synchronized collection of recorded events.
//
// The Store owns a normalized State value (see state.go) and is its only
// writer: every mutation goes through dispatch, which applies one action to
// the current state under the store mutex and replaces it atomically. Remote
// calls happen between the Requested dispatch and the terminal dispatch, so
// requests of different kinds can be in flight at once without ever racing on
// the collection itself.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kwahlin/daybook/internal/domain"
)

// loadFailedMessage is the user-facing message attached to a failed load.
// Create and delete failures carry no message.
const loadFailedMessage = "Failed to load events."

// placeholderTitle is the title given to events saved from a recording
// session; the tool has no title input yet.
const placeholderTitle = "No name"

// ErrNoActiveSession is returned by CreateFromSession when the recorder has
// no open session. The store refuses to send an empty dateStart to the
// server rather than guessing one.
var ErrNoActiveSession = errors.New("no active recording session")

// EventAPI is the remote collaborator the store synchronizes against.
// apiclient.Client satisfies it; tests substitute a double.
type EventAPI interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// Store is the event-store state container.
type Store struct {
	mu    sync.Mutex
	state State
	api   EventAPI
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for a created event's dateEnd.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty Store backed by the given remote API.
func New(api EventAPI, opts ...Option) *Store {
	s := &Store{
		state: newState(),
		api:   api,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dispatch applies one action to the current state. This is the only place
// the state is replaced.
func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	s.mu.Unlock()
}

// Load fetches all events from the server and, on success, replaces the
// collection with the result in server order. On any failure — transport,
// status or decoding — the collection is left untouched and the load status
// becomes Failed with a user-facing message.
func (s *Store) Load(ctx context.Context) error {
	s.dispatch(loadRequested{})

	events, err := s.api.List(ctx)
	if err != nil {
		s.dispatch(loadFailed{message: loadFailedMessage})
		return fmt.Errorf("store.Store.Load: %w", err)
	}

	s.dispatch(loadSucceeded{events: events})
	return nil
}

// CreateFromSession saves the recording session that began at sessionStart as
// a new event: dateStart is the session start, dateEnd is now, and the title
// is a fixed placeholder. The server-assigned record is appended to the
// collection on success; on failure nothing changes.
//
// A zero sessionStart means no session is open; the call is rejected with
// ErrNoActiveSession before any request state changes.
func (s *Store) CreateFromSession(ctx context.Context, sessionStart time.Time) (domain.Event, error) {
	if sessionStart.IsZero() {
		return domain.Event{}, fmt.Errorf("store.Store.CreateFromSession: %w", ErrNoActiveSession)
	}

	s.dispatch(createRequested{})

	draft := domain.EventDraft{
		Title:     placeholderTitle,
		DateStart: sessionStart,
		DateEnd:   s.now(),
	}
	created, err := s.api.Create(ctx, draft)
	if err != nil {
		s.dispatch(createFailed{})
		return domain.Event{}, fmt.Errorf("store.Store.CreateFromSession: %w", err)
	}

	s.dispatch(createSucceeded{event: created})
	return created, nil
}

// Delete removes the event with the given id, on the server first and then —
// only once the server confirms — from the collection, in a single state
// transition covering both the id order and the mapping. On failure the
// record stays visible.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.dispatch(deleteRequested{})

	if err := s.api.Delete(ctx, id); err != nil {
		s.dispatch(deleteFailed{})
		return fmt.Errorf("store.Store.Delete: %w", err)
	}

	s.dispatch(deleteSucceeded{id: id})
	return nil
}

// Events returns the current collection in display order.
func (s *Store) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]domain.Event, 0, len(s.state.AllIDs))
	for _, id := range s.state.AllIDs {
		events = append(events, s.state.ByID[id])
	}
	return events
}

// Get returns the event with the given id, if present.
func (s *Store) Get(id int64) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.state.ByID[id]
	return ev, ok
}

// Snapshot returns a deep copy of the full state. Mutating the copy has no
// effect on the store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// LoadState returns the lifecycle state of the load operation.
func (s *Store) LoadState() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Load
}

// CreateState returns the lifecycle state of the create operation.
func (s *Store) CreateState() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Create
}

// DeleteState returns the lifecycle state of the delete operation.
func (s *Store) DeleteState() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Delete
}
