package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwahlin/daybook/internal/domain"
	"github.com/kwahlin/daybook/internal/store"
)

// mockEventAPI is a hand-written test double for store.EventAPI.
// Set only the method fields your test needs.
type mockEventAPI struct {
	list   func(ctx context.Context) ([]domain.Event, error)
	create func(ctx context.Context, draft domain.EventDraft) (domain.Event, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockEventAPI) List(ctx context.Context) ([]domain.Event, error) {
	return m.list(ctx)
}
func (m *mockEventAPI) Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	return m.create(ctx, draft)
}
func (m *mockEventAPI) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockEventAPI must satisfy store.EventAPI.
var _ store.EventAPI = (*mockEventAPI)(nil)

// ---- helpers ---------------------------------------------------------------

func eventFixture(id int64) domain.Event {
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour)
	return domain.Event{
		ID:        id,
		Title:     "No name",
		DateStart: start,
		DateEnd:   start.Add(30 * time.Minute),
	}
}

// requireConsistent asserts the normalized-collection invariant: AllIDs and
// ByID agree in membership and AllIDs holds no duplicates.
func requireConsistent(t *testing.T, s store.State) {
	t.Helper()

	require.Len(t, s.AllIDs, len(s.ByID), "AllIDs and ByID must have equal size")
	seen := make(map[int64]bool, len(s.AllIDs))
	for _, id := range s.AllIDs {
		require.False(t, seen[id], "duplicate id %d in AllIDs", id)
		seen[id] = true
		_, ok := s.ByID[id]
		require.True(t, ok, "id %d in AllIDs but missing from ByID", id)
	}
}

// loadedStore returns a store preloaded with the given events.
func loadedStore(t *testing.T, api *mockEventAPI, events []domain.Event) *store.Store {
	t.Helper()

	prevList := api.list
	api.list = func(context.Context) ([]domain.Event, error) { return events, nil }
	st := store.New(api)
	require.NoError(t, st.Load(context.Background()))
	api.list = prevList
	return st
}

// ---- Load ------------------------------------------------------------------

func TestLoad_ReplacesCollectionInServerOrder(t *testing.T) {
	events := []domain.Event{eventFixture(3), eventFixture(1), eventFixture(2)}
	st := store.New(&mockEventAPI{
		list: func(context.Context) ([]domain.Event, error) { return events, nil },
	})

	require.NoError(t, st.Load(context.Background()))

	assert.Equal(t, events, st.Events(), "server order must be preserved")
	assert.Equal(t, store.StatusSucceeded, st.LoadState().Status)
	requireConsistent(t, st.Snapshot())
}

func TestLoad_SecondLoadReplacesFirst(t *testing.T) {
	api := &mockEventAPI{}
	st := loadedStore(t, api, []domain.Event{eventFixture(1), eventFixture(2)})

	replacement := []domain.Event{eventFixture(9)}
	api.list = func(context.Context) ([]domain.Event, error) { return replacement, nil }

	require.NoError(t, st.Load(context.Background()))

	assert.Equal(t, replacement, st.Events())
	requireConsistent(t, st.Snapshot())
}

func TestLoad_FailureLeavesCollectionUntouched(t *testing.T) {
	api := &mockEventAPI{}
	loaded := []domain.Event{eventFixture(1), eventFixture(2)}
	st := loadedStore(t, api, loaded)

	api.list = func(context.Context) ([]domain.Event, error) {
		return nil, errors.New("connection refused")
	}

	err := st.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, loaded, st.Events(), "failed load must not corrupt the collection")
	assert.Equal(t, store.StatusFailed, st.LoadState().Status)
	assert.Equal(t, "Failed to load events.", st.LoadState().Message)
	requireConsistent(t, st.Snapshot())
}

func TestLoad_RequestedObservableWhileInFlight(t *testing.T) {
	var st *store.Store
	api := &mockEventAPI{
		list: func(context.Context) ([]domain.Event, error) {
			// The Requested transition is applied before the remote call is
			// issued, so it must be visible from inside the call.
			assert.Equal(t, store.StatusRequested, st.LoadState().Status)
			return nil, nil
		},
	}
	st = store.New(api)

	require.NoError(t, st.Load(context.Background()))
	assert.Equal(t, store.StatusSucceeded, st.LoadState().Status)
}

// ---- CreateFromSession -----------------------------------------------------

func TestCreateFromSession_BuildsDraftFromSession(t *testing.T) {
	sessionStart := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	creationInstant := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

	var sent domain.EventDraft
	api := &mockEventAPI{
		create: func(_ context.Context, draft domain.EventDraft) (domain.Event, error) {
			sent = draft
			return domain.Event{ID: 7, Title: draft.Title, DateStart: draft.DateStart, DateEnd: draft.DateEnd}, nil
		},
	}
	st := store.New(api, store.WithClock(func() time.Time { return creationInstant }))

	created, err := st.CreateFromSession(context.Background(), sessionStart)

	require.NoError(t, err)
	assert.Equal(t, "No name", sent.Title)
	assert.Equal(t, sessionStart, sent.DateStart)
	assert.Equal(t, creationInstant, sent.DateEnd)
	assert.Equal(t, int64(7), created.ID)

	assert.Equal(t, []domain.Event{created}, st.Events(), "created event appended to collection")
	assert.Equal(t, store.StatusSucceeded, st.CreateState().Status)
	requireConsistent(t, st.Snapshot())
}

func TestCreateFromSession_AppendsAfterLoadedEvents(t *testing.T) {
	api := &mockEventAPI{}
	st := loadedStore(t, api, []domain.Event{eventFixture(1), eventFixture(2)})

	created := eventFixture(3)
	api.create = func(context.Context, domain.EventDraft) (domain.Event, error) {
		return created, nil
	}

	_, err := st.CreateFromSession(context.Background(), created.DateStart)

	require.NoError(t, err)
	events := st.Events()
	require.Len(t, events, 3)
	assert.Equal(t, created, events[2], "create appends at the end")
	requireConsistent(t, st.Snapshot())
}

func TestCreateFromSession_NoActiveSession(t *testing.T) {
	st := store.New(&mockEventAPI{
		create: func(context.Context, domain.EventDraft) (domain.Event, error) {
			t.Fatal("no request must be issued without a session")
			return domain.Event{}, nil
		},
	})

	_, err := st.CreateFromSession(context.Background(), time.Time{})

	assert.ErrorIs(t, err, store.ErrNoActiveSession)
	assert.Equal(t, store.StatusIdle, st.CreateState().Status, "rejection happens before any state change")
	assert.Empty(t, st.Events())
}

func TestCreateFromSession_FailureMutatesNothing(t *testing.T) {
	api := &mockEventAPI{}
	loaded := []domain.Event{eventFixture(1)}
	st := loadedStore(t, api, loaded)

	api.create = func(context.Context, domain.EventDraft) (domain.Event, error) {
		return domain.Event{}, errors.New("boom")
	}

	_, err := st.CreateFromSession(context.Background(), time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.Equal(t, loaded, st.Events())
	assert.Equal(t, store.StatusFailed, st.CreateState().Status)
	assert.Empty(t, st.CreateState().Message, "create failures carry no user-facing message")
	requireConsistent(t, st.Snapshot())
}

// ---- Delete ----------------------------------------------------------------

func TestDelete_RemovesFromOrderAndMappingAtomically(t *testing.T) {
	api := &mockEventAPI{}
	st := loadedStore(t, api, []domain.Event{eventFixture(1), eventFixture(2), eventFixture(3)})

	api.delete = func(_ context.Context, id int64) error {
		assert.Equal(t, int64(2), id)
		return nil
	}

	require.NoError(t, st.Delete(context.Background(), 2))

	snapshot := st.Snapshot()
	requireConsistent(t, snapshot)
	_, ok := snapshot.ByID[2]
	assert.False(t, ok)
	assert.Equal(t, []int64{1, 3}, snapshot.AllIDs)
	assert.Equal(t, store.StatusSucceeded, st.DeleteState().Status)
}

func TestDelete_FailureKeepsRecordVisible(t *testing.T) {
	api := &mockEventAPI{}
	loaded := []domain.Event{eventFixture(1), eventFixture(2)}
	st := loadedStore(t, api, loaded)

	api.delete = func(context.Context, int64) error { return errors.New("boom") }

	err := st.Delete(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, loaded, st.Events())
	assert.Equal(t, store.StatusFailed, st.DeleteState().Status)
	requireConsistent(t, st.Snapshot())
}

// ---- cross-operation invariants --------------------------------------------

// TestOperationSequence_CollectionStaysConsistent drives a mixed sequence of
// loads, creates and deletes (including failures) and checks the normalized
// collection invariant after every step.
func TestOperationSequence_CollectionStaysConsistent(t *testing.T) {
	api := &mockEventAPI{}
	st := store.New(api)
	ctx := context.Background()
	check := func() { requireConsistent(t, st.Snapshot()) }

	api.list = func(context.Context) ([]domain.Event, error) {
		return []domain.Event{eventFixture(1), eventFixture(2)}, nil
	}
	require.NoError(t, st.Load(ctx))
	check()

	api.create = func(context.Context, domain.EventDraft) (domain.Event, error) {
		return eventFixture(3), nil
	}
	_, err := st.CreateFromSession(ctx, time.Now())
	require.NoError(t, err)
	check()

	api.delete = func(context.Context, int64) error { return errors.New("boom") }
	require.Error(t, st.Delete(ctx, 1))
	check()

	api.delete = func(context.Context, int64) error { return nil }
	require.NoError(t, st.Delete(ctx, 1))
	check()

	api.list = func(context.Context) ([]domain.Event, error) {
		return nil, errors.New("down")
	}
	require.Error(t, st.Load(ctx))
	check()

	assert.Equal(t, []int64{2, 3}, st.Snapshot().AllIDs)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	api := &mockEventAPI{}
	st := loadedStore(t, api, []domain.Event{eventFixture(1)})

	snapshot := st.Snapshot()
	snapshot.ByID[99] = eventFixture(99)
	snapshot.AllIDs[0] = 99

	fresh := st.Snapshot()
	_, ok := fresh.ByID[99]
	assert.False(t, ok, "mutating a snapshot must not affect the store")
	assert.Equal(t, []int64{1}, fresh.AllIDs)
}
