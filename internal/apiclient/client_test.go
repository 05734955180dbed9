package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwahlin/daybook/internal/apiclient"
	"github.com/kwahlin/daybook/internal/domain"
)

func eventFixture() domain.Event {
	return domain.Event{
		ID:        1,
		Title:     "No name",
		DateStart: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestList_OK(t *testing.T) {
	events := []domain.Event{eventFixture()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(events))
	}))
	defer srv.Close()

	got, err := apiclient.New(srv.URL).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, events[0].ID, got[0].ID)
	assert.True(t, got[0].DateStart.Equal(events[0].DateStart), "ISO-8601 timestamp must round-trip")
}

func TestList_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).List(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestList_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).List(context.Background())

	assert.Error(t, err)
}

func TestCreate_OK(t *testing.T) {
	draft := domain.EventDraft{
		Title:     "No name",
		DateStart: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received domain.EventDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, draft.Title, received.Title)
		assert.True(t, received.DateStart.Equal(draft.DateStart))

		created := domain.Event{ID: 42, Title: received.Title, DateStart: received.DateStart, DateEnd: received.DateEnd}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(created))
	}))
	defer srv.Close()

	created, err := apiclient.New(srv.URL).Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID, "server-assigned id")
}

func TestCreate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).Create(context.Background(), domain.EventDraft{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected status 422")
}

func TestDelete_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/events/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, apiclient.New(srv.URL).Delete(context.Background(), 7))
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := apiclient.New(srv.URL).Delete(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL + "/").List(context.Background())

	assert.NoError(t, err)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := apiclient.New(srv.URL).List(context.Background())

	assert.Error(t, err)
}
