// Package handler implements the HTTP handlers for the Event API.
// All handlers are methods on Server; Routes wires them into a chi router.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kwahlin/daybook/internal/domain"
	"github.com/kwahlin/daybook/spec"
)

// EventServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type EventServicer interface {
	Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// Server implements the HTTP surface of the Event API.
type Server struct {
	events EventServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(events EventServicer) *Server {
	return &Server{events: events}
}

// Routes returns a router with every API route registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/events", s.ListEvents)
	r.Post("/events", s.CreateEvent)
	r.Delete("/events/{id}", s.DeleteEvent)
	return r
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded spec so the
// document and the running code are always in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeInternalError logs err and returns an opaque 500 body.
// Internal details never reach the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}
