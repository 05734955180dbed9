// Package service contains the business logic for the Event API server.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kwahlin/daybook/internal/domain"
	"github.com/kwahlin/daybook/internal/repo"
)

// EventService implements business logic for event operations.
type EventService struct {
	repo repo.EventRepo
}

// NewEventService constructs an EventService backed by the provided EventRepo.
func NewEventService(r repo.EventRepo) *EventService {
	return &EventService{repo: r}
}

// Create validates and persists a new event, returning the record with its
// server-assigned id. Returns domain.ErrValidation if input violates
// business rules.
func (s *EventService) Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Event{}, err
	}
	result, err := s.repo.Create(ctx, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return result, nil
}

// List returns all events in stable chronological order.
// Always returns a non-nil slice so the handler encodes [] rather than null.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}

// Delete removes an event by id.
// Returns domain.ErrNotFound if no event with that id exists.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// validateDraft enforces business rules for event creation.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Both timestamps must be set.
//   - dateEnd must not be before dateStart.
func validateDraft(draft domain.EventDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if draft.DateStart.IsZero() {
		return fmt.Errorf("%w: dateStart is required", domain.ErrValidation)
	}
	if draft.DateEnd.IsZero() {
		return fmt.Errorf("%w: dateEnd is required", domain.ErrValidation)
	}
	if draft.DateEnd.Before(draft.DateStart) {
		return fmt.Errorf("%w: dateEnd must not be before dateStart", domain.ErrValidation)
	}
	return nil
}
