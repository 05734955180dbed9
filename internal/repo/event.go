// Package repo contains all database access logic for the Event API server.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kwahlin/daybook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EventRepo defines the persistence operations for events.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record with its
	// DB-generated id.
	Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error)

	// List returns all events ordered by date_start ascending, id ascending.
	// The order is stable so a client reload always sees the same sequence.
	List(ctx context.Context) ([]domain.Event, error)

	// Delete removes an event by id. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id int64) error
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

// Create inserts a new event row and returns the full persisted record.
func (r *pgEventRepo) Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	const q = `
		INSERT INTO events (title, date_start, date_end)
		VALUES (@title, @date_start, @date_end)
		RETURNING id, title, date_start, date_end`

	args := pgx.NamedArgs{
		"title":      draft.Title,
		"date_start": draft.DateStart,
		"date_end":   draft.DateEnd,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

// List returns all events in stable chronological order.
func (r *pgEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	const q = `
		SELECT id, title, date_start, date_end
		FROM events
		ORDER BY date_start, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.List: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: rows: %w", err)
	}

	return events, nil
}

// Delete removes an event by primary key.
func (r *pgEventRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM events WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanEvent to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanEvent maps a single database row into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var ev domain.Event
	err := s.Scan(&ev.ID, &ev.Title, &ev.DateStart, &ev.DateEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}
	return ev, nil
}
