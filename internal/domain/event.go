// Package domain contains the core data types for daybook.
// This package has zero external dependencies and is imported by every other
// internal package (store, apiclient, calendar, repo, service, handler).
package domain

import "time"

// Event represents a single recorded time interval.
// Timestamps travel as ISO-8601 text on the wire; the json tags match the
// Event API's field names exactly.
type Event struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	DateStart time.Time `json:"dateStart"`
	DateEnd   time.Time `json:"dateEnd"`
}

// EventDraft is an event before the server has assigned it an id.
// It is the request body of POST /events.
type EventDraft struct {
	Title     string    `json:"title"`
	DateStart time.Time `json:"dateStart"`
	DateEnd   time.Time `json:"dateEnd"`
}
