// Package recorder tracks the in-progress recording session.
// A Recorder is a two-state machine: Idle (no session) and Recording
// (dateStart holds the instant the open session began). There is at most one
// open session per Recorder.
package recorder

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRecording is returned by Start when a session is already open.
// Starting twice is rejected rather than silently restarted so a UI bug
// cannot quietly discard an in-progress session.
var ErrAlreadyRecording = errors.New("recording already in progress")

// ErrNotRecording is returned by Stop when no session is open.
var ErrNotRecording = errors.New("no recording in progress")

// Recorder holds the current session state. The zero dateStart means Idle.
// Both transitions are synchronous and never block.
type Recorder struct {
	mu        sync.Mutex
	now       func() time.Time
	dateStart time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces the wall clock, letting tests control session start times.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// New returns an idle Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start opens a session, recording the current instant as its start.
// Returns ErrAlreadyRecording (leaving the open session untouched) when a
// session is already in progress.
func (r *Recorder) Start() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dateStart.IsZero() {
		return time.Time{}, ErrAlreadyRecording
	}
	r.dateStart = r.now()
	return r.dateStart, nil
}

// Stop closes the open session, clearing its start instant.
// Returns ErrNotRecording when no session is open.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dateStart.IsZero() {
		return ErrNotRecording
	}
	r.dateStart = time.Time{}
	return nil
}

// DateStart returns the start instant of the open session, or the zero time
// when the Recorder is idle.
func (r *Recorder) DateStart() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dateStart
}

// Recording reports whether a session is open.
func (r *Recorder) Recording() bool {
	return !r.DateStart().IsZero()
}
