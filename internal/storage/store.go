// Package storage provides abstractions for holding screen sessions.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/quicksplit/internal/app"
)

// ErrSessionNotFound is returned for unknown, ended or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// UpdateFunc computes the next state of a session from the current one.
type UpdateFunc func(app.State) app.State

// Store defines the interface for session storage operations.
// Sessions are never persisted; a Store only holds them for the life of
// the process.
type Store interface {
	// Create stores a new session and returns its ID.
	Create(ctx context.Context, state app.State) (string, error)

	// Get returns the current state of a session.
	Get(ctx context.Context, sessionID string) (app.State, error)

	// Update applies fn to the session's state and stores the result.
	// Updates to one store are applied one at a time.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (app.State, error)

	// Delete ends a session and discards its ledger.
	Delete(ctx context.Context, sessionID string) error

	// Len returns the number of live sessions.
	Len() int

	// Close releases any resources held by the store.
	Close() error
}
