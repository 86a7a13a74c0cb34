// Package memory provides an in-memory implementation of the storage.Store
// interface with idle expiry.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/quicksplit/internal/app"
	"github.com/mmynk/quicksplit/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

type session struct {
	state    app.State
	lastSeen time.Time
}

// MemoryStore implements storage.Store with a map guarded by a mutex.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// New creates a MemoryStore whose sessions expire after ttl without use.
// If sweepEvery is positive, a janitor goroutine drops expired sessions
// at that interval until Close is called.
func New(ttl, sweepEvery time.Duration, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if sweepEvery > 0 {
		go s.janitor(sweepEvery)
	} else {
		close(s.done)
	}
	return s
}

// Create stores a new session under a fresh ID.
func (s *MemoryStore) Create(ctx context.Context, state app.State) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{state: state, lastSeen: s.now()}
	return id, nil
}

// Get returns the session's state and refreshes its idle timer.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (app.State, error) {
	if err := ctx.Err(); err != nil {
		return app.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return app.State{}, err
	}
	sess.lastSeen = s.now()
	return sess.state, nil
}

// Update applies fn under the store lock.
func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn storage.UpdateFunc) (app.State, error) {
	if err := ctx.Err(); err != nil {
		return app.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return app.State{}, err
	}
	sess.state = fn(sess.state)
	sess.lastSeen = s.now()
	return sess.state, nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(sessionID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of sessions that have not expired.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, sess := range s.sessions {
		if !s.expired(sess) {
			n++
		}
	}
	return n
}

// Close stops the janitor. The store is still usable afterwards, but
// expired sessions are only dropped on access.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.stop)
	})
	<-s.done
	return nil
}

// Sweep drops every expired session and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// lookup must be called with s.mu held.
func (s *MemoryStore) lookup(sessionID string) (*session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	if s.expired(sess) {
		delete(s.sessions, sessionID)
		return nil, fmt.Errorf("%w: %s expired", storage.ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

func (s *MemoryStore) expired(sess *session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

func (s *MemoryStore) janitor(every time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("Expired sessions dropped", "count", n)
			}
		}
	}
}
