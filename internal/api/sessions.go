package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samcharles93/gbsav/pkg/sav"
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 64
)

// Session is an uploaded save held in memory. Engine calls on one session
// are serialized.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu        sync.Mutex
	container *sav.Container

	// lastUsed is guarded by the store's mutex.
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session's container.
func (s *Session) Do(fn func(c *sav.Container) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.container)
}

// SessionLimits bounds how many saves the store keeps and for how long.
// Zero fields take the defaults.
type SessionLimits struct {
	// TTL drops a session that has not been touched for this long.
	TTL time.Duration
	// MaxSessions caps live sessions; Create fails once it is reached.
	MaxSessions int
}

// SessionStore owns every live session. Idle sessions are swept on Create
// and dropped on access once expired.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	clock    func() time.Time
}

func NewSessionStore(limits SessionLimits) *SessionStore {
	if limits.TTL <= 0 {
		limits.TTL = DefaultSessionTTL
	}
	if limits.MaxSessions <= 0 {
		limits.MaxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      limits.TTL,
		max:      limits.MaxSessions,
		clock:    time.Now,
	}
}

// Create takes ownership of buf and opens a session over it.
func (s *SessionStore) Create(buf []byte, name string) (*Session, error) {
	c, err := sav.New(buf)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	if len(s.sessions) >= s.max {
		return nil, fmt.Errorf("%w: %d sessions open", ErrSessionLimit, len(s.sessions))
	}
	sess := &Session{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		container: c,
		lastUsed:  now,
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a live session and marks it used.
func (s *SessionStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("%w: %s expired", ErrSessionNotFound, id)
	}
	sess.lastUsed = now
	return sess, nil
}

func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports the number of sessions held, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastUsed) >= s.ttl
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}
