package api

import (
	"errors"
	"testing"
	"time"

	"github.com/samcharles93/gbsav/pkg/sav"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newClockedStore(t *testing.T, limits SessionLimits) (*SessionStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewSessionStore(limits)
	store.clock = clock.Now
	return store, clock
}

func TestSessionExpiresAfterIdleTTL(t *testing.T) {
	t.Parallel()

	store, clock := newClockedStore(t, SessionLimits{TTL: time.Minute})
	sess, err := store.Create(blankSave(t, sav.VariantHalf), "a.sav")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Access refreshes the idle timer.
	clock.advance(50 * time.Second)
	if _, err := store.Get(sess.ID); err != nil {
		t.Fatalf("get before ttl: %v", err)
	}
	clock.advance(50 * time.Second)
	if _, err := store.Get(sess.ID); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}

	clock.advance(time.Minute)
	if _, err := store.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("get after ttl: got %v want ErrSessionNotFound", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expired session kept: %d sessions", store.Len())
	}
}

func TestCreateSweepsExpiredSessions(t *testing.T) {
	t.Parallel()

	store, clock := newClockedStore(t, SessionLimits{TTL: time.Minute, MaxSessions: 2})
	for i := 0; i < 2; i++ {
		if _, err := store.Create(blankSave(t, sav.VariantHalf), ""); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := store.Create(blankSave(t, sav.VariantHalf), ""); !errors.Is(err, ErrSessionLimit) {
		t.Fatalf("create over cap: got %v want ErrSessionLimit", err)
	}

	clock.advance(2 * time.Minute)
	if _, err := store.Create(blankSave(t, sav.VariantHalf), ""); err != nil {
		t.Fatalf("create after expiry: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("sessions after sweep: got %d want 1", store.Len())
	}
}

func TestCreateRejectsInvalidSave(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(SessionLimits{})
	if _, err := store.Create(make([]byte, 0x8000), ""); !errors.Is(err, sav.ErrInvalidContainerSize) {
		t.Fatalf("got %v want ErrInvalidContainerSize", err)
	}
	if store.Len() != 0 {
		t.Fatalf("invalid save stored")
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := newRateLimiter(5, 10)
	l.clock = clock.Now

	l.limiter("192.0.2.1")
	l.limiter("192.0.2.2")
	if l.len() != 2 {
		t.Fatalf("clients: got %d want 2", l.len())
	}

	clock.advance(clientIdleTTL / 2)
	l.limiter("192.0.2.2")
	clock.advance(clientIdleTTL / 2)
	l.limiter("192.0.2.3")
	if l.len() != 2 {
		t.Fatalf("clients after sweep: got %d want 2", l.len())
	}
	l.mu.Lock()
	_, stale := l.clients["192.0.2.1"]
	l.mu.Unlock()
	if stale {
		t.Fatalf("idle client was not evicted")
	}
}
