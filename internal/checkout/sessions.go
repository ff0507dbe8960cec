package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xo-club/storefront-api/internal/cart"
)

// SessionStore keeps live checkout sessions in memory. A session exists only
// between "begin checkout" and success or abandon, and expires after TTL of
// inactivity.
type SessionStore struct {
	TTL time.Duration
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

func (s *SessionStore) ttl() time.Duration {
	if s.TTL <= 0 {
		return 30 * time.Minute
	}
	return s.TTL
}

func (s *SessionStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Begin creates a session with a snapshot of the cart lines.
func (s *SessionStore) Begin(cartID string, lines []cart.Line) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CartID:    cartID,
		Step:      StepInfo,
		Shipping:  ShippingExpress,
		Lines:     append([]cart.Line(nil), lines...),
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = make(map[string]*sessionEntry)
	}
	s.sweepLocked()
	s.sessions[sess.ID] = &sessionEntry{session: sess, lastSeen: s.now()}
	return sess
}

// Get returns the session and refreshes its expiry.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().Sub(entry.lastSeen) > s.ttl() {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.session, nil
}

// Delete discards the session. Used on abandon and after success.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// sweepLocked drops expired sessions. Caller holds the lock.
func (s *SessionStore) sweepLocked() {
	cutoff := s.now().Add(-s.ttl())
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
