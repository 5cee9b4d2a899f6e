package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session pairs a cart with the browsing session that owns it. The embedded
// mutex serializes handler access; within a session operations happen one at
// a time.
type Session struct {
	sync.Mutex

	ID       string
	Cart     *Cart
	LastSeen time.Time
}

// Store keeps active cart sessions in memory. Carts are not shared across
// devices or persisted; an idle session is dropped after the configured TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
	}
}

func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Cart:     New(),
		LastSeen: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.LastSeen = time.Now()
	return sess, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// PurgeIdle drops sessions last seen before now minus the idle TTL and
// returns how many were removed.
func (s *Store) PurgeIdle(now time.Time) int {
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
