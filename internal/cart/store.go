package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultIdleTTL = 24 * time.Hour

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Store keeps one cart per session token. Handlers run concurrently, so
// access is guarded here; the Cart itself is only touched under the lock.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*entry
	idleTTL time.Duration
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		carts:   make(map[string]*entry),
		idleTTL: defaultIdleTTL,
		now:     time.Now,
	}
}

// NewToken issues an opaque session token for a fresh cart.
func (s *Store) NewToken() string {
	return uuid.NewString()
}

// With runs fn against the cart for token, creating the cart on first use.
// Mutations inside fn are applied under the store lock.
func (s *Store) With(token string, fn func(c *Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[token]
	if !ok {
		e = &entry{cart: New()}
		s.carts[token] = e
	}
	e.lastSeen = s.now()
	fn(e.cart)
}

// Drop forgets the cart for token.
func (s *Store) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}

// Prune removes carts idle longer than the TTL and reports how many were
// dropped. Meant to be called periodically from the server loop.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	dropped := 0
	for token, e := range s.carts {
		if e.lastSeen.Before(cutoff) {
			delete(s.carts, token)
			dropped++
		}
	}
	return dropped
}
