package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store owns every Session of the process. It is built once at startup and
// handed to whoever serves requests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string

	clock     Clock
	cooldowns Cooldowns
	newID     func() string
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithCooldowns(c Cooldowns) Option {
	return func(s *Store) { s.cooldowns = c }
}

// WithIDGenerator replaces the uuid generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions:  make(map[string]*Session),
		order:     make([]string, 0),
		clock:     SystemClock{},
		cooldowns: DefaultCooldowns(),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Cooldowns() Cooldowns { return s.cooldowns }

func (s *Store) Clock() Clock { return s.clock }

// Create registers a new empty session. The name is stored as given but must
// not be blank.
func (s *Store) Create(name string) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("session name cannot be empty: %w", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if _, exists := s.sessions[id]; exists {
		return nil, fmt.Errorf("session id %q already taken: %w", id, ErrConflict)
	}
	sess := newSession(id, name, s.clock, s.cooldowns)
	s.sessions[id] = sess
	s.order = append(s.order, id)
	return sess, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return sess, nil
}

// List returns summaries in creation order.
func (s *Store) List() []Summary {
	sessions := s.snapshot()
	out := make([]Summary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Summary())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Each calls fn for every session in creation order without holding the
// store lock, so fn may lock the session itself.
func (s *Store) Each(fn func(*Session)) {
	for _, sess := range s.snapshot() {
		fn(sess)
	}
}

func (s *Store) snapshot() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}
