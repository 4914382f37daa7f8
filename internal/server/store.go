package server

import (
	"sync"
	"time"

	"github.com/alexiusacademia/gotb/internal/calculator"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/google/uuid"
)

// entry guards one calculator session. A Session itself is single-threaded,
// so every handler touching it holds mu.
type entry struct {
	mu       sync.Mutex
	session  *calculator.Session
	lastUsed time.Time
}

// Store keeps the in-memory sessions of the API. Nothing is persisted.
type Store struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entry
	materials []timber.Material
	ttl       time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewStore creates an empty store; sessions get their own catalog built from materials
func NewStore(materials []timber.Material, ttl time.Duration, log *logger.Logger) (*Store, error) {
	if err := timber.Validate(materials); err != nil {
		return nil, err
	}
	return &Store{
		sessions:  make(map[uuid.UUID]*entry),
		materials: materials,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}, nil
}

// Create starts a new session with default inputs
func (st *Store) Create() (uuid.UUID, *entry, error) {
	id := uuid.New()
	s, err := calculator.New(st.materials, calculator.WithLogger(st.log.WithPrefix(id.String()[:8])))
	if err != nil {
		return uuid.Nil, nil, err
	}

	e := &entry{session: s, lastUsed: st.now()}

	st.mu.Lock()
	st.sessions[id] = e
	st.mu.Unlock()

	st.log.Info("session %s created", id)
	return id, e, nil
}

// Get returns the session with id and marks it as used
func (st *Store) Get(id uuid.UUID) (*entry, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if ok {
		e.lastUsed = st.now()
	}
	return e, ok
}

// Delete removes a session; it reports whether it existed
func (st *Store) Delete(id uuid.UUID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	n := 0
	for id, e := range st.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	if n > 0 {
		st.log.Info("swept %d idle sessions, %d left", n, len(st.sessions))
	}
	return n
}
