package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session survives before eviction.
const DefaultSessionTTL = 30 * time.Minute

// Store is an in-memory registry of wizard sessions keyed by UUID. Sessions
// are never persisted; an evicted session means starting over.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*storeEntry
}

type storeEntry struct {
	session *Session
	touched time.Time
}

// NewStore creates a session store. A non-positive ttl falls back to
// DefaultSessionTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*storeEntry),
	}
}

// Create registers a fresh session and returns its ID.
func (st *Store) Create() (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.evictLocked()

	id := uuid.NewString()
	session := NewSession()
	st.sessions[id] = &storeEntry{session: session, touched: st.now()}
	return id, session
}

// Get returns the session for id, refreshing its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.evictLocked()

	entry, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	entry.touched = st.now()
	return entry.session, true
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) evictLocked() {
	cutoff := st.now().Add(-st.ttl)
	for id, entry := range st.sessions {
		if entry.touched.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
