package arena

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps session ids to live sessions and keeps a secondary
// handle-to-session index so disconnect handling is a direct lookup rather
// than a scan over every session. Both maps mutate together under one lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byHandle map[Handle]string
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		byHandle: make(map[Handle]string),
	}
}

// Create registers a new session for the pair with round 1 and the given
// opening question. The id is a freshly generated UUID.
func (r *Registry) Create(a, b Handle, q Question) *Session {
	s := newSession(uuid.NewString(), a, b, q)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.byHandle[a] = s.ID
	r.byHandle[b] = s.ID
	r.mu.Unlock()

	return s
}

func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// GetByHandle returns the session h participates in, if any.
func (r *Registry) GetByHandle(h Handle) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byHandle[h]
	if !ok {
		return nil
	}
	return r.sessions[id]
}

// Remove deletes the session and both of its index entries. Removing an
// already-removed id is a no-op, so a disconnect racing a final answer
// cannot double-tear-down.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return
	}

	for _, h := range s.players {
		if r.byHandle[h] == id {
			delete(r.byHandle, h)
		}
	}
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
