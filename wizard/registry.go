package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds in-flight registration sessions keyed by opaque IDs. A
// session lives until the client completes it, abandons it past the TTL, or
// deletes it explicitly.
type Registry struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	wiz      *Wizard
	lastSeen time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

// Put registers a session and returns its ID.
func (r *Registry) Put(w *Wizard) string {
	id := uuid.New().String()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{wiz: w, lastSeen: time.Now()}
	return id
}

// Get returns the session and refreshes its TTL.
func (r *Registry) Get(id string) (*Wizard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.wiz, true
}

// Delete closes and removes a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		e.wiz.Close()
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts expired sessions until the context is cancelled. Run it in
// its own goroutine from main.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.expire(now)
		}
	}
}

func (r *Registry) expire(now time.Time) {
	var stale []*entry
	r.mu.Lock()
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			stale = append(stale, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, e := range stale {
		e.wiz.Close()
	}
}
