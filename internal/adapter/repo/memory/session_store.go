package memory

import (
	"context"
	"sort"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

type SessionStore struct {
	store *Store
}

func NewSessionStore(store *Store) SessionStore {
	return SessionStore{store: store}
}

func (r SessionStore) Save(_ context.Context, sessionID string, session *plant.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.sessions[sessionID]; exists {
		return ports.ErrConflict
	}
	r.store.sessions[sessionID] = session
	return nil
}

func (r SessionStore) Get(_ context.Context, sessionID string) (*plant.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return s, nil
}

func (r SessionStore) Delete(_ context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[sessionID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.sessions, sessionID)
	return nil
}

func (r SessionStore) IDs(_ context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]string, 0, len(r.store.sessions))
	for id := range r.store.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
