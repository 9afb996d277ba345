package memory

import (
	"context"
	"maps"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []plant.DomainEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range events {
		e.Payload = maps.Clone(e.Payload)
		r.store.events[sessionID] = append(r.store.events[sessionID], e)
	}
	return nil
}

// ListBySessionID returns the most recent events, oldest first.
func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]plant.DomainEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all, ok := r.store.events[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return append([]plant.DomainEvent(nil), all...), nil
}
