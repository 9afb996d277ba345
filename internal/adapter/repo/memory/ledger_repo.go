package memory

import (
	"context"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

type LedgerRepo struct {
	store *Store
}

func NewLedgerRepo(store *Store) LedgerRepo {
	return LedgerRepo{store: store}
}

func (r LedgerRepo) Open(_ context.Context, sessionID, speciesID string, startedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ledger[sessionID] = ports.SessionRecord{
		SessionID: sessionID,
		SpeciesID: speciesID,
		Status:    ports.SessionStatusActive,
		Outcome:   plant.OutcomeGrowing,
		StartedAt: startedAt,
	}
	return nil
}

func (r LedgerRepo) Close(_ context.Context, sessionID string, snap plant.Snapshot, endedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.ledger[sessionID]
	if !ok {
		return ports.ErrNotFound
	}
	if rec.Status == ports.SessionStatusClosed {
		return nil
	}
	rec.Status = ports.SessionStatusClosed
	rec.Outcome = snap.Outcome
	rec.FinalDay = snap.Day
	rec.FinalHealth = snap.Health
	rec.EndedAt = &endedAt
	r.store.ledger[sessionID] = rec
	return nil
}

func (r LedgerRepo) Get(_ context.Context, sessionID string) (ports.SessionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.ledger[sessionID]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
