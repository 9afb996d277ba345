package ports

import (
	"context"
	"time"

	"plantagotchi/internal/domain/plant"
)

// SessionStore holds live sessions. Sessions never outlive the process.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, session *plant.Session) error
	Get(ctx context.Context, sessionID string) (*plant.Session, error)
	Delete(ctx context.Context, sessionID string) error
	IDs(ctx context.Context) ([]string, error)
}

// EventRepository is the append-only journal of domain events.
type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []plant.DomainEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]plant.DomainEvent, error)
}

type SessionRecord struct {
	SessionID   string
	SpeciesID   string
	Status      string
	Outcome     plant.Outcome
	FinalDay    int
	FinalHealth float64
	StartedAt   time.Time
	EndedAt     *time.Time
}

const (
	SessionStatusActive = "active"
	SessionStatusClosed = "closed"
)

// SessionLedgerRepository records when sessions start and how they end.
type SessionLedgerRepository interface {
	Open(ctx context.Context, sessionID, speciesID string, startedAt time.Time) error
	Close(ctx context.Context, sessionID string, snap plant.Snapshot, endedAt time.Time) error
	Get(ctx context.Context, sessionID string) (SessionRecord, error)
}
