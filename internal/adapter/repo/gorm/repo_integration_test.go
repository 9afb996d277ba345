package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"gorm.io/gorm"
)

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("PLANTAGOTCHI_DB_DSN")
	if dsn == "" {
		t.Skip("PLANTAGOTCHI_DB_DSN is required for integration test")
	}
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEventRepo_AppendAndListMostRecentOldestFirst(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	sessionID := "it-events"
	_ = db.Exec("DELETE FROM garden_events WHERE session_id = ?", sessionID).Error

	repo := NewEventRepo(db)
	base := time.Unix(1700000000, 0).UTC()
	events := []plant.DomainEvent{
		{Type: plant.EventSessionStarted, Day: 0, OccurredAt: base, Payload: map[string]any{"species_id": "bean"}},
		{Type: plant.EventActionApplied, Day: 0, OccurredAt: base.Add(time.Second), Payload: map[string]any{"action": "water"}},
		{Type: plant.EventTickSettled, Day: 1, OccurredAt: base.Add(2 * time.Second), Payload: map[string]any{
			"state_after": map[string]any{"day": 1, "health": 96.0},
		}},
	}
	if err := repo.Append(ctx, sessionID, events); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListBySessionID(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != plant.EventActionApplied || got[1].Type != plant.EventTickSettled {
		t.Fatalf("unexpected order: %s, %s", got[0].Type, got[1].Type)
	}
	after, ok := got[1].Payload["state_after"].(map[string]any)
	if !ok || after["health"] != 96.0 || got[1].Day != 1 {
		t.Fatalf("unexpected payload: %+v", got[1])
	}

	if _, err := repo.ListBySessionID(ctx, "it-events-missing", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRepo_OpenCloseReopen(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	sessionID := "it-ledger"
	_ = db.Exec("DELETE FROM garden_sessions WHERE session_id = ?", sessionID).Error

	repo := NewLedgerRepo(db)
	tx := NewTxManager(db)
	started := time.Unix(1700000000, 0).UTC()

	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		return repo.Open(ctx, sessionID, "rose", started)
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	snap := plant.Snapshot{Day: 12, Health: 0, Outcome: plant.OutcomeDead}
	if err := repo.Close(ctx, sessionID, snap, started.Add(time.Minute)); err != nil {
		t.Fatalf("close: %v", err)
	}
	rec, err := repo.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != ports.SessionStatusClosed || rec.Outcome != plant.OutcomeDead || rec.FinalDay != 12 || rec.EndedAt == nil {
		t.Fatalf("unexpected closed record: %+v", rec)
	}

	// closing twice keeps the first outcome
	if err := repo.Close(ctx, sessionID, plant.Snapshot{Day: 99, Outcome: plant.OutcomeSurvived}, time.Now()); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if rec, _ = repo.Get(ctx, sessionID); rec.FinalDay != 12 {
		t.Fatalf("expected first close to stick, got %+v", rec)
	}

	if err := repo.Open(ctx, sessionID, "rose", started.Add(time.Hour)); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rec, _ = repo.Get(ctx, sessionID)
	if rec.Status != ports.SessionStatusActive || rec.EndedAt != nil || rec.FinalDay != 0 {
		t.Fatalf("unexpected reopened record: %+v", rec)
	}

	if err := repo.Close(ctx, "it-ledger-missing", snap, time.Now()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxManager_RollsBackJournalOnError(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	sessionID := "it-rollback"
	_ = db.Exec("DELETE FROM garden_events WHERE session_id = ?", sessionID).Error

	repo := NewEventRepo(db)
	boom := errors.New("boom")
	err := NewTxManager(db).RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.Append(ctx, sessionID, []plant.DomainEvent{{Type: plant.EventSessionStarted, OccurredAt: time.Now()}}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := repo.ListBySessionID(ctx, sessionID, 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rolled back journal, got %v", err)
	}
}
