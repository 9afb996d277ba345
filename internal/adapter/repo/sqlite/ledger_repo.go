package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"github.com/jmoiron/sqlx"
)

type sessionRow struct {
	SessionID   string        `db:"session_id"`
	SpeciesID   string        `db:"species_id"`
	Status      string        `db:"status"`
	Outcome     string        `db:"outcome"`
	FinalDay    int           `db:"final_day"`
	FinalHealth float64       `db:"final_health"`
	StartedAt   int64         `db:"started_at"`
	EndedAt     sql.NullInt64 `db:"ended_at"`
}

type LedgerRepo struct {
	db *sqlx.DB
}

func NewLedgerRepo(db *sqlx.DB) LedgerRepo {
	return LedgerRepo{db: db}
}

// Open starts a ledger row, or restarts it when the session was reset.
func (r LedgerRepo) Open(ctx context.Context, sessionID, speciesID string, startedAt time.Time) error {
	_, err := extFromCtx(ctx, r.db).ExecContext(ctx,
		`INSERT INTO garden_sessions (session_id, species_id, status, outcome, final_day, final_health, started_at, ended_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?, NULL)
		 ON CONFLICT(session_id) DO UPDATE SET
		   species_id = excluded.species_id, status = excluded.status, outcome = excluded.outcome,
		   final_day = 0, final_health = 0, started_at = excluded.started_at, ended_at = NULL`,
		sessionID, speciesID, ports.SessionStatusActive, string(plant.OutcomeGrowing), startedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", sessionID, err)
	}
	return nil
}

func (r LedgerRepo) Close(ctx context.Context, sessionID string, snap plant.Snapshot, endedAt time.Time) error {
	ext := extFromCtx(ctx, r.db)
	res, err := ext.ExecContext(ctx,
		`UPDATE garden_sessions SET status = ?, outcome = ?, final_day = ?, final_health = ?, ended_at = ?
		 WHERE session_id = ? AND status = ?`,
		ports.SessionStatusClosed, string(snap.Outcome), snap.Day, snap.Health, endedAt.UnixNano(),
		sessionID, ports.SessionStatusActive)
	if err != nil {
		return fmt.Errorf("close ledger %s: %w", sessionID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var count int
	if err := sqlx.GetContext(ctx, ext, &count, `SELECT COUNT(1) FROM garden_sessions WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r LedgerRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var row sessionRow
	err := sqlx.GetContext(ctx, extFromCtx(ctx, r.db), &row,
		`SELECT session_id, species_id, status, outcome, final_day, final_health, started_at, ended_at
		 FROM garden_sessions WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SessionRecord{}, err
	}
	rec := ports.SessionRecord{
		SessionID:   row.SessionID,
		SpeciesID:   row.SpeciesID,
		Status:      row.Status,
		Outcome:     plant.Outcome(row.Outcome),
		FinalDay:    row.FinalDay,
		FinalHealth: row.FinalHealth,
		StartedAt:   time.Unix(0, row.StartedAt).UTC(),
	}
	if row.EndedAt.Valid {
		ended := time.Unix(0, row.EndedAt.Int64).UTC()
		rec.EndedAt = &ended
	}
	return rec, nil
}
