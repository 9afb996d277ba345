package sqliterepo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"github.com/jmoiron/sqlx"
)

type eventRow struct {
	ID         int64  `db:"id"`
	SessionID  string `db:"session_id"`
	Type       string `db:"type"`
	Day        int    `db:"day"`
	OccurredAt int64  `db:"occurred_at"`
	Payload    string `db:"payload"`
}

type EventRepo struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []plant.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]eventRow, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", e.Type, err)
		}
		rows = append(rows, eventRow{
			SessionID:  sessionID,
			Type:       string(e.Type),
			Day:        e.Day,
			OccurredAt: e.OccurredAt.UnixNano(),
			Payload:    string(b),
		})
	}
	ext := extFromCtx(ctx, r.db)
	for _, row := range rows {
		_, err := sqlx.NamedExecContext(ctx, ext,
			`INSERT INTO garden_events (session_id, type, day, occurred_at, payload)
			 VALUES (:session_id, :type, :day, :occurred_at, :payload)`, row)
		if err != nil {
			return fmt.Errorf("insert %s event: %w", row.Type, err)
		}
	}
	return nil
}

// ListBySessionID returns the most recent events, oldest first.
func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]plant.DomainEvent, error) {
	query := `SELECT id, session_id, type, day, occurred_at, payload FROM garden_events
		WHERE session_id = ? ORDER BY id DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	var rows []eventRow
	if err := sqlx.SelectContext(ctx, extFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	slices.Reverse(rows)

	out := make([]plant.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		_ = json.Unmarshal([]byte(row.Payload), &payload)
		out = append(out, plant.DomainEvent{
			Type:       plant.EventType(row.Type),
			Day:        row.Day,
			OccurredAt: time.Unix(0, row.OccurredAt).UTC(),
			Payload:    payload,
		})
	}
	return out, nil
}
