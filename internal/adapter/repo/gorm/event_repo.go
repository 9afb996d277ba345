package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"plantagotchi/internal/adapter/repo/gorm/model"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []plant.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.GardenEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", e.Type, err)
		}
		rows = append(rows, model.GardenEvent{
			SessionID:  sessionID,
			Type:       string(e.Type),
			Day:        int32(e.Day),
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return dbFromCtx(ctx, r.db).Create(&rows).Error
}

// ListBySessionID returns the most recent events, oldest first.
func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]plant.DomainEvent, error) {
	rows := []model.GardenEvent{}
	query := dbFromCtx(ctx, r.db).
		Where(&model.GardenEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	slices.Reverse(rows)

	out := make([]plant.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, plant.DomainEvent{
			Type:       plant.EventType(row.Type),
			Day:        int(row.Day),
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
