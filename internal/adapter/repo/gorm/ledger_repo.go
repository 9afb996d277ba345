package gormrepo

import (
	"context"
	"errors"
	"time"

	"plantagotchi/internal/adapter/repo/gorm/model"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepo {
	return LedgerRepo{db: db}
}

// Open starts a ledger row, or restarts it when the session was reset.
func (r LedgerRepo) Open(ctx context.Context, sessionID, speciesID string, startedAt time.Time) error {
	m := model.GardenSession{
		SessionID: sessionID,
		SpeciesID: speciesID,
		Status:    ports.SessionStatusActive,
		Outcome:   string(plant.OutcomeGrowing),
		StartedAt: startedAt,
	}
	return dbFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"species_id", "status", "outcome", "final_day", "final_health", "started_at", "ended_at"}),
	}).Create(&m).Error
}

func (r LedgerRepo) Close(ctx context.Context, sessionID string, snap plant.Snapshot, endedAt time.Time) error {
	db := dbFromCtx(ctx, r.db)
	res := db.Model(&model.GardenSession{}).
		Where("session_id = ? AND status = ?", sessionID, ports.SessionStatusActive).
		Updates(map[string]any{
			"status":       ports.SessionStatusClosed,
			"outcome":      string(snap.Outcome),
			"final_day":    snap.Day,
			"final_health": snap.Health,
			"ended_at":     endedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := db.Model(&model.GardenSession{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r LedgerRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var m model.GardenSession
	if err := dbFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SessionRecord{}, ports.ErrNotFound
		}
		return ports.SessionRecord{}, err
	}
	return ports.SessionRecord{
		SessionID:   m.SessionID,
		SpeciesID:   m.SpeciesID,
		Status:      m.Status,
		Outcome:     plant.Outcome(m.Outcome),
		FinalDay:    int(m.FinalDay),
		FinalHealth: m.FinalHealth,
		StartedAt:   m.StartedAt,
		EndedAt:     m.EndedAt,
	}, nil
}
