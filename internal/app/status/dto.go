package status

import (
	"plantagotchi/internal/app/stateview"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"
)

type Request struct {
	SessionID string
}

type Response struct {
	SessionID     string                `json:"session_id"`
	Snapshot      plant.Snapshot        `json:"snapshot"`
	Stage         species.StageInfo     `json:"stage"`
	Trend         stateview.HealthTrend `json:"trend"`
	StatusEffects []string              `json:"status_effects"`
	Reason        string                `json:"reason"`
	Hint          string                `json:"hint"`
	Paused        bool                  `json:"paused"`
}
