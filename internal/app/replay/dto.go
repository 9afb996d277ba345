package replay

import "plantagotchi/internal/domain/plant"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// LatestState is rebuilt from the last settled tick in the journal.
type LatestState struct {
	Day        int            `json:"day"`
	Health     float64        `json:"health"`
	WaterLevel float64        `json:"water_level"`
	Immunity   float64        `json:"immunity"`
	StageIndex int            `json:"stage_index"`
	Category   plant.Category `json:"category"`
	Phase      plant.Phase    `json:"phase"`
}

type Response struct {
	SessionID   string              `json:"session_id"`
	Events      []plant.DomainEvent `json:"events"`
	LatestState LatestState         `json:"latest_state"`
}
