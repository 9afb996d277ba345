package garden

import (
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"
)

type Action string

const (
	ActionWater Action = "water"
	ActionLight Action = "light"
	ActionWarm  Action = "warm"
	ActionTreat Action = "treat"
)

func (a Action) Supported() bool {
	switch a {
	case ActionWater, ActionLight, ActionWarm, ActionTreat:
		return true
	default:
		return false
	}
}

type StartRequest struct {
	SpeciesID string
}

type StartResponse struct {
	SessionID string              `json:"session_id,omitempty"`
	Snapshot  *plant.Snapshot     `json:"snapshot,omitempty"`
	Events    []plant.DomainEvent `json:"events,omitempty"`
	Ignored   plant.IgnoreReason  `json:"ignored,omitempty"`
}

type ActRequest struct {
	SessionID string
	Action    Action
	Treatment string
}

type ActResponse struct {
	Snapshot plant.Snapshot      `json:"snapshot"`
	Events   []plant.DomainEvent `json:"events"`
	Ignored  plant.IgnoreReason  `json:"ignored,omitempty"`
}

type TickResponse struct {
	Snapshot plant.Snapshot      `json:"snapshot"`
	Events   []plant.DomainEvent `json:"events"`
	Ignored  plant.IgnoreReason  `json:"ignored,omitempty"`
	Done     bool                `json:"done"`
}

type ResetResponse struct {
	Snapshot plant.Snapshot      `json:"snapshot"`
	Events   []plant.DomainEvent `json:"events"`
}

type PauseResponse struct {
	SessionID string `json:"session_id"`
	Paused    bool   `json:"paused"`
}

type SpeciesView struct {
	plant.SpeciesProfile
	StageInfo []species.StageInfo `json:"stage_info"`
}
