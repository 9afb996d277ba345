package stateview

import (
	"math"

	"plantagotchi/internal/domain/plant"
)

const (
	CauseDryHealthDrain     = "DRY_HEALTH_DRAIN"
	CauseStressHealthDrain  = "STRESS_HEALTH_DRAIN"
	CauseActiveProblemDrain = "ACTIVE_PROBLEM_DRAIN"
)

type HealthTrend struct {
	IsLosingHealth    bool     `json:"is_losing_health"`
	ExpectedDelta     float64  `json:"expected_delta"`
	CategoryComponent float64  `json:"category_component"`
	ProblemComponent  float64  `json:"problem_component"`
	DaysToDeath       int      `json:"days_to_death,omitempty"`
	Causes            []string `json:"causes"`
}

type TrendInput struct {
	Category plant.Category
	Phase    plant.Phase
	Health   float64
	Immunity float64
	// ProblemHealth is the health part of the active problem's effect.
	ProblemHealth float64
}

// EstimateHealthTrend projects the next day's health change if nothing in the
// microclimate changes.
func EstimateHealthTrend(in TrendInput, t plant.Tuning) HealthTrend {
	out := HealthTrend{Causes: []string{}}
	if in.Category == plant.CategoryDead || in.Health <= 0 {
		return out
	}

	out.CategoryComponent = plant.BaseHealthDelta(in.Category, in.Immunity, t.Health)
	if in.Phase == plant.PhaseActive {
		out.ProblemComponent = in.ProblemHealth - t.Lifecycle.ActiveProblemHealthCost
	}
	out.ExpectedDelta = out.CategoryComponent + out.ProblemComponent

	if out.CategoryComponent < 0 {
		switch in.Category {
		case plant.CategoryDry:
			out.Causes = append(out.Causes, CauseDryHealthDrain)
		case plant.CategoryStressed:
			out.Causes = append(out.Causes, CauseStressHealthDrain)
		}
	}
	if out.ProblemComponent < 0 {
		out.Causes = append(out.Causes, CauseActiveProblemDrain)
	}

	if out.ExpectedDelta < 0 {
		out.IsLosingHealth = true
		out.DaysToDeath = int(math.Ceil(in.Health / -out.ExpectedDelta))
	}
	return out
}
