package stateview

import (
	"slices"
	"testing"

	"plantagotchi/internal/domain/plant"
)

func TestEstimateHealthTrend_UsesTuningDefaults(t *testing.T) {
	got := EstimateHealthTrend(TrendInput{
		Category:      plant.CategoryDry,
		Phase:         plant.PhaseActive,
		Health:        30,
		Immunity:      50,
		ProblemHealth: -3,
	}, plant.DefaultTuning())

	if got.CategoryComponent != -4 {
		t.Fatalf("category component = %v, want -4", got.CategoryComponent)
	}
	if got.ProblemComponent != -5 {
		t.Fatalf("problem component = %v, want -5", got.ProblemComponent)
	}
	if !got.IsLosingHealth || got.ExpectedDelta != -9 {
		t.Fatalf("unexpected trend: %+v", got)
	}
	if got.DaysToDeath != 4 {
		t.Fatalf("days to death = %d, want 4", got.DaysToDeath)
	}
	if !slices.Equal(got.Causes, []string{CauseDryHealthDrain, CauseActiveProblemDrain}) {
		t.Fatalf("causes = %v", got.Causes)
	}
}

func TestEstimateHealthTrend_GrowingPlant(t *testing.T) {
	got := EstimateHealthTrend(TrendInput{
		Category: plant.CategoryNormal,
		Phase:    plant.PhaseDormant,
		Health:   80,
		Immunity: 70,
	}, plant.DefaultTuning())
	if got.IsLosingHealth || got.ExpectedDelta != 3 || got.DaysToDeath != 0 {
		t.Fatalf("unexpected trend: %+v", got)
	}
	if len(got.Causes) != 0 {
		t.Fatalf("expected no causes, got %v", got.Causes)
	}
}

func TestEstimateHealthTrend_TreatingSuspendsProblemDrain(t *testing.T) {
	got := EstimateHealthTrend(TrendInput{
		Category:      plant.CategoryStressed,
		Phase:         plant.PhaseTreating,
		Health:        10,
		ProblemHealth: -6,
	}, plant.DefaultTuning())
	if got.ProblemComponent != 0 || got.ExpectedDelta != -5 || got.DaysToDeath != 2 {
		t.Fatalf("unexpected trend: %+v", got)
	}
	if !slices.Equal(got.Causes, []string{CauseStressHealthDrain}) {
		t.Fatalf("causes = %v", got.Causes)
	}
}

func TestEstimateHealthTrend_DeadPlantIsFlat(t *testing.T) {
	got := EstimateHealthTrend(TrendInput{Category: plant.CategoryDead}, plant.DefaultTuning())
	if got.IsLosingHealth || got.ExpectedDelta != 0 {
		t.Fatalf("unexpected trend: %+v", got)
	}
}
