package console

import (
	"strings"
	"testing"

	"plantagotchi/internal/domain/plant"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestBar_FillsProportionally(t *testing.T) {
	r := Renderer{BarWidth: 10}
	assert.Equal(t, "█████░░░░░  50", r.Bar(50, 100))
	assert.Equal(t, "██████████ 100", r.Bar(140, 100))
	assert.Equal(t, "░░░░░░░░░░  -5", r.Bar(-5, 100))
	assert.Equal(t, "░░░░░░░░░░   3", r.Bar(3, 0))
}

func TestSnapshot_ShowsGaugesHintAndCues(t *testing.T) {
	snap := plant.Snapshot{
		SpeciesID:     "bean",
		Day:           3,
		MaxDays:       30,
		Stage:         "sprout",
		StageIndex:    1,
		StageCount:    5,
		Health:        83,
		WaterLevel:    48,
		LightLevel:    45,
		Temperature:   21,
		Immunity:      59,
		Category:      plant.CategoryDry,
		Phase:         plant.PhaseActive,
		Outcome:       plant.OutcomeGrowing,
		Inventory:     map[plant.TreatmentKind]int{plant.TreatmentInsecticide: 1, plant.TreatmentFungicide: 2},
		ActiveProblem: &plant.ProblemView{Symptom: "Leaves wilt and darken", Severity: 3},
	}

	out := Renderer{}.Snapshot(snap, []string{"stress"})
	for _, want := range []string{
		"BEAN  day 3/30  Sprout (2/5)",
		"Health",
		"Immunity",
		"fungicide x2, insecticide x1",
		"Leaves wilt and darken",
		"Pick the right treatment.",
		"♪ stress",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSnapshot_NoCueLineWithoutCues(t *testing.T) {
	out := Renderer{}.Snapshot(plant.Snapshot{SpeciesID: "mint", Outcome: plant.OutcomeGrowing, Category: plant.CategoryNormal}, nil)
	assert.NotContains(t, out, "♪")
	assert.Contains(t, out, "none")
}

func TestIgnored_ExplainsEveryReason(t *testing.T) {
	r := Renderer{}
	assert.Empty(t, r.Ignored(plant.IgnoredNone))
	for _, reason := range []plant.IgnoreReason{
		plant.IgnoredDead,
		plant.IgnoredSessionOver,
		plant.IgnoredNoActiveProblem,
		plant.IgnoredTreatmentUnavailable,
		plant.IgnoredUnknownTreatment,
		plant.IgnoredUnknownSpecies,
	} {
		msg := r.Ignored(reason)
		assert.NotEmpty(t, msg)
		assert.False(t, strings.Contains(msg, "_"), "raw reason leaked: %s", msg)
	}
}
