package stateview

import "plantagotchi/internal/domain/plant"

var categoryReasons = map[plant.Category]string{
	plant.CategoryNormal:   "The plant is doing well.",
	plant.CategoryDry:      "The microclimate is off balance.",
	plant.CategoryStressed: "The plant is under sustained stress.",
	plant.CategoryDead:     "The plant has died.",
}

var careHints = map[plant.Category]string{
	plant.CategoryNormal:   "Keep conditions steady.",
	plant.CategoryDry:      "Check watering, temperature and soil air.",
	plant.CategoryStressed: "Stabilize conditions and let immunity recover.",
	plant.CategoryDead:     "Reset to grow a new plant.",
}

// Reason explains the current state. A visible problem takes precedence over
// the category.
func Reason(snap plant.Snapshot) string {
	if snap.ActiveProblem != nil && snap.Outcome != plant.OutcomeDead {
		return snap.ActiveProblem.Symptom
	}
	return categoryReasons[snap.Category]
}

func Hint(snap plant.Snapshot) string {
	if snap.Outcome == plant.OutcomeSurvived {
		return "The season is over. Reset to play again."
	}
	if snap.Phase == plant.PhaseActive && snap.Outcome != plant.OutcomeDead {
		return "Pick the right treatment."
	}
	if snap.Phase == plant.PhaseTreating {
		return "Treatment in progress."
	}
	return careHints[snap.Category]
}
