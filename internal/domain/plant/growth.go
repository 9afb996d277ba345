package plant

import "math"

// BaseHealthDelta is the health change a category alone causes in one day.
func BaseHealthDelta(c Category, immunity float64, t HealthTuning) float64 {
	switch c {
	case CategoryNormal:
		if immunity > t.HighImmunityThreshold {
			return t.NormalGainHigh
		}
		return t.NormalGain
	case CategoryDry:
		return -t.DryLoss
	case CategoryStressed:
		return -t.StressedLoss
	default:
		return 0
	}
}

func applyDelta(s *EcosystemState, d StateDelta) {
	s.Health = clampLevel(s.Health + d.Health)
	s.Immunity = clampLevel(s.Immunity + d.Immunity)
	s.GrowthPoints = math.Max(0, s.GrowthPoints+d.GrowthPoints)
	s.StressLoad = math.Max(0, s.StressLoad+d.StressLoad)
	s.WaterLevel = clampLevel(s.WaterLevel + d.WaterLevel)
}

// applyHealth folds the category and an active problem into one health
// change and appends the result to history.
func applyHealth(s *EcosystemState, c Category, l Lifecycle, t Tuning) StateDelta {
	delta := BaseHealthDelta(c, s.Immunity, t.Health)
	var effect StateDelta
	if l.Phase == PhaseActive && l.Problem != nil {
		delta -= t.Lifecycle.ActiveProblemHealthCost
		if l.Problem.Effect != nil {
			effect = l.Problem.Effect(environmentOf(*s))
			applyDelta(s, effect)
		}
	}
	s.Health = clampLevel(s.Health + delta)
	s.History = append(s.History, s.Health)
	return effect
}

func applyGrowth(s *EcosystemState, c Category, l Lifecycle, species SpeciesProfile, t GrowthTuning, em *emitter) {
	if c == CategoryNormal && l.Phase != PhaseActive {
		s.GrowthPoints++
		s.GrowthStreak++
	} else {
		s.GrowthPoints = math.Max(0, s.GrowthPoints-t.PointsDecay)
		s.GrowthStreak = 0
	}

	if s.GrowthPoints >= t.PointsPerStage && s.StageIndex < len(species.Stages)-1 {
		s.StageIndex++
		s.GrowthPoints = 0
		em.emit(EventStageAdvanced, map[string]any{
			"stage_index": s.StageIndex,
			"stage":       species.StageName(s.StageIndex),
		})
	}
}
