package plant

// Diagnose returns the first problem, in catalog order, whose trigger holds
// for env. Catalog order is the tie-break when several triggers hold.
func Diagnose(problems []ProblemDefinition, env EnvironmentSnapshot) *ProblemDefinition {
	for i := range problems {
		if problems[i].Trigger == nil {
			continue
		}
		if problems[i].Trigger(env) {
			return &problems[i]
		}
	}
	return nil
}

func advanceLifecycle(l *Lifecycle, s *EcosystemState, problems []ProblemDefinition, t Tuning, em *emitter) {
	switch l.Phase {
	case PhaseDormant, "":
		if s.Pressure < t.Ecosystem.PressureHighThreshold {
			return
		}
		l.Phase = PhaseSymptomatic
		l.Timer = t.Lifecycle.SymptomaticTicks
		em.emit(EventSymptomOnset, map[string]any{
			"pressure": s.Pressure,
			"timer":    l.Timer,
		})
	case PhaseSymptomatic:
		l.Timer--
		if l.Timer > 0 {
			return
		}
		p := Diagnose(problems, environmentOf(*s))
		if p == nil {
			*l = Lifecycle{Phase: PhaseDormant}
			em.emit(EventSymptomResolved, nil)
			return
		}
		*l = Lifecycle{Phase: PhaseActive, Problem: p}
		em.emit(EventProblemDiagnosed, map[string]any{
			"problem_id": p.ID,
			"symptom":    p.Symptom,
			"severity":   p.Severity,
		})
	case PhaseTreating:
		l.Timer--
		if l.Timer > 0 {
			return
		}
		problemID := ""
		if l.Problem != nil {
			problemID = l.Problem.ID
		}
		*l = Lifecycle{Phase: PhaseDormant}
		s.Immunity = clampLevel(s.Immunity + t.Lifecycle.RecoveryImmunityBonus)
		s.Pressure = clampPressure(s.Pressure - t.Lifecycle.RecoveryPressureRelief)
		em.emit(EventRecovered, map[string]any{
			"problem_id": problemID,
			"immunity":   s.Immunity,
			"pressure":   s.Pressure,
		})
	}
}

// applyTreatment resolves a treatment action against the active problem.
// A mismatch (or an untreatable problem) costs the wrong-treatment penalty;
// a match with stock moves to treating; a match without stock does nothing.
func applyTreatment(l *Lifecycle, s *EcosystemState, kind TreatmentKind, t LifecycleTuning, em *emitter) IgnoreReason {
	if _, ok := ParseTreatmentKind(string(kind)); !ok {
		return IgnoredUnknownTreatment
	}
	if l.Phase != PhaseActive || l.Problem == nil {
		return IgnoredNoActiveProblem
	}
	if !l.Problem.Treatable() || l.Problem.Treatment != kind {
		s.Health = clampLevel(s.Health - t.WrongHealthPenalty)
		s.Immunity = clampLevel(s.Immunity - t.WrongImmunityPenalty)
		s.StressLoad += t.WrongStressGain
		s.Pressure = clampPressure(s.Pressure + t.WrongPressureGain)
		em.emit(EventTreatmentWrong, map[string]any{
			"treatment": string(kind),
			"health":    s.Health,
			"immunity":  s.Immunity,
		})
		return IgnoredNone
	}
	if s.Inventory[kind] <= 0 {
		return IgnoredTreatmentUnavailable
	}
	s.Inventory[kind]--
	l.Phase = PhaseTreating
	l.Timer = t.TreatingTicks
	em.emit(EventTreatmentStarted, map[string]any{
		"treatment": string(kind),
		"remaining": s.Inventory[kind],
		"timer":     l.Timer,
	})
	return IgnoredNone
}
