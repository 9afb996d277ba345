package plant

import (
	"math"
	"time"
)

type SessionConfig struct {
	Species  SpeciesProfile
	Problems []ProblemDefinition
	Tuning   Tuning
	Bits     BitSource
	Now      func() time.Time
}

// Session owns the complete state of one plant. It is not safe for
// concurrent use; callers serialize ticks and actions.
type Session struct {
	species   SpeciesProfile
	problems  []ProblemDefinition
	tuning    Tuning
	bits      BitSource
	now       func() time.Time
	state     EcosystemState
	lifecycle Lifecycle
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Tuning.Session.MaxDays <= 0 {
		cfg.Tuning = DefaultTuning()
	}
	if cfg.Bits == nil {
		cfg.Bits = NewRandBits()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		species:  cfg.Species,
		problems: append([]ProblemDefinition(nil), cfg.Problems...),
		tuning:   cfg.Tuning,
		bits:     cfg.Bits,
		now:      cfg.Now,
	}
	s.Reset()
	return s
}

// Reset discards all state and starts again from the initial values.
func (s *Session) Reset() []DomainEvent {
	in := s.tuning.Initial
	inventory := make(map[TreatmentKind]int, len(TreatmentKinds))
	for _, k := range TreatmentKinds {
		inventory[k] = max(0, in.Treatments[k])
	}
	health := clampLevel(in.Health)
	temperature := clampTemperature(in.Temperature)
	s.state = EcosystemState{
		WaterLevel:      clampLevel(in.WaterLevel),
		LightLevel:      clampLevel(in.LightLevel),
		Temperature:     temperature,
		LastTemperature: temperature,
		AirHumidity:     clampLevel(in.AirHumidity),
		AirFlow:         clampLevel(in.AirFlow),
		SoilAeration:    clampLevel(in.SoilAeration),
		Immunity:        clampLevel(in.Immunity),
		Health:          health,
		Inventory:       inventory,
		History:         []float64{health},
	}
	s.lifecycle = Lifecycle{Phase: PhaseDormant}

	em := s.newEmitter()
	em.emit(EventSessionStarted, map[string]any{
		"species_id": s.species.ID,
		"max_days":   s.tuning.Session.MaxDays,
	})
	return em.out
}

func (s *Session) Species() SpeciesProfile { return s.species }

func (s *Session) Tuning() Tuning { return s.tuning }

func (s *Session) State() EcosystemState { return s.state.clone() }

func (s *Session) Lifecycle() Lifecycle { return s.lifecycle }

// Environment is what a problem trigger would see right now.
func (s *Session) Environment() EnvironmentSnapshot { return environmentOf(s.state) }

func (s *Session) Category() Category {
	return DeriveCategory(s.state, s.tuning.Ecosystem)
}

func (s *Session) Dead() bool {
	return s.state.Health <= 0
}

func (s *Session) Over() bool {
	return s.state.Day >= s.tuning.Session.MaxDays
}

func (s *Session) Outcome() Outcome {
	switch {
	case s.Dead():
		return OutcomeDead
	case s.Over():
		return OutcomeSurvived
	default:
		return OutcomeGrowing
	}
}

func (s *Session) guard() IgnoreReason {
	if s.Dead() {
		return IgnoredDead
	}
	if s.Over() {
		return IgnoredSessionOver
	}
	return IgnoredNone
}

// Tick advances one day: ecosystem, problem lifecycle, then health and
// growth. Nothing changes once the plant is dead or the season is over.
func (s *Session) Tick() TickResult {
	if reason := s.guard(); reason != IgnoredNone {
		return TickResult{Snapshot: s.Snapshot(), Ignored: reason}
	}

	before := s.state.summary()
	s.state.Day++
	em := s.newEmitter()

	advanceEcosystem(&s.state, s.species, s.tuning, s.bits)
	category := DeriveCategory(s.state, s.tuning.Ecosystem)
	advanceLifecycle(&s.lifecycle, &s.state, s.problems, s.tuning, em)
	healthBefore := s.state.Health
	effect := applyHealth(&s.state, category, s.lifecycle, s.tuning)
	applyGrowth(&s.state, category, s.lifecycle, s.species, s.tuning.Growth, em)
	s.state.LastTemperature = s.state.Temperature

	s.emitOutcome(em)

	settled := DomainEvent{
		Type:       EventTickSettled,
		Day:        s.state.Day,
		OccurredAt: em.now,
		Payload: map[string]any{
			"state_before": before,
			"state_after":  s.state.summary(),
			"result": map[string]any{
				"category":     string(category),
				"final":        string(s.Category()),
				"phase":        string(s.lifecycle.Phase),
				"health_delta": s.state.Health - healthBefore,
				"effect":       effect,
			},
		},
	}
	events := append([]DomainEvent{settled}, em.out...)
	return TickResult{Snapshot: s.Snapshot(), Events: events}
}

func (s *Session) emitOutcome(em *emitter) {
	switch {
	case s.Dead():
		em.emit(EventPlantDied, map[string]any{
			"stage": s.species.StageName(s.state.StageIndex),
		})
	case s.Over():
		em.emit(EventSeasonCompleted, map[string]any{
			"health": s.state.Health,
			"stage":  s.species.StageName(s.state.StageIndex),
		})
	}
}

func (s *Session) Water() ActionResult {
	a := s.tuning.Actions
	return s.act("water", func(st *EcosystemState) {
		st.WaterLevel = clampLevel(st.WaterLevel + a.WaterAmount)
		st.AirHumidity = clampLevel(st.AirHumidity + a.WaterHumidity)
		st.SoilAeration = clampLevel(st.SoilAeration - a.WaterAerationLoss)
	})
}

// AdjustLight toggles between the bright and the shaded lamp setting.
func (s *Session) AdjustLight() ActionResult {
	a := s.tuning.Actions
	return s.act("light", func(st *EcosystemState) {
		if st.LightLevel > a.LightToggleThreshold {
			st.LightLevel = clampLevel(a.LightLow)
			return
		}
		st.LightLevel = clampLevel(a.LightHigh)
	})
}

func (s *Session) Warm() ActionResult {
	a := s.tuning.Actions
	return s.act("warm", func(st *EcosystemState) {
		st.Temperature = clampTemperature(st.Temperature + a.WarmAmount)
		st.AirHumidity = clampLevel(st.AirHumidity - a.WarmHumidityLoss)
	})
}

func (s *Session) act(name string, apply func(*EcosystemState)) ActionResult {
	if reason := s.guard(); reason != IgnoredNone {
		return ActionResult{Snapshot: s.Snapshot(), Ignored: reason}
	}
	apply(&s.state)
	em := s.newEmitter()
	em.emit(EventActionApplied, map[string]any{
		"action": name,
		"state":  s.state.summary(),
	})
	return ActionResult{Snapshot: s.Snapshot(), Events: em.out}
}

func (s *Session) ApplyTreatment(kind TreatmentKind) ActionResult {
	if reason := s.guard(); reason != IgnoredNone {
		return ActionResult{Snapshot: s.Snapshot(), Ignored: reason}
	}
	em := s.newEmitter()
	if reason := applyTreatment(&s.lifecycle, &s.state, kind, s.tuning.Lifecycle, em); reason != IgnoredNone {
		return ActionResult{Snapshot: s.Snapshot(), Ignored: reason}
	}
	if s.Dead() {
		s.emitOutcome(em)
	}
	return ActionResult{Snapshot: s.Snapshot(), Events: em.out}
}

func (s *Session) Snapshot() Snapshot {
	st := s.state.clone()
	snap := Snapshot{
		SpeciesID:              s.species.ID,
		Day:                    st.Day,
		MaxDays:                s.tuning.Session.MaxDays,
		Category:               s.Category(),
		Phase:                  s.lifecycle.Phase,
		Outcome:                s.Outcome(),
		Stage:                  s.species.StageName(st.StageIndex),
		StageIndex:             st.StageIndex,
		StageCount:             len(s.species.Stages),
		WaterLevel:             st.WaterLevel,
		LightLevel:             st.LightLevel,
		Temperature:            st.Temperature,
		LastTemperature:        st.LastTemperature,
		TemperatureFluctuation: math.Abs(st.Temperature - st.LastTemperature),
		AirHumidity:            st.AirHumidity,
		AirFlow:                st.AirFlow,
		SoilAeration:           st.SoilAeration,
		Immunity:               st.Immunity,
		StressLoad:             st.StressLoad,
		Pressure:               st.Pressure,
		Health:                 st.Health,
		GrowthPoints:           st.GrowthPoints,
		GrowthStreak:           st.GrowthStreak,
		Inventory:              st.Inventory,
		History:                st.History,
		HistoryWindow:          lastN(st.History, s.tuning.Session.HistoryWindow),
	}
	if p := s.lifecycle.Problem; p != nil && (s.lifecycle.Phase == PhaseActive || s.lifecycle.Phase == PhaseTreating) {
		snap.ActiveProblem = &ProblemView{Symptom: p.Symptom, Severity: p.Severity}
	}
	return snap
}

func lastN(history []float64, n int) []float64 {
	if n <= 0 || len(history) <= n {
		return append([]float64(nil), history...)
	}
	return append([]float64(nil), history[len(history)-n:]...)
}

func (s EcosystemState) summary() map[string]any {
	return map[string]any{
		"day":           s.Day,
		"health":        s.Health,
		"water_level":   s.WaterLevel,
		"light_level":   s.LightLevel,
		"temperature":   s.Temperature,
		"air_humidity":  s.AirHumidity,
		"soil_aeration": s.SoilAeration,
		"immunity":      s.Immunity,
		"stress_load":   s.StressLoad,
		"pressure":      s.Pressure,
		"stage_index":   s.StageIndex,
		"growth_points": s.GrowthPoints,
	}
}

type emitter struct {
	day int
	now time.Time
	out []DomainEvent
}

func (s *Session) newEmitter() *emitter {
	return &emitter{day: s.state.Day, now: s.now()}
}

func (e *emitter) emit(t EventType, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	e.out = append(e.out, DomainEvent{
		Type:       t,
		Day:        e.day,
		OccurredAt: e.now,
		Payload:    payload,
	})
}
