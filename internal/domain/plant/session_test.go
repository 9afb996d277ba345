package plant

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, mutate func(*Tuning)) *Session {
	t.Helper()
	tun := DefaultTuning()
	if mutate != nil {
		mutate(&tun)
	}
	require.NoError(t, tun.Validate())
	return NewSession(SessionConfig{
		Species: testSpecies(),
		Tuning:  tun,
		Bits:    AlternatingBits(),
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func TestNewSession_InitialValues(t *testing.T) {
	s := newTestSession(t, nil)
	snap := s.Snapshot()

	assert.Equal(t, 0, snap.Day)
	assert.Equal(t, 65.0, snap.WaterLevel)
	assert.Equal(t, 70.0, snap.LightLevel)
	assert.Equal(t, 22.0, snap.Temperature)
	assert.Equal(t, 50.0, snap.AirHumidity)
	assert.Equal(t, 30.0, snap.AirFlow)
	assert.Equal(t, 70.0, snap.SoilAeration)
	assert.Equal(t, 70.0, snap.Immunity)
	assert.Equal(t, 100.0, snap.Health)
	assert.Equal(t, []float64{100}, snap.History)
	assert.Equal(t, 2, snap.Inventory[TreatmentFungicide])
	assert.Equal(t, 2, snap.Inventory[TreatmentInsecticide])
	assert.Equal(t, CategoryNormal, snap.Category)
	assert.Equal(t, PhaseDormant, snap.Phase)
	assert.Equal(t, OutcomeGrowing, snap.Outcome)
	assert.Equal(t, "seed", snap.Stage)
	assert.Nil(t, snap.ActiveProblem)
}

func TestTick_DrivesHealthToExactlyZeroThenIsAbsorbing(t *testing.T) {
	s := newTestSession(t, nil)
	s.state.Health = 10
	s.state.StressLoad = 20
	s.state.Immunity = 0

	first := s.Tick()
	require.Equal(t, IgnoredNone, first.Ignored)
	assert.Equal(t, 5.0, first.Snapshot.Health)
	assert.Equal(t, CategoryStressed, first.Snapshot.Category)

	second := s.Tick()
	assert.Equal(t, 0.0, second.Snapshot.Health)
	assert.Equal(t, CategoryDead, second.Snapshot.Category)
	assert.Equal(t, OutcomeDead, second.Snapshot.Outcome)
	assert.Contains(t, eventTypes(second.Events), EventPlantDied)

	frozen := s.Snapshot()
	frozenState := s.State()
	frozenLife := s.Lifecycle()

	water := s.Water()
	assert.Equal(t, IgnoredDead, water.Ignored)
	assert.Empty(t, water.Events)
	tick := s.Tick()
	assert.Equal(t, IgnoredDead, tick.Ignored)
	assert.Empty(t, tick.Events)
	assert.Equal(t, IgnoredDead, s.Warm().Ignored)
	assert.Equal(t, IgnoredDead, s.AdjustLight().Ignored)
	assert.Equal(t, IgnoredDead, s.ApplyTreatment(TreatmentFungicide).Ignored)

	assert.Equal(t, frozen, s.Snapshot())
	assert.Equal(t, frozenState, s.State())
	assert.Equal(t, frozenLife, s.Lifecycle())
}

func TestTick_SeasonEndsAtMaxDays(t *testing.T) {
	s := newTestSession(t, func(tun *Tuning) { tun.Session.MaxDays = 3 })

	var last TickResult
	for i := 0; i < 3; i++ {
		s.Water()
		last = s.Tick()
		require.Equal(t, IgnoredNone, last.Ignored)
	}
	assert.Equal(t, OutcomeSurvived, last.Snapshot.Outcome)
	assert.Contains(t, eventTypes(last.Events), EventSeasonCompleted)

	assert.Equal(t, IgnoredSessionOver, s.Tick().Ignored)
	assert.Equal(t, IgnoredSessionOver, s.Water().Ignored)
	assert.Equal(t, 3, s.Snapshot().Day)
}

func TestTick_SettledEventCarriesBeforeAndAfter(t *testing.T) {
	s := newTestSession(t, nil)
	res := s.Tick()

	require.NotEmpty(t, res.Events)
	settled := res.Events[0]
	assert.Equal(t, EventTickSettled, settled.Type)
	assert.Equal(t, 1, settled.Day)
	before := settled.Payload["state_before"].(map[string]any)
	after := settled.Payload["state_after"].(map[string]any)
	assert.Equal(t, 0, before["day"])
	assert.Equal(t, 1, after["day"])
	assert.Equal(t, res.Snapshot.Health, after["health"])
}

func TestApplyGrowth_AdvancesStageAndStopsAtLast(t *testing.T) {
	sp := testSpecies()
	tun := DefaultTuning().Growth
	dormant := Lifecycle{Phase: PhaseDormant}

	s := EcosystemState{GrowthPoints: 3, GrowthStreak: 3}
	em := testEmitter()
	applyGrowth(&s, CategoryNormal, dormant, sp, tun, em)
	assert.Equal(t, 1, s.StageIndex)
	assert.Equal(t, 0.0, s.GrowthPoints)
	assert.Equal(t, 4, s.GrowthStreak)
	require.Len(t, em.out, 1)
	assert.Equal(t, EventStageAdvanced, em.out[0].Type)
	assert.Equal(t, "sprout", em.out[0].Payload["stage"])

	last := EcosystemState{StageIndex: 2, GrowthPoints: 10}
	applyGrowth(&last, CategoryNormal, dormant, sp, tun, testEmitter())
	assert.Equal(t, 2, last.StageIndex)
	assert.Equal(t, 11.0, last.GrowthPoints)
}

func TestApplyGrowth_StallsWhenNotNormalOrProblemActive(t *testing.T) {
	sp := testSpecies()
	tun := DefaultTuning().Growth

	s := EcosystemState{GrowthPoints: 0.25, GrowthStreak: 5}
	applyGrowth(&s, CategoryDry, Lifecycle{Phase: PhaseDormant}, sp, tun, testEmitter())
	assert.Equal(t, 0.0, s.GrowthPoints)
	assert.Equal(t, 0, s.GrowthStreak)

	active := Lifecycle{Phase: PhaseActive, Problem: &ProblemDefinition{ID: "x"}}
	s = EcosystemState{GrowthPoints: 2, GrowthStreak: 5}
	applyGrowth(&s, CategoryNormal, active, sp, tun, testEmitter())
	assert.Equal(t, 1.5, s.GrowthPoints)
	assert.Equal(t, 0, s.GrowthStreak)
}

func TestApplyHealth_ActiveProblemCostsPenaltyAndEffect(t *testing.T) {
	tun := DefaultTuning()
	problem := &ProblemDefinition{
		ID:      "rot",
		Trigger: always(true),
		Effect: func(EnvironmentSnapshot) StateDelta {
			return StateDelta{Health: -3, Immunity: -2, GrowthPoints: -0.5, StressLoad: 1, WaterLevel: -3}
		},
	}
	s := EcosystemState{Health: 50, Immunity: 50, GrowthPoints: 0.25, WaterLevel: 1}

	effect := applyHealth(&s, CategoryDry, Lifecycle{Phase: PhaseActive, Problem: problem}, tun)
	assert.Equal(t, -3.0, effect.Health)
	assert.Equal(t, 41.0, s.Health)
	assert.Equal(t, 48.0, s.Immunity)
	assert.Equal(t, 0.0, s.GrowthPoints)
	assert.Equal(t, 1.0, s.StressLoad)
	assert.Equal(t, 0.0, s.WaterLevel)
	assert.Equal(t, []float64{41}, s.History)
}

func TestApplyHealth_SuspendedWhileTreating(t *testing.T) {
	tun := DefaultTuning()
	called := false
	problem := &ProblemDefinition{
		ID:      "rot",
		Trigger: always(true),
		Effect: func(EnvironmentSnapshot) StateDelta {
			called = true
			return StateDelta{Health: -50}
		},
	}
	s := EcosystemState{Health: 50, Immunity: 70}
	applyHealth(&s, CategoryNormal, Lifecycle{Phase: PhaseTreating, Problem: problem, Timer: 1}, tun)
	assert.False(t, called)
	assert.Equal(t, 53.0, s.Health)
}

func TestAdjustLight_Toggles(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, 45.0, s.AdjustLight().Snapshot.LightLevel)
	assert.Equal(t, 80.0, s.AdjustLight().Snapshot.LightLevel)
	assert.Equal(t, 45.0, s.AdjustLight().Snapshot.LightLevel)
}

func TestActions_ReapplyWithoutDebounce(t *testing.T) {
	s := newTestSession(t, nil)
	for i := 0; i < 5; i++ {
		res := s.Water()
		require.True(t, res.Applied())
		require.Len(t, res.Events, 1)
		assert.Equal(t, EventActionApplied, res.Events[0].Type)
	}
	snap := s.Snapshot()
	assert.Equal(t, 100.0, snap.WaterLevel)
	assert.Equal(t, 80.0, snap.AirHumidity)
	assert.Equal(t, 45.0, snap.SoilAeration)

	for i := 0; i < 10; i++ {
		s.Warm()
	}
	assert.Equal(t, float64(TemperatureMax), s.Snapshot().Temperature)
}

func TestReset_RestoresInitialValues(t *testing.T) {
	s := newTestSession(t, nil)
	for i := 0; i < 4; i++ {
		s.Warm()
		s.Tick()
	}
	events := s.Reset()
	require.Len(t, events, 1)
	assert.Equal(t, EventSessionStarted, events[0].Type)

	fresh := newTestSession(t, nil)
	assert.Equal(t, fresh.Snapshot(), s.Snapshot())
}

func TestSnapshot_IsDetachedFromSession(t *testing.T) {
	s := newTestSession(t, nil)
	snap := s.Snapshot()
	snap.History[0] = -1
	snap.Inventory[TreatmentFungicide] = 99

	again := s.Snapshot()
	assert.Equal(t, 100.0, again.History[0])
	assert.Equal(t, 2, again.Inventory[TreatmentFungicide])
}

func TestSnapshot_ReportsTemperatureFluctuation(t *testing.T) {
	s := newTestSession(t, nil)
	snap := s.Snapshot()
	assert.Equal(t, 22.0, snap.LastTemperature)
	assert.Zero(t, snap.TemperatureFluctuation)

	warm := s.Warm().Snapshot
	assert.Equal(t, 22.0, warm.LastTemperature)
	assert.InDelta(t, s.Tuning().Actions.WarmAmount, warm.TemperatureFluctuation, 1e-9)

	settled := s.Tick().Snapshot
	assert.Equal(t, settled.Temperature, settled.LastTemperature)
	assert.Zero(t, settled.TemperatureFluctuation)
}

func TestSnapshot_HistoryWindowShowsLastEntries(t *testing.T) {
	s := newTestSession(t, func(tun *Tuning) { tun.Session.HistoryWindow = 3 })
	for i := 0; i < 5; i++ {
		s.Water()
		s.Tick()
	}
	snap := s.Snapshot()
	require.Len(t, snap.History, 6)
	assert.Equal(t, snap.History[3:], snap.HistoryWindow)
}

func TestSession_BoundsHoldUnderRandomPlay(t *testing.T) {
	problems := []ProblemDefinition{
		{
			ID: "drain", Treatment: TreatmentFungicide,
			Trigger: func(e EnvironmentSnapshot) bool { return e.WaterLevel > 70 },
			Effect: func(EnvironmentSnapshot) StateDelta {
				return StateDelta{Health: -9, Immunity: -9, GrowthPoints: -3, StressLoad: 4, WaterLevel: -20}
			},
		},
		{
			ID: "untreatable", Treatment: TreatmentNone,
			Trigger: func(EnvironmentSnapshot) bool { return true },
			Effect:  func(EnvironmentSnapshot) StateDelta { return StateDelta{Immunity: -5} },
		},
	}

	for seed := uint64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		s := NewSession(SessionConfig{
			Species:  testSpecies(),
			Problems: problems,
			Bits:     NewSeededBits(seed),
		})
		prevStage := 0
		for step := 0; step < 200; step++ {
			switch rng.IntN(6) {
			case 0:
				s.Water()
			case 1:
				s.AdjustLight()
			case 2:
				s.Warm()
			case 3:
				s.ApplyTreatment(TreatmentKinds[rng.IntN(len(TreatmentKinds))])
			default:
				s.Tick()
			}
			st := s.State()
			for name, v := range map[string]float64{
				"water": st.WaterLevel, "light": st.LightLevel, "humidity": st.AirHumidity,
				"aeration": st.SoilAeration, "immunity": st.Immunity, "health": st.Health,
			} {
				require.GreaterOrEqualf(t, v, 0.0, "seed %d step %d %s", seed, step, name)
				require.LessOrEqualf(t, v, 100.0, "seed %d step %d %s", seed, step, name)
			}
			require.GreaterOrEqual(t, st.Temperature, float64(TemperatureMin))
			require.LessOrEqual(t, st.Temperature, float64(TemperatureMax))
			require.GreaterOrEqual(t, st.Pressure, PressureMin)
			require.LessOrEqual(t, st.Pressure, PressureMax)
			require.GreaterOrEqual(t, st.StressLoad, 0.0)
			require.GreaterOrEqual(t, st.GrowthPoints, 0.0)
			require.GreaterOrEqual(t, st.StageIndex, prevStage)
			require.LessOrEqual(t, st.StageIndex, len(s.Species().Stages)-1)
			for kind, n := range st.Inventory {
				require.GreaterOrEqualf(t, n, 0, "inventory %s", kind)
			}
			l := s.Lifecycle()
			if l.Phase == PhaseDormant || l.Phase == PhaseSymptomatic {
				require.Nil(t, l.Problem)
			} else {
				require.NotNil(t, l.Problem)
			}
			prevStage = st.StageIndex
		}
	}
}

func eventTypes(events []DomainEvent) []EventType {
	out := make([]EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
