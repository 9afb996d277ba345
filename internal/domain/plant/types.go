package plant

import "time"

type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Valid() bool {
	return r.Min <= r.Max
}

type OptimalRanges struct {
	Water       Range `json:"water"`
	Light       Range `json:"light"`
	Temperature Range `json:"temperature"`
}

type CareTips struct {
	Watering    string `json:"watering"`
	Temperature string `json:"temperature"`
	Light       string `json:"light"`
	Ecosystem   string `json:"ecosystem"`
}

type SpeciesProfile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Stages      []string      `json:"stages"`
	Optimal     OptimalRanges `json:"optimal"`
	Tips        CareTips      `json:"tips"`
}

func (p SpeciesProfile) StageName(index int) string {
	if len(p.Stages) == 0 {
		return ""
	}
	if index < 0 {
		index = 0
	}
	if index >= len(p.Stages) {
		index = len(p.Stages) - 1
	}
	return p.Stages[index]
}

type TreatmentKind string

const (
	TreatmentNone        TreatmentKind = ""
	TreatmentFungicide   TreatmentKind = "fungicide"
	TreatmentInsecticide TreatmentKind = "insecticide"
)

var TreatmentKinds = []TreatmentKind{TreatmentFungicide, TreatmentInsecticide}

func ParseTreatmentKind(raw string) (TreatmentKind, bool) {
	for _, k := range TreatmentKinds {
		if string(k) == raw {
			return k, true
		}
	}
	return TreatmentNone, false
}

// EnvironmentSnapshot is the read-only view handed to problem triggers and
// effects. TemperatureFluctuation is |temperature - last tick's temperature|.
type EnvironmentSnapshot struct {
	Day                    int     `json:"day"`
	WaterLevel             float64 `json:"water_level"`
	LightLevel             float64 `json:"light_level"`
	Temperature            float64 `json:"temperature"`
	TemperatureFluctuation float64 `json:"temperature_fluctuation"`
	AirHumidity            float64 `json:"air_humidity"`
	AirFlow                float64 `json:"air_flow"`
	SoilAeration           float64 `json:"soil_aeration"`
	Immunity               float64 `json:"immunity"`
	StressLoad             float64 `json:"stress_load"`
	Pressure               int     `json:"pressure"`
	GrowthStreak           int     `json:"growth_streak"`
	Health                 float64 `json:"health"`
}

// StateDelta describes the mutations a problem applies in one tick. The
// engine applies and clamps it; effects never write state directly.
type StateDelta struct {
	Health       float64 `json:"health,omitempty"`
	Immunity     float64 `json:"immunity,omitempty"`
	GrowthPoints float64 `json:"growth_points,omitempty"`
	StressLoad   float64 `json:"stress_load,omitempty"`
	WaterLevel   float64 `json:"water_level,omitempty"`
}

type ProblemDefinition struct {
	ID        string
	Symptom   string
	RealCause string
	Severity  int
	Treatment TreatmentKind
	Trigger   func(EnvironmentSnapshot) bool
	Effect    func(EnvironmentSnapshot) StateDelta
}

func (p ProblemDefinition) Treatable() bool {
	return p.Treatment != TreatmentNone
}

type EcosystemState struct {
	WaterLevel      float64               `json:"water_level"`
	LightLevel      float64               `json:"light_level"`
	Temperature     float64               `json:"temperature"`
	LastTemperature float64               `json:"last_temperature"`
	AirHumidity     float64               `json:"air_humidity"`
	AirFlow         float64               `json:"air_flow"`
	SoilAeration    float64               `json:"soil_aeration"`
	Immunity        float64               `json:"immunity"`
	StressLoad      float64               `json:"stress_load"`
	Pressure        int                   `json:"pressure"`
	Health          float64               `json:"health"`
	StageIndex      int                   `json:"stage_index"`
	GrowthPoints    float64               `json:"growth_points"`
	GrowthStreak    int                   `json:"growth_streak"`
	Inventory       map[TreatmentKind]int `json:"inventory"`
	History         []float64             `json:"history"`
	Day             int                   `json:"day"`
}

func (s EcosystemState) clone() EcosystemState {
	out := s
	out.Inventory = make(map[TreatmentKind]int, len(s.Inventory))
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	out.History = append([]float64(nil), s.History...)
	return out
}

type Phase string

const (
	PhaseDormant     Phase = "dormant"
	PhaseSymptomatic Phase = "symptomatic"
	PhaseActive      Phase = "active"
	PhaseTreating    Phase = "treating"
)

type Lifecycle struct {
	Phase   Phase
	Problem *ProblemDefinition
	Timer   int
}

type Category string

const (
	CategoryNormal   Category = "normal"
	CategoryDry      Category = "dry"
	CategoryStressed Category = "stressed"
	CategoryDead     Category = "dead"
)

type Outcome string

const (
	OutcomeGrowing  Outcome = "growing"
	OutcomeDead     Outcome = "dead"
	OutcomeSurvived Outcome = "survived"
)

type IgnoreReason string

const (
	IgnoredNone                 IgnoreReason = ""
	IgnoredDead                 IgnoreReason = "dead"
	IgnoredSessionOver          IgnoreReason = "session_over"
	IgnoredNoActiveProblem      IgnoreReason = "no_active_problem"
	IgnoredTreatmentUnavailable IgnoreReason = "treatment_unavailable"
	IgnoredUnknownTreatment     IgnoreReason = "unknown_treatment"
	IgnoredUnknownSpecies       IgnoreReason = "unknown_species"
)

type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventActionApplied    EventType = "action_applied"
	EventSymptomOnset     EventType = "symptom_onset"
	EventSymptomResolved  EventType = "symptom_resolved"
	EventProblemDiagnosed EventType = "problem_diagnosed"
	EventTreatmentWrong   EventType = "treatment_wrong"
	EventTreatmentStarted EventType = "treatment_started"
	EventRecovered        EventType = "recovered"
	EventStageAdvanced    EventType = "stage_advanced"
	EventPlantDied        EventType = "plant_died"
	EventSeasonCompleted  EventType = "season_completed"
	EventTickSettled      EventType = "tick_settled"
)

type DomainEvent struct {
	Type       EventType      `json:"type"`
	Day        int            `json:"day"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

type ProblemView struct {
	Symptom  string `json:"symptom"`
	Severity int    `json:"severity"`
}

type Snapshot struct {
	SpeciesID              string                `json:"species_id"`
	Day                    int                   `json:"day"`
	MaxDays                int                   `json:"max_days"`
	Category               Category              `json:"category"`
	Phase                  Phase                 `json:"phase"`
	Outcome                Outcome               `json:"outcome"`
	Stage                  string                `json:"stage"`
	StageIndex             int                   `json:"stage_index"`
	StageCount             int                   `json:"stage_count"`
	WaterLevel             float64               `json:"water_level"`
	LightLevel             float64               `json:"light_level"`
	Temperature            float64               `json:"temperature"`
	LastTemperature        float64               `json:"last_temperature"`
	TemperatureFluctuation float64               `json:"temperature_fluctuation"`
	AirHumidity            float64               `json:"air_humidity"`
	AirFlow                float64               `json:"air_flow"`
	SoilAeration           float64               `json:"soil_aeration"`
	Immunity               float64               `json:"immunity"`
	StressLoad             float64               `json:"stress_load"`
	Pressure               int                   `json:"pressure"`
	Health                 float64               `json:"health"`
	GrowthPoints           float64               `json:"growth_points"`
	GrowthStreak           int                   `json:"growth_streak"`
	Inventory              map[TreatmentKind]int `json:"inventory"`
	ActiveProblem          *ProblemView          `json:"active_problem,omitempty"`
	History                []float64             `json:"history"`
	HistoryWindow          []float64             `json:"history_window"`
}

type TickResult struct {
	Snapshot Snapshot      `json:"snapshot"`
	Events   []DomainEvent `json:"events"`
	Ignored  IgnoreReason  `json:"ignored,omitempty"`
}

type ActionResult struct {
	Snapshot Snapshot      `json:"snapshot"`
	Events   []DomainEvent `json:"events"`
	Ignored  IgnoreReason  `json:"ignored,omitempty"`
}

func (r ActionResult) Applied() bool {
	return r.Ignored == IgnoredNone
}
