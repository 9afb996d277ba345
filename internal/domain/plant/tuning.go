package plant

import (
	"errors"
	"fmt"
)

const (
	LevelMin = 0
	LevelMax = 100

	TemperatureMin = 10
	TemperatureMax = 40

	PressureMin = 0
	PressureMax = 10
)

type SessionTuning struct {
	MaxDays       int `yaml:"max_days" json:"max_days"`
	HistoryWindow int `yaml:"history_window" json:"history_window"`
}

type DecayTuning struct {
	WaterBase             float64 `yaml:"water_base" json:"water_base"`
	WaterAirFlowCoeff     float64 `yaml:"water_air_flow_coeff" json:"water_air_flow_coeff"`
	HumidityAirFlowCoeff  float64 `yaml:"humidity_air_flow_coeff" json:"humidity_air_flow_coeff"`
	WaterloggingThreshold float64 `yaml:"waterlogging_threshold" json:"waterlogging_threshold"`
	WaterloggingAeration  float64 `yaml:"waterlogging_aeration" json:"waterlogging_aeration"`
	TemperatureDriftStep  float64 `yaml:"temperature_drift_step" json:"temperature_drift_step"`
}

type EcosystemTuning struct {
	AerationLowThreshold      float64 `yaml:"aeration_low_threshold" json:"aeration_low_threshold"`
	PressureHighThreshold     int     `yaml:"pressure_high_threshold" json:"pressure_high_threshold"`
	ImmunityPressureThreshold int     `yaml:"immunity_pressure_threshold" json:"immunity_pressure_threshold"`
	ImmunityPenalty           float64 `yaml:"immunity_penalty" json:"immunity_penalty"`
	ImmunityRecovery          float64 `yaml:"immunity_recovery" json:"immunity_recovery"`
	ImmunityLowThreshold      float64 `yaml:"immunity_low_threshold" json:"immunity_low_threshold"`
	StressGain                float64 `yaml:"stress_gain" json:"stress_gain"`
	StressDecay               float64 `yaml:"stress_decay" json:"stress_decay"`
	StressHighThreshold       float64 `yaml:"stress_high_threshold" json:"stress_high_threshold"`
}

type LifecycleTuning struct {
	SymptomaticTicks        int     `yaml:"symptomatic_ticks" json:"symptomatic_ticks"`
	TreatingTicks           int     `yaml:"treating_ticks" json:"treating_ticks"`
	RecoveryImmunityBonus   float64 `yaml:"recovery_immunity_bonus" json:"recovery_immunity_bonus"`
	RecoveryPressureRelief  int     `yaml:"recovery_pressure_relief" json:"recovery_pressure_relief"`
	WrongHealthPenalty      float64 `yaml:"wrong_health_penalty" json:"wrong_health_penalty"`
	WrongImmunityPenalty    float64 `yaml:"wrong_immunity_penalty" json:"wrong_immunity_penalty"`
	WrongStressGain         float64 `yaml:"wrong_stress_gain" json:"wrong_stress_gain"`
	WrongPressureGain       int     `yaml:"wrong_pressure_gain" json:"wrong_pressure_gain"`
	ActiveProblemHealthCost float64 `yaml:"active_problem_health_cost" json:"active_problem_health_cost"`
}

type HealthTuning struct {
	HighImmunityThreshold float64 `yaml:"high_immunity_threshold" json:"high_immunity_threshold"`
	NormalGainHigh        float64 `yaml:"normal_gain_high" json:"normal_gain_high"`
	NormalGain            float64 `yaml:"normal_gain" json:"normal_gain"`
	DryLoss               float64 `yaml:"dry_loss" json:"dry_loss"`
	StressedLoss          float64 `yaml:"stressed_loss" json:"stressed_loss"`
}

type GrowthTuning struct {
	PointsPerStage float64 `yaml:"points_per_stage" json:"points_per_stage"`
	PointsDecay    float64 `yaml:"points_decay" json:"points_decay"`
}

type ActionTuning struct {
	WaterAmount          float64 `yaml:"water_amount" json:"water_amount"`
	WaterHumidity        float64 `yaml:"water_humidity" json:"water_humidity"`
	WaterAerationLoss    float64 `yaml:"water_aeration_loss" json:"water_aeration_loss"`
	LightToggleThreshold float64 `yaml:"light_toggle_threshold" json:"light_toggle_threshold"`
	LightHigh            float64 `yaml:"light_high" json:"light_high"`
	LightLow             float64 `yaml:"light_low" json:"light_low"`
	WarmAmount           float64 `yaml:"warm_amount" json:"warm_amount"`
	WarmHumidityLoss     float64 `yaml:"warm_humidity_loss" json:"warm_humidity_loss"`
}

type InitialTuning struct {
	WaterLevel   float64               `yaml:"water_level" json:"water_level"`
	LightLevel   float64               `yaml:"light_level" json:"light_level"`
	Temperature  float64               `yaml:"temperature" json:"temperature"`
	AirHumidity  float64               `yaml:"air_humidity" json:"air_humidity"`
	AirFlow      float64               `yaml:"air_flow" json:"air_flow"`
	SoilAeration float64               `yaml:"soil_aeration" json:"soil_aeration"`
	Immunity     float64               `yaml:"immunity" json:"immunity"`
	Health       float64               `yaml:"health" json:"health"`
	Treatments   map[TreatmentKind]int `yaml:"treatments" json:"treatments"`
}

// Tuning holds every numeric constant of the simulation. DefaultTuning
// mirrors the balanced ecosystem model; callers override fields, never the
// engine.
type Tuning struct {
	Session   SessionTuning   `yaml:"session" json:"session"`
	Decay     DecayTuning     `yaml:"decay" json:"decay"`
	Ecosystem EcosystemTuning `yaml:"ecosystem" json:"ecosystem"`
	Lifecycle LifecycleTuning `yaml:"lifecycle" json:"lifecycle"`
	Health    HealthTuning    `yaml:"health" json:"health"`
	Growth    GrowthTuning    `yaml:"growth" json:"growth"`
	Actions   ActionTuning    `yaml:"actions" json:"actions"`
	Initial   InitialTuning   `yaml:"initial" json:"initial"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Session: SessionTuning{
			MaxDays:       35,
			HistoryWindow: 20,
		},
		Decay: DecayTuning{
			WaterBase:             4,
			WaterAirFlowCoeff:     0.05,
			HumidityAirFlowCoeff:  0.08,
			WaterloggingThreshold: 80,
			WaterloggingAeration:  2,
			TemperatureDriftStep:  1,
		},
		Ecosystem: EcosystemTuning{
			AerationLowThreshold:      40,
			PressureHighThreshold:     1,
			ImmunityPressureThreshold: 0,
			ImmunityPenalty:           3,
			ImmunityRecovery:          2,
			ImmunityLowThreshold:      30,
			StressGain:                2,
			StressDecay:               1,
			StressHighThreshold:       6,
		},
		Lifecycle: LifecycleTuning{
			SymptomaticTicks:        2,
			TreatingTicks:           2,
			RecoveryImmunityBonus:   6,
			RecoveryPressureRelief:  2,
			WrongHealthPenalty:      4,
			WrongImmunityPenalty:    6,
			WrongStressGain:         2,
			WrongPressureGain:       1,
			ActiveProblemHealthCost: 2,
		},
		Health: HealthTuning{
			HighImmunityThreshold: 60,
			NormalGainHigh:        3,
			NormalGain:            2,
			DryLoss:               4,
			StressedLoss:          5,
		},
		Growth: GrowthTuning{
			PointsPerStage: 4,
			PointsDecay:    0.5,
		},
		Actions: ActionTuning{
			WaterAmount:          15,
			WaterHumidity:        6,
			WaterAerationLoss:    5,
			LightToggleThreshold: 60,
			LightHigh:            80,
			LightLow:             45,
			WarmAmount:           3,
			WarmHumidityLoss:     4,
		},
		Initial: InitialTuning{
			WaterLevel:   65,
			LightLevel:   70,
			Temperature:  22,
			AirHumidity:  50,
			AirFlow:      30,
			SoilAeration: 70,
			Immunity:     70,
			Health:       100,
			Treatments: map[TreatmentKind]int{
				TreatmentFungicide:   2,
				TreatmentInsecticide: 2,
			},
		},
	}
}

var ErrInvalidTuning = errors.New("invalid tuning")

func (t Tuning) Validate() error {
	var errs []error
	if t.Session.MaxDays <= 0 {
		errs = append(errs, fmt.Errorf("session.max_days must be positive, got %d", t.Session.MaxDays))
	}
	if t.Session.HistoryWindow < 0 {
		errs = append(errs, fmt.Errorf("session.history_window must not be negative, got %d", t.Session.HistoryWindow))
	}
	if t.Ecosystem.PressureHighThreshold <= PressureMin || t.Ecosystem.PressureHighThreshold > PressureMax {
		errs = append(errs, fmt.Errorf("ecosystem.pressure_high_threshold must be in (%d,%d], got %d", PressureMin, PressureMax, t.Ecosystem.PressureHighThreshold))
	}
	if t.Lifecycle.SymptomaticTicks <= 0 {
		errs = append(errs, fmt.Errorf("lifecycle.symptomatic_ticks must be positive, got %d", t.Lifecycle.SymptomaticTicks))
	}
	if t.Lifecycle.TreatingTicks <= 0 {
		errs = append(errs, fmt.Errorf("lifecycle.treating_ticks must be positive, got %d", t.Lifecycle.TreatingTicks))
	}
	if t.Growth.PointsPerStage <= 0 {
		errs = append(errs, fmt.Errorf("growth.points_per_stage must be positive, got %v", t.Growth.PointsPerStage))
	}
	if t.Initial.Health <= 0 || t.Initial.Health > LevelMax {
		errs = append(errs, fmt.Errorf("initial.health must be in (0,%d], got %v", LevelMax, t.Initial.Health))
	}
	if t.Initial.Temperature < TemperatureMin || t.Initial.Temperature > TemperatureMax {
		errs = append(errs, fmt.Errorf("initial.temperature must be in [%d,%d], got %v", TemperatureMin, TemperatureMax, t.Initial.Temperature))
	}
	for kind, n := range t.Initial.Treatments {
		if _, ok := ParseTreatmentKind(string(kind)); !ok {
			errs = append(errs, fmt.Errorf("initial.treatments: unknown kind %q", kind))
		}
		if n < 0 {
			errs = append(errs, fmt.Errorf("initial.treatments[%s] must not be negative, got %d", kind, n))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTuning, errors.Join(errs...))
	}
	return nil
}
