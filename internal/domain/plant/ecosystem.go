package plant

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampLevel(v float64) float64 {
	return clamp(v, LevelMin, LevelMax)
}

func clampTemperature(v float64) float64 {
	return clamp(v, TemperatureMin, TemperatureMax)
}

func clampPressure(v int) int {
	return max(PressureMin, min(PressureMax, v))
}

// advanceEcosystem runs the passive part of a day: decay, temperature drift,
// pressure accounting, immunity and stress. Steps run in order because each
// reads what the previous one wrote.
func advanceEcosystem(s *EcosystemState, species SpeciesProfile, t Tuning, bits BitSource) {
	decay(s, t.Decay)
	driftTemperature(s, t.Decay, bits)
	s.Pressure = countPressure(*s, species, t.Ecosystem)
	updateImmunity(s, t.Ecosystem)
	updateStress(s, t.Ecosystem)
}

func decay(s *EcosystemState, t DecayTuning) {
	s.WaterLevel = clampLevel(s.WaterLevel - (t.WaterBase + s.AirFlow*t.WaterAirFlowCoeff))
	s.AirHumidity = clampLevel(s.AirHumidity - s.AirFlow*t.HumidityAirFlowCoeff)
	if s.WaterLevel > t.WaterloggingThreshold {
		s.SoilAeration = clampLevel(s.SoilAeration - t.WaterloggingAeration)
	}
}

func driftTemperature(s *EcosystemState, t DecayTuning, bits BitSource) {
	step := -t.TemperatureDriftStep
	if bits.Bit() {
		step = t.TemperatureDriftStep
	}
	s.Temperature = clampTemperature(s.Temperature + step)
}

// countPressure reflects current violations only; it never accumulates
// across ticks.
func countPressure(s EcosystemState, species SpeciesProfile, t EcosystemTuning) int {
	pressure := 0
	if !species.Optimal.Water.Contains(s.WaterLevel) {
		pressure++
	}
	if !species.Optimal.Temperature.Contains(s.Temperature) {
		pressure++
	}
	if s.SoilAeration < t.AerationLowThreshold {
		pressure++
	}
	return clampPressure(pressure)
}

func updateImmunity(s *EcosystemState, t EcosystemTuning) {
	if s.Pressure > t.ImmunityPressureThreshold {
		s.Immunity = clampLevel(s.Immunity - t.ImmunityPenalty)
		return
	}
	s.Immunity = clampLevel(s.Immunity + t.ImmunityRecovery)
}

func updateStress(s *EcosystemState, t EcosystemTuning) {
	if s.Immunity < t.ImmunityLowThreshold {
		s.StressLoad += t.StressGain
		return
	}
	s.StressLoad = math.Max(0, s.StressLoad-t.StressDecay)
}

type categoryRule struct {
	category Category
	holds    func(EcosystemState, EcosystemTuning) bool
}

// categoryRules is evaluated top to bottom; the first rule that holds wins,
// so dead > stressed > dry > normal.
var categoryRules = []categoryRule{
	{CategoryDead, func(s EcosystemState, _ EcosystemTuning) bool { return s.Health <= 0 }},
	{CategoryStressed, func(s EcosystemState, t EcosystemTuning) bool { return s.StressLoad >= t.StressHighThreshold }},
	{CategoryDry, func(s EcosystemState, t EcosystemTuning) bool { return s.Pressure >= t.PressureHighThreshold }},
}

func DeriveCategory(s EcosystemState, t EcosystemTuning) Category {
	for _, rule := range categoryRules {
		if rule.holds(s, t) {
			return rule.category
		}
	}
	return CategoryNormal
}

func environmentOf(s EcosystemState) EnvironmentSnapshot {
	return EnvironmentSnapshot{
		Day:                    s.Day,
		WaterLevel:             s.WaterLevel,
		LightLevel:             s.LightLevel,
		Temperature:            s.Temperature,
		TemperatureFluctuation: math.Abs(s.Temperature - s.LastTemperature),
		AirHumidity:            s.AirHumidity,
		AirFlow:                s.AirFlow,
		SoilAeration:           s.SoilAeration,
		Immunity:               s.Immunity,
		StressLoad:             s.StressLoad,
		Pressure:               s.Pressure,
		GrowthStreak:           s.GrowthStreak,
		Health:                 s.Health,
	}
}
