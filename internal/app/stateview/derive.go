package stateview

import "plantagotchi/internal/domain/plant"

const criticalHealthThreshold = 15

// StatusEffects lists the visible conditions of a plant, most urgent last.
func StatusEffects(snap plant.Snapshot, profile plant.SpeciesProfile, t plant.Tuning) []string {
	effects := make([]string, 0, 6)
	if snap.Outcome == plant.OutcomeDead {
		return append(effects, "DEAD")
	}
	switch ZoneOf(snap.WaterLevel, profile.Optimal.Water) {
	case ZoneBelow:
		effects = append(effects, "THIRSTY")
	case ZoneAbove:
		effects = append(effects, "WATERLOGGED")
	}
	switch ZoneOf(snap.Temperature, profile.Optimal.Temperature) {
	case ZoneBelow:
		effects = append(effects, "COLD")
	case ZoneAbove:
		effects = append(effects, "HOT")
	}
	switch ZoneOf(snap.LightLevel, profile.Optimal.Light) {
	case ZoneBelow:
		effects = append(effects, "LOW_LIGHT")
	case ZoneAbove:
		effects = append(effects, "HIGH_LIGHT")
	}
	if snap.SoilAeration < t.Ecosystem.AerationLowThreshold {
		effects = append(effects, "COMPACTED_SOIL")
	}
	if snap.Immunity < t.Ecosystem.ImmunityLowThreshold {
		effects = append(effects, "LOW_IMMUNITY")
	}
	if snap.Category == plant.CategoryStressed {
		effects = append(effects, "STRESSED")
	}
	switch snap.Phase {
	case plant.PhaseActive:
		effects = append(effects, "NEEDS_TREATMENT")
	case plant.PhaseTreating:
		effects = append(effects, "TREATING")
	}
	if snap.Health <= criticalHealthThreshold {
		effects = append(effects, "CRITICAL")
	}
	return effects
}
