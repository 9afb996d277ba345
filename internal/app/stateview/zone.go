package stateview

import "plantagotchi/internal/domain/plant"

type Zone string

const (
	ZoneBelow   Zone = "below"
	ZoneOptimal Zone = "optimal"
	ZoneAbove   Zone = "above"
)

func ZoneOf(v float64, r plant.Range) Zone {
	switch {
	case v < r.Min:
		return ZoneBelow
	case v > r.Max:
		return ZoneAbove
	default:
		return ZoneOptimal
	}
}
