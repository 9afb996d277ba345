package ports

import "plantagotchi/internal/domain/plant"

type GardenMetrics interface {
	RecordAction(action string, ignored plant.IgnoreReason)
	RecordTick(category plant.Category)
	RecordOutcome(outcome plant.Outcome)
	RecordFailure()
}
