package prometheus

import (
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

// Fanout forwards every record to each sink in order.
type Fanout []ports.GardenMetrics

func (f Fanout) RecordAction(action string, ignored plant.IgnoreReason) {
	for _, m := range f {
		m.RecordAction(action, ignored)
	}
}

func (f Fanout) RecordTick(category plant.Category) {
	for _, m := range f {
		m.RecordTick(category)
	}
}

func (f Fanout) RecordOutcome(outcome plant.Outcome) {
	for _, m := range f {
		m.RecordOutcome(outcome)
	}
}

func (f Fanout) RecordFailure() {
	for _, m := range f {
		m.RecordFailure()
	}
}
