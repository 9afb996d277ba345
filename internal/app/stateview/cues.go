package stateview

import "plantagotchi/internal/domain/plant"

const (
	CueStart  = "start"
	CueGood   = "good"
	CueStage  = "stage"
	CueStress = "stress"
	CueDead   = "dead"
)

var cues = map[plant.EventType]string{
	plant.EventSessionStarted:   CueStart,
	plant.EventActionApplied:    CueGood,
	plant.EventTreatmentStarted: CueGood,
	plant.EventRecovered:        CueGood,
	plant.EventStageAdvanced:    CueStage,
	plant.EventSymptomOnset:     CueStress,
	plant.EventTreatmentWrong:   CueStress,
	plant.EventPlantDied:        CueDead,
}

// Cue names the feedback sound for an event, or "" when it has none.
func Cue(t plant.EventType) string {
	return cues[t]
}

func Cues(events []plant.DomainEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if c := Cue(e.Type); c != "" {
			out = append(out, c)
		}
	}
	return out
}
