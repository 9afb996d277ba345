package inmemory

import (
	"maps"
	"sync"

	"plantagotchi/internal/domain/plant"
)

type Snapshot struct {
	ActionTotal     uint64            `json:"action_total"`
	ActionApplied   uint64            `json:"action_applied"`
	ActionIgnored   uint64            `json:"action_ignored"`
	JournalFailure  uint64            `json:"journal_failure"`
	TickTotal       uint64            `json:"tick_total"`
	ByAction        map[string]uint64 `json:"by_action"`
	ByIgnoredReason map[string]uint64 `json:"by_ignored_reason"`
	ByCategory      map[string]uint64 `json:"by_category"`
	ByOutcome       map[string]uint64 `json:"by_outcome"`
}

type Recorder struct {
	mu         sync.Mutex
	applied    uint64
	ignored    uint64
	failure    uint64
	ticks      uint64
	byAction   map[string]uint64
	byIgnored  map[string]uint64
	byCategory map[string]uint64
	byOutcome  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction:   map[string]uint64{},
		byIgnored:  map[string]uint64{},
		byCategory: map[string]uint64{},
		byOutcome:  map[string]uint64{},
	}
}

func (r *Recorder) RecordAction(action string, ignored plant.IgnoreReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byAction[action]++
	if ignored == plant.IgnoredNone {
		r.applied++
		return
	}
	r.ignored++
	r.byIgnored[string(ignored)]++
}

func (r *Recorder) RecordTick(category plant.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.byCategory[string(category)]++
}

func (r *Recorder) RecordOutcome(outcome plant.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOutcome[string(outcome)]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ActionApplied:   r.applied,
		ActionIgnored:   r.ignored,
		ActionTotal:     r.applied + r.ignored,
		JournalFailure:  r.failure,
		TickTotal:       r.ticks,
		ByAction:        maps.Clone(r.byAction),
		ByIgnoredReason: maps.Clone(r.byIgnored),
		ByCategory:      maps.Clone(r.byCategory),
		ByOutcome:       maps.Clone(r.byOutcome),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
