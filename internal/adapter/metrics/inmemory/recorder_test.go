package inmemory

import (
	"testing"

	"plantagotchi/internal/domain/plant"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordAction("water", plant.IgnoredNone)
	r.RecordAction("water", plant.IgnoredDead)
	r.RecordAction("treat", plant.IgnoredNoActiveProblem)
	r.RecordTick(plant.CategoryDry)
	r.RecordTick(plant.CategoryDry)
	r.RecordTick(plant.CategoryDead)
	r.RecordOutcome(plant.OutcomeDead)
	r.RecordFailure()

	s := r.Snapshot()
	if s.ActionTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.ActionTotal)
	}
	if s.ActionApplied != 1 || s.ActionIgnored != 2 {
		t.Fatalf("expected 1 applied and 2 ignored, got %d/%d", s.ActionApplied, s.ActionIgnored)
	}
	if s.ByAction["water"] != 2 || s.ByAction["treat"] != 1 {
		t.Fatalf("unexpected by_action: %v", s.ByAction)
	}
	if s.ByIgnoredReason[string(plant.IgnoredNoActiveProblem)] != 1 {
		t.Fatalf("expected no_active_problem count 1")
	}
	if s.TickTotal != 3 || s.ByCategory[string(plant.CategoryDry)] != 2 {
		t.Fatalf("unexpected tick counts: %d %v", s.TickTotal, s.ByCategory)
	}
	if s.ByOutcome[string(plant.OutcomeDead)] != 1 {
		t.Fatalf("expected dead outcome count 1")
	}
	if s.JournalFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.JournalFailure)
	}
}

func TestRecorderSnapshotIsDetached(t *testing.T) {
	r := NewRecorder()
	r.RecordTick(plant.CategoryNormal)
	s := r.Snapshot()
	s.ByCategory["normal"] = 99
	if got := r.Snapshot().ByCategory["normal"]; got != 1 {
		t.Fatalf("expected detached snapshot, got %d", got)
	}
}
