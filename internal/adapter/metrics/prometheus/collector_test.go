package prometheus

import (
	"strings"
	"testing"

	"plantagotchi/internal/adapter/metrics/inmemory"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.GardenMetrics = (*Collector)(nil)

func TestCollector_CountsByLabel(t *testing.T) {
	c := NewCollector()
	c.RecordAction("water", plant.IgnoredNone)
	c.RecordAction("water", plant.IgnoredNone)
	c.RecordAction("treat", plant.IgnoredTreatmentUnavailable)
	c.RecordTick(plant.CategoryStressed)
	c.RecordOutcome(plant.OutcomeSurvived)
	c.RecordFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.actions.WithLabelValues("water", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("treat", "treatment_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ticks.WithLabelValues("stressed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("survived")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures))
}

func TestCollector_ExposesOnOwnRegistry(t *testing.T) {
	c := NewCollector()
	c.RecordFailure()

	expected := `
# HELP plantagotchi_journal_failures_total Journal or ledger writes that failed.
# TYPE plantagotchi_journal_failures_total counter
plantagotchi_journal_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "plantagotchi_journal_failures_total"))
}

func TestFanout_ForwardsToEverySink(t *testing.T) {
	c := NewCollector()
	rec := inmemory.NewRecorder()
	f := Fanout{c, rec}

	f.RecordAction("light", plant.IgnoredNone)
	f.RecordTick(plant.CategoryNormal)
	f.RecordOutcome(plant.OutcomeDead)
	f.RecordFailure()

	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.ActionApplied)
	assert.Equal(t, uint64(1), snap.TickTotal)
	assert.Equal(t, uint64(1), snap.JournalFailure)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ticks.WithLabelValues("normal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("dead")))
}
