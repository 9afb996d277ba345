package memory

import (
	"context"
	"testing"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBean(t *testing.T) *plant.Session {
	t.Helper()
	cat := species.Default()
	profile, ok := cat.Lookup("bean")
	require.True(t, ok)
	return plant.NewSession(plant.SessionConfig{Species: profile, Problems: cat.Problems("bean"), Bits: plant.AlternatingBits()})
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionStore(NewStore())
	sess := newBean(t)

	require.NoError(t, repo.Save(ctx, "b", sess))
	require.NoError(t, repo.Save(ctx, "a", newBean(t)))
	assert.ErrorIs(t, repo.Save(ctx, "b", sess), ports.ErrConflict)

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Same(t, sess, got)

	ids, err := repo.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, repo.Delete(ctx, "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "b"), ports.ErrNotFound)
	_, err = repo.Get(ctx, "b")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestEventRepo_ClonesPayloadsAndHonorsLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo(NewStore())
	payload := map[string]any{"action": "water"}

	require.NoError(t, repo.Append(ctx, "s", []plant.DomainEvent{
		{Type: plant.EventSessionStarted},
		{Type: plant.EventActionApplied, Payload: payload},
		{Type: plant.EventTickSettled, Day: 1},
	}))
	payload["action"] = "tampered"

	got, err := repo.ListBySessionID(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, plant.EventActionApplied, got[0].Type)
	assert.Equal(t, "water", got[0].Payload["action"])
	assert.Equal(t, plant.EventTickSettled, got[1].Type)

	_, err = repo.ListBySessionID(ctx, "missing", 0)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestLedgerRepo_CloseOnceAndReopen(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepo(NewStore())
	at := time.Unix(100, 0)

	assert.ErrorIs(t, repo.Close(ctx, "s", plant.Snapshot{}, at), ports.ErrNotFound)

	require.NoError(t, repo.Open(ctx, "s", "rose", at))
	require.NoError(t, repo.Close(ctx, "s", plant.Snapshot{Day: 4, Outcome: plant.OutcomeDead}, at))
	require.NoError(t, repo.Close(ctx, "s", plant.Snapshot{Day: 9, Outcome: plant.OutcomeSurvived}, at))

	rec, err := repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, ports.SessionStatusClosed, rec.Status)
	assert.Equal(t, plant.OutcomeDead, rec.Outcome)
	assert.Equal(t, 4, rec.FinalDay)

	require.NoError(t, repo.Open(ctx, "s", "rose", at.Add(time.Minute)))
	rec, err = repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, ports.SessionStatusActive, rec.Status)
	assert.Nil(t, rec.EndedAt)
}
