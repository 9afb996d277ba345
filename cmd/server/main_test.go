package main

import (
	"context"
	"path/filepath"
	"testing"

	"plantagotchi/internal/adapter/repo/memory"
	"plantagotchi/internal/app/garden"
	"plantagotchi/internal/config"
	"plantagotchi/internal/domain/plant"
)

func TestBuildRepos_DefaultsToMemory(t *testing.T) {
	repos, err := buildRepos(context.Background(), config.Default(), memory.NewStore())
	if err != nil {
		t.Fatalf("buildRepos: %v", err)
	}
	defer repos.close()
	if repos.kind != "memory" {
		t.Fatalf("kind=%q want memory", repos.kind)
	}
}

func TestBuildRepos_UsesSQLiteWhenPathSet(t *testing.T) {
	cfg := config.Default()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "journal.db")

	repos, err := buildRepos(context.Background(), cfg, memory.NewStore())
	if err != nil {
		t.Fatalf("buildRepos: %v", err)
	}
	defer repos.close()
	if repos.kind != "sqlite" {
		t.Fatalf("kind=%q want sqlite", repos.kind)
	}

	uc := buildGarden(cfg, memory.NewStore(), repos, nil, nil)
	uc.NewBits = func() plant.BitSource { return plant.AlternatingBits() }
	ctx := context.Background()
	started, err := uc.Start(ctx, garden.StartRequest{SpeciesID: "rose"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Tick(ctx, started.SessionID); err != nil {
		t.Fatalf("tick: %v", err)
	}

	events, err := repos.events.ListBySessionID(ctx, started.SessionID, 0)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) < 2 || events[0].Type != plant.EventSessionStarted {
		t.Fatalf("unexpected journal: %+v", events)
	}
	rec, err := repos.ledger.Get(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("ledger get: %v", err)
	}
	if rec.SpeciesID != "rose" {
		t.Fatalf("ledger species=%q want rose", rec.SpeciesID)
	}
}

func TestNewScheduler_DisabledWithoutInterval(t *testing.T) {
	cfg := config.Default()
	cfg.TickSeconds = 0
	if s := newScheduler(context.Background(), cfg, nil); s != nil {
		t.Fatalf("expected nil scheduler")
	}

	cfg.TickSeconds = 2
	ctx, cancel := context.WithCancel(context.Background())
	s := newScheduler(ctx, cfg, nil)
	if s == nil {
		t.Fatalf("expected scheduler")
	}
	cancel()
	s.Wait()
}
