package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	httpadapter "plantagotchi/internal/adapter/http"
	metricsinmem "plantagotchi/internal/adapter/metrics/inmemory"
	metricsprom "plantagotchi/internal/adapter/metrics/prometheus"
	gormrepo "plantagotchi/internal/adapter/repo/gorm"
	"plantagotchi/internal/adapter/repo/memory"
	sqliterepo "plantagotchi/internal/adapter/repo/sqlite"
	"plantagotchi/internal/app/garden"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/app/replay"
	"plantagotchi/internal/app/scheduler"
	"plantagotchi/internal/app/status"
	"plantagotchi/internal/config"
	"plantagotchi/internal/domain/species"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", os.Getenv("PLANTAGOTCHI_CONFIG"), "path to a yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.NewStore()
	repos, err := buildRepos(ctx, cfg, store)
	if err != nil {
		log.Fatalf("build repos: %v", err)
	}
	defer repos.close()

	kpiRecorder := metricsinmem.NewRecorder()
	collector := metricsprom.NewCollector()
	sched := newScheduler(ctx, cfg, logger)

	uc := buildGarden(cfg, store, repos, metricsprom.Fanout{kpiRecorder, collector}, logger)
	if sched != nil {
		uc.Scheduler = sched
	}

	h := httpadapter.Handler{
		GardenUC: uc,
		StatusUC: status.UseCase{Sessions: uc},
		ReplayUC: replay.UseCase{Events: repos.events},
		KPI:      kpiRecorder,
		Metrics:  promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}),
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	logger.Info("plantagotchi server listening",
		"addr", cfg.Addr,
		"journal", repos.kind,
		"tick_interval", cfg.TickInterval().String(),
	)
	s.Spin()

	cancel()
	if sched != nil {
		sched.Wait()
	}
}

type repoSet struct {
	kind   string
	events ports.EventRepository
	ledger ports.SessionLedgerRepository
	tx     ports.TxManager
	close  func()
}

// buildRepos picks the journal backend: postgres when a DSN is set, then a
// sqlite file, then the in-process store.
func buildRepos(ctx context.Context, cfg config.Config, store *memory.Store) (repoSet, error) {
	switch {
	case cfg.DBDSN != "":
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return repoSet{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := gormrepo.Migrate(ctx, db); err != nil {
			return repoSet{}, fmt.Errorf("migrate postgres: %w", err)
		}
		return repoSet{
			kind:   "postgres",
			events: gormrepo.NewEventRepo(db),
			ledger: gormrepo.NewLedgerRepo(db),
			tx:     gormrepo.NewTxManager(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	case cfg.SQLitePath != "":
		db, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return repoSet{}, fmt.Errorf("open sqlite: %w", err)
		}
		return repoSet{
			kind:   "sqlite",
			events: sqliterepo.NewEventRepo(db),
			ledger: sqliterepo.NewLedgerRepo(db),
			tx:     sqliterepo.NewTxManager(db),
			close:  func() { _ = db.Close() },
		}, nil
	default:
		return repoSet{
			kind:   "memory",
			events: memory.NewEventRepo(store),
			ledger: memory.NewLedgerRepo(store),
			tx:     memory.NewTxManager(store),
			close:  func() {},
		}, nil
	}
}

func buildGarden(cfg config.Config, store *memory.Store, repos repoSet, metrics ports.GardenMetrics, logger *slog.Logger) *garden.UseCase {
	return &garden.UseCase{
		Catalog:   species.Default(),
		Tuning:    cfg.Tuning,
		Sessions:  memory.NewSessionStore(store),
		Events:    repos.events,
		Ledger:    repos.ledger,
		TxManager: repos.tx,
		Metrics:   metrics,
		Logger:    logger,
	}
}

// newScheduler is nil when tick_seconds is zero; sessions then only advance
// through explicit tick calls.
func newScheduler(ctx context.Context, cfg config.Config, logger *slog.Logger) *scheduler.Scheduler {
	if cfg.TickInterval() <= 0 {
		return nil
	}
	return scheduler.New(ctx, cfg.TickInterval(), logger)
}
