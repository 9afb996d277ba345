package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"plantagotchi/internal/adapter/console"
	"plantagotchi/internal/adapter/repo/memory"
	sqliterepo "plantagotchi/internal/adapter/repo/sqlite"
	"plantagotchi/internal/app/garden"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/app/scheduler"
	"plantagotchi/internal/app/stateview"
	"plantagotchi/internal/config"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"
	"plantagotchi/internal/parser"
)

type appConfig struct {
	Config config.Config
	// Tick enables automatic days; zero leaves the pace to "next".
	Tick    time.Duration
	Out     io.Writer
	Logger  *slog.Logger
	NewBits func() plant.BitSource
}

// App is one player at a terminal tending at most one plant at a time.
type App struct {
	garden *garden.UseCase
	parser *parser.Parser
	render console.Renderer
	sched  *scheduler.Scheduler
	cancel context.CancelFunc
	close  func()

	mu      sync.Mutex
	out     io.Writer
	current string
}

func newApp(ctx context.Context, cfg appConfig) (*App, error) {
	catalog := species.Default()
	store := memory.NewStore()
	uc := &garden.UseCase{
		Catalog:   catalog,
		Tuning:    cfg.Config.Tuning,
		Sessions:  memory.NewSessionStore(store),
		Events:    memory.NewEventRepo(store),
		Ledger:    memory.NewLedgerRepo(store),
		TxManager: memory.NewTxManager(store),
		Logger:    cfg.Logger,
		NewBits:   cfg.NewBits,
	}
	a := &App{
		garden: uc,
		parser: parser.New(catalog.IDs()),
		out:    cfg.Out,
		close:  func() {},
	}

	if cfg.Config.SQLitePath != "" {
		db, err := sqliterepo.Open(cfg.Config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		uc.Events = sqliterepo.NewEventRepo(db)
		uc.Ledger = sqliterepo.NewLedgerRepo(db)
		uc.TxManager = sqliterepo.NewTxManager(db)
		a.close = func() { _ = db.Close() }
	}

	if cfg.Tick > 0 {
		schedCtx, cancel := context.WithCancel(ctx)
		a.cancel = cancel
		a.sched = scheduler.New(schedCtx, cfg.Tick, cfg.Logger)
		uc.Scheduler = announcingScheduler{Scheduler: a.sched, after: a.afterAutoTick}
	}
	return a, nil
}

func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		a.sched.Wait()
	}
	a.close()
}

func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.println(a.render.Info("Welcome to the greenhouse. Try 'start bean', 'start rose' or 'start mint'. 'help' lists every command."))
	sc := bufio.NewScanner(in)
	for ctx.Err() == nil {
		a.print("> ")
		if !sc.Scan() {
			a.println("")
			return sc.Err()
		}
		if a.handle(ctx, sc.Text()) {
			return nil
		}
	}
	return nil
}

// handle runs one input line and reports whether the player asked to quit.
func (a *App) handle(ctx context.Context, line string) bool {
	intent := a.parser.Parse(line)
	if intent.Clarify != nil {
		a.println(a.render.Info(clarifyText(intent.Clarify)))
		return false
	}

	switch intent.Verb {
	case "quit":
		a.endCurrent(ctx)
		a.println(a.render.Info("Goodbye."))
		return true
	case "help":
		a.println(a.render.Info("Commands: " + strings.Join(a.parser.Commands(), ", ")))
	case "start":
		a.start(ctx, intent.Arg)
	case "water", "light", "warm", "treat":
		a.act(ctx, garden.Action(intent.Verb), intent.Arg)
	case "next":
		a.tick(ctx)
	case "status":
		a.status(ctx)
	case "reset":
		a.reset(ctx)
	case "pause", "resume":
		a.pause(ctx, intent.Verb == "pause")
	default:
		a.println(a.render.Info(fmt.Sprintf("%s is not available here.", intent.Verb)))
	}
	return false
}

func (a *App) start(ctx context.Context, speciesID string) {
	a.endCurrent(ctx)
	resp, err := a.garden.Start(ctx, garden.StartRequest{SpeciesID: speciesID})
	if err != nil {
		a.fail(err)
		return
	}
	if resp.Ignored != plant.IgnoredNone {
		a.println(a.render.Ignored(resp.Ignored))
		return
	}
	a.setCurrent(resp.SessionID)
	a.println(a.render.Snapshot(*resp.Snapshot, stateview.Cues(resp.Events)))
}

func (a *App) act(ctx context.Context, action garden.Action, treatment string) {
	id, ok := a.session()
	if !ok {
		return
	}
	resp, err := a.garden.Act(ctx, garden.ActRequest{SessionID: id, Action: action, Treatment: treatment})
	if err != nil {
		a.fail(err)
		return
	}
	if resp.Ignored != plant.IgnoredNone {
		a.println(a.render.Ignored(resp.Ignored))
		return
	}
	a.println(a.render.Snapshot(resp.Snapshot, stateview.Cues(resp.Events)))
}

func (a *App) tick(ctx context.Context) {
	id, ok := a.session()
	if !ok {
		return
	}
	resp, err := a.garden.Tick(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	if resp.Ignored != plant.IgnoredNone {
		a.println(a.render.Ignored(resp.Ignored))
		return
	}
	a.println(a.render.Snapshot(resp.Snapshot, stateview.Cues(resp.Events)))
	if resp.Done {
		a.println(a.render.Info(outcomeText(resp.Snapshot)))
	}
}

func (a *App) status(ctx context.Context) {
	id, ok := a.session()
	if !ok {
		return
	}
	snap, err := a.snapshot(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	a.println(a.render.Snapshot(snap, nil))
}

func (a *App) reset(ctx context.Context) {
	id, ok := a.session()
	if !ok {
		return
	}
	resp, err := a.garden.Reset(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	a.println(a.render.Snapshot(resp.Snapshot, stateview.Cues(resp.Events)))
}

func (a *App) pause(ctx context.Context, paused bool) {
	id, ok := a.session()
	if !ok {
		return
	}
	var err error
	if paused {
		_, err = a.garden.Pause(ctx, id)
	} else {
		_, err = a.garden.Resume(ctx, id)
	}
	switch {
	case errors.Is(err, garden.ErrNoScheduler):
		a.println(a.render.Info("Days only pass when you type next. Start without -manual to let time run."))
	case err != nil:
		a.fail(err)
	case paused:
		a.println(a.render.Info("Time stands still."))
	default:
		a.println(a.render.Info("Time flows again."))
	}
}

func (a *App) afterAutoTick(sessionID string, done bool) {
	snap, err := a.snapshot(context.Background(), sessionID)
	if err != nil {
		return
	}
	a.println("\n" + a.render.Snapshot(snap, nil))
	if done {
		a.println(a.render.Info(outcomeText(snap)))
	}
}

func (a *App) snapshot(ctx context.Context, sessionID string) (plant.Snapshot, error) {
	var snap plant.Snapshot
	err := a.garden.Inspect(ctx, sessionID, func(sess *plant.Session) {
		snap = sess.Snapshot()
	})
	return snap, err
}

func (a *App) endCurrent(ctx context.Context) {
	a.mu.Lock()
	id := a.current
	a.current = ""
	a.mu.Unlock()
	if id == "" {
		return
	}
	if err := a.garden.End(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		a.fail(err)
	}
}

func (a *App) session() (string, bool) {
	a.mu.Lock()
	id := a.current
	a.mu.Unlock()
	if id == "" {
		a.println(a.render.Info("No plant yet. Try 'start bean'."))
		return "", false
	}
	return id, true
}

func (a *App) setCurrent(id string) {
	a.mu.Lock()
	a.current = id
	a.mu.Unlock()
}

func (a *App) fail(err error) {
	a.println(a.render.Info("error: " + err.Error()))
}

func (a *App) print(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, _ = io.WriteString(a.out, s)
}

func (a *App) println(s string) {
	a.print(s + "\n")
}

func clarifyText(q *parser.ClarifyQuestion) string {
	if len(q.Options) > 0 && strings.HasSuffix(q.Prompt, ":") {
		return q.Prompt + " " + strings.Join(q.Options, ", ")
	}
	return q.Prompt
}

func outcomeText(snap plant.Snapshot) string {
	switch snap.Outcome {
	case plant.OutcomeSurvived:
		return fmt.Sprintf("Your %s made it through all %d days.", snap.SpeciesID, snap.MaxDays)
	case plant.OutcomeDead:
		return fmt.Sprintf("Your %s died on day %d. Type reset to try again.", snap.SpeciesID, snap.Day)
	default:
		return ""
	}
}

// announcingScheduler reports every automatic day to the terminal.
type announcingScheduler struct {
	*scheduler.Scheduler
	after func(sessionID string, done bool)
}

func (s announcingScheduler) Start(sessionID string, fn ports.TickFunc) {
	s.Scheduler.Start(sessionID, func(ctx context.Context) (bool, error) {
		done, err := fn(ctx)
		if err == nil {
			s.after(sessionID, done)
		}
		return done, err
	})
}
