package garden

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid garden request")
	ErrNoScheduler    = errors.New("scheduler disabled")
)

// UseCase owns every live session. Calls for one session are serialized so a
// tick never interleaves with an action.
type UseCase struct {
	Catalog   species.Catalog
	Tuning    plant.Tuning
	Sessions  ports.SessionStore
	Events    ports.EventRepository
	Ledger    ports.SessionLedgerRepository
	TxManager ports.TxManager
	Metrics   ports.GardenMetrics
	Scheduler ports.TickScheduler
	Logger    *slog.Logger
	NewID     func() string
	NewBits   func() plant.BitSource
	Now       func() time.Time

	locks sync.Map
}

func (u *UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	speciesID := strings.ToLower(strings.TrimSpace(req.SpeciesID))
	profile, ok := u.Catalog.Lookup(speciesID)
	if !ok {
		u.logger().Info("unknown species requested", "species_id", speciesID)
		return StartResponse{Ignored: plant.IgnoredUnknownSpecies}, nil
	}

	id := u.newID()
	sess := plant.NewSession(plant.SessionConfig{
		Species:  profile,
		Problems: u.Catalog.Problems(speciesID),
		Tuning:   u.Tuning,
		Bits:     u.newBits(),
		Now:      u.now,
	})
	if err := u.Sessions.Save(ctx, id, sess); err != nil {
		return StartResponse{}, fmt.Errorf("save session %s: %w", id, err)
	}

	snap := sess.Snapshot()
	events := tagEvents(id, []plant.DomainEvent{{
		Type:       plant.EventSessionStarted,
		Day:        snap.Day,
		OccurredAt: u.now(),
		Payload:    map[string]any{"species_id": speciesID, "max_days": snap.MaxDays},
	}})
	u.record(ctx, id, events, func(txCtx context.Context) error {
		if u.Ledger == nil {
			return nil
		}
		return u.Ledger.Open(txCtx, id, speciesID, u.now())
	})
	u.schedule(id)

	u.logger().Info("session started", "session_id", id, "species_id", speciesID)
	return StartResponse{SessionID: id, Snapshot: &snap, Events: events}, nil
}

func (u *UseCase) Act(ctx context.Context, req ActRequest) (ActResponse, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Action = Action(strings.ToLower(strings.TrimSpace(string(req.Action))))
	if req.SessionID == "" || !req.Action.Supported() {
		return ActResponse{}, ErrInvalidRequest
	}

	var out plant.ActionResult
	err := u.withSession(ctx, req.SessionID, func(sess *plant.Session) error {
		switch req.Action {
		case ActionWater:
			out = sess.Water()
		case ActionLight:
			out = sess.AdjustLight()
		case ActionWarm:
			out = sess.Warm()
		case ActionTreat:
			out = sess.ApplyTreatment(plant.TreatmentKind(strings.ToLower(strings.TrimSpace(req.Treatment))))
		}
		out.Events = tagEvents(req.SessionID, out.Events)
		if len(out.Events) > 0 {
			u.record(ctx, req.SessionID, out.Events, u.closeIfEnded(req.SessionID, out.Snapshot))
		}
		return nil
	})
	if err != nil {
		return ActResponse{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordAction(string(req.Action), out.Ignored)
	}
	if out.Ignored != plant.IgnoredNone {
		u.logger().Debug("action ignored", "session_id", req.SessionID, "action", req.Action, "reason", out.Ignored)
	}
	return ActResponse{Snapshot: out.Snapshot, Events: out.Events, Ignored: out.Ignored}, nil
}

// Tick advances a session by one day. Done reports that the session has
// reached a terminal outcome and needs no further ticks.
func (u *UseCase) Tick(ctx context.Context, sessionID string) (TickResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return TickResponse{}, ErrInvalidRequest
	}

	var out plant.TickResult
	err := u.withSession(ctx, sessionID, func(sess *plant.Session) error {
		out = sess.Tick()
		out.Events = tagEvents(sessionID, out.Events)
		if out.Ignored == plant.IgnoredNone {
			u.record(ctx, sessionID, out.Events, u.closeIfEnded(sessionID, out.Snapshot))
		}
		return nil
	})
	if err != nil {
		return TickResponse{}, err
	}

	done := out.Snapshot.Outcome != plant.OutcomeGrowing
	if out.Ignored == plant.IgnoredNone {
		if u.Metrics != nil {
			u.Metrics.RecordTick(out.Snapshot.Category)
			if done {
				u.Metrics.RecordOutcome(out.Snapshot.Outcome)
			}
		}
		if done {
			u.logger().Info("session ended",
				"session_id", sessionID,
				"outcome", out.Snapshot.Outcome,
				"day", out.Snapshot.Day,
				"health", out.Snapshot.Health,
			)
		}
	}
	return TickResponse{Snapshot: out.Snapshot, Events: out.Events, Ignored: out.Ignored, Done: done}, nil
}

// Reset starts the session over with the same species and id.
func (u *UseCase) Reset(ctx context.Context, sessionID string) (ResetResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ResetResponse{}, ErrInvalidRequest
	}

	var out ResetResponse
	err := u.withSession(ctx, sessionID, func(sess *plant.Session) error {
		out.Events = tagEvents(sessionID, sess.Reset())
		out.Snapshot = sess.Snapshot()
		speciesID := sess.Species().ID
		u.record(ctx, sessionID, out.Events, func(txCtx context.Context) error {
			if u.Ledger == nil {
				return nil
			}
			return u.Ledger.Open(txCtx, sessionID, speciesID, u.now())
		})
		// The old loop is cancelled before a tick it queued can take the lock.
		u.schedule(sessionID)
		return nil
	})
	if err != nil {
		return ResetResponse{}, err
	}
	u.logger().Info("session reset", "session_id", sessionID)
	return out, nil
}

// End stops scheduling and forgets the session. The journal keeps its events.
func (u *UseCase) End(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidRequest
	}
	err := u.withSession(ctx, sessionID, func(sess *plant.Session) error {
		snap := sess.Snapshot()
		if snap.Outcome == plant.OutcomeGrowing && u.Ledger != nil {
			u.record(ctx, sessionID, nil, func(txCtx context.Context) error {
				return u.Ledger.Close(txCtx, sessionID, snap, u.now())
			})
		}
		return u.Sessions.Delete(ctx, sessionID)
	})
	if err != nil {
		return err
	}
	if u.Scheduler != nil {
		u.Scheduler.Stop(sessionID)
	}
	u.locks.Delete(sessionID)
	u.logger().Info("session ended by player", "session_id", sessionID)
	return nil
}

func (u *UseCase) SessionIDs(ctx context.Context) ([]string, error) {
	return u.Sessions.IDs(ctx)
}

func (u *UseCase) Pause(ctx context.Context, sessionID string) (PauseResponse, error) {
	return u.setPaused(ctx, sessionID, true)
}

func (u *UseCase) Resume(ctx context.Context, sessionID string) (PauseResponse, error) {
	return u.setPaused(ctx, sessionID, false)
}

func (u *UseCase) setPaused(ctx context.Context, sessionID string, paused bool) (PauseResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return PauseResponse{}, ErrInvalidRequest
	}
	if _, err := u.Sessions.Get(ctx, sessionID); err != nil {
		return PauseResponse{}, err
	}
	if u.Scheduler == nil {
		return PauseResponse{}, ErrNoScheduler
	}
	var err error
	if paused {
		err = u.Scheduler.Pause(sessionID)
	} else {
		err = u.Scheduler.Resume(sessionID)
	}
	if err != nil {
		return PauseResponse{}, fmt.Errorf("%w: %w", ports.ErrConflict, err)
	}
	return PauseResponse{SessionID: sessionID, Paused: u.Scheduler.Paused(sessionID)}, nil
}

// Paused is false for sessions that are not scheduled at all.
func (u *UseCase) Paused(sessionID string) bool {
	if u.Scheduler == nil {
		return false
	}
	return u.Scheduler.Paused(sessionID)
}

// Inspect runs fn under the session lock. fn must not keep the session.
func (u *UseCase) Inspect(ctx context.Context, sessionID string, fn func(*plant.Session)) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidRequest
	}
	return u.withSession(ctx, sessionID, func(sess *plant.Session) error {
		fn(sess)
		return nil
	})
}

func (u *UseCase) Species() []SpeciesView {
	profiles := u.Catalog.List()
	out := make([]SpeciesView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, SpeciesView{SpeciesProfile: p, StageInfo: species.StageInfos(p)})
	}
	return out
}

func (u *UseCase) withSession(ctx context.Context, sessionID string, fn func(*plant.Session) error) error {
	mu := u.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	sess, err := u.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return fn(sess)
}

func (u *UseCase) lockFor(sessionID string) *sync.Mutex {
	mu, _ := u.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// record journals events and runs extra ledger work in one transaction. The
// journal is an audit trail: a failure is logged and counted, never surfaced
// to the player, because the session state has already moved on.
func (u *UseCase) record(ctx context.Context, sessionID string, events []plant.DomainEvent, extra func(context.Context) error) {
	if u.Events == nil && u.Ledger == nil {
		return
	}
	run := func(txCtx context.Context) error {
		if u.Events != nil && len(events) > 0 {
			if err := u.Events.Append(txCtx, sessionID, events); err != nil {
				return fmt.Errorf("append events: %w", err)
			}
		}
		if extra != nil {
			return extra(txCtx)
		}
		return nil
	}

	var err error
	if u.TxManager != nil {
		err = u.TxManager.RunInTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		u.logger().Error("journal write failed", "session_id", sessionID, "err", err)
	}
}

func (u *UseCase) closeIfEnded(sessionID string, snap plant.Snapshot) func(context.Context) error {
	if u.Ledger == nil || snap.Outcome == plant.OutcomeGrowing {
		return nil
	}
	return func(txCtx context.Context) error {
		return u.Ledger.Close(txCtx, sessionID, snap, u.now())
	}
}

func (u *UseCase) schedule(sessionID string) {
	if u.Scheduler == nil {
		return
	}
	u.Scheduler.Start(sessionID, func(ctx context.Context) (bool, error) {
		resp, err := u.Tick(ctx, sessionID)
		switch {
		case ctx.Err() != nil:
			return true, nil
		case err != nil:
			return errors.Is(err, ports.ErrNotFound), err
		}
		return resp.Done || resp.Ignored != plant.IgnoredNone, nil
	})
}

func tagEvents(sessionID string, events []plant.DomainEvent) []plant.DomainEvent {
	for i := range events {
		if events[i].Payload == nil {
			events[i].Payload = map[string]any{}
		}
		events[i].Payload["session_id"] = sessionID
	}
	return events
}

func (u *UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

func (u *UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u *UseCase) newBits() plant.BitSource {
	if u.NewBits != nil {
		return u.NewBits()
	}
	return plant.NewRandBits()
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
