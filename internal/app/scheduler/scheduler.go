package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"plantagotchi/internal/app/ports"
)

const DefaultInterval = 4 * time.Second

// Scheduler drives one ticking goroutine per session. Pausing only skips
// ticks; it never touches session state.
type Scheduler struct {
	ctx      context.Context
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	loops map[string]*loop
	wg    sync.WaitGroup
}

type loop struct {
	cancel context.CancelFunc
	paused atomic.Bool
}

func New(ctx context.Context, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		ctx:      ctx,
		interval: interval,
		logger:   logger,
		loops:    map[string]*loop{},
	}
}

// Start replaces any loop already running for the session.
func (s *Scheduler) Start(sessionID string, fn ports.TickFunc) {
	ctx, cancel := context.WithCancel(s.ctx)
	l := &loop{cancel: cancel}

	s.mu.Lock()
	if old, ok := s.loops[sessionID]; ok {
		old.cancel()
	}
	s.loops[sessionID] = l
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, sessionID, l, fn)
}

func (s *Scheduler) run(ctx context.Context, sessionID string, l *loop, fn ports.TickFunc) {
	defer s.wg.Done()
	defer s.forget(sessionID, l)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if l.paused.Load() {
				continue
			}
			done, err := fn(ctx)
			if err != nil {
				s.logger.Warn("scheduled tick failed", "session_id", sessionID, "err", err)
			}
			if done {
				s.logger.Debug("schedule finished", "session_id", sessionID)
				return
			}
		}
	}
}

func (s *Scheduler) forget(sessionID string, l *loop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loops[sessionID] == l {
		delete(s.loops, sessionID)
	}
	l.cancel()
}

func (s *Scheduler) Stop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.loops[sessionID]; ok {
		l.cancel()
		delete(s.loops, sessionID)
	}
}

func (s *Scheduler) Pause(sessionID string) error {
	return s.setPaused(sessionID, true)
}

func (s *Scheduler) Resume(sessionID string) error {
	return s.setPaused(sessionID, false)
}

func (s *Scheduler) setPaused(sessionID string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loops[sessionID]
	if !ok {
		return ports.ErrNotScheduled
	}
	l.paused.Store(paused)
	return nil
}

func (s *Scheduler) Paused(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loops[sessionID]
	return ok && l.paused.Load()
}

func (s *Scheduler) Running(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loops[sessionID]
	return ok
}

// Wait blocks until every loop has returned. Cancel the context given to New
// first.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
