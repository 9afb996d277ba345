package ports

import (
	"context"
	"errors"
)

var ErrNotScheduled = errors.New("session not scheduled")

// TickFunc advances one session by one day and reports whether the session
// has ended.
type TickFunc func(ctx context.Context) (done bool, err error)

type TickScheduler interface {
	Start(sessionID string, fn TickFunc)
	Stop(sessionID string)
	Pause(sessionID string) error
	Resume(sessionID string) error
	Paused(sessionID string) bool
}
