package status

import (
	"context"
	"errors"
	"strings"

	"plantagotchi/internal/app/stateview"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"
)

var ErrInvalidRequest = errors.New("invalid status request")

type SessionInspector interface {
	Inspect(ctx context.Context, sessionID string, fn func(*plant.Session)) error
	Paused(sessionID string) bool
}

type UseCase struct {
	Sessions SessionInspector
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Sessions.Inspect(ctx, req.SessionID, func(sess *plant.Session) {
		snap := sess.Snapshot()
		tun := sess.Tuning()
		life := sess.Lifecycle()

		in := stateview.TrendInput{
			Category: snap.Category,
			Phase:    life.Phase,
			Health:   snap.Health,
			Immunity: snap.Immunity,
		}
		if life.Phase == plant.PhaseActive && life.Problem != nil && life.Problem.Effect != nil {
			in.ProblemHealth = life.Problem.Effect(sess.Environment()).Health
		}

		out = Response{
			SessionID:     req.SessionID,
			Snapshot:      snap,
			Stage:         species.Describe(snap.Stage),
			Trend:         stateview.EstimateHealthTrend(in, tun),
			StatusEffects: stateview.StatusEffects(snap, sess.Species(), tun),
			Reason:        stateview.Reason(snap),
			Hint:          stateview.Hint(snap),
		}
	})
	if err != nil {
		return Response{}, err
	}
	out.Paused = u.Sessions.Paused(req.SessionID)
	return out, nil
}
