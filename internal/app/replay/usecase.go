package replay

import (
	"context"
	"errors"
	"strings"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListBySessionID(ctx, req.SessionID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{
		SessionID:   req.SessionID,
		Events:      events,
		LatestState: reconstruct(events),
	}, nil
}

func filterByTimeWindow(events []plant.DomainEvent, from, to int64) []plant.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]plant.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func reconstruct(events []plant.DomainEvent) LatestState {
	state := LatestState{}
	for _, evt := range events {
		if evt.Type == plant.EventSessionStarted {
			state = LatestState{}
			continue
		}
		if evt.Type != plant.EventTickSettled {
			continue
		}
		after, ok := evt.Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		state.Day = int(num(after["day"]))
		state.Health = num(after["health"])
		state.WaterLevel = num(after["water_level"])
		state.Immunity = num(after["immunity"])
		state.StageIndex = int(num(after["stage_index"]))
		if result, ok := evt.Payload["result"].(map[string]any); ok {
			state.Category = plant.Category(str(result["final"]))
			state.Phase = plant.Phase(str(result["phase"]))
		}
	}
	return state
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
