package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"plantagotchi/internal/adapter/chart"
	"plantagotchi/internal/app/garden"
	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/app/replay"
	"plantagotchi/internal/app/stateview"
	"plantagotchi/internal/app/status"
	"plantagotchi/internal/domain/plant"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	GardenUC *garden.UseCase
	StatusUC status.UseCase
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
	// Metrics serves the prometheus exposition format when set.
	Metrics http.Handler
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/species", h.species)

	sessions := api.Group("/sessions")
	sessions.GET("", h.listSessions)
	sessions.POST("", h.start)
	sessions.GET("/:id", h.status)
	sessions.DELETE("/:id", h.end)
	sessions.POST("/:id/actions", h.act)
	sessions.POST("/:id/tick", h.tick)
	sessions.POST("/:id/reset", h.reset)
	sessions.POST("/:id/pause", h.pause)
	sessions.POST("/:id/resume", h.resume)
	sessions.GET("/:id/replay", h.replay)
	sessions.GET("/:id/chart.png", h.chart)

	s.GET("/ops/kpi", h.kpi)
	if h.Metrics != nil {
		s.GET("/metrics", h.metricsHandler())
	}
}

func (h Handler) metricsHandler() app.HandlerFunc {
	return adaptor.HertzHandler(h.Metrics)
}

type startRequest struct {
	SpeciesID string `json:"species_id"`
}

type actionRequest struct {
	Type      string `json:"type"`
	Treatment string `json:"treatment,omitempty"`
}

type startResponse struct {
	garden.StartResponse
	Cues []string `json:"cues,omitempty"`
}

type actionResponse struct {
	garden.ActResponse
	Cues []string `json:"cues"`
}

type tickResponse struct {
	garden.TickResponse
	Cues []string `json:"cues"`
}

type resetResponse struct {
	garden.ResetResponse
	Cues []string `json:"cues"`
}

func (h Handler) species(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"species": h.GardenUC.Species()})
}

func (h Handler) listSessions(c context.Context, ctx *app.RequestContext) {
	ids, err := h.GardenUC.SessionIDs(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"session_ids": ids})
}

func (h Handler) start(c context.Context, ctx *app.RequestContext) {
	var body startRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GardenUC.Start(c, garden.StartRequest{SpeciesID: body.SpeciesID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp.Ignored != plant.IgnoredNone {
		ctx.JSON(consts.StatusOK, startResponse{StartResponse: resp})
		return
	}
	ctx.JSON(consts.StatusCreated, startResponse{StartResponse: resp, Cues: stateview.Cues(resp.Events)})
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) act(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GardenUC.Act(c, garden.ActRequest{
		SessionID: ctx.Param("id"),
		Action:    garden.Action(body.Type),
		Treatment: body.Treatment,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, actionResponse{ActResponse: resp, Cues: stateview.Cues(resp.Events)})
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GardenUC.Tick(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, tickResponse{TickResponse: resp, Cues: stateview.Cues(resp.Events)})
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GardenUC.Reset(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resetResponse{ResetResponse: resp, Cues: stateview.Cues(resp.Events)})
}

func (h Handler) pause(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GardenUC.Pause(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resume(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GardenUC.Resume(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) end(c context.Context, ctx *app.RequestContext) {
	if err := h.GardenUC.End(c, ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    ctx.Param("id"),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) chart(c context.Context, ctx *app.RequestContext) {
	var snap plant.Snapshot
	err := h.GardenUC.Inspect(c, ctx.Param("id"), func(sess *plant.Session) {
		snap = sess.Snapshot()
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	width, _ := strconv.Atoi(string(ctx.Query("width")))
	height, _ := strconv.Atoi(string(ctx.Query("height")))
	b, err := chart.HealthPNG(snap.History, chart.Options{
		Width:  min(width, 2000),
		Height: min(height, 1000),
		Dead:   snap.Outcome == plant.OutcomeDead,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "image/png", b)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, garden.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, garden.ErrNoScheduler):
		writeErrorBody(ctx, consts.StatusConflict, "scheduler_disabled", err.Error())
	case errors.Is(err, ports.ErrNotScheduled):
		writeErrorBody(ctx, consts.StatusConflict, "not_scheduled", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
