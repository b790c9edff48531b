package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-seatmap/components/seatmap"
	"github.com/goliatone/go-seatmap/components/seatmap/commands"
	"github.com/goliatone/go-seatmap/components/seatmap/httpapi"
	"github.com/goliatone/go-seatmap/components/seatmap/queries"
)

const cborContentType = "application/cbor"

// Config wires go-router with the seat map builder service and hooks.
type Config[T any] struct {
	Router    router.Router[T]
	Service   *seatmap.Service
	Broadcast *seatmap.BroadcastHook
	Telemetry commands.Telemetry
	BasePath  string
	Routes    RouteConfig
}

// RouteConfig customizes the relative paths used for builder endpoints.
type RouteConfig struct {
	Templates      string
	Sessions       string
	Session        string
	Shapes         string
	Viewport       string
	Wheel          string
	Drag           string
	Resize         string
	Inventory      string
	InventoryChart string
	Preview        string
	WebSocket      string
}

// SessionSummary is the listing form of an open session.
type SessionSummary struct {
	ID         string                `json:"id"`
	TemplateID string                `json:"template_id,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	State      seatmap.ViewportState `json:"state"`
}

// endpoints bundles the command and query layer used by the route handlers.
type endpoints struct {
	service   *seatmap.Service
	load      *commands.LoadTemplateCommand
	wheel     *commands.WheelCommand
	drag      *commands.DragCommand
	resize    *commands.ResizeCommand
	close     *commands.CloseSessionCommand
	shapes    *queries.ShapesQuery
	viewport  *queries.ViewportQuery
	inventory *queries.InventoryQuery
}

// Register mounts builder routes (JSON, CBOR, HTML, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	api := endpoints{
		service:   cfg.Service,
		load:      commands.NewLoadTemplateCommand(cfg.Service, cfg.Telemetry),
		wheel:     commands.NewWheelCommand(cfg.Service),
		drag:      commands.NewDragCommand(cfg.Service),
		resize:    commands.NewResizeCommand(cfg.Service),
		close:     commands.NewCloseSessionCommand(cfg.Service, cfg.Telemetry),
		shapes:    queries.NewShapesQuery(cfg.Service),
		viewport:  queries.NewViewportQuery(cfg.Service),
		inventory: queries.NewInventoryQuery(cfg.Service),
	}

	group := cfg.Router.Group(base)
	registerSessions(group, api, routes)
	registerArtifacts(group, api, routes)
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerSessions[T any](r router.Router[T], api endpoints, routes RouteConfig) {
	r.Post(routes.Templates, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.LoadTemplateInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out seatmap.LoadTemplateResult
		payload.Output = &out
		if err := api.load.Execute(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, out)
	}))

	r.Get(routes.Sessions, router.WrapHandler(func(ctx router.Context) error {
		sessions, err := api.service.Sessions(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		out := make([]SessionSummary, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, SessionSummary{
				ID:         s.ID,
				TemplateID: s.TemplateID,
				CreatedAt:  s.CreatedAt,
				State:      s.Viewport.State(),
			})
		}
		return ctx.JSON(http.StatusOK, out)
	}))

	r.Delete(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if err := api.close.Execute(ctx.Context(), commands.CloseSessionInput{SessionID: id}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "closed"})
	}))

	r.Get(routes.Viewport, router.WrapHandler(func(ctx router.Context) error {
		state, err := api.viewport.Query(ctx.Context(), queries.SessionInput{SessionID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	r.Post(routes.Wheel, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.WheelInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out seatmap.ViewportState
		payload.SessionID = ctx.Param("id")
		payload.Output = &out
		if err := api.wheel.Execute(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, out)
	}))

	r.Post(routes.Drag, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.DragInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out seatmap.ViewportState
		payload.SessionID = ctx.Param("id")
		payload.Output = &out
		if err := api.drag.Execute(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, out)
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResizeInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out seatmap.ViewportState
		payload.SessionID = ctx.Param("id")
		payload.Output = &out
		if err := api.resize.Execute(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, out)
	}))
}

func registerArtifacts[T any](r router.Router[T], api endpoints, routes RouteConfig) {
	r.Get(routes.Shapes, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if wantsCBOR(ctx.Header("Accept")) {
			data, err := api.service.Snapshot(ctx.Context(), id)
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			ctx.SetHeader("Content-Type", cborContentType)
			return ctx.Send(data)
		}
		res, err := api.shapes.Query(ctx.Context(), queries.SessionInput{SessionID: id})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, res)
	}))

	r.Get(routes.Inventory, router.WrapHandler(func(ctx router.Context) error {
		report, err := api.inventory.Query(ctx.Context(), queries.SessionInput{SessionID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, report)
	}))

	r.Get(routes.InventoryChart, router.WrapHandler(func(ctx router.Context) error {
		attr := strings.TrimSpace(ctx.Query("attr"))
		if attr == "" {
			attr = "zone"
		}
		html, err := api.service.InventoryChart(ctx.Context(), ctx.Param("id"), attr)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}))

	r.Get(routes.Preview, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := api.service.Preview(ctx.Context(), ctx.Param("id"), &buf); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))
}

// registerWebSocket streams viewport events of every session; clients filter
// on session_id.
func registerWebSocket[T any](r router.Router[T], hook *seatmap.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe("")
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func wantsCBOR(accept string) bool {
	for _, token := range strings.Split(accept, ",") {
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if strings.EqualFold(strings.TrimSpace(token), cborContentType) {
			return true
		}
	}
	return false
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Templates == "" {
		routes.Templates = "/seatmap/templates"
	}
	if routes.Sessions == "" {
		routes.Sessions = "/seatmap/sessions"
	}
	if routes.Session == "" {
		routes.Session = "/seatmap/sessions/:id"
	}
	if routes.Shapes == "" {
		routes.Shapes = "/seatmap/sessions/:id/shapes"
	}
	if routes.Viewport == "" {
		routes.Viewport = "/seatmap/sessions/:id/viewport"
	}
	if routes.Wheel == "" {
		routes.Wheel = "/seatmap/sessions/:id/wheel"
	}
	if routes.Drag == "" {
		routes.Drag = "/seatmap/sessions/:id/drag"
	}
	if routes.Resize == "" {
		routes.Resize = "/seatmap/sessions/:id/resize"
	}
	if routes.Inventory == "" {
		routes.Inventory = "/seatmap/sessions/:id/inventory"
	}
	if routes.InventoryChart == "" {
		routes.InventoryChart = "/seatmap/sessions/:id/inventory/chart"
	}
	if routes.Preview == "" {
		routes.Preview = "/seatmap/sessions/:id/preview"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/seatmap/ws"
	}
	return routes
}
