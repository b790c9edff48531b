package seatmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionIDRequired is returned when a request names no session.
	ErrSessionIDRequired = errors.New("seatmap: session id is required")
	// ErrSceneRequired is returned when a load request carries no scene.
	ErrSceneRequired = errors.New("seatmap: scene payload is required")

	errMissingSessionStore = errors.New("seatmap: session store not configured")
	errMissingRenderer     = errors.New("seatmap: preview renderer not configured")
)

// SchedulerFactory builds the debounce scheduler for a new session viewport.
type SchedulerFactory func() Scheduler

// Options configures the builder Service. Collaborators are interfaces so
// hosts can swap implementations.
type Options struct {
	Store      SessionStore
	Validator  SceneValidator
	Styles     StyleCompiler
	Viewport   ViewportConfig
	Converter  ConverterConfig
	Schedulers SchedulerFactory
	Events     ViewportHook
	Renderer   Renderer
	Telemetry  Telemetry
	Logger     *slog.Logger
}

// WithConfig copies the tuning of a decoded config into the options.
func (opts Options) WithConfig(cfg Config) Options {
	opts.Viewport = cfg.Viewport
	opts.Converter = cfg.Converter
	if opts.Styles == nil {
		opts.Styles = NewStyleCache(cfg.StyleCacheTTL)
	}
	return opts
}

// Service owns builder sessions: it converts template scenes and routes
// pan/zoom input to each session's viewport.
type Service struct {
	opts      Options
	converter *Converter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewInMemorySessionStore()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Styles == nil {
		opts.Styles = NewStyleCache(DefaultStyleCacheTTL)
	}
	if opts.Events == nil {
		opts.Events = noopViewportHook{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.Viewport.applyDefaults()
	if err := opts.Viewport.Validate(); err != nil {
		opts.Logger.Warn("seatmap: invalid viewport config, using defaults", "error", err)
		opts.Viewport = DefaultViewportConfig()
	}
	if opts.Schedulers == nil {
		debounce := opts.Viewport.Debounce
		opts.Schedulers = func() Scheduler { return NewDebounceScheduler(debounce) }
	}
	converter := NewConverter(ConverterOptions{
		Logger:          opts.Logger,
		Telemetry:       opts.Telemetry,
		Styles:          opts.Styles,
		ContainerID:     opts.Converter.TicketContainer,
		DefaultFontSize: opts.Converter.DefaultFontSize,
	})
	return &Service{opts: opts, converter: converter}
}

// LoadTemplateRequest carries a scene payload for a seating template.
type LoadTemplateRequest struct {
	TemplateID string          `json:"template_id"`
	Scene      json.RawMessage `json:"scene"`
	Viewport   Size            `json:"viewport"`
}

// LoadTemplateResult describes a new builder session.
type LoadTemplateResult struct {
	SessionID   string        `json:"session_id"`
	TemplateID  string        `json:"template_id,omitempty"`
	Size        Size          `json:"size"`
	State       ViewportState `json:"state"`
	Stats       ConvertStats  `json:"stats"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}

// LoadTemplate validates and converts a scene, then opens a session with a
// mounted viewport.
func (s *Service) LoadTemplate(ctx context.Context, req LoadTemplateRequest) (LoadTemplateResult, error) {
	if s.opts.Store == nil {
		return LoadTemplateResult{}, errMissingSessionStore
	}
	if len(req.Scene) == 0 {
		return LoadTemplateResult{}, ErrSceneRequired
	}
	raw := NormalizeScene(req.Scene)
	if err := s.opts.Validator.Validate(raw); err != nil {
		return LoadTemplateResult{}, err
	}
	scene, err := DecodeScene(raw)
	if err != nil {
		return LoadTemplateResult{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	res, err := s.converter.Convert(ctx, scene)
	if err != nil {
		return LoadTemplateResult{}, err
	}

	id := uuid.NewString()
	view := req.Viewport
	if view.Width <= 0 || view.Height <= 0 {
		view = res.Size
	}
	host := NewGeometryHost(res.Root)
	viewport := NewViewport(s.opts.Viewport, host,
		WithScheduler(s.opts.Schedulers()),
		WithLogger(s.opts.Logger),
		WithEventHook(s.sessionHook(id)),
	)
	viewport.Mount(res.Root, res.Size, view)

	session := &Session{
		ID:         id,
		TemplateID: req.TemplateID,
		Result:     res,
		Host:       host,
		Viewport:   viewport,
		CreatedAt:  time.Now(),
	}
	if err := s.opts.Store.Save(ctx, session); err != nil {
		viewport.Stop()
		return LoadTemplateResult{}, err
	}
	for _, d := range res.Diagnostics {
		s.opts.Logger.Warn("seatmap: template diagnostic", "template_id", req.TemplateID, "key", d.Key, "message", d.Message)
	}
	s.recordTelemetry(ctx, "seatmap.session.load", map[string]any{
		"session_id":  id,
		"template_id": req.TemplateID,
		"nodes":       res.Stats.Nodes,
		"purchasable": res.Stats.Purchasable,
	})
	return LoadTemplateResult{
		SessionID:   id,
		TemplateID:  req.TemplateID,
		Size:        res.Size,
		State:       viewport.State(),
		Stats:       res.Stats,
		Diagnostics: res.Diagnostics,
	}, nil
}

// sessionHook tags viewport events with the session and forwards them. The
// viewport calls it under its lock, so it only hands events off.
func (s *Service) sessionHook(sessionID string) EventHook {
	return func(event ViewportEvent) {
		event.SessionID = sessionID
		ctx := context.Background()
		if err := s.opts.Events.ViewportUpdated(ctx, event); err != nil {
			s.opts.Logger.Warn("seatmap: viewport hook failed", "session_id", sessionID, "error", err)
		}
		if event.Kind != EventTransform {
			s.recordTelemetry(ctx, "seatmap.viewport."+event.Kind, map[string]any{
				"session_id": sessionID,
				"key":        event.Key,
				"scale":      event.State.Scale,
			})
		}
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// WheelRequest is a zoom step for a session.
type WheelRequest struct {
	SessionID string  `json:"session_id"`
	DeltaY    float64 `json:"delta_y"`
	Pointer   *Point  `json:"pointer,omitempty"`
}

// Wheel applies a zoom step.
func (s *Service) Wheel(ctx context.Context, req WheelRequest) (ViewportState, error) {
	session, err := s.session(ctx, req.SessionID)
	if err != nil {
		return ViewportState{}, err
	}
	return session.Viewport.Wheel(req.DeltaY, req.Pointer), nil
}

// DragRequest proposes a new pan position for a session.
type DragRequest struct {
	SessionID string `json:"session_id"`
	Position  Point  `json:"position"`
}

// Drag pans the session viewport.
func (s *Service) Drag(ctx context.Context, req DragRequest) (ViewportState, error) {
	session, err := s.session(ctx, req.SessionID)
	if err != nil {
		return ViewportState{}, err
	}
	return session.Viewport.Drag(req.Position), nil
}

// ResizeRequest reports a new visible area for a session.
type ResizeRequest struct {
	SessionID string `json:"session_id"`
	Viewport  Size   `json:"viewport"`
}

// Resize updates the visible area of the session viewport.
func (s *Service) Resize(ctx context.Context, req ResizeRequest) (ViewportState, error) {
	session, err := s.session(ctx, req.SessionID)
	if err != nil {
		return ViewportState{}, err
	}
	session.Viewport.Resize(req.Viewport)
	return session.Viewport.State(), nil
}

// ViewportState returns the session's current zoom and pan.
func (s *Service) ViewportState(ctx context.Context, sessionID string) (ViewportState, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return ViewportState{}, err
	}
	return session.Viewport.State(), nil
}

// Shapes returns the converted scene of a session.
func (s *Service) Shapes(ctx context.Context, sessionID string) (*Result, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Result, nil
}

// Snapshot returns the CBOR encoded shape tree of a session.
func (s *Service) Snapshot(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return EncodeSnapshot(session.Result)
}

// Inventory summarizes the purchasable shapes of a session.
func (s *Service) Inventory(ctx context.Context, sessionID string) (InventoryReport, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return InventoryReport{}, err
	}
	return BuildInventory(session.Result.Root), nil
}

// InventoryChart renders a bar chart of the session inventory by attr.
func (s *Service) InventoryChart(ctx context.Context, sessionID, attr string) (string, error) {
	report, err := s.Inventory(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return RenderInventoryChart(report, attr, ChartOptions{})
}

// Preview renders the session scene as an HTML page.
func (s *Service) Preview(ctx context.Context, sessionID string, out io.Writer) error {
	if s.opts.Renderer == nil {
		return errMissingRenderer
	}
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	title := session.TemplateID
	if title == "" {
		title = "Seating template"
	}
	return RenderPreview(s.opts.Renderer, title, session.Result, out)
}

// CloseSession stops the session viewport and drops the session.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	if s.opts.Store == nil {
		return errMissingSessionStore
	}
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	session, err := s.opts.Store.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Viewport.Stop()
	s.recordTelemetry(ctx, "seatmap.session.close", map[string]any{"session_id": sessionID})
	return nil
}

// Sessions lists open sessions.
func (s *Service) Sessions(ctx context.Context) ([]*Session, error) {
	if s.opts.Store == nil {
		return nil, errMissingSessionStore
	}
	return s.opts.Store.List(ctx)
}

func (s *Service) session(ctx context.Context, id string) (*Session, error) {
	if s.opts.Store == nil {
		return nil, errMissingSessionStore
	}
	if id == "" {
		return nil, ErrSessionIDRequired
	}
	return s.opts.Store.Get(ctx, id)
}
