package seatmap

import (
	"log/slog"
	"sync"
)

// Scheduler slots used by the viewport.
const (
	refreshSlot  = "refresh-cache"
	cacheAllSlot = "force-cache-all"
)

// Viewport event kinds.
const (
	EventTransform = "transform"
	EventCache     = "cache"
	EventDecache   = "decache"
)

// ViewportState is the current zoom and pan.
type ViewportState struct {
	Scale    float64 `json:"scale"`
	Position Point   `json:"position"`
}

// ViewportEvent describes a change applied by the viewport.
type ViewportEvent struct {
	SessionID string        `json:"session_id,omitempty"`
	Kind      string        `json:"kind"`
	Key       string        `json:"key,omitempty"`
	State     ViewportState `json:"state"`
}

// EventHook receives viewport events. It is called with the viewport lock
// held and must not block.
type EventHook func(ViewportEvent)

// ViewportOption customizes a Viewport.
type ViewportOption func(*Viewport)

// WithScheduler replaces the default debounce scheduler.
func WithScheduler(s Scheduler) ViewportOption {
	return func(v *Viewport) {
		if s != nil {
			v.scheduler = s
		}
	}
}

// WithEventHook registers a listener for transform and cache changes.
func WithEventHook(hook EventHook) ViewportOption {
	return func(v *Viewport) {
		v.hook = hook
	}
}

// WithLogger sets the viewport logger.
func WithLogger(logger *slog.Logger) ViewportOption {
	return func(v *Viewport) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Viewport owns pan/zoom state and the per-node cache flags. All mutation,
// including debounced passes, happens under its lock.
type Viewport struct {
	mu        sync.Mutex
	cfg       ViewportConfig
	host      RenderHost
	scheduler Scheduler
	hook      EventHook
	logger    *slog.Logger

	state  ViewportState
	scene  Size
	view   Size
	groups []string
	cached map[string]bool
}

// NewViewport builds a viewport starting at cfg.InitialScale.
func NewViewport(cfg ViewportConfig, host RenderHost, opts ...ViewportOption) *Viewport {
	cfg.applyDefaults()
	v := &Viewport{
		cfg:    cfg,
		host:   host,
		logger: slog.Default(),
		state:  ViewportState{Scale: clamp(cfg.InitialScale, cfg.MinScale, cfg.MaxScale)},
		cached: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.scheduler == nil {
		v.scheduler = NewDebounceScheduler(cfg.Debounce)
	}
	return v
}

// Mount registers the cache-marked nodes of root. Force-cached nodes are
// rasterized immediately; cache-eligible groups are picked up by a debounced
// force-cache-all pass.
func (v *Viewport) Mount(root *Shape, scene, view Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scene = scene
	v.view = view
	v.groups = nil
	v.cached = make(map[string]bool)
	root.Walk(func(s *Shape) bool {
		if !s.Cache {
			return true
		}
		if s.CachedGroup {
			v.groups = append(v.groups, s.Key)
			return true
		}
		v.cacheLocked(s.Key)
		return true
	})
	v.logger.Debug("seatmap: viewport mounted", "cached_groups", len(v.groups), "scale", v.state.Scale)
	v.scheduler.Debounce(cacheAllSlot, v.forceCacheAll)
}

// Resize updates the visible area and schedules a force-cache-all pass.
func (v *Viewport) Resize(view Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.view = view
	v.scheduler.Debounce(cacheAllSlot, v.forceCacheAll)
}

// Wheel zooms one step in (deltaY < 0) or out, keeping the scene point under
// pointer fixed when a pointer is known.
func (v *Viewport) Wheel(deltaY float64, pointer *Point) ViewportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	old := v.state.Scale
	next := old / v.cfg.ZoomStep
	if deltaY < 0 {
		next = old * v.cfg.ZoomStep
	}
	next = clamp(next, v.cfg.MinScale, v.cfg.MaxScale)
	if pointer != nil {
		v.state.Position = Point{
			X: pointer.X - (pointer.X-v.state.Position.X)/old*next,
			Y: pointer.Y - (pointer.Y-v.state.Position.Y)/old*next,
		}
	}
	v.state.Scale = next
	v.emit(EventTransform, "")
	if next > v.cfg.CacheThreshold {
		v.scheduler.Debounce(refreshSlot, v.refreshCache)
	}
	return v.state
}

// Drag moves the camera, clamping each axis to the scaled pan limit.
func (v *Viewport) Drag(proposed Point) ViewportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	limitX := v.cfg.PanLimit * v.scene.Width * v.state.Scale
	limitY := v.cfg.PanLimit * v.scene.Height * v.state.Scale
	v.state.Position = Point{
		X: clamp(proposed.X, -limitX, limitX),
		Y: clamp(proposed.Y, -limitY, limitY),
	}
	v.emit(EventTransform, "")
	if v.state.Scale > v.cfg.CacheThreshold {
		v.scheduler.Debounce(refreshSlot, v.refreshCache)
	}
	return v.state
}

// State returns the current zoom and pan.
func (v *Viewport) State() ViewportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// IsCached reports whether the viewport has rasterized key.
func (v *Viewport) IsCached(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cached[key]
}

// CachedGroups returns the keys of the visibility-managed groups.
func (v *Viewport) CachedGroups() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.groups...)
}

// Stop cancels pending debounced passes.
func (v *Viewport) Stop() {
	v.scheduler.Stop()
}

// refreshCache decaches groups that came into view and, while zoomed past
// the threshold, caches groups that left it.
func (v *Viewport) refreshCache() {
	v.mu.Lock()
	defer v.mu.Unlock()
	force := v.state.Scale > v.cfg.CacheThreshold
	for _, key := range v.groups {
		cached := v.cached[key]
		visible := v.isVisible(key)
		switch {
		case cached && visible:
			v.decacheLocked(key)
		case force && !cached && !visible:
			v.cacheLocked(key)
		}
	}
}

// forceCacheAll caches every eligible group not already cached.
func (v *Viewport) forceCacheAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, key := range v.groups {
		if !v.cached[key] {
			v.cacheLocked(key)
		}
	}
}

func (v *Viewport) cacheLocked(key string) {
	if v.host != nil {
		v.host.Cache(key)
	}
	v.cached[key] = true
	v.emit(EventCache, key)
}

func (v *Viewport) decacheLocked(key string) {
	if v.host != nil {
		v.host.ClearCache(key)
	}
	delete(v.cached, key)
	v.emit(EventDecache, key)
}

func (v *Viewport) emit(kind, key string) {
	if v.hook == nil {
		return
	}
	v.hook(ViewportEvent{Kind: kind, Key: key, State: v.state})
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
