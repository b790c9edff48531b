package seatmap

import "sync"

// RenderHost exposes the rasterization primitives of the scene-graph renderer.
// ClientRect returns a node's bounding box in unzoomed scene space.
type RenderHost interface {
	Cache(key string)
	ClearCache(key string)
	ClientRect(key string) (Rect, bool)
}

// GeometryHost is a headless RenderHost computing bounds from shape geometry.
// It records cache state so servers and tests can observe the heuristic.
type GeometryHost struct {
	mu     sync.RWMutex
	rects  map[string]Rect
	cached map[string]bool
	ops    int
}

// NewGeometryHost indexes the bounds of every shape under root.
func NewGeometryHost(root *Shape) *GeometryHost {
	h := &GeometryHost{
		rects:  make(map[string]Rect),
		cached: make(map[string]bool),
	}
	h.index(root, Point{}, Point{X: 1, Y: 1})
	return h
}

func (h *GeometryHost) index(s *Shape, origin, scale Point) (Rect, bool) {
	if s == nil {
		return Rect{}, false
	}
	if s.Kind != ShapeGroup && s.Kind != ShapeLabel {
		local, ok := localBounds(s)
		if !ok {
			return Rect{}, false
		}
		abs := Rect{
			X:      origin.X + local.X*scale.X,
			Y:      origin.Y + local.Y*scale.Y,
			Width:  local.Width * scale.X,
			Height: local.Height * scale.Y,
		}
		h.rects[s.Key] = abs
		return abs, true
	}

	childOrigin := Point{X: origin.X + s.X*scale.X, Y: origin.Y + s.Y*scale.Y}
	childScale := scale
	if t := s.Transform; t != nil {
		childScale = Point{X: scale.X * t.ScaleX, Y: scale.Y * t.ScaleY}
	}
	var bounds Rect
	found := false
	for _, child := range s.Children {
		r, ok := h.index(child, childOrigin, childScale)
		if !ok {
			continue
		}
		if !found {
			bounds = r
			found = true
			continue
		}
		bounds = bounds.Union(r)
	}
	if found {
		h.rects[s.Key] = bounds
	}
	return bounds, found
}

// Cache marks key as rasterized.
func (h *GeometryHost) Cache(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cached[key] = true
	h.ops++
}

// ClearCache returns key to live vector rendering.
func (h *GeometryHost) ClearCache(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.cached, key)
	h.ops++
}

// IsCached reports whether key is rasterized.
func (h *GeometryHost) IsCached(key string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cached[key]
}

// CachedCount returns the number of rasterized nodes.
func (h *GeometryHost) CachedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cached)
}

// Operations reports how many cache and clear calls were made.
func (h *GeometryHost) Operations() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ops
}

// ClientRect returns the scene-space bounds of key.
func (h *GeometryHost) ClientRect(key string) (Rect, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.rects[key]
	return r, ok
}
