package seatmap

// isVisible projects key's bounds through the current zoom and pan and tests
// them against the visible area. Callers hold the viewport lock.
func (v *Viewport) isVisible(key string) bool {
	if v.host == nil {
		return false
	}
	r, ok := v.host.ClientRect(key)
	if !ok {
		return false
	}
	scale := v.state.Scale
	screen := Rect{
		X:      v.state.Position.X + r.X*scale,
		Y:      v.state.Position.Y + r.Y*scale,
		Width:  r.Width * scale,
		Height: r.Height * scale,
	}
	return VisibleIn(screen, v.view, v.cfg.ElongatedRatio)
}

// VisibleIn reports whether r lies inside a viewport of the given size.
// Shapes longer than ratio:1 in either direction count as visible when
// either their horizontal or their vertical extent fits.
// NOTE: the elongated rule is tuned for long seat rows; keep the OR unless
// strict containment is proven better on real venues.
func VisibleIn(r Rect, view Size, ratio float64) bool {
	fitsX := r.X >= 0 && r.X+r.Width <= view.Width
	fitsY := r.Y >= 0 && r.Y+r.Height <= view.Height
	if isElongated(r, ratio) {
		return fitsX || fitsY
	}
	return fitsX && fitsY
}

func isElongated(r Rect, ratio float64) bool {
	long := max(r.Width, r.Height)
	short := min(r.Width, r.Height)
	if long <= 0 {
		return false
	}
	if short <= 0 {
		return true
	}
	return long/short > ratio
}
