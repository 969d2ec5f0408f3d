package bramble

// Viewport maps the fixed logical scene size onto a variable physical
// display size: the scene is scaled uniformly, centered, and letterboxed on
// the narrow axis. The fit is recomputed only when the display size
// changes, not every tick.
type Viewport struct {
	SceneWidth  float64
	SceneHeight float64

	displayW float64
	displayH float64
	fit      Rect
	scale    float64
}

// newViewport creates a viewport for a logical scene size.
func newViewport(sceneWidth, sceneHeight float64) Viewport {
	return Viewport{
		SceneWidth:  sceneWidth,
		SceneHeight: sceneHeight,
		scale:       1,
		fit:         Rect{Width: sceneWidth, Height: sceneHeight},
	}
}

// resize recomputes the fit rectangle for a new display size. No-op when
// the size is unchanged.
func (v *Viewport) resize(displayW, displayH float64) {
	if displayW == v.displayW && displayH == v.displayH {
		return
	}
	v.displayW = displayW
	v.displayH = displayH

	if displayW <= 0 || displayH <= 0 || v.SceneWidth <= 0 || v.SceneHeight <= 0 {
		v.scale = 1
		v.fit = Rect{Width: v.SceneWidth, Height: v.SceneHeight}
		return
	}

	sx := displayW / v.SceneWidth
	sy := displayH / v.SceneHeight
	if sx < sy {
		v.scale = sx
	} else {
		v.scale = sy
	}
	w := v.SceneWidth * v.scale
	h := v.SceneHeight * v.scale
	v.fit = Rect{
		X:      (displayW - w) / 2,
		Y:      (displayH - h) / 2,
		Width:  w,
		Height: h,
	}
}

// FitRect returns the blit destination rectangle in display coordinates.
func (v *Viewport) FitRect() Rect {
	return v.fit
}

// Scale returns the uniform scene-to-display scale factor.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// ScreenToScene maps display coordinates into scene coordinates. ok is
// false when the point falls outside the letterboxed scene box, in which
// case the caller must treat the input as a no-op.
func (v *Viewport) ScreenToScene(sx, sy float64) (p Point, ok bool) {
	if !v.fit.Contains(sx, sy) {
		return Point{}, false
	}
	return Point{
		X: (sx - v.fit.X) / v.scale,
		Y: (sy - v.fit.Y) / v.scale,
	}, true
}

// SceneToScreen maps scene coordinates into display coordinates.
func (v *Viewport) SceneToScreen(p Point) (sx, sy float64) {
	return p.X*v.scale + v.fit.X, p.Y*v.scale + v.fit.Y
}
