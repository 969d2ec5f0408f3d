package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// wheelZoomStep is the multiplicative zoom ratio applied per wheel step.
// Multiple wheel steps arriving before a tick compound.
const wheelZoomStep = 1.1

// gestureState merges raw mouse and multi-touch samples into the
// per-frame signal set {click-at, drag-delta, zoom, drag-ended}. It is
// owned by the Engine and reset on every scene switch.
//
// touchZoomCurrent/touchZoomNext hold the last two pinch-distance samples;
// zoom is advanced by their ratio, never by an absolute distance, so a
// pinch resumed at a different finger spacing does not jump.
type gestureState struct {
	zoomCurrent float64
	zoomNext    float64
	zoomMin     float64
	zoomMax     float64

	touchZoomCurrent float64
	touchZoomNext    float64
	isTouchZoom      bool

	dragVector Vector
	dragAnchor Point
	dragging   bool
	dragEnded  bool

	clickPending bool
	clickPoint   Point

	mouseWasDown   bool
	prevTouchCount int
	touchIDs       []ebiten.TouchID // scratch for AppendTouchIDs
}

func newGestureState() gestureState {
	return gestureState{
		zoomCurrent: 1,
		zoomNext:    1,
		zoomMin:     defaultZoomMin,
		zoomMax:     defaultZoomMax,
	}
}

// reset clears all gesture state for a scene switch. Zoom bounds survive;
// the zoom level returns to 1.
func (g *gestureState) reset() {
	min, max := g.zoomMin, g.zoomMax
	*g = newGestureState()
	g.zoomMin, g.zoomMax = min, max
}

// --- Control flags (Engine surface) ---

// EnableMouseControl starts pointer/touch processing. Input devices are
// polled each tick only while enabled, standing in for listener
// registration on event-driven hosts.
func (e *Engine) EnableMouseControl() {
	e.mouseControl = true
}

// DisableMouseControl stops pointer/touch processing and drops any
// in-progress drag without a drop signal.
func (e *Engine) DisableMouseControl() {
	e.mouseControl = false
	e.gesture.dragging = false
	e.gesture.dragVector = Vector{}
}

// EnableZoomControl starts wheel/pinch zoom processing with the given
// clamp range. The current zoom is clamped into the new range immediately.
func (e *Engine) EnableZoomControl(min, max float64) {
	e.zoomControl = true
	e.gesture.zoomMin = min
	e.gesture.zoomMax = max
	e.gesture.zoomNext = clamp(e.gesture.zoomNext, min, max)
}

// DisableZoomControl stops wheel/pinch zoom processing.
func (e *Engine) DisableZoomControl() {
	e.zoomControl = false
}

// SetDragEnabled controls whether pointer-down arms drag tracking.
func (e *Engine) SetDragEnabled(enabled bool) {
	e.dragEnabled = enabled
}

// SetCaptureSprites controls sprite-capture mode: when enabled, click
// dispatch hit-tests every live sprite and hands the hit list to the scene.
func (e *Engine) SetCaptureSprites(enabled bool) {
	e.captureSprites = enabled
}

// Zoom returns the current zoom level.
func (e *Engine) Zoom() float64 {
	return e.gesture.zoomCurrent
}

// --- Input collection ---

// collectInput gathers this tick's raw input. Injected synthetic events
// take priority over device polling so scripted input behaves identically
// headless and windowed.
func (e *Engine) collectInput() {
	if e.consumeInjected() {
		return
	}
	if e.mouseControl {
		e.pollMouse()
		e.pollTouches()
	}
	if e.zoomControl {
		_, wheelY := ebiten.Wheel()
		e.gesture.applyWheel(wheelY)
	}
}

// pollMouse derives down/move/up edges from the sampled button state.
func (e *Engine) pollMouse() {
	g := &e.gesture
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !g.mouseWasDown:
		e.pointerDown(sx, sy)
	case pressed && g.mouseWasDown:
		e.pointerMove(sx, sy)
	case !pressed && g.mouseWasDown:
		e.pointerUp()
	}
	g.mouseWasDown = pressed
}

// pollTouches reads the active touch set and feeds it through the touch
// state machine.
func (e *Engine) pollTouches() {
	g := &e.gesture
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	pts := make([]Point, 0, 2)
	for i, id := range g.touchIDs {
		if i == 2 {
			break
		}
		x, y := ebiten.TouchPosition(id)
		pts = append(pts, Point{X: float64(x), Y: float64(y)})
	}
	e.handleTouches(len(g.touchIDs), pts)
}

// handleTouches advances the touch state machine for one tick.
// count is the number of active touches; pts holds the first two screen
// positions.
func (e *Engine) handleTouches(count int, pts []Point) {
	g := &e.gesture
	switch {
	case count >= 2:
		d := pts[0].VectorTo(pts[1]).Magnitude()
		if !g.isTouchZoom {
			// 1 -> 2 touches: reclassify as pinch start. Click/drag
			// processing is suppressed for this event, and any drag
			// accumulated by the first touch is discarded.
			g.isTouchZoom = true
			g.touchZoomCurrent = d
			g.touchZoomNext = 0
			g.dragging = false
			g.dragVector = Vector{}
		} else {
			g.touchZoomNext = d
		}
	case count == 1:
		if g.isTouchZoom {
			// Pinch stays live until every touch lifts; the remaining
			// finger must not turn into a drag.
			break
		}
		if g.prevTouchCount == 0 {
			e.pointerDown(pts[0].X, pts[0].Y)
		} else {
			e.pointerMove(pts[0].X, pts[0].Y)
		}
	case count == 0:
		if g.prevTouchCount > 0 {
			wasPinch := g.isTouchZoom
			e.pointerUp()
			if wasPinch {
				// Pinch end: both touch-zoom samples reset, and the drop
				// signal fires exactly once even though drag was disarmed
				// at pinch start.
				g.touchZoomCurrent = 0
				g.touchZoomNext = 0
				g.isTouchZoom = false
				g.dragEnded = true
			}
		}
	}
	g.prevTouchCount = count
}

// pointerDown maps the press into scene coordinates, arms drag tracking,
// and queues the click signal. Presses outside the letterboxed viewport
// are no-ops.
func (e *Engine) pointerDown(sx, sy float64) {
	g := &e.gesture
	pt, ok := e.viewport.ScreenToScene(sx, sy)
	if !ok {
		return
	}
	if e.dragEnabled {
		g.dragging = true
		g.dragVector = Vector{}
		g.dragAnchor = pt
	}
	// Clicks dispatch on press, not on release.
	g.clickPending = true
	g.clickPoint = pt
}

// pointerMove accumulates (new - anchor) into the drag vector and advances
// the anchor. Moves outside the viewport box are ignored.
func (e *Engine) pointerMove(sx, sy float64) {
	g := &e.gesture
	if !g.dragging {
		return
	}
	pt, ok := e.viewport.ScreenToScene(sx, sy)
	if !ok {
		return
	}
	g.dragVector = g.dragVector.Add(g.dragAnchor.VectorTo(pt))
	g.dragAnchor = pt
}

// pointerUp disarms drag tracking and flags the drop signal. A release
// with no armed drag is a no-op, not an error.
func (e *Engine) pointerUp() {
	g := &e.gesture
	if g.dragging {
		g.dragging = false
		g.dragEnded = true
	}
}

// applyWheel compounds wheel steps into zoomNext. Positive steps zoom in.
func (g *gestureState) applyWheel(steps float64) {
	if steps == 0 {
		return
	}
	g.zoomNext *= math.Pow(wheelZoomStep, steps)
}

// --- Per-tick reconciliation ---

// reconcile folds pending pinch and wheel deltas into the zoom level and
// dispatches this tick's signals to the active scene. Runs after input
// collection and before the scene's per-frame callback. Signal order:
// click, zoom, drag, drop. Drag is suppressed while a pinch is live.
func (e *Engine) reconcile(scene Scene) {
	g := &e.gesture

	if g.touchZoomNext != 0 && g.touchZoomCurrent != 0 && g.touchZoomNext != g.touchZoomCurrent {
		g.zoomNext *= g.touchZoomNext / g.touchZoomCurrent
		g.touchZoomCurrent = g.touchZoomNext
	}
	g.zoomNext = clamp(g.zoomNext, g.zoomMin, g.zoomMax)

	if g.clickPending {
		g.clickPending = false
		var hits []Sprite
		if e.captureSprites {
			hits = e.stage.HitTest(g.clickPoint)
		}
		if h, ok := scene.(ClickHandler); ok {
			h.OnClick(e, g.clickPoint, hits)
		}
	}

	if g.zoomNext != g.zoomCurrent {
		if h, ok := scene.(ZoomHandler); ok {
			h.OnZoom(e, g.zoomNext)
		}
		g.zoomCurrent = g.zoomNext
	}

	if !g.dragVector.IsZero() && !g.isTouchZoom {
		if h, ok := scene.(DragHandler); ok {
			h.OnDrag(e, g.dragVector)
		}
		g.dragVector = Vector{}
	}

	if g.dragEnded {
		g.dragEnded = false
		if h, ok := scene.(DropHandler); ok {
			h.OnDrop(e)
		}
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
