package bramble

import (
	"math"
	"testing"
)

// recordScene records every signal the engine dispatches to it.
type recordScene struct {
	inits     int
	runs      int
	elapsed   []float64
	clicks    []Point
	clickHits [][]Sprite
	drags     []Vector
	drops     int
	zooms     []float64
	resources []string
	onInit    func(e *Engine)
	onRun     func(e *Engine, elapsedMs float64)
}

func (s *recordScene) Init(e *Engine) {
	s.inits++
	if s.onInit != nil {
		s.onInit(e)
	}
}

func (s *recordScene) Run(e *Engine, elapsedMs float64) {
	s.runs++
	s.elapsed = append(s.elapsed, elapsedMs)
	if s.onRun != nil {
		s.onRun(e, elapsedMs)
	}
}

func (s *recordScene) OnClick(e *Engine, p Point, hits []Sprite) bool {
	s.clicks = append(s.clicks, p)
	s.clickHits = append(s.clickHits, hits)
	return true
}

func (s *recordScene) OnDrag(e *Engine, delta Vector) {
	s.drags = append(s.drags, delta)
}

func (s *recordScene) OnDrop(e *Engine) {
	s.drops++
}

func (s *recordScene) OnZoom(e *Engine, zoom float64) {
	s.zooms = append(s.zooms, zoom)
}

func (s *recordScene) Resources() []string {
	return s.resources
}

// newActiveEngine returns an engine with scene already registered, switched
// to, and activated.
func newActiveEngine(t *testing.T, scene *recordScene) *Engine {
	t.Helper()
	e := NewEngine(DefaultConfig())
	e.Register("test", scene)
	e.Switch("test")
	if err := e.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if scene.inits != 1 {
		t.Fatalf("scene not activated: inits = %d", scene.inits)
	}
	return e
}

func ticks(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func TestClickDispatchWithSpriteCapture(t *testing.T) {
	target := newStubSprite("target", 0)
	target.SetShape(NewRectangle(100, 100, 40, 20))
	scene := &recordScene{onInit: func(e *Engine) {
		e.Stage().Add(target)
	}}
	e := newActiveEngine(t, scene)
	e.SetCaptureSprites(true)

	e.InjectClick(115, 105)
	ticks(t, e, 2)

	if len(scene.clicks) != 1 {
		t.Fatalf("got %d clicks, want 1", len(scene.clicks))
	}
	if scene.clicks[0] != (Point{115, 105}) {
		t.Errorf("click at %+v, want (115, 105)", scene.clicks[0])
	}
	if len(scene.clickHits[0]) != 1 || scene.clickHits[0][0] != Sprite(target) {
		t.Errorf("click hits = %v, want [target]", scene.clickHits[0])
	}
}

func TestClickWithoutSpriteCaptureHasNoHits(t *testing.T) {
	target := newStubSprite("target", 0)
	target.SetShape(NewRectangle(100, 100, 40, 20))
	scene := &recordScene{onInit: func(e *Engine) {
		e.Stage().Add(target)
	}}
	e := newActiveEngine(t, scene)

	e.InjectClick(100, 100)
	ticks(t, e, 2)

	if len(scene.clicks) != 1 {
		t.Fatalf("got %d clicks, want 1", len(scene.clicks))
	}
	if scene.clickHits[0] != nil {
		t.Errorf("hits = %v, want nil without sprite capture", scene.clickHits[0])
	}
}

func TestClickOutsideViewportIgnored(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)
	// A 1280-wide window letterboxes the 640x480 scene with 320px bars.
	e.Layout(1280, 480)

	e.InjectClick(10, 240) // inside the left bar
	ticks(t, e, 2)
	if len(scene.clicks) != 0 {
		t.Fatalf("letterbox click dispatched: %v", scene.clicks)
	}

	e.InjectClick(320+100, 240) // maps to scene (100, 240)
	ticks(t, e, 2)
	if len(scene.clicks) != 1 || scene.clicks[0] != (Point{100, 240}) {
		t.Fatalf("clicks = %v, want [(100, 240)]", scene.clicks)
	}
}

func TestDragAccumulatesAndDrops(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.InjectDrag(100, 100, 130, 100, 3) // press, one move to (115, 100), release
	ticks(t, e, 3)

	if len(scene.drags) != 1 {
		t.Fatalf("got %d drag signals, want 1", len(scene.drags))
	}
	d := scene.drags[0]
	if math.Abs(d.X-15) > epsilon || math.Abs(d.Y) > epsilon {
		t.Errorf("drag delta = %+v, want (15, 0)", d)
	}
	if scene.drops != 1 {
		t.Errorf("drops = %d, want 1", scene.drops)
	}
}

func TestDragDisabledStillClicks(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)
	e.SetDragEnabled(false)

	e.InjectDrag(100, 100, 130, 100, 3)
	ticks(t, e, 3)

	if len(scene.clicks) != 1 {
		t.Errorf("clicks = %d, want 1 (click still fires on press)", len(scene.clicks))
	}
	if len(scene.drags) != 0 {
		t.Errorf("drags = %v, want none with drag disabled", scene.drags)
	}
	if scene.drops != 0 {
		t.Errorf("drops = %d, want 0 with drag disabled", scene.drops)
	}
}

func TestWheelZoomCompounds(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.InjectWheel(2)
	ticks(t, e, 1)

	if len(scene.zooms) != 1 {
		t.Fatalf("got %d zoom signals, want 1", len(scene.zooms))
	}
	want := math.Pow(wheelZoomStep, 2)
	if math.Abs(scene.zooms[0]-want) > epsilon {
		t.Errorf("zoom = %v, want %v (two wheel steps compound)", scene.zooms[0], want)
	}
	if math.Abs(e.Zoom()-want) > epsilon {
		t.Errorf("Zoom() = %v, want %v", e.Zoom(), want)
	}

	// No further input: no further zoom signals.
	ticks(t, e, 2)
	if len(scene.zooms) != 1 {
		t.Errorf("zoom re-dispatched without change: %v", scene.zooms)
	}
}

func TestZoomClamped(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)
	e.EnableZoomControl(0.5, 2)

	e.InjectWheel(50)
	ticks(t, e, 1)
	if len(scene.zooms) != 1 || scene.zooms[0] != 2 {
		t.Errorf("zooms = %v, want [2] (clamped to max)", scene.zooms)
	}

	e.InjectWheel(-100)
	ticks(t, e, 1)
	if len(scene.zooms) != 2 || scene.zooms[1] != 0.5 {
		t.Errorf("zooms = %v, want [2, 0.5] (clamped to min)", scene.zooms)
	}
}

func TestPinchZoomsAndSuppressesDrag(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	// 1 touch -> 2 touches -> spread -> 1 touch -> 0 touches.
	e.InjectTouches(Point{100, 100})
	e.InjectTouches(Point{100, 100}, Point{200, 100})
	e.InjectTouches(Point{100, 100}, Point{250, 100})
	e.InjectTouches(Point{100, 100})
	e.InjectTouches()
	ticks(t, e, 5)

	if len(scene.drags) != 0 {
		t.Errorf("drags = %v; a pinch must never read as a drag", scene.drags)
	}
	if scene.drops != 1 {
		t.Errorf("drops = %d, want exactly 1 on returning to 0 touches", scene.drops)
	}
	if len(scene.zooms) != 1 {
		t.Fatalf("got %d zoom signals, want 1", len(scene.zooms))
	}
	// Distances 100 -> 150 give a 1.5x relative zoom.
	if math.Abs(scene.zooms[0]-1.5) > epsilon {
		t.Errorf("zoom = %v, want 1.5", scene.zooms[0])
	}
}

func TestSingleTouchDrags(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.InjectTouches(Point{100, 100})
	e.InjectTouches(Point{120, 110})
	e.InjectTouches()
	ticks(t, e, 3)

	if len(scene.drags) != 1 {
		t.Fatalf("got %d drags, want 1", len(scene.drags))
	}
	if scene.drags[0] != (Vector{X: 20, Y: 10}) {
		t.Errorf("drag = %+v, want (20, 10)", scene.drags[0])
	}
	if scene.drops != 1 {
		t.Errorf("drops = %d, want 1", scene.drops)
	}
}

func TestReleaseWithoutPressIsNoop(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.InjectRelease()
	ticks(t, e, 1)

	if scene.drops != 0 || len(scene.drags) != 0 || len(scene.clicks) != 0 {
		t.Error("a release with no matching press must be a no-op")
	}
}

func TestGestureResetOnSceneSwitch(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.InjectWheel(3)
	ticks(t, e, 1)
	if e.Zoom() == 1 {
		t.Fatal("zoom should have moved")
	}

	next := &recordScene{}
	e.Register("next", next)
	e.Switch("next")
	ticks(t, e, 1)

	if e.Zoom() != 1 {
		t.Errorf("Zoom after switch = %v, want 1 (gesture state resets)", e.Zoom())
	}
}
