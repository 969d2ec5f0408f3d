package bramble

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scene is one "screen" of the application. The engine calls Init exactly
// once when the scene activates (after its declared resources finish
// loading) and Run once per tick while it is active. elapsedMs is zero on
// the first frame after activation and the measured frame delta thereafter.
type Scene interface {
	Init(e *Engine)
	Run(e *Engine, elapsedMs float64)
}

// ClickHandler receives click signals. hits lists every live sprite whose
// shape contains the click point, in render order; it is nil unless
// sprite-capture mode is enabled. The return value reports whether the
// scene consumed the click.
type ClickHandler interface {
	OnClick(e *Engine, p Point, hits []Sprite) bool
}

// DragHandler receives the drag delta accumulated since the last dispatch.
type DragHandler interface {
	OnDrag(e *Engine, delta Vector)
}

// DropHandler receives the drag-ended signal.
type DropHandler interface {
	OnDrop(e *Engine)
}

// ZoomHandler receives the zoom level whenever it changes, already clamped
// into the configured [min, max] range.
type ZoomHandler interface {
	OnZoom(e *Engine, zoom float64)
}

// ResourceDeclarer lists resource identifiers the engine preloads before
// the scene activates. Scenes without this interface activate immediately.
type ResourceDeclarer interface {
	Resources() []string
}

// ProgressScene is the default substitute scene driven while a scene
// switch waits on resource loading. It renders a centered progress bar
// whose fill tweens smoothly toward the loader's live completion fraction.
type ProgressScene struct {
	BarColor   Color
	FrameColor Color

	frame    *RectSprite
	bar      *RectSprite
	barLeft  float64
	barWidth float64
	tween    *gween.Tween
	shown    float64
	target   float64
}

// NewProgressScene creates a progress scene with default colors.
func NewProgressScene() *ProgressScene {
	return &ProgressScene{
		BarColor:   Color{0.35, 0.65, 1, 1},
		FrameColor: Color{0.25, 0.25, 0.3, 1},
	}
}

// Init builds the bar sprites and stages them. The stage was reset by the
// pending scene switch, so the loading visuals own it until activation.
func (s *ProgressScene) Init(e *Engine) {
	w, h := e.SceneSize()
	s.barWidth = w * 0.5
	s.barLeft = (w - s.barWidth) / 2
	barH := h * 0.04
	pad := barH * 0.35

	s.frame = NewRectSprite(
		NewRectangle(w/2, h/2, s.barWidth+pad*2, barH+pad*2),
		s.FrameColor, 0)
	s.bar = NewRectSprite(
		NewRectangle(s.barLeft, h/2, 0, barH),
		s.BarColor, 1)
	e.Stage().Add(s.frame)
	e.Stage().Add(s.bar)

	s.shown = 0
	s.target = 0
	s.tween = nil
}

// Run reads the live loader stats and tweens the bar fill toward the
// current completion fraction. The stats record is mutated in place each
// tick, so fields are re-read here rather than cached.
func (s *ProgressScene) Run(e *Engine, elapsedMs float64) {
	stats := e.Loader().Stats()
	target := 1.0
	if stats.Total > 0 {
		target = float64(stats.Loaded) / float64(stats.Total)
	}
	if target != s.target {
		s.target = target
		s.tween = gween.New(float32(s.shown), float32(target), 0.25, ease.OutQuad)
	}
	if s.tween != nil {
		val, done := s.tween.Update(float32(elapsedMs / 1000))
		s.shown = float64(val)
		if done {
			s.tween = nil
		}
	}

	fill := s.barWidth * s.shown
	if rect, ok := s.bar.Shape().(*Rectangle); ok {
		rect.Width = fill
		rect.MoveTo(s.barLeft+fill/2, rect.Y)
	}
}
