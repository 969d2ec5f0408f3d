package bramble

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultZoomMin = 0.1
	defaultZoomMax = 10.0
)

// Engine is the frame loop: it implements [ebiten.Game] and orchestrates,
// once per tick, scene-switch evaluation gated on resource loading,
// gesture reconciliation, the active scene's per-frame callback, and the
// stage re-sort — in that fixed order. Gesture hit-testing therefore sees
// the previous tick's sprite positions. Painting happens in Draw, against
// an offscreen buffer blitted letterboxed to the window.
//
// The loop never stops itself; halting means the host stops invoking it.
type Engine struct {
	// Background fills the offscreen buffer each frame.
	Background Color

	scenes    map[string]Scene
	active    Scene
	activeKey string

	pendingKey      string
	switchPending   bool
	pendingDeclared bool

	loadingScene  Scene
	loadingInited bool

	stage    *Stage
	loader   *Loader
	gesture  gestureState
	viewport Viewport

	buffer     *ebiten.Image
	lastTick   time.Time
	firstFrame bool

	mouseControl   bool
	zoomControl    bool
	dragEnabled    bool
	captureSprites bool
	debug          bool

	injectQueue []syntheticEvent
	script      *Script
}

// NewEngine creates an engine for the configured logical scene size. The
// default loading scene is a [ProgressScene]; replace it with
// [Engine.SetLoadingScene].
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		Background:     Color{0.08, 0.08, 0.1, 1},
		scenes:         make(map[string]Scene),
		stage:          NewStage(),
		loader:         NewLoader(cfg.Load),
		gesture:        newGestureState(),
		viewport:       newViewport(float64(cfg.Width), float64(cfg.Height)),
		loadingScene:   NewProgressScene(),
		mouseControl:   cfg.MouseControl,
		dragEnabled:    cfg.DragEnabled,
		captureSprites: cfg.CaptureSprites,
		debug:          cfg.Debug,
	}
	if cfg.ZoomControl {
		e.EnableZoomControl(cfg.ZoomMin, cfg.ZoomMax)
	}
	if cfg.LogLevel != "" {
		SetLogLevel(cfg.LogLevel)
	}
	return e
}

// Register adds a scene under a key. Re-registering a key replaces the
// scene for future switches; the active scene is unaffected.
func (e *Engine) Register(key string, scene Scene) {
	e.scenes[key] = scene
}

// Switch requests a scene switch. The switch is evaluated at the next
// tick: the current scene tears down, the incoming scene's resources
// preload behind the loading scene, then the new scene activates. An
// unknown key resolves to no scene and the loop goes inert rather than
// raising.
func (e *Engine) Switch(key string) {
	e.pendingKey = key
	e.switchPending = true
	e.pendingDeclared = false
	logger.Debug("scene switch requested", "key", key)
}

// Stage returns the engine's render order manager.
func (e *Engine) Stage() *Stage {
	return e.stage
}

// Loader returns the engine's resource loader.
func (e *Engine) Loader() *Loader {
	return e.loader
}

// Viewport returns the engine's viewport.
func (e *Engine) Viewport() *Viewport {
	return &e.viewport
}

// SceneSize returns the logical scene dimensions.
func (e *Engine) SceneSize() (w, h float64) {
	return e.viewport.SceneWidth, e.viewport.SceneHeight
}

// ActiveKey returns the key of the active scene, or "" if none.
func (e *Engine) ActiveKey() string {
	return e.activeKey
}

// SetLoadingScene replaces the substitute scene driven while resources
// load. A nil scene shows only the background during loads.
func (e *Engine) SetLoadingScene(s Scene) {
	e.loadingScene = s
}

// SetDebugOverlay toggles the FPS/loader/stage overlay.
func (e *Engine) SetDebugOverlay(enabled bool) {
	e.debug = enabled
}

// Update advances the engine one tick. Implements [ebiten.Game].
func (e *Engine) Update() error {
	if e.script != nil {
		e.script.step(e)
	}
	elapsed := e.tickElapsed()

	if e.switchPending {
		if !e.pendingDeclared {
			e.teardown()
			e.declarePending()
		}
		if !e.loader.Complete() {
			e.driveLoading(elapsed)
			return nil
		}
		e.activatePending()
	}

	if e.active == nil {
		return nil
	}

	e.loader.update()
	e.collectInput()
	e.reconcile(e.active)
	if e.firstFrame {
		elapsed = 0
		e.firstFrame = false
	}
	e.active.Run(e, elapsed)
	e.stage.update()
	return nil
}

// teardown resets the engine-owned state of the outgoing scene: live
// sprites, gesture state, and the loader's queues and counters. The
// resource cache survives so nothing reloads.
func (e *Engine) teardown() {
	if e.active != nil {
		logger.Debug("scene teardown", "key", e.activeKey)
	}
	e.active = nil
	e.activeKey = ""
	e.stage.Reset()
	e.gesture.reset()
	e.loader.Reset()
}

// declarePending queues the incoming scene's resource dependencies.
func (e *Engine) declarePending() {
	if d, ok := e.scenes[e.pendingKey].(ResourceDeclarer); ok {
		e.loader.Declare(d.Resources()...)
	}
	e.pendingDeclared = true
	e.loadingInited = false
}

// driveLoading advances resource loads and runs the substitute loading
// scene for this tick.
func (e *Engine) driveLoading(elapsed float64) {
	e.loader.update()
	if e.loadingScene == nil {
		return
	}
	if !e.loadingInited {
		e.loadingScene.Init(e)
		e.loadingInited = true
		elapsed = 0
	}
	e.loadingScene.Run(e, elapsed)
	e.stage.update()
}

// activatePending promotes the pending scene to active. The stage is reset
// again to clear the loading scene's sprites, and the new scene's Init
// runs exactly once. An unknown key leaves the engine with no scene.
func (e *Engine) activatePending() {
	e.stage.Reset()
	e.gesture.reset()
	e.switchPending = false
	e.pendingDeclared = false

	scene, ok := e.scenes[e.pendingKey]
	if !ok || scene == nil {
		logger.Warn("switch to unknown scene", "key", e.pendingKey)
		return
	}
	e.active = scene
	e.activeKey = e.pendingKey
	e.firstFrame = true
	logger.Debug("scene active", "key", e.activeKey)
	scene.Init(e)
}

// tickElapsed returns the milliseconds since the previous tick and
// advances the tick clock. The very first tick reports zero.
func (e *Engine) tickElapsed() float64 {
	now := time.Now()
	var ms float64
	if !e.lastTick.IsZero() {
		ms = float64(now.Sub(e.lastTick)) / float64(time.Millisecond)
	}
	e.lastTick = now
	return ms
}

// Draw paints the sprite list into the offscreen buffer and blits it onto
// the window scaled and letterboxed. Implements [ebiten.Game].
func (e *Engine) Draw(screen *ebiten.Image) {
	w, h := e.SceneSize()
	if e.buffer == nil {
		e.buffer = ebiten.NewImage(int(w), int(h))
	}
	e.buffer.Fill(e.Background.toRGBA())
	e.stage.Render(e.buffer)
	if e.debug {
		e.drawDebugOverlay(e.buffer)
	}

	fit := e.viewport.FitRect()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(e.viewport.Scale(), e.viewport.Scale())
	op.GeoM.Translate(fit.X, fit.Y)
	screen.DrawImage(e.buffer, op)
}

// Layout reports the render size and recomputes the viewport fit on
// resize. Implements [ebiten.Game].
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.viewport.resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
