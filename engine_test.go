package bramble

import (
	"testing"
	"time"
)

func TestSceneActivationWaitsForResources(t *testing.T) {
	backend := &fakeBackend{}
	cfg := DefaultConfig()
	cfg.Load = backend.load

	loading := &recordScene{}
	scene := &recordScene{resources: []string{"x.png"}}
	e := NewEngine(cfg)
	e.SetLoadingScene(loading)
	e.Register("main", scene)
	e.Switch("main")

	ticks(t, e, 2)
	if scene.inits != 0 || scene.runs != 0 {
		t.Fatal("scene activated before its resources resolved")
	}
	if loading.runs != 2 {
		t.Errorf("loading scene ran %d times, want 2", loading.runs)
	}
	if len(backend.started) != 1 {
		t.Fatalf("started %d loads, want 1", len(backend.started))
	}

	backend.finishAll()
	ticks(t, e, 2) // one tick to observe completion, one to activate

	if scene.inits != 1 {
		t.Fatalf("inits = %d, want 1", scene.inits)
	}
	if scene.runs != 1 {
		t.Fatalf("runs = %d, want 1", scene.runs)
	}
	if scene.elapsed[0] != 0 {
		t.Errorf("first frame elapsed = %v, want 0", scene.elapsed[0])
	}
	if e.ActiveKey() != "main" {
		t.Errorf("ActiveKey = %q, want %q", e.ActiveKey(), "main")
	}
}

func TestFirstFrameElapsedZeroThenPositive(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	time.Sleep(2 * time.Millisecond)
	ticks(t, e, 1)

	if scene.elapsed[0] != 0 {
		t.Errorf("first elapsed = %v, want 0", scene.elapsed[0])
	}
	if scene.elapsed[1] <= 0 {
		t.Errorf("second elapsed = %v, want > 0", scene.elapsed[1])
	}
}

func TestInitRunsExactlyOnce(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)
	ticks(t, e, 5)
	if scene.inits != 1 {
		t.Errorf("inits = %d, want 1", scene.inits)
	}
	if scene.runs != 6 {
		t.Errorf("runs = %d, want 6", scene.runs)
	}
}

func TestSwitchTearsDownOutgoingScene(t *testing.T) {
	a := &recordScene{onInit: func(e *Engine) {
		e.Stage().Add(newStubSprite("a-sprite", 0))
	}}
	e := newActiveEngine(t, a)
	e.InjectWheel(2)
	ticks(t, e, 1)
	if e.Stage().Len() != 1 || e.Zoom() == 1 {
		t.Fatal("precondition: sprite on stage and zoom moved")
	}

	b := &recordScene{}
	e.Register("b", b)
	e.Switch("b")
	ticks(t, e, 1)

	if e.ActiveKey() != "b" {
		t.Fatalf("ActiveKey = %q, want %q", e.ActiveKey(), "b")
	}
	if e.Stage().Len() != 0 {
		t.Errorf("stage has %d sprites after switch, want 0", e.Stage().Len())
	}
	if e.Zoom() != 1 {
		t.Errorf("Zoom = %v after switch, want 1", e.Zoom())
	}
	if a.inits != 1 || b.inits != 1 {
		t.Errorf("inits = (%d, %d), want (1, 1)", a.inits, b.inits)
	}
}

func TestSwitchToUnknownKeyGoesInert(t *testing.T) {
	scene := &recordScene{}
	e := newActiveEngine(t, scene)

	e.Switch("missing")
	ticks(t, e, 3)

	if e.ActiveKey() != "" {
		t.Errorf("ActiveKey = %q, want empty", e.ActiveKey())
	}
	if scene.runs != 1 {
		t.Errorf("old scene kept running after teardown: runs = %d", scene.runs)
	}

	// The loop is inert, not broken: a later valid switch recovers.
	e.Switch("test")
	ticks(t, e, 1)
	if e.ActiveKey() != "test" {
		t.Errorf("ActiveKey = %q after recovery, want %q", e.ActiveKey(), "test")
	}
}

func TestResourceCacheSurvivesSwitch(t *testing.T) {
	backend := &fakeBackend{}
	cfg := DefaultConfig()
	cfg.Load = backend.load

	a := &recordScene{resources: []string{"shared.png"}}
	b := &recordScene{resources: []string{"shared.png"}}
	e := NewEngine(cfg)
	e.Register("a", a)
	e.Register("b", b)

	e.Switch("a")
	ticks(t, e, 1)
	backend.finishAll()
	ticks(t, e, 2)
	if a.inits != 1 {
		t.Fatalf("scene a not active: inits = %d", a.inits)
	}

	// The same identifier is cached, so switching to b starts no new load
	// and activates on the next tick.
	e.Switch("b")
	ticks(t, e, 1)
	if b.inits != 1 {
		t.Fatalf("scene b not active: inits = %d", b.inits)
	}
	if len(backend.started) != 1 {
		t.Errorf("started %d loads, want 1 (cache hit)", len(backend.started))
	}
}

func TestDefaultProgressSceneFillsStage(t *testing.T) {
	backend := &fakeBackend{}
	cfg := DefaultConfig()
	cfg.Load = backend.load

	scene := &recordScene{resources: []string{"slow.png"}}
	e := NewEngine(cfg)
	e.Register("main", scene)
	e.Switch("main")
	ticks(t, e, 2)

	// The progress scene shows a frame and a fill bar while loading.
	if e.Stage().Len() != 2 {
		t.Errorf("stage has %d sprites during load, want 2", e.Stage().Len())
	}

	backend.finishAll()
	ticks(t, e, 2)
	if e.Stage().Len() != 0 {
		t.Errorf("progress sprites survived activation: %d on stage", e.Stage().Len())
	}
}

func TestNilLoadingSceneShowsNothing(t *testing.T) {
	backend := &fakeBackend{}
	cfg := DefaultConfig()
	cfg.Load = backend.load

	scene := &recordScene{resources: []string{"slow.png"}}
	e := NewEngine(cfg)
	e.SetLoadingScene(nil)
	e.Register("main", scene)
	e.Switch("main")
	ticks(t, e, 2)

	if e.Stage().Len() != 0 {
		t.Errorf("stage has %d sprites with nil loading scene, want 0", e.Stage().Len())
	}
	backend.finishAll()
	ticks(t, e, 2)
	if scene.inits != 1 {
		t.Errorf("scene never activated: inits = %d", scene.inits)
	}
}
