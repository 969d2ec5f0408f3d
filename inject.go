package bramble

// Synthetic input injection. Injected events are queued and consumed one
// per tick through the same gesture state machine as device input, so
// scripted interaction behaves identically headless and windowed. While
// the queue is non-empty, device polling is skipped.

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
	synthTouches
)

// syntheticEvent is a single injected input sample in screen coordinates.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	wheel   float64
	touches []Point
}

// InjectPress queues a pointer press at screen coordinates.
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move with the button held. Use between
// InjectPress and InjectRelease to simulate a drag.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a pointer release.
func (e *Engine) InjectRelease() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthRelease})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease()
}

// InjectDrag queues a full drag: press at from, linearly interpolated
// moves, release. The sequence consumes `frames` ticks (minimum 2).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease()
}

// InjectWheel queues wheel steps (positive zooms in). Steps queued for the
// same tick compound.
func (e *Engine) InjectWheel(steps float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthWheel, wheel: steps})
}

// InjectTouches queues one tick's simulated touch set in screen
// coordinates. Queue successive sets to walk a multi-touch gesture:
// one point, then two, then two moving apart, then none.
func (e *Engine) InjectTouches(points ...Point) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthTouches, touches: points})
}

// consumeInjected pops one synthetic event and feeds it through the
// gesture machinery. Reports whether an event was consumed, in which case
// device polling is skipped this tick.
func (e *Engine) consumeInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue[len(e.injectQueue)-1] = syntheticEvent{}
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		e.pointerDown(evt.x, evt.y)
	case synthMove:
		e.pointerMove(evt.x, evt.y)
	case synthRelease:
		e.pointerUp()
	case synthWheel:
		e.gesture.applyWheel(evt.wheel)
	case synthTouches:
		pts := evt.touches
		if len(pts) > 2 {
			pts = pts[:2]
		}
		e.handleTouches(len(evt.touches), pts)
	}
	return true
}
