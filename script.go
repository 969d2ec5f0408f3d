package bramble

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action   string  `json:"action"`
	Key      string  `json:"key,omitempty"` // scene key for "switch"
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"` // pinch start distance
	ToDist   float64 `json:"toDist,omitempty"`   // pinch end distance
	Steps    float64 `json:"steps,omitempty"`    // wheel steps
	Frames   int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input events across ticks for automated
// testing and demos. Attach to an Engine via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script. Supported actions: "click",
// "drag", "pinch", "wheel", "wait", "switch".
func LoadScript(jsonData []byte) (*Script, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	return &Script{steps: script.Steps}, nil
}

// SetScript attaches a script to the engine. The script advances at the
// start of each tick, before input collection.
func (e *Engine) SetScript(s *Script) {
	e.script = s
}

// Done reports whether every step has been executed and drained.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one tick.
func (s *Script) step(e *Engine) {
	if s.done {
		return
	}
	// Let pending injections drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "click":
		e.InjectClick(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		s.injectPinch(e, st)
	case "wheel":
		e.InjectWheel(st.Steps)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "switch":
		e.Switch(st.Key)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(e.injectQueue) == 0 {
		s.done = true
	}
}

// injectPinch expands a pinch step into a touch-set sequence: one finger
// at (x, y), a second joining at fromDist, the spread interpolating to
// toDist over the step's frames, then both lifting.
func (s *Script) injectPinch(e *Engine, st scriptStep) {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	anchor := Point{X: st.X, Y: st.Y}
	e.InjectTouches(anchor)
	for i := 0; i <= frames; i++ {
		t := float64(i) / float64(frames)
		d := st.FromDist + (st.ToDist-st.FromDist)*t
		e.InjectTouches(anchor, Point{X: st.X + d, Y: st.Y})
	}
	e.InjectTouches()
}
