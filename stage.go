package bramble

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage owns the live sprite collection and its render order. Sprites are
// kept in an unordered slice plus a dirty flag; the slice is stably sorted
// by ascending index once per tick, and only on ticks where something
// changed. Ties preserve insertion order.
type Stage struct {
	sprites []Sprite
	dirty   bool
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Add appends a sprite and marks the stage dirty. Adding a sprite that is
// already present (identity comparison) is a no-op returning false.
func (st *Stage) Add(s Sprite) bool {
	for _, existing := range st.sprites {
		if existing == s {
			return false
		}
	}
	st.sprites = append(st.sprites, s)
	st.dirty = true
	return true
}

// Remove erases the first identity match and marks the stage dirty,
// reporting whether anything was removed.
func (st *Stage) Remove(s Sprite) bool {
	for i, existing := range st.sprites {
		if existing == s {
			copy(st.sprites[i:], st.sprites[i+1:])
			st.sprites[len(st.sprites)-1] = nil
			st.sprites = st.sprites[:len(st.sprites)-1]
			st.dirty = true
			return true
		}
	}
	return false
}

// ForceHierarchyUpdate marks the stage dirty. Call after mutating a sprite's
// index directly — the stage does not observe sprite mutation.
func (st *Stage) ForceHierarchyUpdate() {
	st.dirty = true
}

// Sprites returns the live sprite list in current order. The returned slice
// MUST NOT be mutated.
func (st *Stage) Sprites() []Sprite {
	return st.sprites
}

// Len returns the number of live sprites.
func (st *Stage) Len() int {
	return len(st.sprites)
}

// HitTest returns every live sprite whose shape contains p, in current
// render order (bottom-most first).
func (st *Stage) HitTest(p Point) []Sprite {
	var hits []Sprite
	for _, s := range st.sprites {
		if s.Shape() != nil && s.Shape().Contains(p) {
			hits = append(hits, s)
		}
	}
	return hits
}

// Render draws every sprite onto target in current order.
func (st *Stage) Render(target *ebiten.Image) {
	for _, s := range st.sprites {
		s.Draw(target)
	}
}

// Reset removes all sprites and clears the dirty flag.
func (st *Stage) Reset() {
	for i := range st.sprites {
		st.sprites[i] = nil
	}
	st.sprites = st.sprites[:0]
	st.dirty = false
}

// update re-sorts the sprite list if dirty. Sorting is skipped entirely on
// ticks where nothing changed.
func (st *Stage) update() {
	if !st.dirty {
		return
	}
	sort.SliceStable(st.sprites, func(i, j int) bool {
		return st.sprites[i].Index() < st.sprites[j].Index()
	})
	st.dirty = false
}
