package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugOverlay prints frame timing, stage, and loader counters into the
// top-left corner of the scene buffer.
func (e *Engine) drawDebugOverlay(target *ebiten.Image) {
	stats := e.loader.Stats()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nsprites: %d\nloaded: %d/%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		e.stage.Len(), stats.Loaded, stats.Total)
	if stats.NextPending != "" {
		msg += "\nnext: " + stats.NextPending
	}
	ebitenutil.DebugPrint(target, msg)
}
