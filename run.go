package bramble

import "github.com/hajimehoshi/ebiten/v2"

// Run opens a resizable window sized to the config's scene dimensions and
// drives the engine until the window closes. For full control over window
// setup, call [ebiten.RunGame] with the engine directly.
func Run(e *Engine, cfg Config) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(e)
}
