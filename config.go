package bramble

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config carries engine construction options. The zero value is not
// usable; start from [DefaultConfig] or [LoadConfig].
type Config struct {
	// Title is the window title used by Run.
	Title string `toml:"title"`
	// Width and Height are the logical scene size in pixels. The window
	// may be any size; the scene is letterboxed onto it.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// MouseControl enables pointer/touch processing at startup.
	MouseControl bool `toml:"mouse_control"`
	// DragEnabled arms drag tracking on pointer-down.
	DragEnabled bool `toml:"drag_enabled"`
	// CaptureSprites enables hit-testing on click dispatch.
	CaptureSprites bool `toml:"capture_sprites"`
	// ZoomControl enables wheel/pinch zoom with the ZoomMin/ZoomMax clamp.
	ZoomControl bool    `toml:"zoom_control"`
	ZoomMin     float64 `toml:"zoom_min"`
	ZoomMax     float64 `toml:"zoom_max"`

	// Debug enables the FPS/loader/stage overlay.
	Debug bool `toml:"debug"`
	// LogLevel sets the library log level ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// Load overrides the resource backend. Nil uses LoadImage.
	Load LoadFunc `toml:"-"`
}

// DefaultConfig returns the defaults: a 640x480 scene with mouse control
// and dragging enabled, zoom disabled.
func DefaultConfig() Config {
	return Config{
		Title:        "bramble",
		Width:        640,
		Height:       480,
		MouseControl: true,
		DragEnabled:  true,
		ZoomMin:      defaultZoomMin,
		ZoomMax:      defaultZoomMax,
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %s: scene size must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	if cfg.ZoomMin <= 0 || cfg.ZoomMax < cfg.ZoomMin {
		return cfg, fmt.Errorf("config %s: invalid zoom range [%v, %v]", path, cfg.ZoomMin, cfg.ZoomMax)
	}
	return cfg, nil
}
