package bramble

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-level logger. Quiet by default so the library stays
// silent in release builds; raise the level with SetLogLevel.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "bramble",
	Level:  log.WarnLevel,
})

// SetLogLevel sets the library log level: "debug", "info", "warn", or
// "error". Unknown values leave the level unchanged.
func SetLogLevel(level string) {
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
}
