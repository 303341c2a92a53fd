package replay

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the logger used for recording and playback
func UseLogger(logger slog.Logger) {
	log = logger
}
