package game

import "github.com/decred/slog"

// log is disabled until the host calls UseLogger
var log = slog.Disabled

// UseLogger sets the logger used by the match controller
func UseLogger(logger slog.Logger) {
	log = logger
}
