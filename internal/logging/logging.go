// Package logging wires the subsystem loggers of every package to a single
// slog backend.
package logging

import (
	"fmt"
	"io"
	"sort"

	"github.com/decred/slog"
)

// Subsystem tags
const (
	SubsystemApp    = "APP"
	SubsystemGame   = "GAME"
	SubsystemServer = "WSRV"
	SubsystemReplay = "RPLY"
	SubsystemAudio  = "AUDI"
)

// Logging owns the backend and one logger per subsystem
type Logging struct {
	backend *slog.Backend
	loggers map[string]slog.Logger
}

// New creates loggers for every subsystem writing to w at the given level.
// A nil writer disables logging.
func New(w io.Writer, level string) (*Logging, error) {
	if w == nil {
		w = io.Discard
		level = "off"
	}

	l := &Logging{
		backend: slog.NewBackend(w),
		loggers: make(map[string]slog.Logger),
	}
	for _, tag := range []string{SubsystemApp, SubsystemGame, SubsystemServer, SubsystemReplay, SubsystemAudio} {
		l.loggers[tag] = l.backend.Logger(tag)
	}
	if err := l.SetLevel(level); err != nil {
		return nil, err
	}
	return l, nil
}

// Logger returns the logger for a subsystem, or a disabled one for an
// unknown tag.
func (l *Logging) Logger(tag string) slog.Logger {
	if logger, ok := l.loggers[tag]; ok {
		return logger
	}
	return slog.Disabled
}

// SetLevel changes the level of every subsystem
func (l *Logging) SetLevel(level string) error {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	for _, logger := range l.loggers {
		logger.SetLevel(lvl)
	}
	return nil
}

// Subsystems returns the known tags, sorted
func (l *Logging) Subsystems() []string {
	tags := make([]string, 0, len(l.loggers))
	for tag := range l.loggers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ValidLevel reports whether level names a slog level
func ValidLevel(level string) bool {
	_, ok := slog.LevelFromString(level)
	return ok
}
