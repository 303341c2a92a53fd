package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/diegok/heartvolley/internal/logging"
)

// Default values for configuration
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

// Config holds the application configuration
type Config struct {
	Serve    bool   // Run the browser host instead of the terminal one
	Addr     string // Listen address for the browser host
	Mute     bool
	LogLevel string
	LogFile  string
	Record   string // Write a recording of the terminal session here
	Replay   string // Play back a recording headless and exit
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("heartvolley", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	serve := fs.Bool("serve", false, "serve the game to browsers over websocket")
	addr := fs.String("addr", DefaultAddr, "listen address for --serve")
	mute := fs.Bool("mute", false, "disable sound")
	level := fs.String("log-level", DefaultLogLevel, "trace, debug, info, warn, error, critical or off")
	logFile := fs.String("log-file", "", "write logs to this file")
	record := fs.String("record", "", "record the session to this file")
	replay := fs.String("replay", "", "play back a recording and print the result")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	// Validate: playback runs alone
	if *serve && *replay != "" {
		return nil, errors.New("cannot specify both --serve and --replay")
	}
	if *record != "" && *replay != "" {
		return nil, errors.New("cannot specify both --record and --replay")
	}

	if *serve && *addr == "" {
		return nil, errors.New("--addr must not be empty")
	}

	if !logging.ValidLevel(*level) {
		return nil, fmt.Errorf("unknown log level %q", *level)
	}

	cfg := &Config{
		Serve:    *serve,
		Addr:     *addr,
		Mute:     *mute,
		LogLevel: *level,
		LogFile:  *logFile,
		Record:   *record,
		Replay:   *replay,
	}

	return cfg, nil
}

// Terminal reports whether the config runs the interactive terminal host
func (c *Config) Terminal() bool {
	return !c.Serve && c.Replay == ""
}
