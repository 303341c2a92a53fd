package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/diegok/heartvolley/internal/app"
	"github.com/diegok/heartvolley/internal/audio"
	"github.com/diegok/heartvolley/internal/config"
	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/logging"
	"github.com/diegok/heartvolley/internal/replay"
	"github.com/diegok/heartvolley/internal/server"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err == flag.ErrHelp {
		printUsage()
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Terminal() && !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the game needs a terminal, use --serve to play in a browser")
	}

	closeLogs, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLogs()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.Replay != "":
		return runReplay(cfg.Replay)
	case cfg.Serve:
		showServerInfo(cfg.Addr)
		return server.NewServer(cfg.Addr).ListenAndServe(ctx)
	default:
		return app.NewApp(cfg).Run(ctx)
	}
}

// setupLogging hands every package its subsystem logger. The terminal host
// owns the tty, so it only logs to --log-file.
func setupLogging(cfg *config.Config) (func(), error) {
	var w io.Writer
	closeLogs := func() {}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLogs = func() { f.Close() }
	case !cfg.Terminal():
		w = os.Stderr
	}

	logs, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		closeLogs()
		return nil, err
	}
	app.UseLogger(logs.Logger(logging.SubsystemApp))
	game.UseLogger(logs.Logger(logging.SubsystemGame))
	server.UseLogger(logs.Logger(logging.SubsystemServer))
	replay.UseLogger(logs.Logger(logging.SubsystemReplay))
	audio.UseLogger(logs.Logger(logging.SubsystemAudio))
	logs.Logger(logging.SubsystemApp).Debugf("Logging %s at %s", strings.Join(logs.Subsystems(), ","), cfg.LogLevel)
	return closeLogs, nil
}

func runReplay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	s, err := replay.Play(f)
	if err != nil {
		return err
	}
	fmt.Printf("LELEH %d x %d CPU (%s) after %d ticks, %d points, %d matches finished\n",
		s.PlayerScore, s.AIScore, s.Phase, s.Frames, s.Points, s.Matches)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  heartvolley [options]             Play in the terminal")
	fmt.Fprintln(os.Stderr, "  heartvolley --serve [options]     Serve the game to browsers")
	fmt.Fprintln(os.Stderr, "  heartvolley --replay <file>       Play back a recording")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --addr <addr>       Listen address for --serve (default: :8080)")
	fmt.Fprintln(os.Stderr, "  --mute              Disable sound")
	fmt.Fprintln(os.Stderr, "  --record <file>     Record the terminal session")
	fmt.Fprintln(os.Stderr, "  --log-level <lvl>   trace, debug, info, warn, error, critical, off (default: info)")
	fmt.Fprintln(os.Stderr, "  --log-file <file>   Write logs to a file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  heartvolley --record match.rec")
	fmt.Fprintln(os.Stderr, "  heartvolley --replay match.rec")
	fmt.Fprintln(os.Stderr, "  heartvolley --serve --addr :9000 --log-level debug")
}

func showServerInfo(addr string) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		port = "8080"
	}

	fmt.Printf("Serving Volei da Leleh on %s\n", addr)
	fmt.Println("Open in a browser:")
	fmt.Println("")

	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}

			ip := ipNet.IP
			if ip.IsLoopback() || ip.To4() == nil {
				continue
			}

			fmt.Printf("  http://%s:%s/\n", ip.String(), port)
		}
	}

	fmt.Printf("  http://localhost:%s/  (same machine)\n", port)
	fmt.Println("")
	fmt.Println("Press Ctrl+C to stop the server")
	fmt.Println("")
}
