package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/decred/slog"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/heartvolley/internal/audio"
	"github.com/diegok/heartvolley/internal/config"
	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/loop"
	"github.com/diegok/heartvolley/internal/protocol"
	"github.com/diegok/heartvolley/internal/replay"
	"github.com/diegok/heartvolley/internal/ui"
)

var log = slog.Disabled

// UseLogger sets the logger used by the terminal host
func UseLogger(logger slog.Logger) {
	log = logger
}

// App is the terminal host: it owns one match and is its only writer.
type App struct {
	cfg      *config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	match    *game.Match

	// Input gathered between ticks
	events  chan tcell.Event
	pointer game.Pointer
	pending protocol.Frame
	cols    int
	courtW  float64

	recorder   *replay.Recorder
	recordFile *os.File

	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:     cfg,
		events:  make(chan tcell.Event, 64),
		pointer: game.NoPointer,
	}
}

// Run is the main entry point for the application.
// It initializes the screen, sets up signal handling, and runs the match
// until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	// Game works without sound
	if !a.cfg.Mute {
		_ = audio.Init()
	}

	screen, err := ui.InitScreen()
	if err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	defer a.cleanup()

	if err := a.attach(screen); err != nil {
		return err
	}

	if a.cfg.Record != "" {
		if err := a.startRecording(a.cfg.Record); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup signal handling
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-a.sigChan:
			log.Infof("Received %v, quitting", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	go a.pollEvents(ctx)

	log.Infof("Terminal host running at %d ticks/s", game.TickRate)
	if err := loop.Run(ctx, game.TickRate, a.tick); err != nil {
		log.Errorf("Match stopped: %v", err)
		a.renderer.RenderError(err.Error())
		// Wait for a key press
		select {
		case <-a.events:
		case <-ctx.Done():
		}
		return err
	}
	return nil
}

// attach binds a screen and creates a match sized to it
func (a *App) attach(screen *ui.Screen) error {
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	cols, rows := screen.Size()
	w, h := ui.CourtSize(cols, rows)
	m, err := game.NewMatch(w, h)
	if err != nil {
		log.Warnf("Terminal %dx%d too small, using the default court: %v", cols, rows, err)
		w, h = game.DefaultWidth, game.DefaultHeight
		if m, err = game.NewMatch(w, h); err != nil {
			return err
		}
	}
	a.match = m
	a.cols = cols
	a.courtW = w
	return nil
}

func (a *App) startRecording(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create recording")
	}
	c := a.match.Engine().Court()
	rec, err := replay.NewRecorder(f, c.Width, c.Height)
	if err != nil {
		f.Close()
		return err
	}
	a.recordFile = f
	a.recorder = rec
	log.Infof("Recording to %s", path)
	return nil
}

// pollEvents hands screen events to the tick goroutine
func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// tick applies the input gathered since the last tick, steps the match
// and draws it.
func (a *App) tick() error {
drain:
	for {
		select {
		case ev := <-a.events:
			if a.handleEvent(ev) {
				return loop.ErrStop
			}
		default:
			break drain
		}
	}

	f := a.pending
	a.pending = protocol.Frame{}
	f.PointerX = a.pointer.X
	f.PointerActive = a.pointer.Active

	ev, err := replay.Apply(a.match, f)
	if err != nil {
		return err
	}
	if a.recorder != nil {
		if err := a.recorder.Record(f); err != nil {
			log.Errorf("Recording stopped: %v", err)
			a.recorder = nil
		}
	}
	if ev != 0 {
		log.Tracef("Tick %d: %v", a.match.Engine().Tick(), ev)
	}

	audio.Play(ev)
	a.renderer.Render(a.match.Snapshot())
	return nil
}

// handleEvent processes keyboard, mouse and resize events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := ui.KeyToCommand(ev.Key(), ev.Rune())
		switch cmd {
		case ui.CmdQuit:
			return true
		case ui.CmdStart:
			a.pending.Start = true
		case ui.CmdLeft, ui.CmdRight:
			x := a.pointer.X
			if !a.pointer.Active {
				x = a.match.Engine().PlayerX()
			}
			a.pointer = game.PointerAt(ui.Nudge(x, cmd, a.courtW))
		}

	case *tcell.EventMouse:
		x, _ := ev.Position()
		a.pointer = game.PointerAt(ui.MouseToCourtX(x, a.cols, a.courtW))

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := ui.CourtSize(cols, rows)
		if _, err := game.NewCourt(w, h); err != nil {
			log.Debugf("Ignoring resize to %dx%d: %v", cols, rows, err)
			return false
		}
		a.pending.Width, a.pending.Height = w, h
		a.cols = cols
		a.courtW = w
		if a.screen != nil {
			a.screen.Sync()
		}
	}

	return false
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	// Close audio
	audio.Close()

	if a.recordFile != nil {
		if err := a.recordFile.Close(); err != nil {
			log.Errorf("Closing recording: %v", err)
		} else if a.recorder != nil {
			log.Infof("Recorded %d frames", a.recorder.Frames())
		}
	}

	// Finalize screen
	if a.screen != nil {
		a.screen.Fini()
	}

	// Stop signal handling
	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}
}
