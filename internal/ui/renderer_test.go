package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/protocol"
)

// newTestRenderer returns a renderer over a 40x26 simulation screen, which
// CourtSize maps to the default 320x400 court
func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sim.SetSize(40, 26)
	t.Cleanup(sim.Fini)
	return NewRenderer(NewScreen(sim)), sim
}

func snapshot(t *testing.T, phase protocol.Phase) protocol.Snapshot {
	t.Helper()
	m, err := game.NewMatch(game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := m.Snapshot()
	s.Phase = phase
	return s
}

func rowText(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(sim tcell.SimulationScreen) string {
	_, h := sim.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(sim, y)
	}
	return strings.Join(rows, "\n")
}

func TestCourtSize(t *testing.T) {
	w, h := CourtSize(40, 26)
	if w != game.DefaultWidth || h != game.DefaultHeight {
		t.Errorf("expected %dx%d, got %gx%g", game.DefaultWidth, game.DefaultHeight, w, h)
	}
}

func TestRender_Playing(t *testing.T) {
	r, sim := newTestRenderer(t)
	s := snapshot(t, protocol.PhasePlaying)
	s.PlayerScore = 3
	s.AIScore = 2

	r.Render(s)

	if bar := rowText(sim, 0); !strings.Contains(bar, "LELEH 3 x 2 CPU") {
		t.Errorf("expected score bar, got %q", bar)
	}

	// Ball serves from (80, 200): column 10, row 1+12
	if ch, _, _, _ := sim.GetContent(10, 13); ch != BallChar {
		t.Errorf("expected ball at (10, 13), got %q", ch)
	}

	// Player paddle spans x 40..120 at y 360: columns 5..14, row 1+22
	paddleRow := rowText(sim, 23)
	if got := strings.Count(paddleRow, string(PaddleChar)); got != 20 {
		t.Errorf("expected two 10-cell paddles on row 23, got %d cells in %q", got, paddleRow)
	}
	if ch, _, _, _ := sim.GetContent(5, 23); ch != PaddleChar {
		t.Errorf("expected player paddle to start at column 5, got %q", ch)
	}
	if ch, _, _, _ := sim.GetContent(4, 23); ch == PaddleChar {
		t.Error("player paddle drawn past its left edge")
	}

	labels := rowText(sim, 24)
	if !strings.Contains(labels, PlayerLabel) || !strings.Contains(labels, AILabel) {
		t.Errorf("expected paddle labels on row 24, got %q", labels)
	}

	// Net top at y 300: row 1+18, column 20
	if ch, _, _, _ := sim.GetContent(20, 19); ch != PoleChar {
		t.Errorf("expected net pole at (20, 19), got %q", ch)
	}
	if ch, _, _, _ := sim.GetContent(20, 21); ch != NetChar {
		t.Errorf("expected net at (20, 21), got %q", ch)
	}

	if text := screenText(sim); strings.Contains(text, "Volei da Leleh!") {
		t.Error("no overlay expected while playing")
	}
}

func TestRender_Overlays(t *testing.T) {
	tests := []struct {
		phase protocol.Phase
		title string
		extra string
	}{
		{protocol.PhaseIntro, "Volei da Leleh!", "Primeiro a marcar 5 pontos vence!"},
		{protocol.PhaseWon, "Leleh Venceu!", "5 x 1"},
		{protocol.PhaseLost, "Quase la!", "2 x 5"},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			r, sim := newTestRenderer(t)
			s := snapshot(t, tt.phase)
			switch tt.phase {
			case protocol.PhaseWon:
				s.PlayerScore, s.AIScore = 5, 1
			case protocol.PhaseLost:
				s.PlayerScore, s.AIScore = 2, 5
			}

			r.Render(s)

			text := screenText(sim)
			if !strings.Contains(text, tt.title) {
				t.Errorf("expected title %q on screen:\n%s", tt.title, text)
			}
			if !strings.Contains(text, tt.extra) {
				t.Errorf("expected %q on screen:\n%s", tt.extra, text)
			}
		})
	}
}

func TestCourtSize_MinimumTerminalIsPlayable(t *testing.T) {
	if _, err := game.NewCourt(CourtSize(MinCols, MinRows)); err != nil {
		t.Errorf("expected %dx%d terminal to map to a valid court, got %v", MinCols, MinRows, err)
	}
	if _, err := game.NewCourt(CourtSize(MinCols, MinRows-1)); err == nil {
		t.Errorf("expected %dx%d terminal to be too small for the court", MinCols, MinRows-1)
	}
}

func TestRender_TooSmall(t *testing.T) {
	r, sim := newTestRenderer(t)
	sim.SetSize(20, 8)

	r.Render(snapshot(t, protocol.PhasePlaying))

	if text := screenText(sim); !strings.Contains(text, "too small") {
		t.Errorf("expected too small notice, got:\n%s", text)
	}
}

func TestRenderError(t *testing.T) {
	r, sim := newTestRenderer(t)

	r.RenderError("replay: bad frame")

	text := screenText(sim)
	for _, want := range []string{"ERROR", "replay: bad frame", "Press any key"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q on screen, got:\n%s", want, text)
		}
	}
}

func TestRender_ResizedCourt(t *testing.T) {
	r, sim := newTestRenderer(t)
	sim.SetSize(80, 24)

	m, err := game.NewMatch(CourtSize(80, 24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := m.Snapshot()
	s.Phase = protocol.PhasePlaying
	r.Render(s)

	// Ball serves from (0.25w, 0.5h) = (160, 184): column 20, row 1+11
	if ch, _, _, _ := sim.GetContent(20, 12); ch != BallChar {
		t.Errorf("expected ball at (20, 12), got %q", ch)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"Quase la!", 20, "Quase la!"},
		{"Quase la!", 8, "Quase..."},
		{"Quase la!", 3, ""},
		{"♥♥♥♥♥", 4, "♥..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.text, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPalette(t *testing.T) {
	if got := Color(DefaultPalette.Heart); got != tcell.NewRGBColor(0xd0, 0x60, 0x90) {
		t.Errorf("expected heart colour #d06090, got %v", got)
	}
	if got := Color(DefaultPalette.Sky(0)); got != Color(DefaultPalette.SkyTop) {
		t.Errorf("expected sky to start at the top colour, got %v", got)
	}
	if got := Color(DefaultPalette.Sky(1)); got != Color(DefaultPalette.SkyBottom) {
		t.Errorf("expected sky to end at the bottom colour, got %v", got)
	}
}
