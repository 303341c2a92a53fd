package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/diegok/heartvolley/internal/protocol"
)

const (
	BallChar   = '♥'
	PaddleChar = '█'
	NetChar    = '┃'
	PoleChar   = '●'
	SandChar   = '░'
)

// Court pixels per terminal cell. Cells are about twice as tall as wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Smallest terminal the court is drawn on. CourtSize maps it to a court
// no smaller than game.MinCourtWidth x game.MinCourtHeight.
const (
	MinCols = 24
	MinRows = 11
)

// SandDepth is the height of the sand strip above the floor, in court pixels
const SandDepth = 30.0

// Labels shown under the paddles and on the score bar
const (
	PlayerLabel = "LELEH"
	AILabel     = "CPU"
)

// CourtSize returns the court dimensions for a terminal, one status row excluded
func CourtSize(cols, rows int) (float64, float64) {
	return float64(cols * CellWidth), float64((rows - 1) * CellHeight)
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen, palette: DefaultPalette}
}

// view maps court pixels to the cells below the status row
type view struct {
	top, cols, rows int
	sx, sy          float64
}

func newView(screenW, screenH int, court protocol.CourtState) view {
	v := view{top: 1, cols: screenW, rows: screenH - 1}
	if court.Width > 0 {
		v.sx = float64(v.cols) / court.Width
	}
	if court.Height > 0 {
		v.sy = float64(v.rows) / court.Height
	}
	return v
}

func (v view) col(x float64) int {
	c := int(math.Floor(x * v.sx))
	if c < 0 {
		return 0
	}
	if c >= v.cols {
		return v.cols - 1
	}
	return c
}

func (v view) row(y float64) int {
	r := int(math.Floor(y * v.sy))
	if r < 0 {
		r = 0
	}
	if r >= v.rows {
		r = v.rows - 1
	}
	return v.top + r
}

// Render draws one snapshot
func (r *Renderer) Render(s protocol.Snapshot) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	if screenW < MinCols || screenH < MinRows {
		r.renderTooSmall(screenW, screenH)
		r.screen.Show()
		return
	}

	v := newView(screenW, screenH, s.Court)
	r.renderCourt(v, s.Court)
	r.renderNet(v, s.Court)
	r.renderPaddle(v, s.Player, PlayerLabel, r.palette.Player)
	r.renderPaddle(v, s.AI, AILabel, r.palette.AI)
	r.renderBall(v, s)
	r.renderScoreBar(s, screenW)

	switch s.Phase {
	case protocol.PhaseIntro:
		r.renderOverlay(v, []string{
			"Volei da Leleh!",
			"",
			fmt.Sprintf("Primeiro a marcar %d pontos vence!", s.WinScore),
			"ENTER para jogar   q para sair",
		})
	case protocol.PhaseWon:
		r.renderOverlay(v, []string{
			"Leleh Venceu!",
			fmt.Sprintf("%d x %d", s.PlayerScore, s.AIScore),
			"Voce e craque no volei e em tudo que faz!",
			"ENTER para jogar de novo",
		})
	case protocol.PhaseLost:
		r.renderOverlay(v, []string{
			"Quase la!",
			fmt.Sprintf("%d x %d", s.PlayerScore, s.AIScore),
			"Voce e incrivel de qualquer forma, tenta de novo!",
			"ENTER para tentar de novo",
		})
	}

	r.screen.Show()
}

func (r *Renderer) skyStyle(v view, y int) tcell.Style {
	t := 0.0
	if v.rows > 1 {
		t = float64(y-v.top) / float64(v.rows-1)
	}
	return tcell.StyleDefault.Background(Color(r.palette.Sky(t)))
}

// background returns the court style of a cell row, sky or sand
func (r *Renderer) background(v view, court protocol.CourtState, y int) tcell.Style {
	if r.inSand(v, court, y) {
		return tcell.StyleDefault.Background(Color(r.palette.Sand)).Foreground(Color(r.palette.SkyBottom))
	}
	return r.skyStyle(v, y)
}

func (r *Renderer) inSand(v view, court protocol.CourtState, y int) bool {
	center := (float64(y-v.top) + 0.5) / v.sy
	return center >= court.Height-SandDepth
}

func (r *Renderer) renderCourt(v view, court protocol.CourtState) {
	for y := v.top; y < v.top+v.rows; y++ {
		ch := ' '
		if r.inSand(v, court, y) {
			ch = SandChar
		}
		r.screen.FillRect(0, y, v.cols, 1, r.background(v, court, y), ch)
	}
}

func (r *Renderer) renderNet(v view, court protocol.CourtState) {
	// A net thinner than a cell is drawn as the one column holding its center
	left, right := v.col(court.NetX), v.col(court.NetX)
	if court.NetWidth*v.sx >= 1 {
		left = v.col(court.NetX - court.NetWidth/2)
		right = v.col(court.NetX+court.NetWidth/2) - 1
	}
	top := v.row(court.NetTop)
	for y := top; y < v.top+v.rows; y++ {
		style := r.background(v, court, y).Foreground(Color(r.palette.Net))
		for x := left; x <= right; x++ {
			r.screen.SetCell(x, y, style, NetChar)
		}
	}
	pole := r.background(v, court, top).Foreground(Color(r.palette.NetPole))
	r.screen.SetCell(v.col(court.NetX), top, pole, PoleChar)
}

func (r *Renderer) renderPaddle(v view, p protocol.PaddleState, label string, grad [2]colorful.Color) {
	left := v.col(p.X - p.Width/2)
	right := v.col(p.X+p.Width/2) - 1
	if right < left {
		right = left
	}
	y := v.row(p.Y)
	for x := left; x <= right; x++ {
		t := 0.0
		if right > left {
			t = float64(x-left) / float64(right-left)
		}
		style := tcell.StyleDefault.Foreground(Color(r.palette.PaddleShade(grad, t)))
		r.screen.SetCell(x, y, style, PaddleChar)
	}

	// Label under the paddle, centered on it
	if y+1 >= v.top+v.rows {
		return
	}
	lx := v.col(p.X) - TextWidth(label)/2
	if lx < 0 {
		lx = 0
	}
	if lx+TextWidth(label) > v.cols {
		lx = v.cols - TextWidth(label)
	}
	style := r.skyStyle(v, y+1).Foreground(Color(r.palette.Label)).Bold(true)
	r.screen.DrawText(lx, y+1, label, style)
}

func (r *Renderer) renderBall(v view, s protocol.Snapshot) {
	y := v.row(s.Ball.Y)
	style := r.background(v, s.Court, y).Foreground(Color(r.palette.Heart)).Bold(true)
	r.screen.SetCell(v.col(s.Ball.X), y, style, BallChar)
}

// renderScoreBar draws the top row: [ LELEH 3 x 2 CPU ]
func (r *Renderer) renderScoreBar(s protocol.Snapshot, screenW int) {
	bg := Color(r.palette.Overlay)
	barStyle := tcell.StyleDefault.Background(bg).Foreground(Color(r.palette.Text))
	r.screen.FillRect(0, 0, screenW, 1, barStyle, ' ')

	score := fmt.Sprintf(" %d x %d ", s.PlayerScore, s.AIScore)
	width := TextWidth(PlayerLabel) + TextWidth(score) + TextWidth(AILabel)
	x := (screenW - width) / 2
	if x < 0 {
		x = 0
	}

	x += r.screen.DrawText(x, 0, PlayerLabel, barStyle.Foreground(Color(r.palette.Player[0])).Bold(true))
	x += r.screen.DrawText(x, 0, score, barStyle.Bold(true))
	r.screen.DrawText(x, 0, AILabel, barStyle.Foreground(Color(r.palette.AI[0])).Bold(true))

	hint := fmt.Sprintf("ate %d", s.WinScore)
	if hx := screenW - TextWidth(hint) - 1; hx > x+TextWidth(AILabel)+1 {
		r.screen.DrawText(hx, 0, hint, barStyle)
	}
}

// renderOverlay draws a centered box over the court. The first line is the title.
func (r *Renderer) renderOverlay(v view, lines []string) {
	inner := 0
	for _, l := range lines {
		if w := TextWidth(l); w > inner {
			inner = w
		}
	}
	boxW := inner + 4
	if boxW > v.cols {
		boxW = v.cols
	}
	boxH := len(lines) + 2
	boxX := (v.cols - boxW) / 2
	boxY := v.top + (v.rows-boxH)/2

	bg := Color(r.palette.Overlay)
	fill := tcell.StyleDefault.Background(bg)
	r.screen.FillRect(boxX, boxY, boxW, boxH, fill, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, fill.Foreground(Color(r.palette.NetPole)))

	for i, l := range lines {
		text := Truncate(l, boxW-2)
		style := fill.Foreground(Color(r.palette.Text))
		if i == 0 {
			style = fill.Foreground(Color(r.palette.Heart)).Bold(true)
		}
		x := boxX + (boxW-TextWidth(text))/2
		r.screen.DrawText(x, boxY+1+i, text, style)
	}
}

func (r *Renderer) renderTooSmall(screenW, screenH int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	r.screen.DrawCentered(screenH/2-1, Truncate("Terminal too small", screenW), style)
	r.screen.DrawCentered(screenH/2, Truncate(fmt.Sprintf("need %dx%d", MinCols, MinRows), screenW), style)
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	// Error title
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed)
	r.screen.DrawCentered(screenH/2-2, "ERROR", titleStyle)

	// Error message
	errMsg := Truncate(err, screenW-4)
	r.screen.DrawCentered(screenH/2, errMsg, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Instructions
	r.screen.DrawCentered(screenH/2+3, "Press any key to continue", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
