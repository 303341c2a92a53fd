package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Screen struct {
	screen tcell.Screen
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// InitScreen opens the terminal and turns on mouse motion reporting
func InitScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	return NewScreen(s), nil
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

// Sync redraws everything, used after a terminal resize
func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

func (s *Screen) SetCell(x, y int, style tcell.Style, r rune) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text one grapheme cluster at a time and returns the
// number of columns used
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.screen.SetContent(col, y, runes[0], runes[1:], style)
		col += g.Width()
	}
	return col - x
}

// DrawCentered writes text centered on the row and returns its first column
func (s *Screen) DrawCentered(y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	x := (w - TextWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	s.DrawText(x, y, text, style)
	return x
}

func (s *Screen) DrawBox(x, y, w, h int, style tcell.Style) {
	const (
		topLeft     = '╭'
		topRight    = '╮'
		bottomLeft  = '╰'
		bottomRight = '╯'
		horizontal  = '─'
		vertical    = '│'
	)

	s.screen.SetContent(x, y, topLeft, nil, style)
	s.screen.SetContent(x+w-1, y, topRight, nil, style)
	s.screen.SetContent(x, y+h-1, bottomLeft, nil, style)
	s.screen.SetContent(x+w-1, y+h-1, bottomRight, nil, style)

	for i := x + 1; i < x+w-1; i++ {
		s.screen.SetContent(i, y, horizontal, nil, style)
		s.screen.SetContent(i, y+h-1, horizontal, nil, style)
	}

	for j := y + 1; j < y+h-1; j++ {
		s.screen.SetContent(x, j, vertical, nil, style)
		s.screen.SetContent(x+w-1, j, vertical, nil, style)
	}
}

func (s *Screen) FillRect(x, y, w, h int, style tcell.Style, r rune) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.screen.SetContent(x+dx, y+dy, r, nil, style)
		}
	}
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// TextWidth returns the number of terminal columns text occupies
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width columns, ending in "..." when cut
func Truncate(text string, width int) string {
	if TextWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return ""
	}
	out := make([]byte, 0, len(text))
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if used+g.Width() > width-3 {
			break
		}
		out = append(out, g.Str()...)
		used += g.Width()
	}
	return string(out) + "..."
}
