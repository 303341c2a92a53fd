package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyToCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want Command
	}{
		{tcell.KeyLeft, 0, CmdLeft},
		{tcell.KeyRight, 0, CmdRight},
		{tcell.KeyRune, 'a', CmdLeft},
		{tcell.KeyRune, 'A', CmdLeft},
		{tcell.KeyRune, 'd', CmdRight},
		{tcell.KeyRune, 'D', CmdRight},
		{tcell.KeyEnter, 0, CmdStart},
		{tcell.KeyRune, ' ', CmdStart},
		{tcell.KeyRune, 'q', CmdQuit},
		{tcell.KeyEscape, 0, CmdQuit},
		{tcell.KeyUp, 0, CmdNone},
		{tcell.KeyRune, 'x', CmdNone},
	}

	for _, tt := range tests {
		got := KeyToCommand(tt.key, tt.rune)
		if got != tt.want {
			t.Errorf("KeyToCommand(%v, %c) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestIsQuitKey(t *testing.T) {
	if !IsQuitKey(tcell.KeyRune, 'q') {
		t.Error("'q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyRune, 'Q') {
		t.Error("'Q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyEscape, 0) {
		t.Error("Escape should be quit key")
	}
	if !IsQuitKey(tcell.KeyCtrlC, 0) {
		t.Error("Ctrl+C should be quit key")
	}
	if IsQuitKey(tcell.KeyRune, 'x') {
		t.Error("'x' should not be quit key")
	}
}

func TestIsStartKey(t *testing.T) {
	if !IsStartKey(tcell.KeyEnter, 0) {
		t.Error("Enter should be start key")
	}
	if !IsStartKey(tcell.KeyRune, ' ') {
		t.Error("Space should be start key")
	}
	if IsStartKey(tcell.KeyRune, 'x') {
		t.Error("other keys should not be start key")
	}
}

func TestMouseToCourtX(t *testing.T) {
	tests := []struct {
		col, screenW int
		courtW       float64
		want         float64
	}{
		{0, 40, 320, 4},
		{10, 40, 320, 84},
		{39, 40, 320, 316},
		{5, 0, 320, 0},
	}

	for _, tt := range tests {
		if got := MouseToCourtX(tt.col, tt.screenW, tt.courtW); got != tt.want {
			t.Errorf("MouseToCourtX(%d, %d, %g) = %g, want %g", tt.col, tt.screenW, tt.courtW, got, tt.want)
		}
	}
}

func TestNudge(t *testing.T) {
	if got := Nudge(100, CmdLeft, 320); got != 100-NudgeStep {
		t.Errorf("expected %g, got %g", 100-NudgeStep, got)
	}
	if got := Nudge(100, CmdRight, 320); got != 100+NudgeStep {
		t.Errorf("expected %g, got %g", 100+NudgeStep, got)
	}
	if got := Nudge(5, CmdLeft, 320); got != 0 {
		t.Errorf("expected nudge to stop at 0, got %g", got)
	}
	if got := Nudge(315, CmdRight, 320); got != 320 {
		t.Errorf("expected nudge to stop at 320, got %g", got)
	}
	if got := Nudge(100, CmdStart, 320); got != 100 {
		t.Errorf("expected other commands to leave the pointer, got %g", got)
	}
}
