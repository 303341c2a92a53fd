package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Command is what a key asks the terminal host to do
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdStart
	CmdLeft
	CmdRight
)

// NudgeStep is how far, in court pixels, one arrow press moves the pointer
const NudgeStep = 16.0

// KeyToCommand converts a key event to a command
func KeyToCommand(key tcell.Key, r rune) Command {
	switch {
	case IsQuitKey(key, r):
		return CmdQuit
	case IsStartKey(key, r):
		return CmdStart
	}
	switch key {
	case tcell.KeyLeft:
		return CmdLeft
	case tcell.KeyRight:
		return CmdRight
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return CmdLeft
		case 'd', 'D':
			return CmdRight
		}
	}
	return CmdNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// IsStartKey returns true if the key should start or restart a match
func IsStartKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyEnter || (key == tcell.KeyRune && r == ' ')
}

// MouseToCourtX maps a terminal column to the court x at the cell center
func MouseToCourtX(col, screenW int, courtW float64) float64 {
	if screenW <= 0 {
		return 0
	}
	return (float64(col) + 0.5) * courtW / float64(screenW)
}

// Nudge moves a keyboard pointer by one step, keeping it on the court
func Nudge(x float64, cmd Command, courtW float64) float64 {
	switch cmd {
	case CmdLeft:
		x -= NudgeStep
	case CmdRight:
		x += NudgeStep
	}
	if x < 0 {
		x = 0
	}
	if x > courtW {
		x = courtW
	}
	return x
}
