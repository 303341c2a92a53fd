package protocol

import (
	"encoding/gob"
	"fmt"
)

// Side identifies one half of the court and the paddle that defends it
type Side int

const (
	SidePlayer Side = 0
	SideAI     Side = 1
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideAI
	}
	return SidePlayer
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideAI:
		return "ai"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// MarshalText encodes the side by name so browser clients see "player"/"ai"
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*s = SidePlayer
	case "ai":
		*s = SideAI
	default:
		return fmt.Errorf("unknown side %q", string(b))
	}
	return nil
}

// Phase is the state of a match
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Over reports whether the phase is terminal
func (p Phase) Over() bool {
	return p == PhaseWon || p == PhaseLost
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "intro":
		*p = PhaseIntro
	case "playing":
		*p = PhasePlaying
	case "won":
		*p = PhaseWon
	case "lost":
		*p = PhaseLost
	default:
		return fmt.Errorf("unknown phase %q", string(b))
	}
	return nil
}

// MessageType identifies the type of a recorded message
type MessageType int

const (
	MsgReplayHeader MessageType = iota
	MsgReplayFrame
)

// Message is the wrapper for all gob-encoded messages
type Message struct {
	Type    MessageType
	Payload interface{}
}

// ReplayHeader opens a recording
type ReplayHeader struct {
	Version  int
	TickRate int
	Width    float64
	Height   float64
}

// Frame is the input a host fed to the match on one tick.
// Width and Height are zero unless the court was resized before the tick.
type Frame struct {
	Tick          int
	PointerX      float64
	PointerActive bool
	Start         bool
	Width         float64
	Height        float64
}

// BallState represents the ball's position and velocity
type BallState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"r"`
}

// PaddleState represents a paddle's rectangle; X is the center, Y the top surface
type PaddleState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// CourtState is the court geometry derived from the current dimensions
type CourtState struct {
	Width    float64 `json:"w"`
	Height   float64 `json:"h"`
	NetX     float64 `json:"netX"`
	NetTop   float64 `json:"netTop"`
	NetWidth float64 `json:"netW"`
}

// Snapshot is the read-only view of a match published once per tick
type Snapshot struct {
	Tick        int         `json:"tick"`
	Phase       Phase       `json:"phase"`
	Ball        BallState   `json:"ball"`
	Player      PaddleState `json:"player"`
	AI          PaddleState `json:"ai"`
	PlayerScore int         `json:"playerScore"`
	AIScore     int         `json:"aiScore"`
	WinScore    int         `json:"winScore"`
	LastServe   Side        `json:"lastServe"`
	Court       CourtState  `json:"court"`
}

// Browser client message types
const (
	ClientPointer = "pointer"
	ClientRelease = "release"
	ClientStart   = "start"
	ClientResize  = "resize"
)

// Server message types
const (
	ServerHello = "hello"
	ServerState = "state"
	ServerError = "error"
)

// ClientMessage is sent by the browser page
type ClientMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
}

// ServerMessage is sent to the browser page
type ServerMessage struct {
	Type    string    `json:"type"`
	Session string    `json:"session,omitempty"`
	State   *Snapshot `json:"state,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func init() {
	// Register all payload types with gob for recordings
	gob.Register(ReplayHeader{})
	gob.Register(Frame{})
	gob.Register(Snapshot{})
}
