package game

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/diegok/heartvolley/internal/protocol"
)

// Physics and court constants, in court pixels and pixels per tick
const (
	TickRate      = 60 // Ticks per second
	Gravity       = 0.35
	BallRadius    = 14.0
	PaddleWidth   = 80.0
	PaddleHeight  = 14.0
	PaddleYOffset = 40.0 // Distance from the floor to the paddle surface
	NetWidth      = 4.0
	NetHeight     = 100.0
	NetTopBand    = 10.0 // A falling ball bounces off the net top while its bottom is this close below it
	PaddleBand    = PaddleHeight + 4
	Dampening     = 0.75 // Velocity kept after hitting the ceiling or the net
	HitPower      = -8.5 // Vertical velocity given by any paddle hit
	HitSpread     = 5.0  // Horizontal velocity for a hit on the paddle edge
	Smoothing     = 0.3  // Fraction of the distance to the pointer covered per tick
	ServeSpeedX   = 2.5
	ServeSpeedY   = -4.0
)

// WinScore is the number of points that ends a match
const WinScore = 5

// AI tuning
const (
	AISpeed         = 3.2 // Max paddle travel per tick
	AIReactionDelay = 350 * time.Millisecond
	AILookahead     = 8.0 // Ticks of horizontal velocity added to the sampled ball x
)

// Court size used until a host reports its own
const (
	DefaultWidth  = 320
	DefaultHeight = 400
)

// Smallest court the fixed geometry fits in: both paddle ranges non-empty,
// and room for a ball above the net top.
const (
	MinCourtWidth  = 2*PaddleWidth + NetWidth
	MinCourtHeight = NetHeight + 4*BallRadius
)

// ErrInvalidCourt is returned for non-finite court dimensions or ones below
// MinCourtWidth x MinCourtHeight
var ErrInvalidCourt = errors.New("invalid court dimensions")

// Court is the playing area. Every other position is derived from its size
// on demand, so a resize never leaves stale bounds behind.
type Court struct {
	Width  float64
	Height float64
}

// NewCourt returns a validated court
func NewCourt(width, height float64) (Court, error) {
	c := Court{Width: width, Height: height}
	if err := c.Validate(); err != nil {
		return Court{}, err
	}
	return c, nil
}

// Validate reports ErrInvalidCourt when the court cannot be simulated
func (c Court) Validate() error {
	if !(c.Width >= MinCourtWidth) || !(c.Height >= MinCourtHeight) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return errors.Wrapf(ErrInvalidCourt, "%gx%g", c.Width, c.Height)
	}
	return nil
}

// NetX is the horizontal center of the net
func (c Court) NetX() float64 {
	return c.Width / 2
}

// NetTop is the y of the top of the net
func (c Court) NetTop() float64 {
	return c.Height - NetHeight
}

// NetLeft is the x of the net's left face
func (c Court) NetLeft() float64 {
	return c.NetX() - NetWidth/2
}

// NetRight is the x of the net's right face
func (c Court) NetRight() float64 {
	return c.NetX() + NetWidth/2
}

// PaddleY is the y of both paddle surfaces
func (c Court) PaddleY() float64 {
	return c.Height - PaddleYOffset
}

// Range returns the interval a paddle center may occupy on the given side
func (c Court) Range(side protocol.Side) (lo, hi float64) {
	if side == protocol.SidePlayer {
		return PaddleWidth / 2, c.NetLeft() - PaddleWidth/2
	}
	return c.NetRight() + PaddleWidth/2, c.Width - PaddleWidth/2
}

// Clamp limits x to the paddle range of the given side
func (c Court) Clamp(side protocol.Side, x float64) float64 {
	lo, hi := c.Range(side)
	return clamp(x, lo, hi)
}

// SideOf returns the half of the court containing x
func (c Court) SideOf(x float64) protocol.Side {
	if x < c.NetX() {
		return protocol.SidePlayer
	}
	return protocol.SideAI
}

// Home returns the starting paddle x for a side, the middle of its half
func (c Court) Home(side protocol.Side) float64 {
	if side == protocol.SidePlayer {
		return c.Width * 0.25
	}
	return c.Width * 0.75
}

// ServeFrom returns a fresh ball launched toward the net from the given side
func (c Court) ServeFrom(side protocol.Side) Ball {
	if side == protocol.SidePlayer {
		return NewBall(c.Width*0.25, c.Height*0.5, ServeSpeedX, ServeSpeedY)
	}
	return NewBall(c.Width*0.75, c.Height*0.5, -ServeSpeedX, ServeSpeedY)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
