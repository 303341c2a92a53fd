package game

import (
	"math"

	"github.com/diegok/heartvolley/internal/protocol"
)

// Pointer is the horizontal pointer position a host read this tick.
// An inactive pointer leaves the player paddle where it is.
type Pointer struct {
	X      float64
	Active bool
}

// NoPointer is the pointer value for "no input this tick"
var NoPointer = Pointer{}

// PointerAt returns an active pointer at x
func PointerAt(x float64) Pointer {
	return Pointer{X: x, Active: true}
}

type Paddle struct {
	Side protocol.Side
	X    float64 // Center; the surface y comes from the court
}

func NewPaddle(side protocol.Side, x float64) *Paddle {
	return &Paddle{Side: side, X: x}
}

// Follow eases the paddle toward the pointer, clamped to the paddle's half
func (p *Paddle) Follow(ptr Pointer, c Court) {
	if !ptr.Active {
		return
	}
	p.X += (c.Clamp(p.Side, ptr.X) - p.X) * Smoothing
}

// Keep pulls the paddle back inside its half after a resize
func (p *Paddle) Keep(c Court) {
	p.X = c.Clamp(p.Side, p.X)
}

func (p *Paddle) Left() float64 {
	return p.X - PaddleWidth/2
}

func (p *Paddle) Right() float64 {
	return p.X + PaddleWidth/2
}

// Catches reports whether a falling ball is touching the paddle surface.
// The horizontal reach is inflated by the ball radius.
func (p *Paddle) Catches(b Ball, c Court) bool {
	if !b.Falling() {
		return false
	}
	top := c.PaddleY()
	if b.Bottom() < top || b.Bottom() > top+PaddleBand {
		return false
	}
	return math.Abs(b.X-p.X) < PaddleWidth/2+BallRadius
}

// Hit returns the ball upward when the paddle catches it. The horizontal
// velocity depends on where the ball met the paddle, which is what lets the
// player aim.
func (p *Paddle) Hit(b *Ball, c Court) bool {
	if !p.Catches(*b, c) {
		return false
	}
	offset := (b.X - p.X) / (PaddleWidth / 2)
	b.VY = HitPower
	b.VX = offset * HitSpread
	b.Y = c.PaddleY() - BallRadius
	return true
}
