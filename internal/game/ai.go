package game

import (
	"math"
	"time"

	"github.com/diegok/heartvolley/internal/protocol"
)

// AI steers the computer paddle. It only looks at the ball once every
// reaction delay and moves at a bounded speed, so well placed shots beat it.
type AI struct {
	target float64
	ticks  int // Ticks since the target was sampled
	delay  int // Reaction delay in ticks
}

func NewAI(x float64) *AI {
	return &AI{
		target: x,
		delay:  int(AIReactionDelay * TickRate / time.Second),
	}
}

// Target returns the cached target x, which may be stale
func (a *AI) Target() float64 {
	return a.target
}

// Step advances the reaction timer, re-samples the predicted ball x when the
// delay has elapsed, and returns the paddle position after one tick of travel
// from x toward the clamped target.
func (a *AI) Step(b Ball, c Court, x float64) float64 {
	a.ticks++
	if a.ticks > a.delay {
		a.target = b.X + b.VX*AILookahead
		a.ticks = 0
	}

	diff := c.Clamp(protocol.SideAI, a.target) - x
	travel := math.Min(math.Abs(diff), AISpeed)
	if diff < 0 {
		return x - travel
	}
	return x + travel
}
