package game

import (
	"math"

	"github.com/diegok/heartvolley/internal/protocol"
)

// StepResult describes one simulation tick
type StepResult struct {
	Events   Events
	Landed   bool          // The ball crossed the floor this tick
	LandedOn protocol.Side // Half of the court it landed in
}

// Engine owns the ball and both paddles. It has a single writer: whoever
// calls Step, normally the Match.
type Engine struct {
	court  Court
	ball   Ball
	player *Paddle
	ai     *Paddle
	brain  *AI
	tick   int
}

// NewEngine creates an engine with the paddles at home and the ball waiting
// at the player's serve position.
func NewEngine(width, height float64) (*Engine, error) {
	c, err := NewCourt(width, height)
	if err != nil {
		return nil, err
	}
	aiX := c.Home(protocol.SideAI)
	return &Engine{
		court:  c,
		ball:   c.ServeFrom(protocol.SidePlayer),
		player: NewPaddle(protocol.SidePlayer, c.Home(protocol.SidePlayer)),
		ai:     NewPaddle(protocol.SideAI, aiX),
		brain:  NewAI(aiX),
	}, nil
}

func (e *Engine) Court() Court {
	return e.court
}

func (e *Engine) Ball() Ball {
	return e.ball
}

func (e *Engine) PlayerX() float64 {
	return e.player.X
}

func (e *Engine) AIX() float64 {
	return e.ai.X
}

// Tick returns the number of simulated steps
func (e *Engine) Tick() int {
	return e.tick
}

// Resize switches to new court dimensions. Invalid dimensions are rejected
// and the previous court is kept.
func (e *Engine) Resize(width, height float64) error {
	c, err := NewCourt(width, height)
	if err != nil {
		return err
	}
	e.court = c
	e.player.Keep(c)
	e.ai.Keep(c)
	e.ball.X = clamp(e.ball.X, BallRadius, c.Width-BallRadius)
	e.ball.Y = clamp(e.ball.Y, BallRadius, c.Height-BallRadius)
	return nil
}

// Serve replaces the ball with a fresh one launched from side
func (e *Engine) Serve(side protocol.Side) {
	e.ball = e.court.ServeFrom(side)
}

// TrackPointer moves only the player paddle. Hosts keep calling it while
// the ball is frozen so the paddle still follows the pointer.
func (e *Engine) TrackPointer(ptr Pointer) error {
	if err := e.court.Validate(); err != nil {
		return err
	}
	e.player.Follow(ptr, e.court)
	return nil
}

// Step advances the simulation by one tick: gravity and integration first,
// then every collision, and the floor check last.
func (e *Engine) Step(ptr Pointer) (StepResult, error) {
	if err := e.court.Validate(); err != nil {
		return StepResult{}, err
	}
	e.tick++

	c := e.court
	b := &e.ball
	var ev Events

	b.ApplyGravity()
	b.Move()

	if bounceCeiling(b) {
		ev |= EventCeiling
	}
	if bounceWalls(b, c) {
		ev |= EventWall
	}
	if bounceNet(b, c) {
		ev |= EventNet
	}
	if bounceNetTop(b, c) {
		ev |= EventNetTop
	}

	e.player.Follow(ptr, c)
	if e.player.Hit(b, c) {
		ev |= EventPlayerHit
	}

	e.ai.X = e.brain.Step(*b, c, e.ai.X)
	if e.ai.Hit(b, c) {
		ev |= EventAIHit
	}

	res := StepResult{Events: ev}
	if b.Bottom() > c.Height {
		b.Y = c.Height - BallRadius
		res.Events |= EventFloor
		res.Landed = true
		res.LandedOn = c.SideOf(b.X)
	}
	return res, nil
}

func bounceCeiling(b *Ball) bool {
	if b.Top() >= 0 {
		return false
	}
	b.Y = BallRadius
	b.VY = math.Abs(b.VY) * Dampening
	return true
}

// bounceWalls reflects off the side walls without losing speed
func bounceWalls(b *Ball, c Court) bool {
	switch {
	case b.Left() < 0:
		b.X = BallRadius
		b.VX = math.Abs(b.VX)
	case b.Right() > c.Width:
		b.X = c.Width - BallRadius
		b.VX = -math.Abs(b.VX)
	default:
		return false
	}
	return true
}

// bounceNet pushes the ball back off either face of the net while it is
// level with it
func bounceNet(b *Ball, c Court) bool {
	if b.Bottom() <= c.NetTop() || b.Top() >= c.Height {
		return false
	}
	netX := c.NetX()
	hit := false
	if b.VX > 0 && b.Right() > c.NetLeft() && b.X < netX {
		b.X = c.NetLeft() - BallRadius
		b.VX = -math.Abs(b.VX) * Dampening
		hit = true
	}
	if b.VX < 0 && b.Left() < c.NetRight() && b.X > netX {
		b.X = c.NetRight() + BallRadius
		b.VX = math.Abs(b.VX) * Dampening
		hit = true
	}
	return hit
}

// bounceNetTop sends a falling ball back up when it lands on the net tape.
// It runs after bounceNet, so a ball can clip the side and the top in one tick.
func bounceNetTop(b *Ball, c Court) bool {
	top := c.NetTop()
	if !b.Falling() || math.Abs(b.X-c.NetX()) >= BallRadius+NetWidth/2 {
		return false
	}
	if b.Bottom() < top || b.Bottom() >= top+NetTopBand {
		return false
	}
	b.VY = -math.Abs(b.VY) * Dampening
	b.Y = top - BallRadius
	return true
}
