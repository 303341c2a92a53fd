package game

// Ball is the volleyball. Serves replace it with a new value.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

func NewBall(x, y, vx, vy float64) Ball {
	return Ball{X: x, Y: y, VX: vx, VY: vy}
}

// ApplyGravity accelerates the ball downward for one tick
func (b *Ball) ApplyGravity() {
	b.VY += Gravity
}

// Move advances the ball by its velocity
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

func (b Ball) Top() float64 {
	return b.Y - BallRadius
}

func (b Ball) Bottom() float64 {
	return b.Y + BallRadius
}

func (b Ball) Left() float64 {
	return b.X - BallRadius
}

func (b Ball) Right() float64 {
	return b.X + BallRadius
}

// Falling reports whether the ball is moving down the screen
func (b Ball) Falling() bool {
	return b.VY > 0
}
