package game

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/diegok/heartvolley/internal/protocol"
)

func TestCourt_Derived(t *testing.T) {
	c := defaultCourt(t)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"net x", c.NetX(), 160},
		{"net top", c.NetTop(), 300},
		{"net left", c.NetLeft(), 158},
		{"net right", c.NetRight(), 162},
		{"paddle y", c.PaddleY(), 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, tt.got)
			}
		})
	}
}

func TestCourt_Range(t *testing.T) {
	c := defaultCourt(t)

	lo, hi := c.Range(protocol.SidePlayer)
	if lo != 40 || hi != 118 {
		t.Errorf("expected player range [40, 118], got [%f, %f]", lo, hi)
	}

	lo, hi = c.Range(protocol.SideAI)
	if lo != 202 || hi != 280 {
		t.Errorf("expected AI range [202, 280], got [%f, %f]", lo, hi)
	}
}

func TestCourt_SideOf(t *testing.T) {
	c := defaultCourt(t)

	tests := []struct {
		x    float64
		want protocol.Side
	}{
		{0, protocol.SidePlayer},
		{159.9, protocol.SidePlayer},
		{160, protocol.SideAI},
		{320, protocol.SideAI},
	}

	for _, tt := range tests {
		if got := c.SideOf(tt.x); got != tt.want {
			t.Errorf("SideOf(%f) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestCourt_ServeFrom(t *testing.T) {
	c := defaultCourt(t)

	player := c.ServeFrom(protocol.SidePlayer)
	if player != NewBall(80, 200, ServeSpeedX, ServeSpeedY) {
		t.Errorf("unexpected player serve %+v", player)
	}

	ai := c.ServeFrom(protocol.SideAI)
	if ai != NewBall(240, 200, -ServeSpeedX, ServeSpeedY) {
		t.Errorf("unexpected AI serve %+v", ai)
	}
}

func TestCourt_Validate(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		valid         bool
	}{
		{"default", DefaultWidth, DefaultHeight, true},
		{"minimum", MinCourtWidth, MinCourtHeight, true},
		{"zero", 0, 0, false},
		{"shorter than the net", 320, 64, false},
		{"paddles do not fit", MinCourtWidth - 1, 400, false},
		{"just below minimum height", 320, MinCourtHeight - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (Court{Width: tt.width, Height: tt.height}).Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid court, got %v", err)
			}
			if !tt.valid && errors.Cause(err) != ErrInvalidCourt {
				t.Errorf("expected ErrInvalidCourt, got %v", err)
			}
		})
	}
}

func TestCourt_MinimumFitsGeometry(t *testing.T) {
	c := Court{Width: MinCourtWidth, Height: MinCourtHeight}

	for _, side := range []protocol.Side{protocol.SidePlayer, protocol.SideAI} {
		if lo, hi := c.Range(side); lo > hi {
			t.Errorf("expected non-empty %v range, got [%g, %g]", side, lo, hi)
		}
	}
	if top := c.NetTop(); top < 2*BallRadius {
		t.Errorf("expected room for the ball above the net, net top at %g", top)
	}
	if c.PaddleY() <= c.NetTop() {
		t.Errorf("expected paddles below the net top, got paddle %g net %g", c.PaddleY(), c.NetTop())
	}
}

func TestEvents_String(t *testing.T) {
	tests := []struct {
		ev   Events
		want string
	}{
		{0, "none"},
		{EventWall, "wall"},
		{EventPlayerHit | EventFloor, "player-hit|floor"},
		{EventPoint | EventWon, "point|won"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEvents_Groups(t *testing.T) {
	if !(EventNetTop).Bounced() {
		t.Error("net top should count as a bounce")
	}
	if (EventFloor).Bounced() {
		t.Error("floor should not count as a bounce")
	}
	if !(EventAIHit).Hit() || (EventWall).Hit() {
		t.Error("unexpected Hit() grouping")
	}
	if (EventWall).Has(EventWall | EventNet) {
		t.Error("Has should require every flag")
	}
}
