package replay

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/protocol"
)

// record plays a seeded session live and returns the recording along with
// the live match
func record(t *testing.T, ticks int) (*bytes.Buffer, *game.Match) {
	t.Helper()
	rng := rand.New(rand.NewSource(7))

	m, err := game.NewMatch(game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < ticks; i++ {
		f := protocol.Frame{
			PointerX:      rng.Float64() * game.DefaultWidth,
			PointerActive: rng.Intn(3) != 0,
			Start:         i == 10 || m.Phase().Over(),
		}
		if i == 2000 {
			f.Width, f.Height = 480, 360
		}
		if _, err := Apply(m, f); err != nil {
			t.Fatalf("tick %d: unexpected error: %v", i, err)
		}
		if err := rec.Record(f); err != nil {
			t.Fatalf("tick %d: unexpected error: %v", i, err)
		}
	}

	if rec.Frames() != ticks {
		t.Errorf("expected %d frames, got %d", ticks, rec.Frames())
	}
	return &buf, m
}

func TestPlay_ReproducesLiveMatch(t *testing.T) {
	buf, live := record(t, 6000)

	s, err := Play(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Frames != 6000 {
		t.Errorf("expected 6000 frames, got %d", s.Frames)
	}
	if s.Final != live.Snapshot() {
		t.Errorf("replay diverged:\nlive   %+v\nreplay %+v", live.Snapshot(), s.Final)
	}
	if s.PlayerScore != live.PlayerScore() || s.AIScore != live.AIScore() {
		t.Errorf("expected score %d-%d, got %d-%d", live.PlayerScore(), live.AIScore(), s.PlayerScore, s.AIScore)
	}
	if s.Final.Court.Width != 480 {
		t.Errorf("expected resize to be replayed, court width %f", s.Final.Court.Width)
	}
	if s.Points == 0 {
		t.Error("expected points during the session")
	}
}

func TestPlayer_Header(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewRecorder(&buf, 300, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := NewPlayer(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := p.Header()
	if h.Version != Version || h.TickRate != game.TickRate || h.Width != 300 || h.Height != 200 {
		t.Errorf("unexpected header %+v", h)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("expected io.EOF for an empty recording, got %v", err)
	}
}

func TestNewPlayer_Empty(t *testing.T) {
	if _, err := NewPlayer(&bytes.Buffer{}); err != ErrBadHeader {
		t.Errorf("expected ErrBadHeader, got %v", err)
	}
}

func TestNewPlayer_MissingHeader(t *testing.T) {
	var buf bytes.Buffer
	codec := protocol.NewEncoder(&buf)
	if err := codec.Send(protocol.MsgReplayFrame, protocol.Frame{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewPlayer(&buf); err != ErrBadHeader {
		t.Errorf("expected ErrBadHeader, got %v", err)
	}
}

func TestNewPlayer_BadVersion(t *testing.T) {
	var buf bytes.Buffer
	codec := protocol.NewEncoder(&buf)
	header := protocol.ReplayHeader{Version: Version + 1, TickRate: game.TickRate, Width: 320, Height: 400}
	if err := codec.Send(protocol.MsgReplayHeader, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := NewPlayer(&buf)
	if errors.Cause(err) != ErrBadVersion {
		t.Errorf("expected ErrBadVersion, got %v", err)
	}
}

func TestPlayer_OutOfOrderFrame(t *testing.T) {
	var buf bytes.Buffer
	codec := protocol.NewEncoder(&buf)
	header := protocol.ReplayHeader{Version: Version, TickRate: game.TickRate, Width: 320, Height: 400}
	if err := codec.Send(protocol.MsgReplayHeader, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := codec.Send(protocol.MsgReplayFrame, protocol.Frame{Tick: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Play(&buf)
	if errors.Cause(err) != ErrBadFrame {
		t.Errorf("expected ErrBadFrame, got %v", err)
	}
}

func TestPlayer_SecondHeader(t *testing.T) {
	var buf bytes.Buffer
	codec := protocol.NewEncoder(&buf)
	header := protocol.ReplayHeader{Version: Version, TickRate: game.TickRate, Width: 320, Height: 400}
	for i := 0; i < 2; i++ {
		if err := codec.Send(protocol.MsgReplayHeader, header); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	p, err := NewPlayer(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Next(); errors.Cause(err) != ErrBadFrame {
		t.Errorf("expected ErrBadFrame, got %v", err)
	}
}

func TestPlay_InvalidCourt(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewRecorder(&buf, 0, 400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Play(&buf)
	if errors.Cause(err) != game.ErrInvalidCourt {
		t.Errorf("expected ErrInvalidCourt, got %v", err)
	}
}

func TestApply_StartAndPointer(t *testing.T) {
	m, err := game.NewMatch(game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Apply(m, protocol.Frame{Start: true, PointerX: 118, PointerActive: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Phase() != protocol.PhasePlaying {
		t.Errorf("expected PhasePlaying, got %v", m.Phase())
	}
	if m.Engine().PlayerX() <= m.Engine().Court().Home(protocol.SidePlayer) {
		t.Errorf("expected paddle to move toward the pointer, got %f", m.Engine().PlayerX())
	}
	if m.Engine().Tick() != 1 {
		t.Errorf("expected one simulated tick, got %d", m.Engine().Tick())
	}
}

func TestApply_InvalidResize(t *testing.T) {
	m, err := game.NewMatch(game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Apply(m, protocol.Frame{Width: -1, Height: 400})
	if errors.Cause(err) != game.ErrInvalidCourt {
		t.Errorf("expected ErrInvalidCourt, got %v", err)
	}
}
