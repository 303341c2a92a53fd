// Package replay records the per-tick input of a match and plays it back.
// A match is deterministic in its input, so playback reproduces it exactly.
package replay

import (
	"io"

	"github.com/pkg/errors"

	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/protocol"
)

// Version of the recording format
const Version = 1

var (
	ErrBadHeader  = errors.New("recording does not start with a header")
	ErrBadVersion = errors.New("unsupported recording version")
	ErrBadFrame   = errors.New("malformed frame")
)

// Apply feeds one frame to a match: resize, then start, then tick.
// Live hosts and playback both go through here.
func Apply(m *game.Match, f protocol.Frame) (game.Events, error) {
	if f.Width != 0 || f.Height != 0 {
		if err := m.Resize(f.Width, f.Height); err != nil {
			return 0, err
		}
	}
	if f.Start {
		m.Start()
	}
	ptr := game.NoPointer
	if f.PointerActive {
		ptr = game.PointerAt(f.PointerX)
	}
	return m.Tick(ptr)
}

// Recorder writes a header followed by one frame per tick
type Recorder struct {
	codec *protocol.Codec
	next  int
}

// NewRecorder writes the header for a match of the given starting size
func NewRecorder(w io.Writer, width, height float64) (*Recorder, error) {
	codec := protocol.NewEncoder(w)
	header := protocol.ReplayHeader{
		Version:  Version,
		TickRate: game.TickRate,
		Width:    width,
		Height:   height,
	}
	if err := codec.Send(protocol.MsgReplayHeader, header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	log.Debugf("Recording %gx%g at %d ticks/s", width, height, game.TickRate)
	return &Recorder{codec: codec}, nil
}

// Record numbers f and writes it
func (r *Recorder) Record(f protocol.Frame) error {
	f.Tick = r.next
	if err := r.codec.Send(protocol.MsgReplayFrame, f); err != nil {
		return errors.Wrapf(err, "write frame %d", f.Tick)
	}
	r.next++
	return nil
}

// Frames returns the number of frames written
func (r *Recorder) Frames() int {
	return r.next
}

// Player reads a recording back
type Player struct {
	codec  *protocol.Codec
	header protocol.ReplayHeader
	next   int
}

// NewPlayer reads and checks the header
func NewPlayer(r io.Reader) (*Player, error) {
	codec := protocol.NewDecoder(r)
	payload, err := codec.Expect(protocol.MsgReplayHeader)
	switch {
	case err == io.EOF || errors.Cause(err) == protocol.ErrUnexpectedMessage:
		return nil, ErrBadHeader
	case err != nil:
		return nil, errors.Wrap(err, "read header")
	}
	header, ok := payload.(protocol.ReplayHeader)
	if !ok {
		return nil, ErrBadHeader
	}
	if header.Version != Version {
		return nil, errors.Wrapf(ErrBadVersion, "version %d", header.Version)
	}
	return &Player{codec: codec, header: header}, nil
}

func (p *Player) Header() protocol.ReplayHeader {
	return p.header
}

// Next returns the next frame, or io.EOF after the last one
func (p *Player) Next() (protocol.Frame, error) {
	payload, err := p.codec.Expect(protocol.MsgReplayFrame)
	switch {
	case err == io.EOF:
		return protocol.Frame{}, io.EOF
	case errors.Cause(err) == protocol.ErrUnexpectedMessage:
		return protocol.Frame{}, errors.Wrapf(ErrBadFrame, "at frame %d: %v", p.next, err)
	case err != nil:
		return protocol.Frame{}, errors.Wrapf(err, "read frame %d", p.next)
	}
	f, ok := payload.(protocol.Frame)
	if !ok {
		return protocol.Frame{}, errors.Wrapf(ErrBadFrame, "at frame %d", p.next)
	}
	if f.Tick != p.next {
		return protocol.Frame{}, errors.Wrapf(ErrBadFrame, "expected tick %d, got %d", p.next, f.Tick)
	}
	p.next++
	return f, nil
}

// Summary describes a finished playback
type Summary struct {
	Frames      int
	Points      int
	Matches     int
	Phase       protocol.Phase
	PlayerScore int
	AIScore     int
	Final       protocol.Snapshot
}

// Play runs a whole recording against a fresh match
func Play(r io.Reader) (Summary, error) {
	p, err := NewPlayer(r)
	if err != nil {
		return Summary{}, err
	}
	h := p.Header()
	m, err := game.NewMatch(h.Width, h.Height)
	if err != nil {
		return Summary{}, errors.Wrap(err, "replay court")
	}

	var s Summary
	for {
		f, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, err
		}
		ev, err := Apply(m, f)
		if err != nil {
			return s, errors.Wrapf(err, "apply frame %d", f.Tick)
		}
		s.Frames++
		if ev.Has(game.EventPoint) {
			s.Points++
		}
		if ev&(game.EventWon|game.EventLost) != 0 {
			s.Matches++
		}
	}

	s.Phase = m.Phase()
	s.PlayerScore = m.PlayerScore()
	s.AIScore = m.AIScore()
	s.Final = m.Snapshot()
	log.Infof("Replayed %d frames: %d points, %d matches finished", s.Frames, s.Points, s.Matches)
	return s, nil
}
