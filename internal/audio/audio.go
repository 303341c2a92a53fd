package audio

import (
	"math"
	"time"

	"github.com/decred/slog"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/heartvolley/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var (
	initialized bool
	log         = slog.Disabled
)

// UseLogger sets the logger used by the audio system
func UseLogger(logger slog.Logger) {
	log = logger
}

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		log.Warnf("Sound disabled: %v", err)
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// Cue is a sound played for something that happened on a tick
type Cue int

const (
	CueNone Cue = iota
	CueBounce
	CueNet
	CueHit
	CuePoint
	CueWon
	CueLost
)

// CueFor picks the one cue worth playing for a tick. The end of a match
// drowns out the point, and a point drowns out the bounces before it.
func CueFor(ev game.Events) Cue {
	switch {
	case ev.Has(game.EventWon):
		return CueWon
	case ev.Has(game.EventLost):
		return CueLost
	case ev.Has(game.EventPoint):
		return CuePoint
	case ev.Hit():
		return CueHit
	case ev&(game.EventNet|game.EventNetTop) != 0:
		return CueNet
	case ev.Bounced():
		return CueBounce
	}
	return CueNone
}

type note struct {
	freq     float64
	duration time.Duration
	square   bool
}

func notes(c Cue) []note {
	switch c {
	case CueHit:
		return []note{{880, 50 * time.Millisecond, true}}
	case CueBounce:
		return []note{{440, 30 * time.Millisecond, true}}
	case CueNet:
		return []note{{220, 60 * time.Millisecond, false}}
	case CuePoint:
		return []note{
			{660, 100 * time.Millisecond, true},
			{440, 100 * time.Millisecond, true},
			{330, 150 * time.Millisecond, true},
		}
	case CueWon:
		return []note{
			{523, 120 * time.Millisecond, false},
			{659, 120 * time.Millisecond, false},
			{784, 120 * time.Millisecond, false},
			{1047, 300 * time.Millisecond, false},
		}
	case CueLost:
		return []note{
			{392, 150 * time.Millisecond, false},
			{330, 150 * time.Millisecond, false},
			{262, 350 * time.Millisecond, false},
		}
	}
	return nil
}

// streamer chains the notes of a cue, or returns nil for CueNone
func streamer(c Cue) beep.Streamer {
	ns := notes(c)
	if len(ns) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(ns))
	for i, n := range ns {
		if n.square {
			parts[i] = squareWave(n.freq, n.duration)
		} else {
			parts[i] = tone(n.freq, n.duration)
		}
	}
	return beep.Seq(parts...)
}

// Play plays the cue for a tick's events
func Play(ev game.Events) {
	if !initialized {
		return
	}
	s := streamer(CueFor(ev))
	if s == nil {
		return
	}
	speaker.Play(s)
}

// tone generates a sine wave tone at the given frequency for the given duration
func tone(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := 2 * math.Pi * freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, i > 0
			}
			val := math.Sin(phase) * 0.3 // 0.3 volume
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, i > 0
			}
			// Square wave: positive or negative based on phase
			val := 0.2 // volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
