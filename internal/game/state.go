package game

import "github.com/diegok/heartvolley/internal/protocol"

// Match is the match controller: the phase machine, both scores and the
// serve rule. It owns the engine and is the only thing that steps it.
//
//	Intro --Start--> Playing --point--> Playing
//	                 Playing --player reaches WinScore--> Won  --Start--> Playing
//	                 Playing --AI reaches WinScore-->     Lost --Start--> Playing
type Match struct {
	engine      *Engine
	phase       protocol.Phase
	playerScore int
	aiScore     int
	lastServe   protocol.Side
}

// NewMatch creates a match in the intro phase
func NewMatch(width, height float64) (*Match, error) {
	e, err := NewEngine(width, height)
	if err != nil {
		return nil, err
	}
	return &Match{
		engine:    e,
		phase:     protocol.PhaseIntro,
		lastServe: protocol.SidePlayer,
	}, nil
}

func (m *Match) Phase() protocol.Phase {
	return m.phase
}

func (m *Match) PlayerScore() int {
	return m.playerScore
}

func (m *Match) AIScore() int {
	return m.aiScore
}

// LastServe returns the side that serves the current ball
func (m *Match) LastServe() protocol.Side {
	return m.lastServe
}

// Engine exposes the simulation for read access
func (m *Match) Engine() *Engine {
	return m.engine
}

// Start begins a new match from the intro or a finished match. It is
// ignored while a match is being played.
func (m *Match) Start() bool {
	if m.phase == protocol.PhasePlaying {
		return false
	}
	m.playerScore = 0
	m.aiScore = 0
	m.lastServe = protocol.SidePlayer
	m.phase = protocol.PhasePlaying
	m.engine.Serve(protocol.SidePlayer)
	log.Infof("Match started (first to %d)", WinScore)
	return true
}

// Resize passes new court dimensions to the engine
func (m *Match) Resize(width, height float64) error {
	if err := m.engine.Resize(width, height); err != nil {
		return err
	}
	log.Debugf("Court resized to %gx%g", width, height)
	return nil
}

// Tick runs one tick. Outside of play only the player paddle moves.
func (m *Match) Tick(ptr Pointer) (Events, error) {
	if m.phase != protocol.PhasePlaying {
		return 0, m.engine.TrackPointer(ptr)
	}

	res, err := m.engine.Step(ptr)
	if err != nil {
		return 0, err
	}
	if !res.Landed {
		return res.Events, nil
	}

	// The ball landing on a side is a point for the other side
	scorer := res.LandedOn.Opponent()
	return res.Events | EventPoint | m.award(scorer), nil
}

func (m *Match) award(scorer protocol.Side) Events {
	if scorer == protocol.SidePlayer {
		m.playerScore++
	} else {
		m.aiScore++
	}
	m.lastServe = scorer
	log.Debugf("Point to %s (%d-%d)", scorer, m.playerScore, m.aiScore)

	if ev := m.settle(); ev != 0 {
		return ev
	}
	m.engine.Serve(scorer)
	return EventServe
}

// settle ends the match when a score reaches WinScore. The player is
// checked first and wins if both sides were ever there at once.
func (m *Match) settle() Events {
	switch {
	case m.playerScore >= WinScore:
		m.phase = protocol.PhaseWon
		log.Infof("Match won %d-%d", m.playerScore, m.aiScore)
		return EventWon
	case m.aiScore >= WinScore:
		m.phase = protocol.PhaseLost
		log.Infof("Match lost %d-%d", m.playerScore, m.aiScore)
		return EventLost
	}
	return 0
}

// Snapshot copies the state a renderer needs
func (m *Match) Snapshot() protocol.Snapshot {
	e := m.engine
	c := e.court
	paddleY := c.PaddleY()
	return protocol.Snapshot{
		Tick:  e.tick,
		Phase: m.phase,
		Ball: protocol.BallState{
			X: e.ball.X, Y: e.ball.Y, VX: e.ball.VX, VY: e.ball.VY, Radius: BallRadius,
		},
		Player:      protocol.PaddleState{X: e.PlayerX(), Y: paddleY, Width: PaddleWidth, Height: PaddleHeight},
		AI:          protocol.PaddleState{X: e.AIX(), Y: paddleY, Width: PaddleWidth, Height: PaddleHeight},
		PlayerScore: m.playerScore,
		AIScore:     m.aiScore,
		WinScore:    WinScore,
		LastServe:   m.lastServe,
		Court: protocol.CourtState{
			Width:    c.Width,
			Height:   c.Height,
			NetX:     c.NetX(),
			NetTop:   c.NetTop(),
			NetWidth: NetWidth,
		},
	}
}
