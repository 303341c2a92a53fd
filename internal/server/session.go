package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/diegok/heartvolley/internal/game"
	"github.com/diegok/heartvolley/internal/loop"
	"github.com/diegok/heartvolley/internal/protocol"
	"github.com/diegok/heartvolley/internal/replay"
)

const (
	sendBufferSize  = 64
	inputBufferSize = 256
	readLimit       = 4096
	pongWait        = 60 * time.Second
	pingPeriod      = 30 * time.Second
	writeWait       = 10 * time.Second
)

// Session is one browser connection playing its own match. The tick
// goroutine is the only writer of the match; the read pump only queues
// input for it.
type Session struct {
	ID     string
	conn   *websocket.Conn
	match  *game.Match
	sendCh chan *protocol.ServerMessage
	inputs chan protocol.ClientMessage
	done   chan struct{}
	mu     sync.Mutex

	// Owned by the tick goroutine
	pointer game.Pointer
}

// NewSession creates a session with a fresh match on the default court
func NewSession(conn *websocket.Conn) (*Session, error) {
	m, err := game.NewMatch(game.DefaultWidth, game.DefaultHeight)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:      uuid.NewString(),
		conn:    conn,
		match:   m,
		sendCh:  make(chan *protocol.ServerMessage, sendBufferSize),
		inputs:  make(chan protocol.ClientMessage, inputBufferSize),
		done:    make(chan struct{}),
		pointer: game.NoPointer,
	}, nil
}

// Run plays the match until the connection drops or ctx is cancelled
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.Close()

	go s.writePump()
	go func() {
		s.readPump()
		cancel()
	}()

	snap := s.match.Snapshot()
	s.Send(&protocol.ServerMessage{Type: protocol.ServerHello, Session: s.ID, State: &snap})

	if err := loop.Run(ctx, game.TickRate, s.tick); err != nil {
		log.Errorf("Session %s: %v", s.ID, err)
	}
}

// tick applies queued input, steps the match and publishes a snapshot
func (s *Session) tick() error {
	var f protocol.Frame
drain:
	for {
		select {
		case msg := <-s.inputs:
			s.apply(msg, &f)
		default:
			break drain
		}
	}
	f.PointerX = s.pointer.X
	f.PointerActive = s.pointer.Active

	ev, err := replay.Apply(s.match, f)
	if err != nil {
		return err
	}
	if ev.Has(game.EventPoint) {
		log.Debugf("Session %s: %d-%d", s.ID, s.match.PlayerScore(), s.match.AIScore())
	}

	snap := s.match.Snapshot()
	s.Send(&protocol.ServerMessage{Type: protocol.ServerState, State: &snap})
	return nil
}

// apply folds one client message into the next frame
func (s *Session) apply(msg protocol.ClientMessage, f *protocol.Frame) {
	switch msg.Type {
	case protocol.ClientPointer:
		s.pointer = game.PointerAt(msg.X)
	case protocol.ClientRelease:
		s.pointer = game.NoPointer
	case protocol.ClientStart:
		f.Start = true
	case protocol.ClientResize:
		if _, err := game.NewCourt(msg.Width, msg.Height); err != nil {
			s.Send(&protocol.ServerMessage{Type: protocol.ServerError, Error: err.Error()})
			return
		}
		f.Width, f.Height = msg.Width, msg.Height
	default:
		s.Send(&protocol.ServerMessage{Type: protocol.ServerError, Error: "unknown message type " + msg.Type})
	}
}

// readPump queues client messages until the connection fails
func (s *Session) readPump() {
	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg protocol.ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("Session %s read: %v", s.ID, err)
			}
			return
		}
		select {
		case s.inputs <- msg:
		case <-s.done:
			return
		}
	}
}

// writePump writes queued messages and keeps the connection alive
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.sendCh:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}

// Send queues a message to be sent to the browser (non-blocking)
func (s *Session) Send(msg *protocol.ServerMessage) {
	select {
	case s.sendCh <- msg:
	default:
		// Buffer full, drop message
	}
}

// Close closes the connection once
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}

	if s.conn != nil {
		s.conn.Close()
	}
}
