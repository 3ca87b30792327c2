package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/round"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var errUnknownKey = errors.New("unknown key")

// frameScheduler turns the runner's tick requests into a flag the session
// loop consumes on its next frame.
type frameScheduler struct {
	pending bool
}

// ScheduleNextTick implements round.Scheduler.
func (s *frameScheduler) ScheduleNextTick() { s.pending = true }

// Cancel implements round.Scheduler.
func (s *frameScheduler) Cancel() { s.pending = false }

func (s *frameScheduler) take() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	return true
}

// session binds one WebSocket connection to one runner. The runner is only
// touched from the run loop; the read pump hands messages over a channel.
type session struct {
	conn     *websocket.Conn
	runner   *round.Runner
	sched    *frameScheduler
	screen   *core.Screen
	interval time.Duration
	logger   *log.Logger
}

// run drives the session until the peer disconnects or ctx is done.
func (s *session) run(ctx context.Context) {
	in := make(chan ClientMessage, 16)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer func() {
		close(done)
		s.runner.Stop()
		s.conn.Close()
	}()

	go s.readPump(in, readErr, done)

	frames := time.NewTicker(s.interval)
	defer frames.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	if err := s.sendSnapshot(); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			//nolint:errcheck // Best-effort close frame
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return

		case msg := <-in:
			if err := s.handle(msg); err != nil {
				if err := s.write(ServerMessage{Type: MsgError, Error: err.Error()}); err != nil {
					return
				}
				continue
			}
			if err := s.sendSnapshot(); err != nil {
				return
			}

		case <-frames.C:
			if !s.sched.take() {
				continue
			}
			s.runner.Frame()
			if err := s.sendSnapshot(); err != nil {
				return
			}

		case <-pings.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle applies one client command to the runner.
func (s *session) handle(msg ClientMessage) error {
	switch msg.Type {
	case MsgKey:
		k := parseKey(msg.Key)
		if k == core.KeyNone {
			return fmt.Errorf("%w: %q", errUnknownKey, msg.Key)
		}
		s.runner.KeyChanged(k, msg.Pressed)
	case MsgStart:
		s.runner.Start()
	case MsgStop:
		s.runner.Stop()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// readPump decodes client messages until the connection fails.
func (s *session) readPump(in chan<- ClientMessage, readErr chan<- error, done <-chan struct{}) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				s.logger.Debug("dropping malformed message", "error", err)
				continue
			}
			readErr <- err
			return
		}
		select {
		case in <- msg:
		case <-done:
			return
		}
	}
}

func (s *session) sendSnapshot() error {
	snap := s.runner.Snapshot()
	msg := ServerMessage{Type: MsgSnapshot, Snapshot: &snap}
	if s.screen != nil {
		s.runner.Game().Render(s.screen)
		msg.Screen = s.screen.String()
	}
	return s.write(msg)
}

func (s *session) write(msg ServerMessage) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}
