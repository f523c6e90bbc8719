package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tushaaaaaarr/SnakeRush/internal/engine"
	"github.com/tushaaaaaarr/SnakeRush/internal/geom"
)

// serverMessage is pushed to the client on every simulation tick.
type serverMessage struct {
	Type  string           `json:"type"`
	State *engine.Snapshot `json:"state,omitempty"`
}

// clientMessage carries a player action: a direction name, "pause" or
// "restart".
type clientMessage struct {
	Action string `json:"action"`
}

// handleWS attaches a websocket to an existing session and drives its
// engine: snapshots are pushed on a ticker derived from the current speed,
// actions from the client mutate the engine between ticks.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	sess, ok := s.sessions.get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("websocket connected", "session", id, "remote", r.RemoteAddr)
	defer s.logger.Info("websocket closed", "session", id)

	// A finished game whose client went away is not coming back; a new run
	// starts with a new /game/start.
	defer func() {
		sess.mu.Lock()
		finished := sess.game.GameOver()
		sess.mu.Unlock()
		if finished {
			s.sessions.remove(id)
		}
	}()

	done := make(chan struct{})
	go s.readActions(conn, sess, done)

	// Initial state so the client can draw the board before the first tick.
	sess.mu.Lock()
	snap := sess.game.Snapshot()
	sess.touch()
	sess.mu.Unlock()
	if err := conn.WriteJSON(serverMessage{Type: "state", State: &snap}); err != nil {
		return
	}

	timer := time.NewTimer(tickInterval(snap.Speed))
	defer timer.Stop()

	for {
		select {
		case <-done:
			return
		case <-timer.C:
		}

		sess.mu.Lock()
		sess.game.Tick()
		snap = sess.game.Snapshot()
		submit := snap.GameOver && !sess.submitted && snap.Score > 0
		if submit {
			sess.submitted = true
		}
		elapsed := int(time.Since(sess.startedAt).Seconds())
		sess.touch()
		sess.mu.Unlock()

		if submit {
			s.submitFinalScore(snap, elapsed)
		}

		if err := conn.WriteJSON(serverMessage{Type: "state", State: &snap}); err != nil {
			return
		}

		timer.Reset(tickInterval(snap.Speed))
	}
}

// readActions pumps client messages into the session until the connection
// drops.
func (s *Server) readActions(conn *websocket.Conn, sess *session, done chan<- struct{}) {
	defer close(done)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		sess.mu.Lock()
		switch msg.Action {
		case "pause":
			sess.game.TogglePause()
		case "restart":
			if sess.game.GameOver() {
				sess.game.Restart("")
				sess.startedAt = time.Now()
				sess.submitted = false
			}
		default:
			if d, ok := geom.ParseDirection(msg.Action); ok {
				sess.game.SetDirection(d)
			}
		}
		sess.touch()
		sess.mu.Unlock()
	}
}

// submitFinalScore records a finished game on the leaderboard.
func (s *Server) submitFinalScore(snap engine.Snapshot, elapsed int) {
	updated, err := s.store.Submit(snap.PlayerName, snap.Score, elapsed)
	if err != nil {
		s.logger.Error("submit final score", "player", snap.PlayerName, "error", err)
		return
	}
	s.logger.Info("game over",
		"player", snap.PlayerName,
		"score", snap.Score,
		"time_taken", elapsed,
		"personal_best", updated,
	)
}

// tickInterval converts a speed in ticks per second to a timer interval.
func tickInterval(speed float64) time.Duration {
	if speed <= 0 {
		speed = engine.BaseSpeed
	}
	return time.Duration(float64(time.Second) / speed)
}
