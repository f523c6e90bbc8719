package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

const maxPlayerNameLen = 50

// ---- Request/response bodies ----

type startGameRequest struct {
	PlayerName string `json:"player_name"`
}

type startGameResponse struct {
	SessionID  string `json:"session_id"`
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
}

type submitScoreRequest struct {
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	TimeTaken  int    `json:"time_taken"`
}

type submitScoreResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	LeaderboardPosition int    `json:"leaderboard_position,omitempty"`
	NewPersonalBest     bool   `json:"new_personal_best"`
}

type leaderboardEntry struct {
	Name      string `json:"name"`
	BestScore int    `json:"best_score"`
	Date      string `json:"date"`
	TimeTaken int    `json:"time_taken"`
	Rank      int    `json:"rank"`
}

type leaderboardResponse struct {
	Entries    []leaderboardEntry `json:"entries"`
	TotalCount int                `json:"total_count"`
}

type playerResponse struct {
	Found      bool   `json:"found"`
	PlayerName string `json:"player_name,omitempty"`
	BestScore  int    `json:"best_score,omitempty"`
	Date       string `json:"date,omitempty"`
	TimeTaken  int    `json:"time_taken,omitempty"`
	Rank       int    `json:"rank,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

// ---- Handlers ----

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, ok := validPlayerName(req.PlayerName)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Player name must be between 1 and 50 characters")
		return
	}

	sess := s.sessions.create(s.cfg.Game.Width, s.cfg.Game.Height, name)
	s.logger.Info("game started", "player", name, "session", sess.id)

	s.writeJSON(w, http.StatusOK, startGameResponse{
		SessionID:  sess.id,
		PlayerName: name,
		Message:    "Game session started successfully",
	})
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, ok := validPlayerName(req.PlayerName)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Player name must be between 1 and 50 characters")
		return
	}
	if req.Score < 0 {
		s.writeError(w, http.StatusBadRequest, "Score cannot be negative")
		return
	}

	prev, existed, err := s.store.Player(name)
	if err != nil {
		s.internalError(w, "lookup player", err)
		return
	}
	newBest := !existed || req.Score > prev.BestScore

	if _, err := s.store.Submit(name, req.Score, req.TimeTaken); err != nil {
		s.internalError(w, "submit score", err)
		return
	}

	rank, _, err := s.store.Rank(name)
	if err != nil {
		s.internalError(w, "rank player", err)
		return
	}

	s.logger.Info("score submitted",
		"player", name, "score", req.Score, "time_taken", req.TimeTaken, "rank", rank)

	s.writeJSON(w, http.StatusOK, submitScoreResponse{
		Success:             true,
		Message:             "Score submitted successfully",
		LeaderboardPosition: rank,
		NewPersonalBest:     newBest,
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			s.writeError(w, http.StatusBadRequest, "Limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := s.store.Top(limit)
	if err != nil {
		s.internalError(w, "load leaderboard", err)
		return
	}

	s.writeJSON(w, http.StatusOK, toLeaderboardResponse(entries))
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.All()
	if err != nil {
		s.internalError(w, "load leaderboard", err)
		return
	}

	s.writeJSON(w, http.StatusOK, toLeaderboardResponse(entries))
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "Player name cannot be empty")
		return
	}

	entry, found, err := s.store.Player(name)
	if err != nil {
		s.internalError(w, "lookup player", err)
		return
	}
	if !found {
		s.writeJSON(w, http.StatusOK, playerResponse{Found: false})
		return
	}

	rank, _, err := s.store.Rank(name)
	if err != nil {
		s.internalError(w, "rank player", err)
		return
	}

	s.writeJSON(w, http.StatusOK, playerResponse{
		Found:      true,
		PlayerName: entry.Name,
		BestScore:  entry.BestScore,
		Date:       entry.Date.Format(time.RFC3339),
		TimeTaken:  entry.TimeTaken,
		Rank:       rank,
	})
}

// ---- Helpers ----

func toLeaderboardResponse(entries []leaderboard.Entry) leaderboardResponse {
	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{
			Name:      e.Name,
			BestScore: e.BestScore,
			Date:      e.Date.Format(time.RFC3339),
			TimeTaken: e.TimeTaken,
			Rank:      i + 1,
		}
	}
	return leaderboardResponse{Entries: out, TotalCount: len(out)}
}

// validPlayerName trims the name and checks the boundary constraints.
func validPlayerName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxPlayerNameLen {
		return "", false
	}
	return name, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{
		Error:      true,
		StatusCode: status,
		Detail:     detail,
	})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op, "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}
