package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/version"
)

func (s *Server) handleScores(w http.ResponseWriter, _ *http.Request) {
	var resp ScoresResponse
	s.store.View(func(cfg *game.Config) {
		resp = buildScoresResponse(cfg)
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTime(w http.ResponseWriter, _ *http.Request) {
	var resp TimeResponse
	s.store.View(func(cfg *game.Config) {
		resp = buildTimeResponse(cfg)
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{Version: version.String()})
}

// handleLogin authenticates a team by username/password against its
// TEAM_PASSWORD env entry. It does not accept admin credentials; the
// admin principal authenticates via X-Admin-Secret on every request
// instead of a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var ok bool
	s.store.View(func(cfg *game.Config) {
		_, ok = cfg.GetTeamWithPassword(req.Username, req.Password)
	})
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
