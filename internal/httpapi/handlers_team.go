package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/password"
)

func (s *Server) handleTeamScores(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	var resp TeamScoresResponse
	var ok bool
	s.store.View(func(cfg *game.Config) {
		team, exists := cfg.Teams[name]
		if !exists {
			ok = false
			return
		}
		resp = buildTeamScoresResponse(cfg, team)
		ok = true
	})
	if !ok {
		writeError(w, http.StatusNotFound, "team does not exist")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTeamPasswordGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.passwords.Groups(r.PathValue("team"))
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, PasswordGroupsResponse{Groups: groups})
}

func (s *Server) handleTeamPasswordUpload(w http.ResponseWriter, r *http.Request) {
	var req PasswordUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds := make([]password.Credential, len(req.Credentials))
	for i, c := range req.Credentials {
		creds[i] = password.Credential{Username: c.Username, Password: c.Password}
	}

	team := r.PathValue("team")
	group := r.PathValue("group")
	if err := s.passwords.Overwrite(team, group, creds); err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleTeamInjects(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	resp, status, err := s.renderTeamInjects(r, name, nil)
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	if status != 0 {
		writeError(w, status, "team does not exist")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTeamInject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inject uuid")
		return
	}
	resp, status, renderErr := s.renderTeamInjects(r, r.PathValue("team"), &id)
	if renderErr != nil {
		writeGameError(w, &s.logger, renderErr)
		return
	}
	if status != 0 {
		writeError(w, status, "inject not visible to team")
		return
	}
	writeJSON(w, http.StatusOK, resp[0])
}

// renderTeamInjects renders every inject currently visible to a team,
// optionally filtered down to a single uuid. status is non-zero (and resp
// empty) when the team or the requested inject could not be found.
func (s *Server) renderTeamInjects(r *http.Request, teamName string, only *uuid.UUID) ([]InjectResponseDTO, int, error) {
	var team *game.Team
	var visible []*game.Inject
	s.store.View(func(cfg *game.Config) {
		t, exists := cfg.Teams[teamName]
		if !exists {
			return
		}
		team = t
		visible = cfg.GetInjectsForTeam(t)
	})
	if team == nil {
		return nil, http.StatusNotFound, nil
	}

	out := make([]InjectResponseDTO, 0, len(visible))
	for _, inj := range visible {
		if only != nil && inj.UUID != *only {
			continue
		}
		dto, err := buildInjectResponseDTO(r.Context(), s.markdown, inj, team)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, dto)
	}
	if only != nil && len(out) == 0 {
		return nil, http.StatusNotFound, nil
	}
	return out, 0, nil
}

func (s *Server) handleTeamInjectUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inject uuid")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds maximum size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	team := r.PathValue("team")
	var resp game.InjectResponse
	var submitErr error
	s.store.Commit(func(cfg *game.Config) {
		resp, submitErr = cfg.SubmitResponse(s.settings.ResourceDir, team, id, header.Filename, data, time.Now())
	})
	if submitErr != nil {
		writeGameError(w, &s.logger, submitErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
