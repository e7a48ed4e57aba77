package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/bmin023/scoreboard/internal/game"
)

func (s *Server) handleAdminConfig(w http.ResponseWriter, _ *http.Request) {
	var dump ConfigDump
	s.store.View(func(cfg *game.Config) {
		dump = buildConfigDump(cfg)
	})
	writeJSON(w, http.StatusOK, dump)
}

// handleAdminStatus returns the same short human-readable game-state dump
// the CLI's status command prints, so an operator can curl it directly
// without a config file on hand.
func (s *Server) handleAdminStatus(w http.ResponseWriter, _ *http.Request) {
	var summary string
	s.store.View(func(cfg *game.Config) {
		summary = cfg.Summary()
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(summary))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleAdminAddService(w http.ResponseWriter, r *http.Request) {
	var req ServiceDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.AddService(req.toService())
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminGetService(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("service")
	var svc game.Service
	var ok bool
	s.store.View(func(cfg *game.Config) {
		svc, ok = cfg.ServiceByName(name)
	})
	if !ok {
		writeError(w, http.StatusNotFound, "service does not exist")
		return
	}
	writeJSON(w, http.StatusOK, ServiceDTO{Name: svc.Name, Command: svc.Command, Multiplier: svc.Multiplier})
}

func (s *Server) handleAdminEditService(w http.ResponseWriter, r *http.Request) {
	oldName := r.PathValue("service")
	var req ServiceDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.EditService(oldName, req.toService())
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminDeleteService(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("service")
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.RemoveService(name)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminAddTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	s.store.Commit(func(cfg *game.Config) {
		_, err = cfg.AddTeam(req.Name)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	if err := s.passwords.ValidateFilesystem(s.teamNames()); err != nil {
		s.logger.Warn().Err(err).Msg("password filesystem validation failed after team add")
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) teamNames() []string {
	var names []string
	s.store.View(func(cfg *game.Config) {
		names = cfg.TeamNames()
	})
	return names
}

func (s *Server) handleAdminGetTeam(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	var dto TeamAdminDTO
	var ok bool
	s.store.View(func(cfg *game.Config) {
		team, exists := cfg.Teams[name]
		if !exists {
			return
		}
		dto = buildTeamAdminDTO(cfg, team)
		ok = true
	})
	if !ok {
		writeError(w, http.StatusNotFound, "team does not exist")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleAdminDeleteTeam(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.RemoveTeam(name)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	if err := s.passwords.ValidateFilesystem(s.teamNames()); err != nil {
		s.logger.Warn().Err(err).Msg("password filesystem validation failed after team delete")
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminAddTeamEnv(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	var req EnvRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.AddTeamEnv(name, req.Key, req.Value)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminEditTeamEnv(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	key := r.PathValue("key")
	var req EnvRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.EditTeamEnv(name, key, req.Value)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminDeleteTeamEnv(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("team")
	key := r.PathValue("key")
	var err error
	s.store.Commit(func(cfg *game.Config) {
		err = cfg.DeleteTeamEnv(name, key)
	})
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminStart(w http.ResponseWriter, _ *http.Request) {
	s.store.Commit(func(cfg *game.Config) {
		cfg.Start()
	})
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminStop(w http.ResponseWriter, _ *http.Request) {
	s.store.Commit(func(cfg *game.Config) {
		cfg.Stop()
	})
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminReset(w http.ResponseWriter, _ *http.Request) {
	s.store.Commit(func(cfg *game.Config) {
		cfg.ResetScores()
	})
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminListSaves(w http.ResponseWriter, _ *http.Request) {
	names, err := s.saves.ListSaves()
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleAdminSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var snapshot *game.Config
	s.store.View(func(cfg *game.Config) {
		snapshot = cfg.Clone()
	})
	if err := s.saves.Save(snapshot, req.Name); err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// handleAdminLoadSave restores state from a named save. The restored
// config is fully constructed before the store is swapped, so a failed
// load leaves the current game state intact, per the persistence-failure
// handling documented for this path.
func (s *Server) handleAdminLoadSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.saves.Restore(req.Name)
	if err != nil {
		writeGameError(w, &s.logger, err)
		return
	}
	s.store.Replace(cfg)
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAdminListInjects(w http.ResponseWriter, _ *http.Request) {
	var injects []*game.Inject
	s.store.View(func(cfg *game.Config) {
		injects = cfg.Injects
	})
	writeJSON(w, http.StatusOK, injects)
}

func (s *Server) handleAdminAddInject(w http.ResponseWriter, r *http.Request) {
	var req InjectAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inj, err := req.toInject()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.store.Commit(func(cfg *game.Config) {
		cfg.Injects = append(cfg.Injects, inj)
	})
	writeJSON(w, http.StatusOK, inj)
}

func (s *Server) handleAdminGetInject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inject uuid")
		return
	}
	var inj *game.Inject
	var ok bool
	s.store.View(func(cfg *game.Config) {
		inj, ok = cfg.InjectByUUID(id)
	})
	if !ok {
		writeError(w, http.StatusNotFound, "inject does not exist")
		return
	}
	writeJSON(w, http.StatusOK, inj)
}

func (s *Server) handleAdminDeleteInject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inject uuid")
		return
	}
	var found bool
	s.store.Commit(func(cfg *game.Config) {
		for i, inj := range cfg.Injects {
			if inj.UUID == id {
				cfg.Injects = append(cfg.Injects[:i], cfg.Injects[i+1:]...)
				found = true
				return
			}
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "inject does not exist")
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
