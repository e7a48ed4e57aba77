package httpapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/bmin023/scoreboard/internal/game"
)

// ScoresResponse is the body for GET /api/scores and GET /api/team/:team/scores.
type ScoresResponse struct {
	Teams    []TeamScore `json:"teams"`
	Services []string    `json:"services"`
}

// TeamScore is one team's row in ScoresResponse.
type TeamScore struct {
	Name  string `json:"name"`
	Score uint32 `json:"score"`
	Ups   []bool `json:"ups"`
}

func buildScoresResponse(cfg *game.Config) ScoresResponse {
	names := cfg.ServiceNames()
	resp := ScoresResponse{Services: names}
	for _, teamName := range cfg.TeamNames() {
		team := cfg.Teams[teamName]
		ups := make([]bool, len(names))
		for i, svc := range names {
			if s, ok := team.Scores[svc]; ok {
				ups[i] = s.Up
			}
		}
		resp.Teams = append(resp.Teams, TeamScore{
			Name:  team.Name,
			Score: team.TotalScore(),
			Ups:   ups,
		})
	}
	return resp
}

// TimeResponse is the body for GET /api/time.
type TimeResponse struct {
	Minutes uint32 `json:"minutes"`
	Seconds uint32 `json:"seconds"`
	Active  bool   `json:"active"`
}

func buildTimeResponse(cfg *game.Config) TimeResponse {
	rt := cfg.RunTime()
	return TimeResponse{
		Minutes: uint32(rt / time.Minute),
		Seconds: uint32((rt % time.Minute) / time.Second),
		Active:  cfg.Active(),
	}
}

// InfoResponse is the body for GET /api/info.
type InfoResponse struct {
	Version string `json:"version"`
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InjectResponseDTO is one inject as returned to a team, with markdown
// already rendered to sanitized HTML.
type InjectResponseDTO struct {
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	HTML     string    `json:"html"`
	FileType []string  `json:"file_types"`
	NoSubmit bool      `json:"no_submit"`
}

// ServiceDTO mirrors game.Service for admin JSON bodies.
type ServiceDTO struct {
	Name       string `json:"name"`
	Command    string `json:"command"`
	Multiplier uint8  `json:"multiplier"`
}

func (d ServiceDTO) toService() game.Service {
	return game.Service{Name: d.Name, Command: d.Command, Multiplier: d.Multiplier}
}

// EnvRequest is the body for team env mutation endpoints.
type EnvRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TeamRequest is the body for POST /api/admin/team.
type TeamRequest struct {
	Name string `json:"name"`
}

// TeamAdminDTO is the full team view returned to the admin surface.
type TeamAdminDTO struct {
	Name   string         `json:"name"`
	Env    []game.EnvPair `json:"env"`
	Scores []TeamScore    `json:"scores"`
	Total  uint32         `json:"total"`
}

func buildTeamAdminDTO(cfg *game.Config, team *game.Team) TeamAdminDTO {
	names := cfg.ServiceNames()
	scores := make([]TeamScore, 0, len(names))
	for _, svc := range names {
		s, ok := team.Scores[svc]
		if !ok {
			continue
		}
		scores = append(scores, TeamScore{Name: svc, Score: s.Score, Ups: s.History})
	}
	return TeamAdminDTO{
		Name:   team.Name,
		Env:    team.Env,
		Scores: scores,
		Total:  team.TotalScore(),
	}
}

// TeamScoresResponse is the body for GET /api/team/:team/scores: one
// team's own score breakdown, without its env (which may hold
// TEAM_PASSWORD).
type TeamScoresResponse struct {
	Name     string      `json:"name"`
	Services []TeamScore `json:"services"`
	Score    uint32      `json:"score"`
}

func buildTeamScoresResponse(cfg *game.Config, team *game.Team) TeamScoresResponse {
	dto := buildTeamAdminDTO(cfg, team)
	return TeamScoresResponse{Name: dto.Name, Services: dto.Scores, Score: dto.Total}
}

// PasswordGroupsResponse is the body for GET /api/team/:team/passwords.
type PasswordGroupsResponse struct {
	Groups []string `json:"groups"`
}

// CredentialDTO mirrors password.Credential for JSON bodies.
type CredentialDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordUploadRequest is the body for POST …/passwords/:group: the full
// set of credentials to merge into that group by username.
type PasswordUploadRequest struct {
	Credentials []CredentialDTO `json:"credentials"`
}

// ConfigDump is the body for GET /api/admin/config.
type ConfigDump struct {
	Teams    []TeamAdminDTO `json:"teams"`
	Services []ServiceDTO   `json:"services"`
	Time     TimeResponse   `json:"time"`
}

func buildConfigDump(cfg *game.Config) ConfigDump {
	dump := ConfigDump{Time: buildTimeResponse(cfg)}
	for _, name := range cfg.TeamNames() {
		dump.Teams = append(dump.Teams, buildTeamAdminDTO(cfg, cfg.Teams[name]))
	}
	for _, svc := range cfg.Services {
		dump.Services = append(dump.Services, ServiceDTO{Name: svc.Name, Command: svc.Command, Multiplier: svc.Multiplier})
	}
	return dump
}

// SaveRequest is the body for POST /api/admin/saves and
// POST /api/admin/saves/load.
type SaveRequest struct {
	Name string `json:"name"`
}

// InjectAdminRequest is the body for POST /api/admin/injects, mirroring
// the fixture wire shape so admins can author injects the same way the
// resource YAML does.
type InjectAdminRequest struct {
	Name        string            `json:"name"`
	Markdown    string            `json:"markdown"`
	FileTypes   *[]string         `json:"file_types,omitempty"`
	Duration    *uint32           `json:"duration,omitempty"`
	SideEffects []json.RawMessage `json:"side_effects,omitempty"`
	Start       uint32            `json:"start"`
	NoSubmit    bool              `json:"no_submit,omitempty"`
}

// toInject builds a *game.Inject from the request, applying the same
// file-type policy rules the fixture loader uses.
func (r InjectAdminRequest) toInject() (*game.Inject, error) {
	inj := &game.Inject{
		UUID:     uuid.New(),
		Name:     r.Name,
		Markdown: r.Markdown,
		Start:    r.Start,
	}
	if r.Duration == nil {
		inj.Sticky = true
	} else {
		inj.Duration = *r.Duration
	}

	switch {
	case r.NoSubmit:
		inj.FileType = mo.Some([]string{})
	case r.FileTypes != nil:
		inj.FileType = mo.Some(*r.FileTypes)
	default:
		inj.FileType = mo.None[[]string]()
	}

	for _, raw := range r.SideEffects {
		se, err := game.UnmarshalSideEffect(raw)
		if err != nil {
			return nil, err
		}
		inj.SideEffects = append(inj.SideEffects, se)
	}
	return inj, nil
}

// buildInjectResponseDTO renders an inject's markdown for the given team
// and derives the team-facing file-type metadata.
func buildInjectResponseDTO(ctx context.Context, markdown *game.MarkdownCache, inj *game.Inject, team *game.Team) (InjectResponseDTO, error) {
	html, err := markdown.Render(ctx, inj, team)
	if err != nil {
		return InjectResponseDTO{}, err
	}
	types, ok := inj.FileType.Get()
	dto := InjectResponseDTO{
		UUID: inj.UUID,
		Name: inj.Name,
		HTML: html,
	}
	if ok {
		dto.FileType = types
		dto.NoSubmit = len(types) == 0
	}
	return dto, nil
}
