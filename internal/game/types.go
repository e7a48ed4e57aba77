// Package game implements the scoreboard's authoritative game-state engine:
// the team/service/inject aggregate, its mutation operations, score
// accumulation, the inject lifecycle, and the read-clone-merge discipline
// that lets the scheduler run long probe batches without blocking readers.
package game

import "github.com/google/uuid"

// AdminID is the fixed, well-known identifier for the admin principal.
// It is not a secret; authentication of the admin principal is done via
// the shared admin password, not this id.
var AdminID = uuid.MustParse("00000000-0000-4000-a000-000000000adf")

// historyCap is the maximum number of up/down samples retained per score.
const historyCap = 10

// Score tracks one team's accumulated points and uptime history for one
// service.
type Score struct {
	History []bool `json:"history"`
	Score   uint32 `json:"score"`
	Up      bool   `json:"up"`
}

// record pushes a new up/down sample to the front of the history, evicting
// the oldest sample once the history exceeds historyCap, and advances the
// cumulative score when the service was up.
func (s *Score) record(up bool, multiplier uint8) {
	s.Up = up
	if up {
		s.Score += uint32(multiplier)
	}
	s.History = append([]bool{up}, s.History...)
	if len(s.History) > historyCap {
		s.History = s.History[:historyCap]
	}
}

// Service is one deployed health-checked target. A Service is valid iff
// both Name and Command are non-empty.
type Service struct {
	Name       string `json:"name"`
	Command    string `json:"command"`
	Multiplier uint8  `json:"multiplier"`
}

// IsValid reports whether the service has the minimum required fields.
func (s Service) IsValid() bool {
	return s.Name != "" && s.Command != ""
}

// EnvPair is one (key, value) entry in a team's environment. Order is
// significant: later entries with the same key override earlier ones when
// applied to a probe's environment.
type EnvPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TeamPasswordKey is the special env key that, when present, is the team's
// login secret.
const TeamPasswordKey = "TEAM_PASSWORD"

// Team is one competing team: its id, display name, per-service scores,
// ordered environment, and the inject responses it has submitted.
type Team struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Scores          map[string]*Score `json:"scores"`
	Env             []EnvPair         `json:"env"`
	InjectResponses []InjectResponse  `json:"inject_responses"`
}

// NewTeam creates a team with a fresh random id and a default Score for
// every given service.
func NewTeam(name string, services []Service) *Team {
	return &Team{
		ID:     uuid.New(),
		Name:   name,
		Scores: defaultScores(services),
		Env:    nil,
	}
}

func defaultScores(services []Service) map[string]*Score {
	scores := make(map[string]*Score, len(services))
	for _, s := range services {
		scores[s.Name] = &Score{}
	}
	return scores
}

// TotalScore sums the score across every service the team has a Score for.
func (t *Team) TotalScore() uint32 {
	var total uint32
	for _, s := range t.Scores {
		total += s.Score
	}
	return total
}

// Password returns the team's TEAM_PASSWORD value, if set.
func (t *Team) Password() (string, bool) {
	for _, p := range t.Env {
		if p.Key == TeamPasswordKey {
			return p.Value, true
		}
	}
	return "", false
}

// envValue looks up a single env key.
func (t *Team) envValue(key string) (string, bool) {
	for _, p := range t.Env {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// ResponsesFor returns every InjectResponse the team submitted for the
// given inject.
func (t *Team) ResponsesFor(injectUUID uuid.UUID) []InjectResponse {
	var out []InjectResponse
	for _, r := range t.InjectResponses {
		if r.InjectUUID == injectUUID {
			out = append(out, r)
		}
	}
	return out
}

// HasResponse reports whether the team has submitted any response for the
// given inject.
func (t *Team) HasResponse(injectUUID uuid.UUID) bool {
	for _, r := range t.InjectResponses {
		if r.InjectUUID == injectUUID {
			return true
		}
	}
	return false
}

// InjectResponse records one file submission a team made against an inject.
type InjectResponse struct {
	UUID       uuid.UUID `json:"uuid"`
	InjectUUID uuid.UUID `json:"inject_uuid"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	UploadTime int64     `json:"upload_time"`
	Late       bool      `json:"late"`
}
