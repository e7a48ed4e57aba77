package game

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Config is the authoritative game-state aggregate: every team, the
// service catalog, every inject, and the game clock. A *Config must only
// be mutated through its methods so the invariants those methods enforce
// stay intact; Store is responsible for the read-clone-merge discipline
// that guards concurrent access.
type Config struct {
	Teams    map[string]*Team
	Services []Service
	Injects  []*Inject
	Clock
}

// NewConfig builds an empty, inactive Config. Fixtures are loaded
// externally (internal/fixtures) and fed in via AddTeam/AddService and
// by assigning Injects.
func NewConfig() *Config {
	return &Config{
		Teams: make(map[string]*Team),
	}
}

// configWire is the JSON wire representation of a Config. Config defines
// its own MarshalJSON/UnmarshalJSON rather than letting Clock's promote:
// an embedded type's json.Marshaler would otherwise take over encoding of
// the whole aggregate and silently drop Teams, Services, and Injects.
type configWire struct {
	Teams    map[string]*Team `json:"teams"`
	Services []Service        `json:"services"`
	Injects  []*Inject        `json:"injects"`
	Clock    Clock            `json:"clock"`
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configWire{
		Teams:    c.Teams,
		Services: c.Services,
		Injects:  c.Injects,
		Clock:    c.Clock,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Config) UnmarshalJSON(data []byte) error {
	var wire configWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.Teams = wire.Teams
	c.Services = wire.Services
	c.Injects = wire.Injects
	c.Clock = wire.Clock
	return nil
}

// TeamNames returns every team name in sorted order, giving deterministic
// iteration for serialization and the scores API.
func (c *Config) TeamNames() []string {
	names := make([]string, 0, len(c.Teams))
	for name := range c.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServiceNames returns the service catalog's names in catalog order.
func (c *Config) ServiceNames() []string {
	return lo.Map(c.Services, func(s Service, _ int) string { return s.Name })
}

// ServiceByName returns the service with the given name, if present.
func (c *Config) ServiceByName(name string) (Service, bool) {
	for _, s := range c.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// InjectByUUID returns the inject with the given uuid, if present.
func (c *Config) InjectByUUID(id uuid.UUID) (*Inject, bool) {
	for _, i := range c.Injects {
		if i.UUID == id {
			return i, true
		}
	}
	return nil, false
}

// AddTeam registers a new team with default scores for every current
// service and no TEAM_PASSWORD. Invariant 1 holds by construction.
func (c *Config) AddTeam(name string) (*Team, error) {
	if name == "" {
		return nil, newErr(ErrBadValue, "team name must not be empty")
	}
	if _, exists := c.Teams[name]; exists {
		return nil, newErr(ErrAlreadyExists, "team %q already exists", name)
	}
	team := NewTeam(name, c.Services)
	c.Teams[name] = team
	return team, nil
}

// RemoveTeam deletes a team outright. No invariant depends on team
// deletion cleanup.
func (c *Config) RemoveTeam(name string) error {
	if _, exists := c.Teams[name]; !exists {
		return newErr(ErrDoesNotExist, "team %q does not exist", name)
	}
	delete(c.Teams, name)
	return nil
}

// AddService inserts a new service into the catalog and seeds a default
// Score for it in every team, preserving invariant 1.
func (c *Config) AddService(svc Service) error {
	if !svc.IsValid() {
		return newErr(ErrBadValue, "service %q is not valid", svc.Name)
	}
	if _, exists := c.ServiceByName(svc.Name); exists {
		return newErr(ErrAlreadyExists, "service %q already exists", svc.Name)
	}
	c.Services = append(c.Services, svc)
	for _, t := range c.Teams {
		t.Scores[svc.Name] = &Score{}
	}
	return nil
}

// RemoveService removes a service from the catalog. Team score maps keep
// the stale key until a path that rebuilds from Services runs; read paths
// are expected to filter through c.Services.
func (c *Config) RemoveService(name string) error {
	idx := -1
	for i, s := range c.Services {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newErr(ErrDoesNotExist, "service %q does not exist", name)
	}
	c.Services = append(c.Services[:idx], c.Services[idx+1:]...)
	return nil
}

// EditService validates and replaces a service in place. If the name
// changes, every team's Score under the old name is moved to the new
// name, preserving accumulated score, and the catalog entry is replaced
// without disturbing list order.
func (c *Config) EditService(oldName string, svc Service) error {
	if !svc.IsValid() {
		return newErr(ErrBadValue, "service %q is not valid", svc.Name)
	}
	if svc.Name != oldName {
		if _, exists := c.ServiceByName(svc.Name); exists {
			return newErr(ErrAlreadyExists, "service %q already exists", svc.Name)
		}
	}
	idx := -1
	for i, s := range c.Services {
		if s.Name == oldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newErr(ErrDoesNotExist, "service %q does not exist", oldName)
	}
	if svc.Name != oldName {
		for _, t := range c.Teams {
			score, had := t.Scores[oldName]
			delete(t.Scores, oldName)
			if !had {
				score = &Score{}
			}
			t.Scores[svc.Name] = score
		}
	}
	c.Services[idx] = svc
	return nil
}

// AddTeamEnv appends a new env key to a team. Fails if the team is
// missing or the key already exists (keys are unique per team).
func (c *Config) AddTeamEnv(team, key, value string) error {
	t, exists := c.Teams[team]
	if !exists {
		return newErr(ErrDoesNotExist, "team %q does not exist", team)
	}
	if key == "" {
		return newErr(ErrBadValue, "env key must not be empty")
	}
	if _, ok := t.envValue(key); ok {
		return newErr(ErrAlreadyExists, "env key %q already exists", key)
	}
	t.Env = append(t.Env, EnvPair{Key: key, Value: value})
	return nil
}

// EditTeamEnv overwrites the value of an existing env key, preserving its
// position in the ordered list.
func (c *Config) EditTeamEnv(team, key, value string) error {
	t, exists := c.Teams[team]
	if !exists {
		return newErr(ErrDoesNotExist, "team %q does not exist", team)
	}
	for i := range t.Env {
		if t.Env[i].Key == key {
			t.Env[i].Value = value
			return nil
		}
	}
	return newErr(ErrDoesNotExist, "env key %q does not exist", key)
}

// DeleteTeamEnv removes an env key from a team.
func (c *Config) DeleteTeamEnv(team, key string) error {
	t, exists := c.Teams[team]
	if !exists {
		return newErr(ErrDoesNotExist, "team %q does not exist", team)
	}
	for i := range t.Env {
		if t.Env[i].Key == key {
			t.Env = append(t.Env[:i], t.Env[i+1:]...)
			return nil
		}
	}
	return newErr(ErrDoesNotExist, "env key %q does not exist", key)
}

// GetTeamWithPassword returns the team if it exists and its TEAM_PASSWORD
// matches, used by the credentialed branch of the auth gate.
func (c *Config) GetTeamWithPassword(name, password string) (*Team, bool) {
	t, exists := c.Teams[name]
	if !exists {
		return nil, false
	}
	want, hasPassword := t.Password()
	if !hasPassword || want != password {
		return nil, false
	}
	return t, true
}

// ResetScores stops the clock, zeros elapsed game time, and resets every
// team's scores to fresh defaults.
func (c *Config) ResetScores() {
	c.Clock.reset()
	for _, t := range c.Teams {
		t.Scores = defaultScores(c.Services)
	}
}

// Clone deep-copies the aggregate so the scheduler can run a probe batch
// against a snapshot without holding the store's lock.
func (c *Config) Clone() *Config {
	clone := &Config{
		Services: append([]Service(nil), c.Services...),
		Teams:    make(map[string]*Team, len(c.Teams)),
		Injects:  make([]*Inject, len(c.Injects)),
		Clock:    c.Clock,
	}
	for name, t := range c.Teams {
		clone.Teams[name] = cloneTeam(t)
	}
	for i, inj := range c.Injects {
		cp := *inj
		cp.SideEffects = append(sideEffectList(nil), inj.SideEffects...)
		clone.Injects[i] = &cp
	}
	return clone
}

func cloneTeam(t *Team) *Team {
	cp := &Team{
		ID:              t.ID,
		Name:            t.Name,
		Env:             append([]EnvPair(nil), t.Env...),
		InjectResponses: append([]InjectResponse(nil), t.InjectResponses...),
		Scores:          make(map[string]*Score, len(t.Scores)),
	}
	for name, s := range t.Scores {
		sc := *s
		sc.History = append([]bool(nil), s.History...)
		cp.Scores[name] = &sc
	}
	return cp
}

// Summary renders a short human-readable dump of the game state, used by
// the CLI status command. It mirrors the original implementation's
// Display impl for Config.
func (c *Config) Summary() string {
	rt := c.RunTime()
	out := "Game time: " + rt.Round(time.Second).String() + "\n"
	for _, name := range c.TeamNames() {
		t := c.Teams[name]
		out += "  " + name + ":\n"
		for _, svc := range c.Services {
			s := t.Scores[svc.Name]
			if s == nil {
				continue
			}
			out += "    " + svc.Name + ": "
			if s.Up {
				out += "up "
			} else {
				out += "down "
			}
			out += strconv.FormatUint(uint64(s.Score), 10) + "\n"
		}
	}
	return out
}
