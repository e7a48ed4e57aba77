// Package fixtures loads the read-only initial game state — teams,
// services, and injects — from YAML files in the resource directory. It
// is the only place in the repository that parses YAML; everything past
// this boundary works with already-typed game.* values.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"gopkg.in/yaml.v3"

	"github.com/bmin023/scoreboard/internal/game"
)

// Names are the default fixture filenames, overridable via settings.
const (
	DefaultTeamsFile    = "teams.yaml"
	DefaultServicesFile = "services.yaml"
	DefaultInjectsFile  = "injects.yaml"
)

// Loader reads fixtures from a resource directory.
type Loader struct {
	ResourceDir  string
	TeamsFile    string
	ServicesFile string
	InjectsFile  string
}

// NewLoader builds a Loader with the default fixture filenames.
func NewLoader(resourceDir string) *Loader {
	return &Loader{
		ResourceDir:  resourceDir,
		TeamsFile:    DefaultTeamsFile,
		ServicesFile: DefaultServicesFile,
		InjectsFile:  DefaultInjectsFile,
	}
}

// Load reads all three fixture files and assembles a fresh Config. Services
// are loaded first since team scores are seeded from the service catalog.
func (l *Loader) Load() (*game.Config, error) {
	services, err := l.loadServices()
	if err != nil {
		return nil, fmt.Errorf("fixtures: services: %w", err)
	}

	cfg := game.NewConfig()
	for _, svc := range services {
		if err := cfg.AddService(svc); err != nil {
			return nil, fmt.Errorf("fixtures: services: %w", err)
		}
	}

	if err := l.loadTeams(cfg); err != nil {
		return nil, fmt.Errorf("fixtures: teams: %w", err)
	}

	injects, err := l.loadInjects()
	if err != nil {
		return nil, fmt.Errorf("fixtures: injects: %w", err)
	}
	cfg.Injects = injects

	return cfg, nil
}

func (l *Loader) readFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(l.ResourceDir, name))
}

// teamYAML is a mapping of env key to value for one team.
type teamYAML map[string]string

func (l *Loader) loadTeams(cfg *game.Config) error {
	data, err := l.readFile(l.TeamsFile)
	if err != nil {
		return err
	}
	var raw map[string]teamYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := cfg.AddTeam(name); err != nil {
			return err
		}
		env := raw[name]
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := cfg.AddTeamEnv(name, k, env[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// serviceYAML supports both shorthand ("just a command") and full forms.
type serviceYAML struct {
	Command    string
	Multiplier uint8
}

// UnmarshalYAML accepts either a bare command string or a
// {command, multiplier} mapping.
func (s *serviceYAML) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Command = value.Value
		s.Multiplier = 1
		return nil
	}
	var full struct {
		Command    string `yaml:"command"`
		Multiplier uint8  `yaml:"multiplier"`
	}
	if err := value.Decode(&full); err != nil {
		return err
	}
	s.Command = full.Command
	s.Multiplier = full.Multiplier
	if s.Multiplier == 0 {
		s.Multiplier = 1
	}
	return nil
}

func (l *Loader) loadServices() ([]game.Service, error) {
	data, err := l.readFile(l.ServicesFile)
	if err != nil {
		return nil, err
	}
	var raw map[string]serviceYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make([]game.Service, 0, len(names))
	for _, name := range names {
		s := raw[name]
		services = append(services, game.Service{Name: name, Command: s.Command, Multiplier: s.Multiplier})
	}
	return services, nil
}

// injectYAML is the fixture wire shape for one inject.
type injectYAML struct {
	Markdown    string           `yaml:"markdown"`
	FileTypes   *[]string        `yaml:"file_types"`
	Start       uint32           `yaml:"start"`
	Duration    *uint32          `yaml:"duration"`
	SideEffects []sideEffectYAML `yaml:"side_effects"`
	NoSubmit    bool             `yaml:"no_submit"`
}

// sideEffectYAML tags a fixture-defined side effect the same way the
// runtime JSON wire format does, so authors write one shape everywhere.
type sideEffectYAML struct {
	Type    string       `yaml:"type"`
	Name    string       `yaml:"name"`
	OldName string       `yaml:"old_name"`
	Service game.Service `yaml:"service"`
}

// LoadInjects reads just the injects file, independent of teams and
// services. Used by Watcher to pick up injects an admin appends to the
// fixture file while the exercise is already running, without touching
// the rest of the loaded state.
func (l *Loader) LoadInjects() ([]*game.Inject, error) {
	return l.loadInjects()
}

func (l *Loader) loadInjects() ([]*game.Inject, error) {
	data, err := l.readFile(l.InjectsFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]injectYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	injects := make([]*game.Inject, 0, len(names))
	for _, name := range names {
		y := raw[name]

		inj := &game.Inject{
			UUID:     uuid.New(),
			Name:     name,
			Markdown: y.Markdown,
			Start:    y.Start,
		}
		if y.Duration == nil {
			inj.Sticky = true
		} else {
			inj.Duration = *y.Duration
		}

		switch {
		case y.NoSubmit:
			inj.FileType = mo.Some([]string{})
		case y.FileTypes != nil:
			inj.FileType = mo.Some(*y.FileTypes)
		default:
			inj.FileType = mo.None[[]string]()
		}

		for _, se := range y.SideEffects {
			decoded, err := decodeSideEffect(se)
			if err != nil {
				return nil, fmt.Errorf("inject %q: %w", name, err)
			}
			inj.SideEffects = append(inj.SideEffects, decoded)
		}

		injects = append(injects, inj)
	}
	return injects, nil
}

func decodeSideEffect(se sideEffectYAML) (game.SideEffect, error) {
	switch se.Type {
	case "delete_service":
		return game.DeleteService{Name: se.Name}, nil
	case "add_service":
		return game.AddService{Service: se.Service}, nil
	case "edit_service":
		return game.EditService{OldName: se.OldName, Service: se.Service}, nil
	default:
		return nil, fmt.Errorf("unknown side effect type %q", se.Type)
	}
}
