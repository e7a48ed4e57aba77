// Package snapshot persists and restores the authoritative game state as
// JSON, including the rotating autosave ring and the password groups that
// live alongside the team roster on disk.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/password"
)

// AutosaveSlots is the size of the rotating autosave ring.
const AutosaveSlots = 12

// Save is the on-disk representation of one save file: the full game
// state plus the password groups for every team, so a save is a complete
// point-in-time restore, not just the scoreboard.
type Save struct {
	SavedAt   int64                              `json:"saved_at"`
	Config    *game.Config                       `json:"config"`
	Passwords map[string][]password.GroupPayload `json:"passwords"`
}

// Manager reads and writes saves under resourceDir/save, including the
// autosave subdirectory. It implements scheduler.Persister.
type Manager struct {
	resourceDir string
	passwords   *password.Store
}

// NewManager builds a Manager rooted at resourceDir.
func NewManager(resourceDir string, passwords *password.Store) *Manager {
	return &Manager{resourceDir: resourceDir, passwords: passwords}
}

func (m *Manager) saveDir() string {
	return filepath.Join(m.resourceDir, "save")
}

func (m *Manager) autosaveDir() string {
	return filepath.Join(m.saveDir(), "autosave")
}

// ValidateFilesystem ensures the save and autosave directories exist.
func (m *Manager) ValidateFilesystem() error {
	return os.MkdirAll(m.autosaveDir(), 0o755)
}

// Save writes cfg to <resourceDir>/save/<name>.json, including a snapshot
// of every team's password groups read from the password store.
func (m *Manager) Save(cfg *game.Config, name string) error {
	save := Save{
		SavedAt:   time.Now().UnixMilli(),
		Config:    cfg,
		Passwords: m.collectPasswords(cfg),
	}
	return m.writeSave(name, save)
}

// Autosave writes cfg to the rotating autosave slot, implementing
// scheduler.Persister.
func (m *Manager) Autosave(cfg *game.Config, slot int) error {
	return m.Save(cfg, filepath.Join("autosave", "autosave-"+strconv.Itoa(slot)))
}

func (m *Manager) collectPasswords(cfg *game.Config) map[string][]password.GroupPayload {
	if m.passwords == nil {
		return nil
	}
	out := make(map[string][]password.GroupPayload, len(cfg.Teams))
	for name := range cfg.Teams {
		groups, err := m.passwords.ExportTeam(name)
		if err != nil {
			continue
		}
		out[name] = groups
	}
	return out
}

func (m *Manager) writeSave(name string, save Save) error {
	path := filepath.Join(m.saveDir(), name+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(save)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads and parses a save file by name (without the .json extension).
func (m *Manager) Load(name string) (*Save, error) {
	path := filepath.Join(m.saveDir(), name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var save Save
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, err
	}
	return &save, nil
}

// Restore loads a save and applies its password groups to the password
// store, returning the restored Config for the caller to install into the
// Store.
func (m *Manager) Restore(name string) (*game.Config, error) {
	save, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	if m.passwords != nil {
		if err := m.passwords.ImportAll(save.Passwords); err != nil {
			return nil, err
		}
	}
	return save.Config, nil
}

// ListSaves returns every top-level save name, sorted, excluding the
// autosave subdirectory.
func (m *Manager) ListSaves() ([]string, error) {
	return listJSONNames(m.saveDir())
}

// ListAutosaves returns every autosave slot name present on disk, sorted.
func (m *Manager) ListAutosaves() ([]string, error) {
	return listJSONNames(m.autosaveDir())
}

func listJSONNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(names)
	return names, nil
}
