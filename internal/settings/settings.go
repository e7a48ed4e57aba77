// Package settings loads the scoreboard daemon's process configuration
// from environment variables, the way the original checker reads its
// environment at startup.
package settings

import (
	"os"
	"strconv"
)

// Settings holds everything the daemon needs to boot: where the resource
// fixtures live, which port to serve on, and the admin secret.
type Settings struct {
	// ResourceDir is the root directory probe commands run from and
	// fixtures/saves/passwords are read from and written to.
	ResourceDir string
	// TeamsFile, ServicesFile, InjectsFile are paths relative to
	// ResourceDir unless given as absolute paths.
	TeamsFile    string
	ServicesFile string
	InjectsFile  string
	// Port is the HTTP listen port.
	Port string
	// AdminSecret authenticates the admin HTTP surface. Empty means admin
	// endpoints are unreachable, not open.
	AdminSecret string
	// Logging configures the zerolog output.
	Logging LoggingConfig
}

// Load reads Settings from the process environment, applying spec
// defaults for anything unset.
func Load() Settings {
	return Settings{
		ResourceDir:  getenv("SB_RESOURCE_DIR", "resources"),
		TeamsFile:    getenv("SB_TEAMS", "teams.yaml"),
		ServicesFile: getenv("SB_SERVICES", "services.yaml"),
		InjectsFile:  getenv("SB_INJECTS", "injects.yaml"),
		Port:         getenv("SB_PORT", "8000"),
		AdminSecret:  os.Getenv("SB_ADMIN_SECRET"),
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// ListenAddr returns the address net/http.Server should bind to.
func (s Settings) ListenAddr() string {
	if _, err := strconv.Atoi(s.Port); err != nil {
		return ":8000"
	}
	return ":" + s.Port
}
