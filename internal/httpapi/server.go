package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bmin023/scoreboard/internal/auth"
	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/password"
	"github.com/bmin023/scoreboard/internal/scheduler"
	"github.com/bmin023/scoreboard/internal/settings"
	"github.com/bmin023/scoreboard/internal/snapshot"
)

// maxUploadBytes bounds one inject submission's multipart body.
const maxUploadBytes = 10 << 20

// Server wires the authoritative Store and its satellite components
// (markdown cache, password groups, saves, the tick scheduler) to the
// HTTP surface documented for the scoreboard.
type Server struct {
	store     *game.Store
	markdown  *game.MarkdownCache
	passwords *password.Store
	saves     *snapshot.Manager
	sched     *scheduler.Scheduler
	admin     *auth.AdminAuthenticator
	teamChain *auth.ChainAuthenticator
	settings  settings.Settings
	logger    zerolog.Logger
}

// teamLookup resolves a team against the authoritative config without
// exposing the Store's locking discipline outside this package.
func (s *Server) teamLookup(name string) (*game.Team, bool) {
	var team *game.Team
	var ok bool
	s.store.View(func(cfg *game.Config) {
		team, ok = cfg.Teams[name]
	})
	return team, ok
}

// NewServer builds a Server. sched may be nil for tests that drive the
// tick loop manually instead of letting it run in the background.
func NewServer(
	store *game.Store,
	markdown *game.MarkdownCache,
	passwords *password.Store,
	saves *snapshot.Manager,
	sched *scheduler.Scheduler,
	s settings.Settings,
	logger zerolog.Logger,
) *Server {
	srv := &Server{
		store:     store,
		markdown:  markdown,
		passwords: passwords,
		saves:     saves,
		sched:     sched,
		admin:     auth.NewAdminAuthenticator(s.AdminSecret),
		settings:  s,
		logger:    logger,
	}

	srv.teamChain = auth.NewChainAuthenticator(
		srv.admin,
		auth.NewTeamCredentialAuthenticator(srv.teamLookup),
		auth.NewOpenTeamAuthenticator(srv.teamLookup),
	)
	return srv
}

// Handler returns the fully wired HTTP handler, including request logging.
func (s *Server) Handler() http.Handler {
	return requestLogger(s.logger)(s.routes())
}
