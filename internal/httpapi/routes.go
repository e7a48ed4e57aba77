package httpapi

import "net/http"

// routes registers the scoreboard's public, team-scoped, and admin HTTP
// surface on a fresh ServeMux using Go's method-pattern routing.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Public.
	mux.HandleFunc("GET /api/scores", s.handleScores)
	mux.HandleFunc("GET /api/time", s.handleTime)
	mux.HandleFunc("GET /api/info", s.handleInfo)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	// Team-scoped.
	mux.HandleFunc("GET /api/team/{team}/scores", s.requireTeamScope(s.handleTeamScores))
	mux.HandleFunc("GET /api/team/{team}/passwords", s.requireTeamScope(s.handleTeamPasswordGroups))
	mux.HandleFunc("POST /api/team/{team}/passwords/{group}", s.requireTeamScope(s.handleTeamPasswordUpload))
	mux.HandleFunc("GET /api/team/{team}/injects", s.requireTeamScope(s.handleTeamInjects))
	mux.HandleFunc("GET /api/team/{team}/injects/{uuid}", s.requireTeamScope(s.handleTeamInject))
	mux.HandleFunc("POST /api/team/{team}/injects/{uuid}/upload", s.requireTeamScope(s.handleTeamInjectUpload))

	// Admin.
	mux.HandleFunc("GET /api/admin/config", s.requireAdmin(s.handleAdminConfig))
	mux.HandleFunc("GET /api/admin/status", s.requireAdmin(s.handleAdminStatus))

	mux.HandleFunc("POST /api/admin/service", s.requireAdmin(s.handleAdminAddService))
	mux.HandleFunc("GET /api/admin/service/{service}", s.requireAdmin(s.handleAdminGetService))
	mux.HandleFunc("POST /api/admin/service/{service}", s.requireAdmin(s.handleAdminEditService))
	mux.HandleFunc("DELETE /api/admin/service/{service}", s.requireAdmin(s.handleAdminDeleteService))

	mux.HandleFunc("POST /api/admin/team", s.requireAdmin(s.handleAdminAddTeam))
	mux.HandleFunc("GET /api/admin/team/{team}", s.requireAdmin(s.handleAdminGetTeam))
	mux.HandleFunc("DELETE /api/admin/team/{team}", s.requireAdmin(s.handleAdminDeleteTeam))
	mux.HandleFunc("POST /api/admin/team/{team}/env", s.requireAdmin(s.handleAdminAddTeamEnv))
	mux.HandleFunc("POST /api/admin/team/{team}/env/{key}", s.requireAdmin(s.handleAdminEditTeamEnv))
	mux.HandleFunc("DELETE /api/admin/team/{team}/env/{key}", s.requireAdmin(s.handleAdminDeleteTeamEnv))

	mux.HandleFunc("POST /api/admin/start", s.requireAdmin(s.handleAdminStart))
	mux.HandleFunc("POST /api/admin/stop", s.requireAdmin(s.handleAdminStop))
	mux.HandleFunc("POST /api/admin/reset", s.requireAdmin(s.handleAdminReset))

	mux.HandleFunc("GET /api/admin/saves", s.requireAdmin(s.handleAdminListSaves))
	mux.HandleFunc("POST /api/admin/saves", s.requireAdmin(s.handleAdminSave))
	mux.HandleFunc("POST /api/admin/saves/load", s.requireAdmin(s.handleAdminLoadSave))

	mux.HandleFunc("GET /api/admin/injects", s.requireAdmin(s.handleAdminListInjects))
	mux.HandleFunc("POST /api/admin/injects", s.requireAdmin(s.handleAdminAddInject))
	mux.HandleFunc("GET /api/admin/injects/{uuid}", s.requireAdmin(s.handleAdminGetInject))
	mux.HandleFunc("DELETE /api/admin/injects/{uuid}", s.requireAdmin(s.handleAdminDeleteInject))

	return mux
}
