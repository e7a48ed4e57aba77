// Package auth implements the scoreboard's three-way authentication gate:
// a shared admin secret, per-team credentials, and an open-team fallback
// for teams that never set a password.
package auth

import "net/http"

// Type identifies which authenticator produced a Result.
type Type string

const (
	// TypeAdmin is the shared admin secret.
	TypeAdmin Type = "admin"
	// TypeTeamCredential is a team authenticating with its own
	// TEAM_PASSWORD.
	TypeTeamCredential Type = "team_credential"
	// TypeOpenTeam is a team with no TEAM_PASSWORD set, identified purely
	// by name.
	TypeOpenTeam Type = "open_team"
	// TypeNone means no authenticator in the chain accepted the request.
	TypeNone Type = "none"
)

// Result is the outcome of one authentication attempt.
type Result struct {
	// Type indicates which authenticator produced this result.
	Type Type
	// Error describes why authentication failed; empty when Valid.
	Error string
	// TeamName is set when the authenticated principal is a team.
	TeamName string
	// Valid indicates whether authentication succeeded.
	Valid bool
}

// Authenticator validates one kind of credential against a request.
type Authenticator interface {
	Validate(r *http.Request) Result
	Type() Type
}
