package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/bmin023/scoreboard/internal/game"
)

// TeamLookup resolves a team by name against the authoritative config,
// without exposing the Store's locking discipline to this package.
type TeamLookup func(name string) (*game.Team, bool)

// TeamCredentialAuthenticator validates a team name (from the request's
// "team" path value) plus an "X-Team-Password" header against that team's
// TEAM_PASSWORD env entry.
type TeamCredentialAuthenticator struct {
	lookup TeamLookup
}

// NewTeamCredentialAuthenticator builds a TeamCredentialAuthenticator
// backed by lookup.
func NewTeamCredentialAuthenticator(lookup TeamLookup) *TeamCredentialAuthenticator {
	return &TeamCredentialAuthenticator{lookup: lookup}
}

// Validate implements Authenticator.
func (a *TeamCredentialAuthenticator) Validate(r *http.Request) Result {
	name := r.PathValue("team")
	if name == "" {
		return Result{Type: TypeTeamCredential, Error: "no team targeted"}
	}
	provided := r.Header.Get("X-Team-Password")
	if provided == "" {
		return Result{Type: TypeTeamCredential, Error: "missing x-team-password header"}
	}

	team, ok := a.lookup(name)
	if !ok {
		return Result{Type: TypeTeamCredential, Error: "team not found"}
	}
	want, hasPassword := team.Password()
	if !hasPassword {
		return Result{Type: TypeTeamCredential, Error: "team has no password configured"}
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(want)) != 1 {
		return Result{Type: TypeTeamCredential, Error: "invalid team password"}
	}
	return Result{Type: TypeTeamCredential, Valid: true, TeamName: name}
}

// Type implements Authenticator.
func (a *TeamCredentialAuthenticator) Type() Type {
	return TypeTeamCredential
}

// OpenTeamAuthenticator silently authenticates a request targeting a team
// with no TEAM_PASSWORD set. It must run after TeamCredentialAuthenticator
// in a chain so a password-protected team is never bypassed.
type OpenTeamAuthenticator struct {
	lookup TeamLookup
}

// NewOpenTeamAuthenticator builds an OpenTeamAuthenticator backed by lookup.
func NewOpenTeamAuthenticator(lookup TeamLookup) *OpenTeamAuthenticator {
	return &OpenTeamAuthenticator{lookup: lookup}
}

// Validate implements Authenticator.
func (a *OpenTeamAuthenticator) Validate(r *http.Request) Result {
	name := r.PathValue("team")
	if name == "" {
		return Result{Type: TypeOpenTeam, Error: "no team targeted"}
	}
	team, ok := a.lookup(name)
	if !ok {
		return Result{Type: TypeOpenTeam, Error: "team not found"}
	}
	if _, hasPassword := team.Password(); hasPassword {
		return Result{Type: TypeOpenTeam, Error: "team requires credentials"}
	}
	return Result{Type: TypeOpenTeam, Valid: true, TeamName: name}
}

// Type implements Authenticator.
func (a *OpenTeamAuthenticator) Type() Type {
	return TypeOpenTeam
}

// IsAuthorizedForTeam reports whether an authentication result grants
// access to the given team's scoped endpoints: either the principal is
// admin, or it is that exact team.
func IsAuthorizedForTeam(result Result, team string) bool {
	if !result.Valid {
		return false
	}
	return result.Type == TypeAdmin || result.TeamName == team
}
