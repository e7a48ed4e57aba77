// Package httpapi exposes the scoreboard's public, team-scoped, and admin
// HTTP surface over net/http.ServeMux.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bmin023/scoreboard/internal/game"
)

// ErrorResponse is the JSON body written for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeGameError maps a game.ConfigError or game.ResponseError to its
// documented HTTP status and writes it, falling back to 500 for anything
// else.
func writeGameError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error().Err(err).Msg("unhandled error")
	}
	writeError(w, status, message)
}

func errorStatus(err error) (int, string) {
	var cfgErr *game.ConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Kind {
		case game.ErrBadValue:
			return http.StatusBadRequest, cfgErr.Error()
		case game.ErrAlreadyExists:
			return http.StatusConflict, cfgErr.Error()
		case game.ErrDoesNotExist:
			return http.StatusNotFound, cfgErr.Error()
		}
	}

	var respErr *game.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.Kind {
		case game.ErrTeamNotFound, game.ErrInjectNotFound:
			return http.StatusNotFound, respErr.Error()
		case game.ErrFileType:
			return http.StatusBadRequest, respErr.Error()
		case game.ErrFileIO:
			return http.StatusInternalServerError, respErr.Error()
		}
	}

	return http.StatusInternalServerError, "internal error"
}
