// Package probe runs a single service-check command against a team's
// environment and reduces the result to a plain up/down outcome.
package probe

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// Timeout bounds how long a single probe command may run before it is
// killed and treated as down.
const Timeout = 5 * time.Second

// Result is the outcome of running one probe command.
type Result struct {
	// Up is true only when the command exited zero within Timeout.
	Up bool
	// Err is non-nil when the probe could not even be evaluated for
	// up/down (a spawn failure), as opposed to a normal nonzero exit or a
	// timeout, both of which count as a clean "down" with Err left nil.
	Err error
	// TimedOut reports whether the command was killed for exceeding
	// Timeout.
	TimedOut bool
	Output   string
}

// Run executes command via "bash -c" with a cleared environment seeded
// with only PATH and the team's own env pairs, so one team's probe can
// never see another team's secrets or the daemon's own environment. The
// command is killed if it runs longer than Timeout.
func Run(ctx context.Context, command string, env map[string]string) Result {
	return RunIn(ctx, "", command, env)
}

// RunIn is Run with an explicit working directory, used when a probe
// command expects to find supporting files relative to the resource
// directory.
func RunIn(ctx context.Context, dir, command string, env map[string]string) Result {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	cmd.Dir = dir
	cmd.Env = buildEnv(env)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	result := Result{Output: out.String()}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		result.Up = false
	case err == nil:
		result.Up = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Nonzero exit: a normal down, not an infrastructure failure.
			result.Up = false
		} else {
			// Could not even spawn bash itself.
			result.Err = err
			result.Up = false
		}
	}
	return result
}

// defaultPath is used when the daemon's own PATH is unset, so probes still
// have a usable shell environment.
const defaultPath = "/usr/bin:/bin:/usr/sbin:/sbin"

// buildEnv produces bash's environment: only PATH from the host process
// plus the team-scoped pairs, deliberately excluding everything else the
// daemon process was started with.
func buildEnv(env map[string]string) []string {
	path := os.Getenv("PATH")
	if path == "" {
		path = defaultPath
	}
	out := []string{"PATH=" + path}
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}

// LogResult emits a debug-level line describing a completed probe, used by
// the tick scheduler after each service check.
func LogResult(logger *zerolog.Logger, team, service string, r Result) {
	if logger == nil {
		return
	}
	ev := logger.Debug().Str("team", team).Str("service", service).Bool("up", r.Up)
	if r.TimedOut {
		ev = ev.Bool("timed_out", true)
	}
	if r.Err != nil {
		ev = ev.AnErr("error", r.Err)
	}
	ev.Msg("probe completed")
}
