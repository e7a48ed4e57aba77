package game

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InjectTick advances the inject lifecycle: every non-sticky,
// not-yet-completed inject whose window has ended is marked completed and
// its side effects are collected, then applied in order after the scan
// completes (so a side effect from one inject can never see a half-walked
// inject list). Must be called under the caller's write hold. A side
// effect error is logged and does not roll back the completion; repair is
// left for the next mutation or operator action.
func (c *Config) InjectTick(logger *zerolog.Logger) {
	nowMinutes := c.Clock.RunMinutes()

	var pending []SideEffect
	for _, inj := range c.Injects {
		if inj.Sticky || inj.Completed {
			continue
		}
		if inj.PhaseAt(nowMinutes) != PhaseEnded {
			continue
		}
		inj.Completed = true
		pending = append(pending, inj.SideEffects...)
	}

	for _, se := range pending {
		if err := se.Apply(c); err != nil && logger != nil {
			logger.Error().Err(err).Msg("inject side effect failed; config invariants left for next mutation to repair")
		}
	}
}

// GetInjectsForTeam returns the injects a team should currently see: any
// inject that is active, plus any ended inject that is either sticky or
// still awaits a response the team has not yet submitted.
func (c *Config) GetInjectsForTeam(team *Team) []*Inject {
	nowMinutes := c.Clock.RunMinutes()
	var visible []*Inject
	for _, inj := range c.Injects {
		switch inj.PhaseAt(nowMinutes) {
		case PhaseActive:
			visible = append(visible, inj)
		case PhaseEnded:
			if inj.Sticky {
				visible = append(visible, inj)
				continue
			}
			if inj.responseRequired() && !team.HasResponse(inj.UUID) {
				visible = append(visible, inj)
			}
		}
	}
	return visible
}

// SubmitResponse writes an uploaded submission to
// <resourceDir>/injects/<team>/<inject-derived filename> and records an
// InjectResponse on the team. The late flag is derived from the inject's
// Completed state at the moment of submission, not at upload-processing
// time, so the on-disk filename suffix reflects whether the window had
// already ended.
func (c *Config) SubmitResponse(resourceDir, teamName string, injectUUID uuid.UUID, filename string, data []byte, now time.Time) (InjectResponse, error) {
	team, ok := c.Teams[teamName]
	if !ok {
		return InjectResponse{}, &ResponseError{Kind: ErrTeamNotFound}
	}
	inj, ok := c.InjectByUUID(injectUUID)
	if !ok {
		return InjectResponse{}, &ResponseError{Kind: ErrInjectNotFound}
	}
	if !inj.AllowedExtension(filename) {
		return InjectResponse{}, &ResponseError{Kind: ErrFileType}
	}

	ext := extensionOf(filename)
	late := inj.Completed
	onDiskName := inj.ResponseFilename(ext, late)

	dir := filepath.Join(resourceDir, "injects", teamName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return InjectResponse{}, &ResponseError{Kind: ErrFileIO, Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, onDiskName), data, 0o644); err != nil {
		return InjectResponse{}, &ResponseError{Kind: ErrFileIO, Err: err}
	}

	resp := InjectResponse{
		UUID:       uuid.New(),
		InjectUUID: injectUUID,
		Name:       inj.Name,
		Filename:   onDiskName,
		UploadTime: now.UnixMilli(),
		Late:       late,
	}
	team.InjectResponses = append(team.InjectResponses, resp)
	return resp, nil
}
