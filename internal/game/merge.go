package game

import "github.com/rs/zerolog"

// SmartCombine merges other — a clone that has just finished a probe
// batch — back into c, the authoritative state, with c taking precedence
// on structure. This is the heart of the read-mostly discipline: a long
// probe batch runs against a snapshot while admin mutations continue
// against the authoritative Config, and this merge reconciles the two
// without losing either side's work.
//
//   - For every team present in both, every service score present in c's
//     team is replaced with other's value, so scores advance. Services in
//     other that no longer exist in c are ignored (they were deleted from
//     c while the batch ran, and that delete wins). Teams present only in
//     other are ignored too: other is a clone of a prior c, so a team
//     missing from c now means it was deleted mid-tick and the delete
//     wins.
//   - For every inject in other matched by uuid: if other marked it
//     completed, c has not yet, and c's own copy has actually ended
//     relative to c's authoritative run time, c's copy is marked
//     completed. Injects other references that c no longer has are
//     dropped with a log line rather than resurrected.
//
// Only forward progress propagates: smart-combine never regresses a
// score, un-deletes a service, or reverts an env edit made on c during
// the batch. That is intentional — concurrent admin mutation on the
// authoritative state always wins over the stale clone.
func (c *Config) SmartCombine(other *Config, logger *zerolog.Logger) {
	for name, otherTeam := range other.Teams {
		team, ok := c.Teams[name]
		if !ok {
			continue
		}
		for svcName, newScore := range otherTeam.Scores {
			if _, stillTracked := team.Scores[svcName]; !stillTracked {
				continue
			}
			if _, exists := c.ServiceByName(svcName); !exists {
				continue
			}
			team.Scores[svcName] = newScore
		}
	}

	nowMinutes := c.Clock.RunMinutes()
	for _, otherInject := range other.Injects {
		cur, ok := c.InjectByUUID(otherInject.UUID)
		if !ok {
			if logger != nil {
				logger.Warn().
					Str("inject", otherInject.Name).
					Msg("could not resolve inject during merge; it was probably removed during a score tick")
			}
			continue
		}
		if otherInject.Completed && !cur.Completed && cur.PhaseAt(nowMinutes) == PhaseEnded {
			cur.Completed = true
		}
	}
}

// MergeNewInjects appends injects from fresh whose Name does not already
// match an existing inject, by name rather than UUID since fresh comes
// from a fixture-file reload that assigns new UUIDs on every parse. Used
// to pick up injects an admin appends to the injects file while the
// exercise is already running, without disturbing ones already in play.
func (c *Config) MergeNewInjects(fresh []*Inject) int {
	existing := make(map[string]struct{}, len(c.Injects))
	for _, inj := range c.Injects {
		existing[inj.Name] = struct{}{}
	}

	added := 0
	for _, inj := range fresh {
		if _, ok := existing[inj.Name]; ok {
			continue
		}
		c.Injects = append(c.Injects, inj)
		added++
	}
	return added
}
