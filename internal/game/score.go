package game

// ApplyProbeResult folds one (team, service) probe outcome into the
// config. Must be called with the caller holding a write hold on the
// Config it is applied to. If either the team or the service has since
// been deleted, the update is dropped silently: a side effect may have
// removed the service during the same tick the probe was launched for.
func (c *Config) ApplyProbeResult(teamName, serviceName string, up bool) {
	team, ok := c.Teams[teamName]
	if !ok {
		return
	}
	svc, ok := c.ServiceByName(serviceName)
	if !ok {
		return
	}
	score, ok := team.Scores[serviceName]
	if !ok {
		return
	}
	score.record(up, svc.Multiplier)
}
