package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scoreboardd",
	Short: "Cyber-defense exercise scoreboard daemon",
	Long: `scoreboardd serves the scoring API for a cyber-defense exercise:
it probes each team's services on a fixed interval, runs the inject
lifecycle, and exposes public, team, and admin HTTP surfaces.`,
}
