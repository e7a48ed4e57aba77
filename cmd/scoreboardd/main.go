// Package main is the entry point for scoreboardd, the cyber-defense
// exercise scoreboard daemon.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("scoreboardd exited with error")
		os.Exit(1)
	}
}
