package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bmin023/scoreboard/cmd/scoreboardd/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoreboard daemon",
	Long: `Start the scoreboard HTTP server and the background score/autosave
loops. Configuration is read entirely from the environment (SB_*, LOG_*).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	container := di.NewContainer()

	loggerSvc, err := di.Invoke[*di.LoggerService](container)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize logger")
		return err
	}
	log.Logger = loggerSvc.Logger

	settingsSvc := di.MustInvoke[*di.SettingsService](container)

	serverSvc, err := di.Invoke[*di.ServerService](container)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize services")
		return err
	}

	schedSvc := di.MustInvoke[*di.SchedulerService](container)
	ctx, cancelBackground := context.WithCancel(context.Background())
	schedSvc.Scheduler.Start(ctx)
	defer cancelBackground()

	watcherSvc := di.MustInvoke[*di.FixturesWatcherService](container)
	if watcherSvc.Watcher != nil {
		go func() {
			if err := watcherSvc.Watcher.Watch(ctx); err != nil {
				log.Error().Err(err).Msg("fixtures watcher stopped")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              settingsSvc.Settings.ListenAddr(),
		Handler:           serverSvc.Handler.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return runWithGracefulShutdown(httpServer, container, settingsSvc.Settings.ListenAddr())
}

// runWithGracefulShutdown handles signal-based graceful shutdown, draining
// in-flight requests before tearing down the DI container (which stops the
// scheduler loops and closes the cache).
func runWithGracefulShutdown(server *http.Server, container *di.Container, listenAddr string) error {
	done := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info().Msg("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
		if err := container.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("service shutdown error")
		}

		close(done)
	}()

	log.Info().Str("listen", listenAddr).Msg("starting scoreboardd")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		return err
	}

	<-done
	log.Info().Msg("server stopped")
	return nil
}
