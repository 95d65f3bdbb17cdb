// Command watch follows one tournament on the tournament service, keeps the
// level countdown running and serves the composed view over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poker-platform/tournament-sync/internal/countdown"
	"poker-platform/tournament-sync/internal/logging"
	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/remote"
	"poker-platform/tournament-sync/internal/server/status"
	"poker-platform/tournament-sync/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := LoadConfig()
	logging.Setup(cfg.LogLevel, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("watcher failed")
	}
	log.Info().Msg("watcher shutdown complete")
}

// storeOptions pins identity from PLAYER_ID. When the watcher registers
// PLAYER_NAME itself, another human in the tournament must not be taken
// for the viewer.
func storeOptions(cfg Config) []store.Option {
	opts := []store.Option{store.WithPollInterval(cfg.PollInterval)}
	switch {
	case cfg.PlayerID != "":
		opts = append(opts, store.WithPlayerID(cfg.PlayerID))
	case cfg.PlayerName != "":
		opts = append(opts, store.WithoutIdentityInference())
	}
	return opts
}

// registerAtStartup registers PLAYER_NAME unless the viewer's id is already
// known.
func registerAtStartup(ctx context.Context, st *store.Store, cfg Config) {
	if cfg.PlayerName == "" || st.PlayerID() != "" {
		return
	}
	err := st.RegisterForTournament(ctx, store.RegisterParams{
		TournamentID: cfg.TournamentID,
		PlayerName:   cfg.PlayerName,
	})
	if err != nil {
		log.Warn().Err(err).Str("player_name", cfg.PlayerName).Msg("startup registration failed")
	}
}

func run(cfg Config) error {
	if cfg.TournamentID == "" {
		return errors.New("TOURNAMENT_ID is required")
	}

	client, err := remote.NewClient(cfg.ServiceURL, remote.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return err
	}

	st := store.New(client, storeOptions(cfg)...)
	defer st.Close()

	timer := countdown.New()
	defer timer.Stop()
	defer follow(st, timer)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.LoadTournament(ctx, cfg.TournamentID); err != nil {
		log.Warn().Err(err).Str("tournament_id", cfg.TournamentID).Msg("initial load failed, polling will retry")
	}
	registerAtStartup(ctx, st, cfg)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	server := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: status.NewRouter(status.Watcher{
			Store:        st,
			Timer:        timer,
			TournamentID: cfg.TournamentID,
		}, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		poller, err := st.StartPolling(gCtx, cfg.TournamentID)
		if err != nil {
			return err
		}
		log.Info().
			Str("tournament_id", cfg.TournamentID).
			Dur("interval", cfg.PollInterval).
			Msg("polling started")
		<-gCtx.Done()
		poller.Stop()
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("status server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
