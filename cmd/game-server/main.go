package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"house-edge/internal/app/account"
	"house-edge/internal/config"
	"house-edge/internal/logging"
	"house-edge/internal/store"
	httptransport "house-edge/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		logging.Init(config.LogConfig{})
		log.Fatal().Err(err).Msg("load config failed")
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	if err := store.MigrateUp(cfg.PostgresDSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.OwnerUsername != "" && cfg.OwnerPassword != "" {
		accountSvc := account.NewService(st, cfg)
		if err := accountSvc.EnsureOwner(context.Background(), cfg.OwnerUsername, cfg.OwnerPassword); err != nil {
			log.Fatal().Err(err).Msg("seed owner account failed")
		}
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepExpiredSessions(sweepCtx, st)

	r := httptransport.NewRouter(st, cfg)
	httptransport.LogRoutes(r)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

// sweepExpiredSessions deletes expired sessions hourly. Lookups already
// filter on expires_at, so the sweep only reclaims space.
func sweepExpiredSessions(ctx context.Context, st *store.Store) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.DeleteExpiredSessions(ctx)
			if err != nil {
				log.Error().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("expired sessions removed")
			}
		}
	}
}
