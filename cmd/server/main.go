package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examen-portal/internal/bootstrap"
	"examen-portal/internal/config"
	"examen-portal/internal/logging"
	"examen-portal/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.IsProduction())

	stores, err := bootstrap.OpenStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	// warm the connection; the app keeps running and retries on first use
	startCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout()+time.Second)
	if err := stores.Pinger.Ping(startCtx); err != nil {
		log.Warn().Err(err).Msg("store not reachable at startup")
	} else if err := stores.EnsureSchema(startCtx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure unique indexes")
	}
	cancel()

	limiter, rdb := bootstrap.LoginLimiter(context.Background(), cfg)

	r := server.NewRouter(cfg, server.Deps{
		Users:   stores.Users,
		Pinger:  stores.Pinger,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if err := stores.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
