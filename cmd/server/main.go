package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reeltrivia/internal/app"
	"reeltrivia/internal/config"
	"reeltrivia/internal/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logger.New("reeltrivia")
	cfg := config.Load()

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}

	if !cfg.Enrich.TMDBEnabled() {
		log.Warn("TMDB_API_KEY not set; data-entry movie lookups disabled")
	}
	if !cfg.Enrich.OMDBEnabled() {
		log.Warn("OMDB_API_KEY not set; rating/box office lookups disabled")
	}
	if !cfg.Enrich.GeminiEnabled() {
		log.Warn("GEMINI_API_KEY not set; production date lookups disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.Handler,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
