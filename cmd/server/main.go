package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awerner3/mathscribe/internal/api"
	"github.com/awerner3/mathscribe/internal/config"
	"github.com/awerner3/mathscribe/internal/pipeline"
	"github.com/awerner3/mathscribe/internal/store"
	"github.com/awerner3/mathscribe/internal/transcribe"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	artifacts, err := store.New(cfg.DataDir)
	if err != nil {
		log.Error("artifact store init failed", "error", err)
		os.Exit(1)
	}
	vlm := transcribe.NewClient(cfg.MistralAPIKey, cfg.MistralModel)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, vlm, artifacts, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, vlm, artifacts, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		vlm.Close()
	}()

	log.Info("starting mathscribe", "port", cfg.Port, "model", cfg.MistralModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
