package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hkanaan/factsheet/internal/api"
	"github.com/hkanaan/factsheet/internal/archive"
	"github.com/hkanaan/factsheet/internal/config"
	"github.com/hkanaan/factsheet/internal/ingest"
	"github.com/hkanaan/factsheet/internal/library"
	"github.com/hkanaan/factsheet/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		log.Error("failed to open archive", "path", cfg.ArchivePath, "error", err)
		os.Exit(1)
	}

	// Hydrate the library from previously ingested reports.
	lib := library.New()
	stored, err := db.LoadAll()
	if err != nil {
		log.Error("failed to load archive", "error", err)
		os.Exit(1)
	}
	for _, st := range stored {
		lib.Put(&library.Record{Meta: st.Meta, Store: store.New(st.Report)})
	}
	log.Info("archive loaded", "reports", lib.Len())

	orch := ingest.NewOrchestrator(cfg, lib, db, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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

		db.Close()
	}()

	log.Info("starting factsheet service", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
