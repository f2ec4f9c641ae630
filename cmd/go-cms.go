package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/adfharrison1/go-cms/pkg/config"
	"github.com/adfharrison1/go-cms/pkg/metrics"
	"github.com/adfharrison1/go-cms/pkg/server"
	"github.com/adfharrison1/go-cms/pkg/storage"
)

func main() {
	cfg, err := config.Load(filepath.Base(os.Args[0]), os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("ERROR: Invalid configuration: %v", err)
	}

	// Build storage options based on config
	storageOptions := []storage.StoreOption{
		storage.WithAtomicWrites(cfg.AtomicWrites),
	}
	if !cfg.AtomicWrites {
		log.Printf("WARN: Atomic writes disabled - a crash during save can corrupt %s", cfg.DataFile)
	}

	if cfg.SnapshotDir != "" {
		storageOptions = append(storageOptions,
			storage.WithSnapshotDir(cfg.SnapshotDir),
			storage.WithSnapshotRetention(cfg.SnapshotRetention),
		)
		log.Printf("INFO: Snapshots stored in %s (keeping %d)", cfg.SnapshotDir, cfg.SnapshotRetention)
	}

	if cfg.SnapshotInterval > 0 {
		storageOptions = append(storageOptions, storage.WithSnapshotInterval(cfg.SnapshotInterval))
	} else {
		log.Printf("WARN: Background snapshots disabled")
	}

	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
		storageOptions = append(storageOptions, storage.WithMetrics(m))
	}

	store := storage.NewFileStore(cfg.DataFile, storageOptions...)

	if cfg.Restore != "" {
		log.Printf("INFO: Restoring %s from %s", cfg.DataFile, cfg.Restore)
		if err := store.RestoreSnapshot(cfg.Restore); err != nil {
			log.Fatalf("ERROR: Restore failed: %v", err)
		}
	}

	srv := server.NewServer(store, m)

	log.Printf("INFO: Loading data from: %s", cfg.DataFile)
	if err := srv.InitDB(); err != nil {
		log.Fatalf("ERROR: Cannot start without a readable data file: %v", err)
	}

	srv.StartBackgroundWorkers()
	defer srv.StopBackgroundWorkers() // Ensure cleanup

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("INFO: Starting go-cms server on :%s", cfg.Port)
		log.Printf("INFO: API endpoints available at http://localhost:%s/api", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ERROR: Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	srv.StopBackgroundWorkers()
	srv.SnapshotDB()

	log.Println("INFO: Server exited")
}
