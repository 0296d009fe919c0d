package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaar-tracker/internal/api"
	"bazaar-tracker/internal/config"
	"bazaar-tracker/internal/services"
	"bazaar-tracker/internal/storage"
)

func main() {
	cfg := config.Load()

	// Bootstrap the data directories
	store := storage.NewFileStore(cfg.DataDir)
	if err := store.Bootstrap(services.DataDirs...); err != nil {
		log.Fatalf("Failed to bootstrap data directories: %v", err)
	}
	log.Printf("Data root: %s", store.Root())

	// Initialize services
	bazaarService := services.NewBazaarService(cfg.BazaarAPIURL)
	snapshotService := services.NewSnapshotService(store)
	aggregator := services.NewAggregator(snapshotService)
	profitCalculator := services.NewProfitCalculator(snapshotService, store)
	opportunityMatcher := services.NewOpportunityMatcher(snapshotService, profitCalculator, store)
	flipService := services.NewFlipService(store)

	pipeline := services.NewPipeline(bazaarService, snapshotService, aggregator, profitCalculator, opportunityMatcher, flipService, cfg.CycleInterval)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the pipeline in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in pipeline: %v - restarting in 30 seconds", r)
					}
				}()
				pipeline.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Pipeline restarting after panic recovery...")
			}
		}
	}()

	// Setup router
	router := api.SetupRouter(pipeline, snapshotService, profitCalculator, opportunityMatcher, flipService, cfg.CORSOrigins, cfg.DashboardDir)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the pipeline
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
