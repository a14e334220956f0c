package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"rankboard/internal/charts"
	"rankboard/internal/platform/config"
	"rankboard/internal/platform/httpserver"
	"rankboard/internal/platform/logger"
	"rankboard/internal/platform/metrics"
	"rankboard/internal/rankings/loader"
	"rankboard/internal/rankings/service"
	"rankboard/internal/rankings/store"
	httptransport "rankboard/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// The dataset is loaded exactly once here; everything downstream treats it as
// read-only.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	records, err := loader.Load(cfg.DataPath)
	if err != nil {
		log.Error("failed to load rankings data", "path", cfg.DataPath, "error", err.Error())
		os.Exit(1)
	}

	dataset := store.New(records)
	m := metrics.New()
	m.DatasetRecords.Set(float64(dataset.Len()))

	// Missing boundary data only degrades the map endpoint.
	worldMap, err := charts.LoadWorldMap(cfg.WorldGeoJSON)
	if err != nil {
		log.Warn("world map disabled", "path", cfg.WorldGeoJSON, "error", err.Error())
		worldMap = nil
	}

	handler := httptransport.New(service.New(dataset), dataset, charts.NewRenderer(), worldMap, log, m)
	router := chi.NewRouter()
	handler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting rankboard", "addr", cfg.Addr, "records", dataset.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("rankboard stopped")
}
