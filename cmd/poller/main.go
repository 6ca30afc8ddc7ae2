package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/imgw-data-etl/imgwpib"
	httpadapter "github.com/couchcryptid/imgw-data-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/imgw-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/imgw-data-etl/internal/config"
	"github.com/couchcryptid/imgw-data-etl/internal/observability"
	"github.com/couchcryptid/imgw-data-etl/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources, err := buildSources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize stations", "error", err)
		os.Exit(1)
	}

	writer := kafkaadapter.NewWriter(cfg, logger)
	poller := pipeline.New(sources, writer, logger, metrics, cfg.PollInterval, nil)

	srv := httpadapter.NewServer(cfg.HTTPAddr, poller, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := poller.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// buildSources creates and initializes one imgwpib client per configured
// station. All clients share one HTTP client; each initialization validates
// the station id against a fresh directory.
func buildSources(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]pipeline.Source, error) {
	httpClient := &http.Client{Timeout: 20 * time.Second}
	sources := make([]pipeline.Source, 0, len(cfg.WeatherStations)+len(cfg.HydrologicalStations))

	for _, id := range cfg.WeatherStations {
		client, err := imgwpib.NewClient(httpClient,
			imgwpib.WithWeatherStation(id),
			imgwpib.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		if err := client.Initialize(ctx); err != nil {
			return nil, err
		}
		logger.Info("weather station registered", "station_id", id, "name", client.WeatherStations()[id])
		sources = append(sources, pipeline.NewWeatherSource(client, id))
	}

	for _, id := range cfg.HydrologicalStations {
		opts := []imgwpib.Option{
			imgwpib.WithHydrologicalStation(id),
			imgwpib.WithLogger(logger),
		}
		if !cfg.HydrologicalDetails {
			opts = append(opts, imgwpib.WithoutHydrologicalDetails())
		}
		client, err := imgwpib.NewClient(httpClient, opts...)
		if err != nil {
			return nil, err
		}
		if err := client.Initialize(ctx); err != nil {
			return nil, err
		}
		logger.Info("hydrological station registered", "station_id", id, "name", client.HydrologicalStations()[id])
		sources = append(sources, pipeline.NewHydrologicalSource(client, id))
	}

	return sources, nil
}
