package config

import (
	"errors"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all poller settings, populated from environment variables.
type Config struct {
	KafkaBrokers    []string
	KafkaSinkTopic  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// PollInterval is the pause between poll cycles.
	PollInterval time.Duration

	// Station ids to poll, comma separated in the environment.
	WeatherStations      []string
	HydrologicalStations []string

	// HydrologicalDetails toggles the flood-threshold fetch at startup.
	HydrologicalDetails bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	pollIntervalStr := sharedcfg.EnvOrDefault("POLL_INTERVAL", "5m")
	pollInterval, err := time.ParseDuration(pollIntervalStr)
	if err != nil || pollInterval <= 0 {
		return nil, errors.New("invalid POLL_INTERVAL")
	}

	hydroDetails := true
	if v := os.Getenv("HYDRO_DETAILS"); v != "" {
		hydroDetails = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "imgw-observations"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		PollInterval:    pollInterval,

		WeatherStations:      splitIDs(os.Getenv("WEATHER_STATIONS")),
		HydrologicalStations: splitIDs(os.Getenv("HYDRO_STATIONS")),
		HydrologicalDetails:  hydroDetails,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if len(cfg.WeatherStations) == 0 && len(cfg.HydrologicalStations) == 0 {
		return nil, errors.New("at least one of WEATHER_STATIONS or HYDRO_STATIONS is required")
	}

	return cfg, nil
}

// splitIDs parses a comma-separated id list, dropping empty entries.
func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
