package pipeline

import (
	"context"
	"time"

	"github.com/couchcryptid/imgw-data-etl/imgwpib"
)

// weatherSource adapts an initialized imgwpib client bound to a weather
// station into a Source.
type weatherSource struct {
	client    *imgwpib.Client
	stationID string
}

// NewWeatherSource creates a Source polling one weather station.
func NewWeatherSource(client *imgwpib.Client, stationID string) Source {
	return &weatherSource{client: client, stationID: stationID}
}

func (s *weatherSource) Describe() (string, string) {
	return "weather", s.stationID
}

func (s *weatherSource) Fetch(ctx context.Context) (Observation, error) {
	data, err := s.client.GetWeatherData(ctx)
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Kind:      "weather",
		StationID: s.stationID,
		Weather:   &data,
		PolledAt:  time.Now().UTC(),
	}, nil
}

// hydroSource adapts an initialized imgwpib client bound to a hydrological
// station into a Source.
type hydroSource struct {
	client    *imgwpib.Client
	stationID string
}

// NewHydrologicalSource creates a Source polling one hydrological station.
func NewHydrologicalSource(client *imgwpib.Client, stationID string) Source {
	return &hydroSource{client: client, stationID: stationID}
}

func (s *hydroSource) Describe() (string, string) {
	return "hydrological", s.stationID
}

func (s *hydroSource) Fetch(ctx context.Context) (Observation, error) {
	data, err := s.client.GetHydrologicalData(ctx)
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Kind:      "hydrological",
		StationID: s.stationID,
		Hydro:     &data,
		PolledAt:  time.Now().UTC(),
	}, nil
}
