// Package refdata bundles the static reference tables the client
// cross-references upstream payloads against: weather station metadata
// (coordinates and TERYT territory codes) and the river/province lookup for
// hydro2 station codes. Both are embedded at build time and immutable after
// loading.
package refdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed weather_stations.json
var weatherStationsJSON []byte

//go:embed hydro_stations.json
var hydroStationsJSON []byte

// WeatherStation is static metadata for one synop station.
type WeatherStation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Teryt     string  `json:"teryt"`
}

// River is the river name and province for one hydro2 station code.
type River struct {
	River    string `json:"river"`
	Province string `json:"province"`
}

// Store holds the parsed reference tables.
type Store struct {
	weather map[string]WeatherStation
	rivers  map[string]River
}

// Load parses the embedded tables into a Store.
func Load() (*Store, error) {
	s := &Store{}
	if err := json.Unmarshal(weatherStationsJSON, &s.weather); err != nil {
		return nil, fmt.Errorf("parse weather station table: %w", err)
	}
	if err := json.Unmarshal(hydroStationsJSON, &s.rivers); err != nil {
		return nil, fmt.Errorf("parse hydro station table: %w", err)
	}
	return s, nil
}

// WeatherStation looks up metadata by synop station id.
func (s *Store) WeatherStation(id string) (WeatherStation, bool) {
	station, ok := s.weather[id]
	return station, ok
}

// River looks up the river and province by hydro2 station code.
func (s *Store) River(code string) (River, bool) {
	river, ok := s.rivers[code]
	return river, ok
}
