package imgwpib

import (
	"context"
	"fmt"
	"strings"
)

// riverAbbreviations expands lake and reservoir prefixes in river names
// before they are used in display names.
var riverAbbreviations = map[string]string{
	"Jez.": "Jezioro",
	"Zb.":  "Zbiornik",
}

// stationName composes a hydrological station display name. The upstream
// sentinel "-" means the station is not on a named river, in which case the
// bare station name is used.
func stationName(station, river string) string {
	station = strings.TrimSpace(station)
	river = strings.TrimSpace(river)
	if river == "" || river == "-" {
		return station
	}
	for abbreviation, full := range riverAbbreviations {
		if strings.HasPrefix(river, abbreviation) {
			river = full + strings.TrimPrefix(river, abbreviation)
			break
		}
	}
	return fmt.Sprintf("%s (%s)", river, station)
}

// WeatherStations returns the cached weather station directory (id to name).
func (c *Client) WeatherStations() map[string]string {
	return c.weatherStations
}

// HydrologicalStations returns the cached hydrological station directory
// (id to name).
func (c *Client) HydrologicalStations() map[string]string {
	return c.hydroStations
}

// UpdateWeatherStations rebuilds the weather station directory from the
// synop station list, replacing the cached mapping wholesale.
func (c *Client) UpdateWeatherStations(ctx context.Context) error {
	var records []weatherRecord
	if err := c.getJSON(ctx, c.endpoints.weather, &records); err != nil {
		return err
	}

	stations := make(map[string]string, len(records))
	for _, r := range records {
		stations[r.StationID] = r.Station
	}
	c.weatherStations = stations
	return nil
}

// UpdateHydrologicalStations rebuilds the hydrological station directory.
// The primary hydro list is authoritative; the secondary hydro2 list is
// merged best-effort (its unavailability is tolerated) and never overwrites
// primary entries. When the configured station id only exists in the
// secondary list, subsequent data fetches are routed to that endpoint.
func (c *Client) UpdateHydrologicalStations(ctx context.Context) error {
	var records []hydroRecord
	if err := c.getJSON(ctx, c.endpoints.hydro, &records); err != nil {
		return err
	}

	stations := make(map[string]string, len(records))
	for _, r := range records {
		stations[r.StationID] = stationName(r.Station, r.River)
	}

	c.useHydro2 = false

	var records2 []hydro2Record
	if c.softGetJSON(ctx, c.endpoints.hydro2, &records2) {
		for _, r := range records2 {
			if _, ok := stations[r.StationCode]; ok {
				continue
			}
			river := "-"
			if rv, ok := c.refdata.River(r.StationCode); ok {
				river = rv.River
			}
			stations[r.StationCode] = stationName(r.StationName, river)
			if c.hydroStationID != "" && r.StationCode == c.hydroStationID {
				c.useHydro2 = true
			}
		}
	}

	c.hydroStations = stations
	return nil
}
