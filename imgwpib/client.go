package imgwpib

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/imgw-data-etl/internal/refdata"
)

// requestTimeout bounds every upstream request. The API occasionally hangs
// instead of failing fast.
const requestTimeout = 20 * time.Second

// endpoints groups the upstream URLs so tests can point the client at a
// local server.
type endpoints struct {
	weather         string
	weatherWarnings string
	hydro           string
	hydro2          string
	hydroWarnings   string
	hydroDetails    string
}

func defaultEndpoints() endpoints {
	return endpoints{
		weather:         "https://danepubliczne.imgw.pl/api/data/synop",
		weatherWarnings: "https://danepubliczne.imgw.pl/api/data/warningsmeteo",
		hydro:           "https://danepubliczne.imgw.pl/api/data/hydro",
		hydro2:          "https://danepubliczne.imgw.pl/api/data/hydro2",
		hydroWarnings:   "https://danepubliczne.imgw.pl/api/data/warningshydro",
		hydroDetails:    "https://hydro-back.imgw.pl/station/hydro/status",
	}
}

// Client fetches and normalizes IMGW-PIB data for up to one weather station
// and one hydrological station. Construct with NewClient, then call
// Initialize before requesting data. The client holds no locks: directory
// refreshes replace maps wholesale and are expected to be serialized by the
// caller.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	refdata    *refdata.Store
	endpoints  endpoints

	weatherStationID  string
	hydroStationID    string
	fetchHydroDetails bool

	weatherStations map[string]string
	hydroStations   map[string]string

	// useHydro2 routes single-station hydro fetches to the secondary
	// endpoint when the configured station only exists there.
	useHydro2 bool

	teryt     string
	latitude  *float64
	longitude *float64
	levels    floodLevels
}

// Option configures a Client.
type Option func(*Client)

// WithWeatherStation selects the weather station to fetch data for.
func WithWeatherStation(id string) Option {
	return func(c *Client) { c.weatherStationID = id }
}

// WithHydrologicalStation selects the hydrological station to fetch data for.
func WithHydrologicalStation(id string) Option {
	return func(c *Client) { c.hydroStationID = id }
}

// WithoutHydrologicalDetails skips the flood-threshold details fetch during
// initialization; flood booleans then stay absent.
func WithoutHydrologicalDetails() Option {
	return func(c *Client) { c.fetchHydroDetails = false }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client. Pass a nil httpClient to use one with the
// default request timeout; a caller-supplied client keeps its own transport
// settings. NewClient performs no network I/O; call Initialize next.
func NewClient(httpClient *http.Client, opts ...Option) (*Client, error) {
	store, err := refdata.Load()
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	c := &Client{
		httpClient:        httpClient,
		logger:            slog.Default(),
		refdata:           store,
		endpoints:         defaultEndpoints(),
		fetchHydroDetails: true,
		weatherStations:   map[string]string{},
		hydroStations:     map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize validates the configured station ids against fresh station
// directories and loads per-station reference metadata. The flood-threshold
// details fetch is best-effort: its failure is logged and swallowed.
func (c *Client) Initialize(ctx context.Context) error {
	if c.weatherStationID != "" {
		if err := c.UpdateWeatherStations(ctx); err != nil {
			return err
		}
		if _, ok := c.weatherStations[c.weatherStationID]; !ok {
			return newAPIError("Invalid weather station ID: %s", c.weatherStationID)
		}
		if station, ok := c.refdata.WeatherStation(c.weatherStationID); ok {
			lat, lon := station.Latitude, station.Longitude
			c.latitude = &lat
			c.longitude = &lon
			c.teryt = station.Teryt
		}
	}

	if c.hydroStationID != "" {
		if err := c.UpdateHydrologicalStations(ctx); err != nil {
			return err
		}
		if _, ok := c.hydroStations[c.hydroStationID]; !ok {
			return newAPIError("Invalid hydrological station ID: %s", c.hydroStationID)
		}
		if c.fetchHydroDetails {
			c.updateHydrologicalDetails(ctx)
		}
	}

	return nil
}

// GetWeatherData fetches and normalizes the current observation for the
// configured weather station. The warning feed is only consulted when the
// station's TERYT code is known, and its unavailability degrades to the
// no-alert sentinel.
func (c *Client) GetWeatherData(ctx context.Context) (WeatherData, error) {
	if c.weatherStationID == "" {
		return WeatherData{}, newAPIError("Weather station ID is not set")
	}

	var record weatherRecord
	if err := c.getJSON(ctx, c.endpoints.weather+"/id/"+url.PathEscape(c.weatherStationID), &record); err != nil {
		return WeatherData{}, err
	}

	alert := noAlert()
	if c.teryt != "" {
		var alerts []weatherAlertRecord
		if c.softGetJSON(ctx, c.endpoints.weatherWarnings, &alerts) {
			alert = matchWeatherAlert(alerts, c.teryt, clock.Now().UTC())
		}
	}

	return parseWeatherData(record, alert, c.latitude, c.longitude), nil
}

// GetHydrologicalData fetches and normalizes the current observation for the
// configured hydrological station. The station list has no single-station
// endpoint, so the full list is scanned. The warning feed is best-effort.
func (c *Client) GetHydrologicalData(ctx context.Context) (HydrologicalData, error) {
	if c.hydroStationID == "" {
		return HydrologicalData{}, newAPIError("Hydrological station ID is not set")
	}

	obs, err := c.fetchHydroObservation(ctx)
	if err != nil {
		return HydrologicalData{}, err
	}

	now := clock.Now().UTC()

	alert := noAlert()
	var alerts []hydroAlertRecord
	if c.softGetJSON(ctx, c.endpoints.hydroWarnings, &alerts) {
		alert = matchHydrologicalAlert(alerts, obs.River, obs.Province, now)
	}

	return parseHydrologicalData(obs, now, c.levels, alert)
}

// fetchHydroObservation pulls the station list from whichever hydro endpoint
// the station was located on and scans for the configured id.
func (c *Client) fetchHydroObservation(ctx context.Context) (hydroObservation, error) {
	if c.useHydro2 {
		var records []hydro2Record
		if err := c.getJSON(ctx, c.endpoints.hydro2, &records); err != nil {
			return hydroObservation{}, err
		}
		for _, r := range records {
			if r.StationCode == c.hydroStationID {
				return r.canonical(c.refdata), nil
			}
		}
	} else {
		var records []hydroRecord
		if err := c.getJSON(ctx, c.endpoints.hydro, &records); err != nil {
			return hydroObservation{}, err
		}
		for _, r := range records {
			if r.StationID == c.hydroStationID {
				return r.canonical(), nil
			}
		}
	}
	return hydroObservation{}, newAPIError("No hydrological data for station ID: %s", c.hydroStationID)
}

// hydroDetailsResponse is the flood-threshold payload. The endpoint returns
// null for stations it does not know.
type hydroDetailsResponse struct {
	Status *struct {
		WarningValue optionalFloat `json:"warningValue"`
		AlarmValue   optionalFloat `json:"alarmValue"`
	} `json:"status"`
}

func (c *Client) updateHydrologicalDetails(ctx context.Context) {
	var details hydroDetailsResponse
	if !c.softGetJSON(ctx, c.endpoints.hydroDetails+"?id="+url.QueryEscape(c.hydroStationID), &details) {
		return
	}
	if details.Status == nil {
		return
	}
	c.levels = floodLevels{
		warning: details.Status.WarningValue.value,
		alarm:   details.Status.AlarmValue.value,
	}
}

// getJSON performs a GET with the JSON content-type header and a bounded
// timeout, failing with APIError on non-success status or non-JSON content.
func (c *Client) getJSON(ctx context.Context, requestURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	c.logger.Debug("requesting", "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", requestURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response", "url", requestURL, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return newAPIError("Invalid response: %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		return newAPIError("Invalid content type: %s", contentType)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", requestURL, err)
	}
	return nil
}

// softGetJSON is the best-effort variant of getJSON: any failure is logged
// and reported as false instead of an error. Used for the warning feeds and
// the optional endpoints that come and go.
func (c *Client) softGetJSON(ctx context.Context, requestURL string, out any) bool {
	if err := c.getJSON(ctx, requestURL, out); err != nil {
		c.logger.Debug("optional request failed", "url", requestURL, "error", err)
		return false
	}
	return true
}
