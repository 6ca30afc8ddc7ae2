package imgwpib

import (
	"time"

	"github.com/couchcryptid/imgw-data-etl/internal/refdata"
)

// hydroRecord is one entry of the primary hydro feed.
type hydroRecord struct {
	StationID            string        `json:"id_stacji"`
	Station              string        `json:"stacja"`
	River                string        `json:"rzeka"`
	Province             string        `json:"województwo"`
	WaterLevel           optionalFloat `json:"stan_wody"`
	WaterLevelDate       *string       `json:"stan_wody_data_pomiaru"`
	WaterTemperature     optionalFloat `json:"temperatura_wody"`
	WaterTemperatureDate *string       `json:"temperatura_wody_data_pomiaru"`
}

// hydro2Record is one entry of the secondary hydro feed. It identifies
// stations by code instead of id, carries coordinates and flow, and has no
// river name of its own.
type hydro2Record struct {
	StationCode    string        `json:"kod_stacji"`
	StationName    string        `json:"nazwa_stacji"`
	Latitude       optionalFloat `json:"lat"`
	Longitude      optionalFloat `json:"lon"`
	WaterLevel     optionalFloat `json:"stan"`
	WaterLevelDate *string       `json:"stan_data"`
	Flow           optionalFloat `json:"przeplyw"`
	FlowDate       *string       `json:"przeplyw_data"`
}

// hydroObservation is the canonical record shape both hydro feeds normalize
// into before parsing, so the parser never branches on payload shape.
type hydroObservation struct {
	StationID string
	Station   string
	River     string
	Province  string
	Latitude  *float64
	Longitude *float64

	WaterLevel           *float64
	WaterLevelDate       *string
	WaterTemperature     *float64
	WaterTemperatureDate *string
	Flow                 *float64
	FlowDate             *string
}

func (r hydroRecord) canonical() hydroObservation {
	return hydroObservation{
		StationID:            r.StationID,
		Station:              r.Station,
		River:                r.River,
		Province:             r.Province,
		WaterLevel:           r.WaterLevel.value,
		WaterLevelDate:       r.WaterLevelDate,
		WaterTemperature:     r.WaterTemperature.value,
		WaterTemperatureDate: r.WaterTemperatureDate,
	}
}

// canonical resolves the river name and province through the reference
// lookup because the hydro2 feed does not carry them.
func (r hydro2Record) canonical(store *refdata.Store) hydroObservation {
	obs := hydroObservation{
		StationID:      r.StationCode,
		Station:        r.StationName,
		River:          "-",
		Latitude:       r.Latitude.value,
		Longitude:      r.Longitude.value,
		WaterLevel:     r.WaterLevel.value,
		WaterLevelDate: r.WaterLevelDate,
		Flow:           r.Flow.value,
		FlowDate:       r.FlowDate,
	}
	if river, ok := store.River(r.StationCode); ok {
		obs.River = river.River
		obs.Province = river.Province
	}
	return obs
}

// floodLevels holds the optional per-station warning and alarm thresholds
// from the details endpoint.
type floodLevels struct {
	warning *float64
	alarm   *float64
}

// parseHydrologicalData normalizes a canonical hydro observation. Every
// sensor is evaluated for freshness independently; the water level is the
// one mandatory field and an absent or stale level fails the whole record.
func parseHydrologicalData(obs hydroObservation, now time.Time, levels floodLevels, alert Alert) (HydrologicalData, error) {
	levelDate, levelCurrent := currentMeasurement(obs.WaterLevelDate, now, measurementValidity)
	level := obs.WaterLevel
	if !levelCurrent {
		level = nil
	}
	if level == nil {
		return HydrologicalData{}, newAPIError("Invalid water level value")
	}

	temperatureDate, temperatureCurrent := currentMeasurement(obs.WaterTemperatureDate, now, measurementValidity)
	temperature := obs.WaterTemperature
	if !temperatureCurrent {
		temperature = nil
	}

	flowDate, flowCurrent := currentMeasurement(obs.FlowDate, now, measurementValidity)
	flow := obs.Flow
	if !flowCurrent {
		flow = nil
	}

	return HydrologicalData{
		WaterLevel:                      newSensor("Water Level", level, "cm"),
		WaterLevelMeasurementDate:       levelDate,
		WaterTemperature:                newSensor("Water Temperature", temperature, "°C"),
		WaterTemperatureMeasurementDate: temperatureDate,
		WaterFlow:                       newSensor("Water Flow", flow, "m³/s"),
		WaterFlowMeasurementDate:        flowDate,

		FloodWarningLevel: newSensor("Flood Warning Level", levels.warning, "cm"),
		FloodAlarmLevel:   newSensor("Flood Alarm Level", levels.alarm, "cm"),
		FloodWarning:      exceedsThreshold(level, levels.warning),
		FloodAlarm:        exceedsThreshold(level, levels.alarm),

		Station:   obs.Station,
		StationID: obs.StationID,
		River:     obs.River,
		Province:  obs.Province,
		Latitude:  obs.Latitude,
		Longitude: obs.Longitude,

		Alert: alert,
	}, nil
}

// exceedsThreshold derives a flood boolean. It stays nil unless both the
// current level and the threshold are known; equality counts as exceeded.
func exceedsThreshold(level, threshold *float64) *bool {
	if level == nil || threshold == nil {
		return nil
	}
	b := *level >= *threshold
	return &b
}
