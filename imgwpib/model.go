package imgwpib

import "time"

// AlertLevel is the normalized severity of an active warning.
type AlertLevel string

const (
	AlertLevelNone   AlertLevel = "none"
	AlertLevelYellow AlertLevel = "yellow"
	AlertLevelOrange AlertLevel = "orange"
	AlertLevelRed    AlertLevel = "red"
)

// NoAlertCategory is the sentinel category used when no warning matches.
const NoAlertCategory = "no_alert"

// SensorData is a single normalized reading. Value and Unit are either both
// set or both nil.
type SensorData struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
}

// Alert describes the most relevant active warning for a station, or the
// no-alert sentinel when none applies.
type Alert struct {
	Category    string     `json:"category"`
	Level       AlertLevel `json:"level"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidTo     *time.Time `json:"valid_to,omitempty"`
	Probability *int       `json:"probability,omitempty"`
}

func noAlert() Alert {
	return Alert{Category: NoAlertCategory, Level: AlertLevelNone}
}

// WeatherData is a normalized synoptic observation for one weather station.
type WeatherData struct {
	Temperature   SensorData `json:"temperature"`
	Humidity      SensorData `json:"humidity"`
	Pressure      SensorData `json:"pressure"`
	WindSpeed     SensorData `json:"wind_speed"`
	WindDirection SensorData `json:"wind_direction"`
	Precipitation SensorData `json:"precipitation"`

	Station         string     `json:"station"`
	StationID       string     `json:"station_id"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	MeasurementDate *time.Time `json:"measurement_date,omitempty"`

	Alert Alert `json:"alert"`
}

// HydrologicalData is a normalized observation for one hydrological station.
// Each sensor carries its own measurement date because upstream reports them
// independently; a stale sensor has both value and date cleared.
type HydrologicalData struct {
	WaterLevel                      SensorData `json:"water_level"`
	WaterLevelMeasurementDate       *time.Time `json:"water_level_measurement_date,omitempty"`
	WaterTemperature                SensorData `json:"water_temperature"`
	WaterTemperatureMeasurementDate *time.Time `json:"water_temperature_measurement_date,omitempty"`
	WaterFlow                       SensorData `json:"water_flow"`
	WaterFlowMeasurementDate        *time.Time `json:"water_flow_measurement_date,omitempty"`

	FloodWarningLevel SensorData `json:"flood_warning_level"`
	FloodAlarmLevel   SensorData `json:"flood_alarm_level"`
	FloodWarning      *bool      `json:"flood_warning,omitempty"`
	FloodAlarm        *bool      `json:"flood_alarm,omitempty"`

	Station   string   `json:"station"`
	StationID string   `json:"station_id"`
	River     string   `json:"river"`
	Province  string   `json:"province,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Alert Alert `json:"alert"`
}

// newSensor builds a reading enforcing total absence: a nil value yields a
// reading with no unit either.
func newSensor(name string, value *float64, unit string) SensorData {
	if value == nil {
		return SensorData{Name: name}
	}
	return SensorData{Name: name, Value: value, Unit: &unit}
}
