package imgwpib

import "time"

// weatherRecord is one entry of the synop feed. Values arrive as strings
// ("10.5") or null.
type weatherRecord struct {
	StationID       string        `json:"id_stacji"`
	Station         string        `json:"stacja"`
	MeasurementDate string        `json:"data_pomiaru"`
	MeasurementHour string        `json:"godzina_pomiaru"`
	Temperature     optionalFloat `json:"temperatura"`
	WindSpeed       optionalFloat `json:"predkosc_wiatru"`
	WindDirection   optionalFloat `json:"kierunek_wiatru"`
	Humidity        optionalFloat `json:"wilgotnosc_wzgledna"`
	Precipitation   optionalFloat `json:"suma_opadu"`
	Pressure        optionalFloat `json:"cisnienie"`
}

// parseWeatherData normalizes a raw synop record. Pure function: the alert
// and coordinates are matched and looked up by the caller. An unparsable
// measurement moment yields a nil date, not an error.
func parseWeatherData(r weatherRecord, alert Alert, latitude, longitude *float64) WeatherData {
	var measured *time.Time
	if r.MeasurementDate != "" && r.MeasurementHour != "" {
		stamp := r.MeasurementDate + " " + r.MeasurementHour
		measured = parseTimestamp(&stamp, weatherDateLayout)
	}

	return WeatherData{
		Temperature:   newSensor("Temperature", r.Temperature.value, "°C"),
		Humidity:      newSensor("Humidity", r.Humidity.value, "%"),
		Pressure:      newSensor("Pressure", r.Pressure.value, "hPa"),
		WindSpeed:     newSensor("Wind Speed", r.WindSpeed.value, "m/s"),
		WindDirection: newSensor("Wind Direction", r.WindDirection.value, "°"),
		Precipitation: newSensor("Precipitation", r.Precipitation.value, "mm"),

		Station:         r.Station,
		StationID:       r.StationID,
		Latitude:        latitude,
		Longitude:       longitude,
		MeasurementDate: measured,

		Alert: alert,
	}
}
