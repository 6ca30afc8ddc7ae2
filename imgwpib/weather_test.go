package imgwpib

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseWeatherData(t *testing.T) {
	record := weatherRecord{
		StationID:       "12295",
		Station:         "Białystok",
		MeasurementDate: "2024-04-22",
		MeasurementHour: "11",
		Temperature:     optionalFloat{value: floatPtr(10.5)},
		WindSpeed:       optionalFloat{value: floatPtr(3)},
		WindDirection:   optionalFloat{value: floatPtr(270)},
		Humidity:        optionalFloat{value: floatPtr(54.5)},
		Precipitation:   optionalFloat{value: floatPtr(0.1)},
		Pressure:        optionalFloat{value: floatPtr(1019.6)},
	}

	t.Run("full record", func(t *testing.T) {
		got := parseWeatherData(record, noAlert(), floatPtr(53.107), floatPtr(23.162))

		assert.Equal(t, "Białystok", got.Station)
		assert.Equal(t, "12295", got.StationID)
		require.NotNil(t, got.MeasurementDate)
		assert.Equal(t, time.Date(2024, 4, 22, 11, 0, 0, 0, time.UTC), *got.MeasurementDate)

		require.NotNil(t, got.Temperature.Value)
		assert.Equal(t, 10.5, *got.Temperature.Value)
		require.NotNil(t, got.Temperature.Unit)
		assert.Equal(t, "°C", *got.Temperature.Unit)

		require.NotNil(t, got.Humidity.Value)
		assert.Equal(t, 54.5, *got.Humidity.Value)
		require.NotNil(t, got.Pressure.Value)
		assert.Equal(t, 1019.6, *got.Pressure.Value)
		require.NotNil(t, got.WindSpeed.Value)
		assert.Equal(t, float64(3), *got.WindSpeed.Value)
		require.NotNil(t, got.WindDirection.Value)
		assert.Equal(t, float64(270), *got.WindDirection.Value)
		require.NotNil(t, got.Precipitation.Value)
		assert.Equal(t, 0.1, *got.Precipitation.Value)

		require.NotNil(t, got.Latitude)
		assert.Equal(t, 53.107, *got.Latitude)
		assert.Equal(t, NoAlertCategory, got.Alert.Category)
	})

	t.Run("absent value drops the unit too", func(t *testing.T) {
		r := record
		r.Temperature = optionalFloat{}
		got := parseWeatherData(r, noAlert(), nil, nil)
		assert.Nil(t, got.Temperature.Value)
		assert.Nil(t, got.Temperature.Unit)
		assert.Equal(t, "Temperature", got.Temperature.Name)
	})

	t.Run("missing measurement moment yields nil date", func(t *testing.T) {
		r := record
		r.MeasurementHour = ""
		got := parseWeatherData(r, noAlert(), nil, nil)
		assert.Nil(t, got.MeasurementDate)
	})

	t.Run("unparsable measurement moment yields nil date", func(t *testing.T) {
		r := record
		r.MeasurementHour = "noon"
		got := parseWeatherData(r, noAlert(), nil, nil)
		assert.Nil(t, got.MeasurementDate)
	})

	t.Run("alert is carried through", func(t *testing.T) {
		from := time.Date(2024, 4, 22, 8, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 23, 8, 0, 0, 0, time.UTC)
		alert := Alert{Category: "strong_wind", Level: AlertLevelOrange, ValidFrom: &from, ValidTo: &to}
		got := parseWeatherData(record, alert, nil, nil)
		assert.Equal(t, alert, got.Alert)
	})
}

func TestWeatherRecordDecoding(t *testing.T) {
	payload := `{
		"id_stacji": "12295",
		"stacja": "Białystok",
		"data_pomiaru": "2024-04-22",
		"godzina_pomiaru": "11",
		"temperatura": "10.5",
		"predkosc_wiatru": "3",
		"kierunek_wiatru": "270",
		"wilgotnosc_wzgledna": "54.5",
		"suma_opadu": null,
		"cisnienie": "1019.6"
	}`

	var r weatherRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, "12295", r.StationID)
	require.NotNil(t, r.Temperature.value)
	assert.Equal(t, 10.5, *r.Temperature.value)
	require.NotNil(t, r.Pressure.value)
	assert.Equal(t, 1019.6, *r.Pressure.value)
	assert.Nil(t, r.Precipitation.value)
}
