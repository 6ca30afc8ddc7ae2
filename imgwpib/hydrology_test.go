package imgwpib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/imgw-data-etl/internal/refdata"
)

func freshObservation() hydroObservation {
	return hydroObservation{
		StationID:            "154190050",
		Station:              "Tczew",
		River:                "Wisła",
		Province:             "pomorskie",
		WaterLevel:           floatPtr(350),
		WaterLevelDate:       strPtr("2024-04-22 10:10:00"),
		WaterTemperature:     floatPtr(11.2),
		WaterTemperatureDate: strPtr("2024-04-22 10:10:00"),
	}
}

func TestParseHydrologicalData(t *testing.T) {
	now := time.Date(2024, 4, 22, 11, 10, 32, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		got, err := parseHydrologicalData(freshObservation(), now, floodLevels{}, noAlert())
		require.NoError(t, err)

		assert.Equal(t, "Tczew", got.Station)
		assert.Equal(t, "154190050", got.StationID)
		assert.Equal(t, "Wisła", got.River)
		assert.Equal(t, "pomorskie", got.Province)

		require.NotNil(t, got.WaterLevel.Value)
		assert.Equal(t, float64(350), *got.WaterLevel.Value)
		require.NotNil(t, got.WaterLevel.Unit)
		assert.Equal(t, "cm", *got.WaterLevel.Unit)
		require.NotNil(t, got.WaterLevelMeasurementDate)
		assert.Equal(t, time.Date(2024, 4, 22, 10, 10, 0, 0, time.UTC), *got.WaterLevelMeasurementDate)

		require.NotNil(t, got.WaterTemperature.Value)
		assert.Equal(t, 11.2, *got.WaterTemperature.Value)

		assert.Nil(t, got.WaterFlow.Value)
		assert.Nil(t, got.WaterFlowMeasurementDate)
		assert.Nil(t, got.FloodWarning)
		assert.Nil(t, got.FloodAlarm)
	})

	t.Run("missing water level fails", func(t *testing.T) {
		obs := freshObservation()
		obs.WaterLevel = nil
		_, err := parseHydrologicalData(obs, now, floodLevels{}, noAlert())
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid water level value")
	})

	t.Run("stale water level fails", func(t *testing.T) {
		obs := freshObservation()
		obs.WaterLevelDate = strPtr("2024-04-22 05:00:00")
		_, err := parseHydrologicalData(obs, now, floodLevels{}, noAlert())
		assert.EqualError(t, err, "Invalid water level value")
	})

	t.Run("stale temperature is dropped with its date", func(t *testing.T) {
		obs := freshObservation()
		obs.WaterTemperatureDate = strPtr("2024-04-21 10:00:00")
		got, err := parseHydrologicalData(obs, now, floodLevels{}, noAlert())
		require.NoError(t, err)
		assert.Nil(t, got.WaterTemperature.Value)
		assert.Nil(t, got.WaterTemperature.Unit)
		assert.Nil(t, got.WaterTemperatureMeasurementDate)
	})

	t.Run("flood booleans against thresholds", func(t *testing.T) {
		levels := floodLevels{warning: floatPtr(300), alarm: floatPtr(400)}
		got, err := parseHydrologicalData(freshObservation(), now, levels, noAlert())
		require.NoError(t, err)

		require.NotNil(t, got.FloodWarning)
		assert.True(t, *got.FloodWarning)
		require.NotNil(t, got.FloodAlarm)
		assert.False(t, *got.FloodAlarm)

		require.NotNil(t, got.FloodWarningLevel.Value)
		assert.Equal(t, float64(300), *got.FloodWarningLevel.Value)
		require.NotNil(t, got.FloodAlarmLevel.Value)
		assert.Equal(t, float64(400), *got.FloodAlarmLevel.Value)
	})

	t.Run("level equal to threshold counts as exceeded", func(t *testing.T) {
		levels := floodLevels{alarm: floatPtr(350)}
		got, err := parseHydrologicalData(freshObservation(), now, levels, noAlert())
		require.NoError(t, err)
		require.NotNil(t, got.FloodAlarm)
		assert.True(t, *got.FloodAlarm)
		assert.Nil(t, got.FloodWarning)
	})

	t.Run("flow from the secondary feed", func(t *testing.T) {
		obs := freshObservation()
		obs.Flow = floatPtr(1050)
		obs.FlowDate = strPtr("2024-04-22 10:00:00")
		got, err := parseHydrologicalData(obs, now, floodLevels{}, noAlert())
		require.NoError(t, err)
		require.NotNil(t, got.WaterFlow.Value)
		assert.Equal(t, float64(1050), *got.WaterFlow.Value)
		require.NotNil(t, got.WaterFlow.Unit)
		assert.Equal(t, "m³/s", *got.WaterFlow.Unit)
	})
}

func TestHydroRecordCanonical(t *testing.T) {
	r := hydroRecord{
		StationID:      "154190050",
		Station:        "Tczew",
		River:          "Wisła",
		Province:       "pomorskie",
		WaterLevel:     optionalFloat{value: floatPtr(350)},
		WaterLevelDate: strPtr("2024-04-22 10:10:00"),
	}

	obs := r.canonical()
	assert.Equal(t, "154190050", obs.StationID)
	assert.Equal(t, "Wisła", obs.River)
	assert.Equal(t, "pomorskie", obs.Province)
	require.NotNil(t, obs.WaterLevel)
	assert.Equal(t, float64(350), *obs.WaterLevel)
	assert.Nil(t, obs.Flow)
}

func TestHydro2RecordCanonical(t *testing.T) {
	store, err := refdata.Load()
	require.NoError(t, err)

	t.Run("known station code resolves river and province", func(t *testing.T) {
		r := hydro2Record{
			StationCode:    "152199992",
			StationName:    "Smardzewice",
			Latitude:       optionalFloat{value: floatPtr(51.36)},
			Longitude:      optionalFloat{value: floatPtr(20.01)},
			WaterLevel:     optionalFloat{value: floatPtr(210)},
			WaterLevelDate: strPtr("2024-04-22 10:00:00"),
			Flow:           optionalFloat{value: floatPtr(25.4)},
			FlowDate:       strPtr("2024-04-22 10:00:00"),
		}

		obs := r.canonical(store)
		assert.Equal(t, "152199992", obs.StationID)
		assert.Equal(t, "Zb. Sulejów", obs.River)
		assert.Equal(t, "łódzkie", obs.Province)
		require.NotNil(t, obs.Latitude)
		assert.Equal(t, 51.36, *obs.Latitude)
		require.NotNil(t, obs.Flow)
		assert.Equal(t, 25.4, *obs.Flow)
	})

	t.Run("unknown station code keeps the river sentinel", func(t *testing.T) {
		r := hydro2Record{StationCode: "000000000", StationName: "Nowhere"}
		obs := r.canonical(store)
		assert.Equal(t, "-", obs.River)
		assert.Empty(t, obs.Province)
	})
}
