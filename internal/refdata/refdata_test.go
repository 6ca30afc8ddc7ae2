package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)

	t.Run("known weather station", func(t *testing.T) {
		station, ok := store.WeatherStation("12295")
		require.True(t, ok)
		assert.Equal(t, "2061011", station.Teryt)
		assert.InDelta(t, 53.1072, station.Latitude, 0.0001)
		assert.InDelta(t, 23.1622, station.Longitude, 0.0001)
	})

	t.Run("unknown weather station", func(t *testing.T) {
		_, ok := store.WeatherStation("00000")
		assert.False(t, ok)
	})

	t.Run("known hydro station code", func(t *testing.T) {
		river, ok := store.River("154190050")
		require.True(t, ok)
		assert.Equal(t, "Wisła", river.River)
		assert.Equal(t, "pomorskie", river.Province)
	})

	t.Run("unknown hydro station code", func(t *testing.T) {
		_, ok := store.River("000000000")
		assert.False(t, ok)
	})
}
