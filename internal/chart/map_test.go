package chart

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

func mapFixture() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"48.85", "45.76", "NaN", "43.3"}, series.Float, domain.ColLatitude),
		series.New([]string{"2.35", "4.83", "1.44", "5.37"}, series.Float, domain.ColLongitude),
		series.New([]string{"2", "150", "36", "NaN"}, series.Float, domain.ColPower),
		series.New([]string{"Ionity", "Electra", "Izivia", "NaN"}, series.String, domain.ColOperator),
	)
}

func TestMap(t *testing.T) {
	spec, err := Map(mapFixture(), []string{domain.ColOperator, "no_such_column"})
	require.NoError(t, err)

	assert.Equal(t, FranceViewport, spec.Viewport)
	require.Len(t, spec.Markers, 3, "the row without a latitude stays off the map")

	t.Run("marker size is power clipped to bounds", func(t *testing.T) {
		assert.Equal(t, MinMarkerSize, spec.Markers[0].Size, "2 kW clips up to the floor")
		assert.Equal(t, MaxMarkerSize, spec.Markers[1].Size, "150 kW clips down to the ceiling")
		assert.Equal(t, fallbackPowerSize, spec.Markers[2].Size, "undefined power gets the fallback size")
	})

	t.Run("tooltips hold only present, defined columns", func(t *testing.T) {
		assert.Equal(t, map[string]string{domain.ColOperator: "Ionity"}, spec.Markers[0].Tooltip)
		assert.Nil(t, spec.Markers[2].Tooltip, "undefined operator leaves the tooltip empty")
	})

	t.Run("coordinates pass through", func(t *testing.T) {
		assert.Equal(t, 48.85, spec.Markers[0].Latitude)
		assert.Equal(t, 2.35, spec.Markers[0].Longitude)
	})
}

func TestMapWithoutPowerColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"48.85"}, series.Float, domain.ColLatitude),
		series.New([]string{"2.35"}, series.Float, domain.ColLongitude),
	)
	spec, err := Map(df, nil)
	require.NoError(t, err)
	require.Len(t, spec.Markers, 1)
	assert.Equal(t, DefaultMarkerSize, spec.Markers[0].Size)
}

func TestMapMissingCoordinateColumn(t *testing.T) {
	df := dataframe.New(series.New([]string{"48.85"}, series.Float, domain.ColLatitude))
	_, err := Map(df, nil)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColLongitude, missing.Column)
}
