package chart

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

func TestTopEntities(t *testing.T) {
	df := dataframe.New(series.New([]string{
		"Ionity", "Ionity", "Ionity",
		"Electra", "Electra",
		"Izivia",
		"Tesla",
		"", "NaN", "  ",
	}, series.String, domain.ColOperator))

	t.Run("ranks, truncates, and reverses for display", func(t *testing.T) {
		spec, err := TopEntities(df, domain.ColOperator, 3)
		require.NoError(t, err)
		// Largest last in the slice so a horizontal bar chart reads top-down.
		assert.Equal(t, []BarItem{
			{Label: "Electra", Count: 2},
			{Label: UnknownBucket, Count: 3},
			{Label: "Ionity", Count: 3},
		}, spec.Bars)
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		spec, err := TopEntities(df, domain.ColOperator, 2)
		require.NoError(t, err)
		assert.Equal(t, []BarItem{
			{Label: UnknownBucket, Count: 3},
			{Label: "Ionity", Count: 3},
		}, spec.Bars)
	})

	t.Run("n larger than cardinality keeps everything", func(t *testing.T) {
		spec, err := TopEntities(df, domain.ColOperator, 100)
		require.NoError(t, err)
		assert.Len(t, spec.Bars, 5)
	})

	t.Run("non-positive n yields no bars", func(t *testing.T) {
		spec, err := TopEntities(df, domain.ColOperator, 0)
		require.NoError(t, err)
		assert.Empty(t, spec.Bars)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := TopEntities(df, domain.ColMunicipality, 5)
		var missing *MissingColumnError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, domain.ColMunicipality, missing.Column)
	})
}

func TestPowerMix(t *testing.T) {
	df := dataframe.New(series.New([]string{
		domain.PowerUltraFast.Label(),
		domain.PowerNormal.Label(),
		domain.PowerUltraFast.Label(),
		domain.PowerFast.Label(),
		"", // undefined category is not counted
	}, series.String, domain.ColCategory))

	spec, err := PowerMix(df)
	require.NoError(t, err)

	assert.Equal(t, []BarItem{
		{Label: "Normal (<22kW)", Count: 1},
		{Label: "Fast (22–50kW)", Count: 1},
		{Label: "Very fast (50–150kW)", Count: 0},
		{Label: "Ultra-fast (>150kW)", Count: 2},
	}, spec.Bars, "fixed severity order with zero-filled absent categories")

	total := 0
	for _, b := range spec.Bars {
		total += b.Count
	}
	assert.Equal(t, 4, total)
}

func TestPowerMixMissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]string{"36"}, series.Float, domain.ColPower))
	_, err := PowerMix(df)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColCategory, missing.Column)
}
