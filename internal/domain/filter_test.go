package domain

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture(t *testing.T) dataframe.DataFrame {
	t.Helper()
	clean, _ := Clean(rawFrame([][]string{
		{"id_pdc_itinerance", "nom_operateur", "nom_commune",
			"consolidated_latitude", "consolidated_longitude", "puissance_nominale", "date_mise_en_service"},
		{"FR001", "IONITY", "paris", "48.85", "2.35", "350", "2023-06-01"},
		{"FR002", "TOTALENERGIES", "paris", "48.86", "2.36", "22", "2021-03-15"},
		{"FR003", "ELECTRA", "lyon", "45.76", "4.83", "150", "2024-01-10"},
		{"FR004", "IONITY", "lyon", "45.77", "4.84", "", "2019-11-20"},
	}))
	require.NoError(t, clean.Err)
	require.Equal(t, 4, clean.Nrow())
	return clean
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.True(t, Filter{MinPowerKW: -5}.IsZero())
	assert.False(t, Filter{Commune: "Paris"}.IsZero())
	assert.False(t, Filter{YearTo: 2022}.IsZero())
}

func TestFilterApply(t *testing.T) {
	df := filterFixture(t)

	t.Run("zero filter returns the table untouched", func(t *testing.T) {
		out := Filter{}.Apply(df)
		assert.Equal(t, df.Nrow(), out.Nrow())
	})

	t.Run("by category", func(t *testing.T) {
		out := Filter{Categories: []string{PowerUltraFast.Label()}}.Apply(df)
		assert.Equal(t, 2, out.Nrow())
	})

	t.Run("by minimum power drops undefined power", func(t *testing.T) {
		out := Filter{MinPowerKW: 22}.Apply(df)
		require.Equal(t, 3, out.Nrow())
		for i := 0; i < out.Nrow(); i++ {
			assert.GreaterOrEqual(t, out.Col(ColPower).Elem(i).Float(), 22.0)
		}
	})

	t.Run("by operator set", func(t *testing.T) {
		out := Filter{Operators: []string{"Ionity", "Electra"}}.Apply(df)
		assert.Equal(t, 3, out.Nrow())
	})

	t.Run("by commune", func(t *testing.T) {
		out := Filter{Commune: "Paris"}.Apply(df)
		assert.Equal(t, 2, out.Nrow())
	})

	t.Run("by year range", func(t *testing.T) {
		out := Filter{YearFrom: 2021, YearTo: 2023}.Apply(df)
		assert.Equal(t, 2, out.Nrow())

		onlyFrom := Filter{YearFrom: 2024}.Apply(df)
		assert.Equal(t, 1, onlyFrom.Nrow())

		onlyTo := Filter{YearTo: 2019}.Apply(df)
		assert.Equal(t, 1, onlyTo.Nrow())
	})

	t.Run("criteria combine with and", func(t *testing.T) {
		out := Filter{Commune: "Lyon", MinPowerKW: 100}.Apply(df)
		require.Equal(t, 1, out.Nrow())
		assert.Equal(t, "Electra", out.Col(ColOperator).Elem(0).String())
	})

	t.Run("criterion over an absent column is a no-op", func(t *testing.T) {
		reduced := df.Select([]string{ColOperator, ColMunicipality})
		require.NoError(t, reduced.Err)
		out := Filter{MinPowerKW: 50, Commune: "Paris"}.Apply(reduced)
		assert.Equal(t, 2, out.Nrow())
	})
}
