package domain

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Filter is a boolean mask over the clean table, mirroring the interactive
// view filters: each criterion applies only when set and when its column is
// present, so a filter over a reduced table is a no-op rather than an error.
type Filter struct {
	// Categories keeps rows whose power category label is in the set.
	Categories []string
	// MinPowerKW keeps rows with nominal power at or above the bound; rows
	// with undefined power are treated as 0 kW and therefore dropped.
	MinPowerKW float64
	// Operators keeps rows whose operator name is in the set.
	Operators []string
	// Commune keeps rows in the named municipality.
	Commune string
	// YearFrom/YearTo bound the service year inclusively; zero means open.
	YearFrom int
	YearTo   int
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return len(f.Categories) == 0 && f.MinPowerKW <= 0 && len(f.Operators) == 0 &&
		f.Commune == "" && f.YearFrom == 0 && f.YearTo == 0
}

// Apply returns the subset of df matching every set criterion. The input is
// not mutated; the result is a transient per-view copy.
func (f Filter) Apply(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Err != nil || f.IsZero() {
		return df
	}
	names := df.Names()

	var masks []dataframe.F
	if len(f.Categories) > 0 && hasColumn(names, ColCategory) {
		masks = append(masks, dataframe.F{Colname: ColCategory, Comparator: series.In, Comparando: f.Categories})
	}
	if f.MinPowerKW > 0 && hasColumn(names, ColPower) {
		minKW := f.MinPowerKW
		masks = append(masks, dataframe.F{
			Colname:    ColPower,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				return !el.IsNA() && el.Float() >= minKW
			},
		})
	}
	if len(f.Operators) > 0 && hasColumn(names, ColOperator) {
		masks = append(masks, dataframe.F{Colname: ColOperator, Comparator: series.In, Comparando: f.Operators})
	}
	if f.Commune != "" && hasColumn(names, ColMunicipality) {
		masks = append(masks, dataframe.F{Colname: ColMunicipality, Comparator: series.Eq, Comparando: f.Commune})
	}
	if (f.YearFrom != 0 || f.YearTo != 0) && hasColumn(names, ColServiceYear) {
		from, to := f.YearFrom, f.YearTo
		masks = append(masks, dataframe.F{
			Colname:    ColServiceYear,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				if el.IsNA() {
					return false
				}
				y, err := el.Int()
				if err != nil {
					return false
				}
				return (from == 0 || y >= from) && (to == 0 || y <= to)
			},
		})
	}

	if len(masks) == 0 {
		return df
	}
	return df.FilterAggregation(dataframe.And, masks...)
}
