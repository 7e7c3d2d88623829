package chart

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

// Missingness computes the fraction of undefined values per column, keeps the
// n worst columns, and re-sorts them ascending for horizontal-bar display.
// It works on any table, so it has no required column.
func Missingness(df dataframe.DataFrame, n int) MissingnessSpec {
	if df.Err != nil || n <= 0 {
		return MissingnessSpec{}
	}

	items := make([]MissingnessItem, 0, df.Ncol())
	for _, name := range df.Names() {
		items = append(items, MissingnessItem{
			Column:   name,
			Fraction: domain.MissingFraction(df.Col(name)),
		})
	}

	// Rank worst-first to pick the top n, ties broken by column name.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Fraction != items[j].Fraction {
			return items[i].Fraction > items[j].Fraction
		}
		return items[i].Column < items[j].Column
	})
	if len(items) > n {
		items = items[:n]
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Fraction != items[j].Fraction {
			return items[i].Fraction < items[j].Fraction
		}
		return items[i].Column > items[j].Column
	})
	return MissingnessSpec{Columns: items}
}
