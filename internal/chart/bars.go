package chart

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

// UnknownBucket is the explicit label for rows with an undefined value in a
// categorical column.
const UnknownBucket = "Unknown"

// TopEntities counts occurrences of a categorical column, ranks descending,
// truncates to n, and then reverses the order so a horizontal bar chart reads
// largest-at-top. Undefined values count under UnknownBucket.
func TopEntities(df dataframe.DataFrame, column string, n int) (BarSpec, error) {
	if !contains(df.Names(), column) {
		return BarSpec{}, &MissingColumnError{Column: column}
	}
	if n <= 0 {
		return BarSpec{}, nil
	}

	counts := make(map[string]int)
	col := df.Col(column)
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		label := strings.TrimSpace(el.String())
		if el.IsNA() || label == "" || label == "NaN" {
			label = UnknownBucket
		}
		counts[label]++
	}

	items := make([]BarItem, 0, len(counts))
	for label, count := range counts {
		items = append(items, BarItem{Label: label, Count: count})
	}
	// Rank by count descending; ties break alphabetically so output is stable.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
	if len(items) > n {
		items = items[:n]
	}
	reverse(items)
	return BarSpec{Bars: items}, nil
}

// PowerMix counts rows per power category and always presents the four fixed
// categories in severity order, Normal through Ultra-fast, zero-filled when a
// category is absent from the subset. Rows with an undefined category are not
// counted.
func PowerMix(df dataframe.DataFrame) (BarSpec, error) {
	if !contains(df.Names(), domain.ColCategory) {
		return BarSpec{}, &MissingColumnError{Column: domain.ColCategory}
	}

	counts := make(map[string]int, 4)
	col := df.Col(domain.ColCategory)
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		counts[el.String()]++
	}

	labels := domain.PowerCategoryLabels()
	spec := BarSpec{Bars: make([]BarItem, 0, len(labels))}
	for _, label := range labels {
		spec.Bars = append(spec.Bars, BarItem{Label: label, Count: counts[label]})
	}
	return spec, nil
}

func reverse(items []BarItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
