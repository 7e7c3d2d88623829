package chart

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

// Installations counts charging points put into service per fixed-width
// period. Periods are ordered chronologically, never by count. Rows with an
// undefined service date do not contribute a period.
func Installations(df dataframe.DataFrame, freq Frequency) (TimeSeriesSpec, error) {
	switch freq {
	case Yearly, Quarterly, Monthly:
	default:
		return TimeSeriesSpec{}, fmt.Errorf("unsupported frequency %q", freq)
	}
	if !contains(df.Names(), domain.ColServiceDate) {
		return TimeSeriesSpec{}, &MissingColumnError{Column: domain.ColServiceDate}
	}

	counts := make(map[string]int)
	col := df.Col(domain.ColServiceDate)
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		t, ok := domain.ParseServiceDate(el.String())
		if !ok {
			continue
		}
		counts[periodLabel(t.Year(), int(t.Month()), freq)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	// Period labels are zero-padded and big-endian, so lexical order is
	// chronological order.
	sort.Strings(labels)

	spec := TimeSeriesSpec{Frequency: freq, Points: make([]PeriodCount, 0, len(labels))}
	for _, label := range labels {
		spec.Points = append(spec.Points, PeriodCount{Period: label, Count: counts[label]})
	}
	return spec, nil
}

func periodLabel(year, month int, freq Frequency) string {
	switch freq {
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", year, (month-1)/3+1)
	case Monthly:
		return fmt.Sprintf("%04d-%02d", year, month)
	default:
		return fmt.Sprintf("%04d", year)
	}
}
