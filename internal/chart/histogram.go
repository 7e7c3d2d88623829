package chart

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// DefaultHistogramBins is used when the caller supplies no bin count.
const DefaultHistogramBins = 40

// histogramClipQuantile caps the tail so a handful of extreme values cannot
// compress the visible distribution.
const histogramClipQuantile = 0.99

// Histogram bins the non-undefined values of a numeric column after clipping
// everything above the column's 99th percentile down to that percentile.
func Histogram(df dataframe.DataFrame, column string, bins int) (HistogramSpec, error) {
	if !contains(df.Names(), column) {
		return HistogramSpec{}, &MissingColumnError{Column: column}
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	raw := df.Col(column).Float()
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != v { // NaN
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return HistogramSpec{}, nil
	}

	sort.Float64s(values)
	cap99 := stat.Quantile(histogramClipQuantile, stat.Empirical, values, nil)
	for i, v := range values {
		if v > cap99 {
			values[i] = cap99
		}
	}

	lo, hi := values[0], cap99
	if hi <= lo {
		// Degenerate distribution: one bin holding everything.
		return HistogramSpec{
			Cap:  cap99,
			Bins: []HistogramBin{{Low: lo, High: hi, Count: len(values)}},
		}, nil
	}

	width := (hi - lo) / float64(bins)
	spec := HistogramSpec{Cap: cap99, Bins: make([]HistogramBin, bins)}
	for i := range spec.Bins {
		spec.Bins[i] = HistogramBin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width}
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins { // v == hi lands in the last bin
			idx = bins - 1
		}
		spec.Bins[idx].Count++
	}
	return spec, nil
}
