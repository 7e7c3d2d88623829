// Package narrative derives the data-story figures shown alongside the
// charts: headline KPIs, market-structure observations, a deployment growth
// signal, and the before/after cleaning summary.
package narrative

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"github.com/ArmandColonnaW/irve-insights/internal/chart"
	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

// Overview answers "how big, how fast": network size, typical charging power,
// and the ultra-fast share of the current view.
type Overview struct {
	TotalPoints int `json:"total_points"`
	// MedianPowerKW is negative when no power values are defined.
	MedianPowerKW float64 `json:"median_power_kw"`
	// UltraFastShare is the fraction of rows in the Ultra-fast band, in [0,1];
	// negative when the category column is absent.
	UltraFastShare float64 `json:"ultra_fast_share"`
}

// BuildOverview computes headline KPIs over the (possibly filtered) clean table.
func BuildOverview(df dataframe.DataFrame) Overview {
	o := Overview{TotalPoints: df.Nrow(), MedianPowerKW: -1, UltraFastShare: -1}
	names := df.Names()

	if hasColumn(names, domain.ColPower) {
		values := make([]float64, 0, df.Nrow())
		for _, v := range df.Col(domain.ColPower).Float() {
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			sort.Float64s(values)
			o.MedianPowerKW = stat.Quantile(0.5, stat.Empirical, values, nil)
		}
	}

	if hasColumn(names, domain.ColCategory) && df.Nrow() > 0 {
		ultra := 0
		col := df.Col(domain.ColCategory)
		for i := 0; i < col.Len(); i++ {
			if col.Elem(i).String() == domain.PowerUltraFast.Label() {
				ultra++
			}
		}
		o.UltraFastShare = float64(ultra) / float64(df.Nrow())
	}
	return o
}

// Operators describes market structure: who leads, by how much, and whether
// the long tail hints at fragmentation.
type Operators struct {
	Leader      string          `json:"leader"`
	LeaderCount int             `json:"leader_count"`
	LeaderShare float64         `json:"leader_share"`
	TopThree    []chart.BarItem `json:"top_three"`
	Fragmented  bool            `json:"fragmented"`
}

// BuildOperators summarizes the operator ranking. The boolean is false when
// the operator column is absent or the view is empty.
func BuildOperators(df dataframe.DataFrame) (Operators, bool) {
	spec, err := chart.TopEntities(df, domain.ColOperator, 3)
	if err != nil || len(spec.Bars) == 0 {
		return Operators{}, false
	}

	// TopEntities returns smallest-first for bar display; walk it backwards.
	bars := spec.Bars
	top := make([]chart.BarItem, 0, len(bars))
	for i := len(bars) - 1; i >= 0; i-- {
		top = append(top, bars[i])
	}

	total := df.Nrow()
	o := Operators{
		Leader:      top[0].Label,
		LeaderCount: top[0].Count,
		TopThree:    top,
	}
	if total > 0 {
		o.LeaderShare = float64(top[0].Count) / float64(total)
	}
	// A leader below a fifth of the market reads as a fragmented landscape.
	o.Fragmented = o.LeaderShare > 0 && o.LeaderShare < 0.2
	return o, true
}

// GrowthSignal qualifies the install pace of the last two service years
// against the two before them.
type GrowthSignal string

const (
	GrowthAccelerating GrowthSignal = "accelerating"
	GrowthSlowing      GrowthSignal = "slowing"
	GrowthStable       GrowthSignal = "stable"
	GrowthInsufficient GrowthSignal = "insufficient data"
)

// Growth compares installs in the two most recent service years with the two
// preceding ones. Ratios of 1.2 and 0.8 separate accelerating, stable, and
// slowing. Fewer than four distinct years yields GrowthInsufficient.
func Growth(df dataframe.DataFrame) (GrowthSignal, float64) {
	if !hasColumn(df.Names(), domain.ColServiceYear) {
		return GrowthInsufficient, 0
	}

	counts := make(map[int]int)
	col := df.Col(domain.ColServiceYear)
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		y, err := el.Int()
		if err != nil {
			continue
		}
		counts[y]++
	}
	if len(counts) < 4 {
		return GrowthInsufficient, 0
	}

	last := 0
	for y := range counts {
		if y > last {
			last = y
		}
	}
	recent := counts[last] + counts[last-1]
	previous := counts[last-2] + counts[last-3]
	if previous == 0 {
		return GrowthInsufficient, 0
	}

	ratio := float64(recent) / float64(previous)
	switch {
	case ratio >= 1.2:
		return GrowthAccelerating, ratio
	case ratio <= 0.8:
		return GrowthSlowing, ratio
	default:
		return GrowthStable, ratio
	}
}

// CleaningStory restates a cleaning Report for display: raw open data often
// carries duplicates, missing coordinates, and inconsistent formats, and the
// story shows what was fixed before any visualization.
type CleaningStory struct {
	RowsBefore        int     `json:"rows_before"`
	RowsAfter         int     `json:"rows_after"`
	DuplicatesDropped int     `json:"duplicates_dropped"`
	CoordinateDrops   int     `json:"coordinate_drops"`
	MissingBefore     float64 `json:"missing_share_before"`
	MissingAfter      float64 `json:"missing_share_after"`
}

// BuildCleaningStory shapes the pipeline report into display form.
func BuildCleaningStory(report domain.Report) CleaningStory {
	return CleaningStory{
		RowsBefore:        report.RowsIn,
		RowsAfter:         report.RowsOut,
		DuplicatesDropped: report.DuplicatesDropped,
		CoordinateDrops:   report.CoordinateDrops,
		MissingBefore:     report.MissingShareBefore,
		MissingAfter:      report.MissingShareAfter,
	}
}

func hasColumn(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
