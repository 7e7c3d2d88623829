// Package chart builds declarative chart specifications from a cleaned IRVE
// table. Builders are pure functions: they return JSON-serializable
// descriptions for a presentation layer to render, never rendered images, and
// they do not mutate their input frame.
//
// Builders that need a specific column return a *MissingColumnError when it
// is absent. Callers either check column presence first or catch the error
// and render a "no data" fallback; this is the documented contract.
package chart

import "fmt"

// MissingColumnError names a column a builder needed but did not find.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// MapSpec describes a point-marker map layer.
type MapSpec struct {
	Viewport Viewport    `json:"viewport"`
	Markers  []MapMarker `json:"markers"`
}

// Viewport is the initial map camera.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}

// MapMarker is one charging point on the map. Size is a visual radius in
// [MinMarkerSize, MaxMarkerSize], independent of the data range.
type MapMarker struct {
	Latitude  float64           `json:"lat"`
	Longitude float64           `json:"lon"`
	Size      float64           `json:"size"`
	Tooltip   map[string]string `json:"tooltip,omitempty"`
}

// TimeSeriesSpec describes a line chart of counts per period, ordered
// chronologically.
type TimeSeriesSpec struct {
	Frequency Frequency     `json:"frequency"`
	Points    []PeriodCount `json:"points"`
}

// PeriodCount is one period on the time axis.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Frequency selects the period width of the time series.
type Frequency string

const (
	Yearly    Frequency = "year"
	Quarterly Frequency = "quarter"
	Monthly   Frequency = "month"
)

// BarSpec describes a bar chart as ordered label/count pairs. The builder
// fixes the order; renderers must not re-sort.
type BarSpec struct {
	Bars []BarItem `json:"bars"`
}

// BarItem is one bar.
type BarItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramSpec describes a histogram over a numeric column. Values above Cap
// (the 99th percentile of the input) were clipped to Cap before binning.
type HistogramSpec struct {
	Cap  float64        `json:"cap"`
	Bins []HistogramBin `json:"bins"`
}

// HistogramBin is one histogram bucket, [Low, High).
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// MissingnessSpec ranks columns by their fraction of undefined values,
// ascending for horizontal-bar display (largest at top).
type MissingnessSpec struct {
	Columns []MissingnessItem `json:"columns"`
}

// MissingnessItem is one column's missing-value rate.
type MissingnessItem struct {
	Column   string  `json:"column"`
	Fraction float64 `json:"fraction"`
}
