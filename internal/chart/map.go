package chart

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
)

// Marker sizing bounds: power still reads on the map without extreme values
// producing giant circles.
const (
	MinMarkerSize     = 5.0
	MaxMarkerSize     = 40.0
	DefaultMarkerSize = 8.0
	// fallbackPowerSize stands in for rows whose power is undefined.
	fallbackPowerSize = 7.0
)

// FranceViewport frames the whole metropolitan territory at a national zoom.
var FranceViewport = Viewport{Latitude: 46.6, Longitude: 2.5, Zoom: 5.3}

// Map projects rows to point markers sized by a clipped transform of nominal
// power. Rows without a parsed coordinate pair are left off the map. Tooltip
// content is assembled only from the requested columns actually present in
// the frame.
func Map(df dataframe.DataFrame, tooltipCols []string) (MapSpec, error) {
	names := df.Names()
	for _, required := range []string{domain.ColLatitude, domain.ColLongitude} {
		if !contains(names, required) {
			return MapSpec{}, &MissingColumnError{Column: required}
		}
	}

	lat := df.Col(domain.ColLatitude)
	lon := df.Col(domain.ColLongitude)

	hasPower := contains(names, domain.ColPower)
	var power []float64
	if hasPower {
		power = df.Col(domain.ColPower).Float()
	}

	present := make([]string, 0, len(tooltipCols))
	tooltipSeries := make(map[string]series.Series, len(tooltipCols))
	for _, c := range tooltipCols {
		if contains(names, c) {
			present = append(present, c)
			tooltipSeries[c] = df.Col(c)
		}
	}

	spec := MapSpec{Viewport: FranceViewport, Markers: make([]MapMarker, 0, df.Nrow())}
	for i := 0; i < df.Nrow(); i++ {
		latEl, lonEl := lat.Elem(i), lon.Elem(i)
		if latEl.IsNA() || lonEl.IsNA() {
			continue
		}

		size := DefaultMarkerSize
		if hasPower {
			size = clip(power[i], MinMarkerSize, MaxMarkerSize)
		}

		marker := MapMarker{
			Latitude:  latEl.Float(),
			Longitude: lonEl.Float(),
			Size:      size,
		}
		for _, c := range present {
			el := tooltipSeries[c].Elem(i)
			if el.IsNA() {
				continue
			}
			if marker.Tooltip == nil {
				marker.Tooltip = make(map[string]string, len(present))
			}
			marker.Tooltip[c] = el.String()
		}
		spec.Markers = append(spec.Markers, marker)
	}
	return spec, nil
}

// clip bounds v to [lo, hi]; NaN falls back to the undefined-power size.
func clip(v, lo, hi float64) float64 {
	switch {
	case v != v: // NaN
		return fallbackPowerSize
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
