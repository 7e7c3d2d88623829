package domain

import "math"

// PowerCategory is the ordered charging-speed band derived from nominal power.
// The zero value means the power was missing or outside the defined range.
type PowerCategory int

const (
	PowerUnknown PowerCategory = iota
	PowerNormal                // [0, 22) kW
	PowerFast                  // [22, 50) kW
	PowerVeryFast              // [50, 150) kW
	PowerUltraFast             // [150, 1000) kW
)

// powerCategoryLabels are the display labels, indexed by PowerCategory.
// They match the labels used in the published dataset story, so they double
// as the values stored in the categorie_puissance column.
var powerCategoryLabels = [...]string{
	"",
	"Normal (<22kW)",
	"Fast (22–50kW)",
	"Very fast (50–150kW)",
	"Ultra-fast (>150kW)",
}

// Label returns the display label, or "" for PowerUnknown.
func (c PowerCategory) Label() string {
	if c < PowerUnknown || int(c) >= len(powerCategoryLabels) {
		return ""
	}
	return powerCategoryLabels[c]
}

// PowerCategoryLabels returns the four defined labels in severity order,
// Normal through Ultra-fast. Display code must use this order regardless of
// counts.
func PowerCategoryLabels() []string {
	return []string{
		PowerNormal.Label(),
		PowerFast.Label(),
		PowerVeryFast.Label(),
		PowerUltraFast.Label(),
	}
}

// CategorizePower bins a nominal power value into its speed band using
// left-closed, right-open intervals. NaN, negative values, and values at or
// above 1000 kW are outside the defined range and yield PowerUnknown.
func CategorizePower(kw float64) PowerCategory {
	switch {
	case math.IsNaN(kw) || kw < 0 || kw >= 1000:
		return PowerUnknown
	case kw < 22:
		return PowerNormal
	case kw < 50:
		return PowerFast
	case kw < 150:
		return PowerVeryFast
	default:
		return PowerUltraFast
	}
}
