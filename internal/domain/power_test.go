package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizePower(t *testing.T) {
	tests := []struct {
		name string
		kw   float64
		want PowerCategory
	}{
		{"zero is normal", 0, PowerNormal},
		{"domestic socket", 3.7, PowerNormal},
		{"just below fast", 21.99, PowerNormal},
		{"fast lower bound", 22, PowerFast},
		{"mid fast", 36, PowerFast},
		{"very fast lower bound", 50, PowerVeryFast},
		{"dc charger", 149.9, PowerVeryFast},
		{"ultra fast lower bound", 150, PowerUltraFast},
		{"high but plausible", 360, PowerUltraFast},
		{"ceiling is excluded", 1000, PowerUnknown},
		{"watt-entry artifact", 36000, PowerUnknown},
		{"negative", -1, PowerUnknown},
		{"nan", math.NaN(), PowerUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizePower(tt.kw))
		})
	}
}

func TestPowerCategoryLabel(t *testing.T) {
	assert.Equal(t, "Normal (<22kW)", PowerNormal.Label())
	assert.Equal(t, "Fast (22–50kW)", PowerFast.Label())
	assert.Equal(t, "Very fast (50–150kW)", PowerVeryFast.Label())
	assert.Equal(t, "Ultra-fast (>150kW)", PowerUltraFast.Label())
	assert.Equal(t, "", PowerUnknown.Label())
	assert.Equal(t, "", PowerCategory(42).Label())
	assert.Equal(t, "", PowerCategory(-1).Label())
}

func TestPowerCategoryLabelsOrder(t *testing.T) {
	labels := PowerCategoryLabels()
	assert.Equal(t, []string{
		"Normal (<22kW)",
		"Fast (22–50kW)",
		"Very fast (50–150kW)",
		"Ultra-fast (>150kW)",
	}, labels)
}
