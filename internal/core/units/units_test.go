package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Format(t *testing.T) {
	tests := []struct {
		unit Distance
		m    float64
		want string
	}{
		{Kilometers, 12345, "12.3km"},
		{NauticalMiles, 1852, "1.0nm"},
		{StatuteMiles, 16093.44, "10.0sm"},
		{Distance("parsec"), 500, "0.5km"},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.Format(tt.m))
		})
	}
}

func TestDistance_IsValid(t *testing.T) {
	assert.True(t, Kilometers.IsValid())
	assert.False(t, Distance("").IsValid())
}

func TestDistance_ToMeters(t *testing.T) {
	assert.InDelta(t, 1500.0, Kilometers.ToMeters(1.5), 1e-9)
	assert.InDelta(t, 1852.0, NauticalMiles.ToMeters(1), 1e-9)
	assert.InDelta(t, 2000.0, Distance("furlong").ToMeters(2), 1e-9, "unknown units fall back to km")
	assert.InDelta(t, 3.0, StatuteMiles.FromMeters(StatuteMiles.ToMeters(3)), 1e-9)
}
