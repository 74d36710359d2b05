package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunAltitude(t *testing.T) {
	assert.InDelta(t, 100.0, SunAltitude(0), 1e-9)
	assert.InDelta(t, 50.0, SunAltitude(3), 1e-9)
	assert.InDelta(t, 0.0, SunAltitude(6), 1e-9)
	assert.InDelta(t, 100.0, SunAltitude(12), 1e-9)
	assert.InDelta(t, 0.0, SunAltitude(18), 1e-9)
	assert.InDelta(t, 100.0, SunAltitude(24), 1e-9)
}

func TestSunIntensity(t *testing.T) {
	assert.InDelta(t, 0.1/1000, SunIntensity(0.9), 1e-12)
	assert.InDelta(t, 1.0/1000, SunIntensity(0), 1e-12)
	assert.InDelta(t, 0.0, SunIntensity(1), 1e-12)
}

func TestFogFalloff(t *testing.T) {
	assert.InDelta(t, 0.0, FogFalloff(0), 1e-9)
	assert.InDelta(t, 0.5, FogFalloff(12), 1e-9)
	assert.InDelta(t, 0.0, FogFalloff(24), 1e-9)
}

func TestSkyBrightness(t *testing.T) {
	tests := []struct {
		timeOfDay float64
		want      float64
	}{
		{0, 0},
		{1, 0.1},
		{4, 1.5},
		{12, 409.5},
		{20, 1.5},
		{24, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, SkyBrightness(tt.timeOfDay), 1e-9, "timeOfDay %v", tt.timeOfDay)
	}

	// symmetric around midday
	assert.InDelta(t, SkyBrightness(9), SkyBrightness(15), 1e-9)
}

func TestEmissionRate(t *testing.T) {
	assert.InDelta(t, 1.0, EmissionRate(0.7), 1e-9)
	assert.InDelta(t, 5.0, EmissionRate(0.9), 1e-9)
	assert.InDelta(t, 7.0, EmissionRate(1.0), 1e-9)
}

func TestDistantRainCopies(t *testing.T) {
	tests := []struct {
		density float64
		want    int
	}{
		{0.5, 0},
		{0.8, 0},
		{0.82, 0},
		{0.85, 0},
		{0.875, 2},
		{0.9, 3},
		{0.93, 4},
		{0.95, 4},
		{1.0, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DistantRainCopies(tt.density), "density %v", tt.density)
	}
}

// The copy count must match stepping i = 1, 2, ... while i < 40*(d-0.85)+1.
func TestDistantRainCopies_MatchesLoop(t *testing.T) {
	for d := 0.80; d <= 1.0; d += 0.005 {
		bound := 40*(d-0.85) + 1
		want := 0
		for i := 1.0; i < bound; i++ {
			want++
		}
		assert.Equal(t, want, DistantRainCopies(d), "density %v", d)
	}
}
