package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoWeather(t *testing.T) {
	s := NoWeather()
	assert.Equal(t, -1.0, s.RainDensity)
	assert.Equal(t, 0.0, s.FogDensity)
	assert.False(t, s.HasDust)
	assert.False(t, s.RainActive())
	assert.False(t, s.FogActive())
	assert.False(t, s.DustRendered())
}

func TestWeatherState_DustRendered(t *testing.T) {
	tests := []struct {
		name  string
		state WeatherState
		want  bool
	}{
		{"dust without rain", WeatherState{RainDensity: -1, HasDust: true}, true},
		{"dust with rain", WeatherState{RainDensity: 0.8, HasDust: true}, false},
		{"dust with zero rain", WeatherState{RainDensity: 0, HasDust: true}, false},
		{"no dust", WeatherState{RainDensity: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.DustRendered())
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		density float64
		want    Tier
	}{
		{0.5, TierNone},
		{0.69, TierNone},
		{0.70, TierLight},
		{0.72, TierLight},
		{0.775, TierModerate},
		{0.80, TierModerate},
		{0.924, TierModerate},
		{0.925, TierHeavy},
		{0.95, TierHeavy},
		{1.5, TierHeavy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.density), "density %v", tt.density)
	}
}

func TestTier_AmbientSound(t *testing.T) {
	assert.Equal(t, "rain_light", TierLight.AmbientSound(SeasonSummer))
	assert.Equal(t, "rain_moderate", TierModerate.AmbientSound(SeasonAutumn))
	assert.Equal(t, "rain_heavy", TierHeavy.AmbientSound(SeasonSpring))
	assert.Equal(t, "snow_light", TierLight.AmbientSound(SeasonWinter))
	assert.Equal(t, "snow_moderate", TierModerate.AmbientSound(SeasonWinter))
	assert.Equal(t, "snow_heavy", TierHeavy.AmbientSound(SeasonWinter))
	assert.Empty(t, TierNone.AmbientSound(SeasonWinter))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("campaign")
	assert.True(t, ok)
	assert.Equal(t, ModePersistentWorld, m)

	m, ok = ParseMode("custom")
	assert.True(t, ok)
	assert.Equal(t, ModeCustom, m)

	_, ok = ParseMode("multiplayer")
	assert.False(t, ok)
}

func TestMarker_Kind(t *testing.T) {
	assert.Equal(t, MarkerDust, Marker{Position: Position3D{Z: 1}}.Kind())
	assert.Equal(t, MarkerFog, Marker{Position: Position3D{Z: 2}}.Kind())
	assert.Equal(t, MarkerNeutral, Marker{Position: Position3D{Z: 0}}.Kind())
	assert.Equal(t, MarkerNeutral, Marker{Position: Position3D{Z: 3}}.Kind())
}

func TestFrame_Moves(t *testing.T) {
	f := IdentityFrame(Position3D{X: 1, Y: 2, Z: 3})

	f = f.Advance(2).Elevate(3).Strafe(4)

	assert.Equal(t, Position3D{X: 5, Y: 4, Z: 6}, f.Origin)
	assert.Equal(t, Position3D{Y: 1}, f.Forward)
}

func TestTerrain_Extent(t *testing.T) {
	x, y := Terrain{NodesX: 64, NodesY: 32, NodeSize: 2}.Extent()
	assert.Equal(t, 128.0, x)
	assert.Equal(t, 64.0, y)
}

func TestOptional(t *testing.T) {
	none := None[int]()
	_, ok := none.Get()
	assert.False(t, ok)
	assert.False(t, none.Present())

	some := Some(7)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
