package resolver

import (
	"math/rand/v2"
	"testing"

	"github.com/OCAP2/weather/internal/markers"
	"github.com/OCAP2/weather/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func permissive() core.Settings {
	return core.Settings{ArenaRain: true, ArenaFog: true, ArenaDust: true}
}

func registryWith(ms ...core.Marker) *markers.Registry {
	r := markers.NewRegistry()
	for _, m := range ms {
		r.Set(m)
	}
	return r
}

func dustAt(x, y float64) core.Marker {
	return core.Marker{Name: "dust", Position: core.Position3D{X: x, Y: y, Z: 1}}
}

func fogAt(x, y float64) core.Marker {
	return core.Marker{Name: "fog", Position: core.Position3D{X: x, Y: y, Z: 2}}
}

func TestResolve_IndoorAlwaysNoWeather(t *testing.T) {
	settings := core.Settings{
		OverrideRainDensity: true, RainDensity: 0.9,
		OverrideFogDensity: true, FogDensity: 10,
	}
	r := New(registryWith(dustAt(0, 0)), fixedRand(5))
	mc := core.MissionContext{Indoor: true, Arena: true}

	for _, mode := range []core.Mode{core.ModePersistentWorld, core.ModeCustom} {
		got := r.Resolve(mode, settings, mc, core.Some(core.CustomSelection{RainDensity: 1, FogDensity: 0}))
		assert.Equal(t, core.NoWeather(), got, "mode %s", mode)
	}
}

func TestResolve_Persistent_NoMarker(t *testing.T) {
	r := New(markers.NewRegistry(), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, core.NoWeather(), got)
}

func TestResolve_Persistent_NilSamples(t *testing.T) {
	r := New(nil, fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, core.NoWeather(), got)
}

func TestResolve_Persistent_DustMarker(t *testing.T) {
	r := New(registryWith(dustAt(0, 20)), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.True(t, got.HasDust)
	assert.Equal(t, -1.0, got.RainDensity)
	assert.Equal(t, 0.0, got.FogDensity)
}

func TestResolve_Persistent_FogMarker(t *testing.T) {
	r := New(registryWith(fogAt(5, 5)), fixedRand(6))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.False(t, got.HasDust)
	assert.Equal(t, 7.0, got.FogDensity)
	assert.Equal(t, -1.0, got.RainDensity)
}

func TestResolve_Persistent_OnlyNearestMarkerCounts(t *testing.T) {
	r := New(registryWith(fogAt(10, 0), dustAt(3, 0)), fixedRand(3))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.True(t, got.HasDust)
	assert.Equal(t, 0.0, got.FogDensity)
}

func TestResolve_Persistent_MarkerOutsideRadius(t *testing.T) {
	r := New(registryWith(dustAt(26, 0)), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, core.NoWeather(), got)
}

func TestResolve_Persistent_RadiusOption(t *testing.T) {
	r := New(registryWith(dustAt(26, 0)), fixedRand(0), WithRadius(30))

	got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.True(t, got.HasDust)
}

func TestResolve_Persistent_SettingsOverrides(t *testing.T) {
	settings := permissive()
	settings.OverrideRainDensity = true
	settings.RainDensity = 0.9
	settings.OverrideFogDensity = true
	settings.FogDensity = 12
	r := New(registryWith(fogAt(0, 0)), fixedRand(30))

	got := r.Resolve(core.ModePersistentWorld, settings, core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, 0.9, got.RainDensity)
	assert.Equal(t, 12.0, got.FogDensity)
}

func TestResolve_Persistent_RainOverrideKeepsDustFlag(t *testing.T) {
	settings := permissive()
	settings.OverrideRainDensity = true
	settings.RainDensity = 0.8
	r := New(registryWith(dustAt(0, 0)), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, settings, core.MissionContext{}, core.None[core.CustomSelection]())

	// both flags set; the controller decides what is rendered
	assert.True(t, got.HasDust)
	assert.Equal(t, 0.8, got.RainDensity)
	assert.False(t, got.DustRendered())
}

func TestResolve_Persistent_ArenaRestrictions(t *testing.T) {
	settings := core.Settings{
		OverrideRainDensity: true, RainDensity: 0.95,
		OverrideFogDensity: true, FogDensity: 20,
	}
	r := New(registryWith(dustAt(0, 0)), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, settings, core.MissionContext{Arena: true}, core.None[core.CustomSelection]())

	assert.Equal(t, 0.0, got.RainDensity)
	assert.Equal(t, ArenaFogOff, got.FogDensity)
	assert.False(t, got.HasDust)
}

func TestResolve_Persistent_ArenaRainDisabledAlwaysZero(t *testing.T) {
	settings := permissive()
	settings.ArenaRain = false
	mc := core.MissionContext{Arena: true}

	for _, override := range []bool{false, true} {
		settings.OverrideRainDensity = override
		settings.RainDensity = 0.7
		r := New(registryWith(fogAt(0, 0)), fixedRand(4))

		got := r.Resolve(core.ModePersistentWorld, settings, mc, core.None[core.CustomSelection]())
		assert.Equal(t, 0.0, got.RainDensity)
		assert.Equal(t, 5.0, got.FogDensity)
	}
}

func TestResolve_Persistent_NonArenaIgnoresPermissions(t *testing.T) {
	settings := core.Settings{OverrideRainDensity: true, RainDensity: 0.75}
	r := New(registryWith(dustAt(0, 0)), fixedRand(0))

	got := r.Resolve(core.ModePersistentWorld, settings, core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, 0.75, got.RainDensity)
	assert.True(t, got.HasDust)
}

func TestResolve_Persistent_FogDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := New(registryWith(fogAt(0, 0)), rng)
	seen := make(map[float64]int)

	for i := 0; i < 1000; i++ {
		got := r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())
		require.GreaterOrEqual(t, got.FogDensity, 1.0)
		require.LessOrEqual(t, got.FogDensity, 32.0)
		require.Equal(t, float64(int(got.FogDensity)), got.FogDensity, "fog density must be an integer")
		seen[got.FogDensity]++
	}

	assert.Len(t, seen, 32, "every value in [1,32] should appear")
}

func TestResolve_Persistent_NilRandFallsBack(t *testing.T) {
	r := New(registryWith(fogAt(0, 0)), nil)

	for i := 0; i < 50; i++ {
		var got core.WeatherState
		require.NotPanics(t, func() {
			got = r.Resolve(core.ModePersistentWorld, permissive(), core.MissionContext{}, core.None[core.CustomSelection]())
		})
		assert.GreaterOrEqual(t, got.FogDensity, 1.0)
		assert.LessOrEqual(t, got.FogDensity, float64(MaxMarkerFog))
	}
}

func TestResolve_Custom(t *testing.T) {
	tests := []struct {
		name      string
		selection core.Optional[core.CustomSelection]
		want      core.WeatherState
	}{
		{
			name:      "absent selection",
			selection: core.None[core.CustomSelection](),
			want:      core.NoWeather(),
		},
		{
			name:      "rain and fog",
			selection: core.Some(core.CustomSelection{RainDensity: 0.8, FogDensity: 16}),
			want:      core.WeatherState{RainDensity: 0.8, FogDensity: 16},
		},
		{
			name:      "zero fog means dust",
			selection: core.Some(core.CustomSelection{RainDensity: 0, FogDensity: 0}),
			want:      core.WeatherState{RainDensity: -1, FogDensity: 0, HasDust: true},
		},
		{
			name:      "fog of one is off",
			selection: core.Some(core.CustomSelection{FogDensity: 1}),
			want:      core.NoWeather(),
		},
		{
			name:      "zero fog with rain sets both flags",
			selection: core.Some(core.CustomSelection{RainDensity: 0.9, FogDensity: 0}),
			want:      core.WeatherState{RainDensity: 0.9, HasDust: true},
		},
	}

	r := New(registryWith(fogAt(0, 0)), fixedRand(0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(core.ModeCustom, permissive(), core.MissionContext{Arena: true}, tt.selection)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_UnknownMode(t *testing.T) {
	r := New(registryWith(dustAt(0, 0)), fixedRand(0))

	got := r.Resolve(core.Mode(99), permissive(), core.MissionContext{}, core.None[core.CustomSelection]())

	assert.Equal(t, core.NoWeather(), got)
}
