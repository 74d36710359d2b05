// Package resolver decides which weather a mission gets. It performs no I/O
// beyond the marker query and has no side effects.
package resolver

import (
	"math/rand/v2"
	"time"

	"github.com/OCAP2/weather/internal/markers"
	"github.com/OCAP2/weather/pkg/core"
)

// MaxMarkerFog is the upper bound of the fog density rolled for a fog marker.
const MaxMarkerFog = 32

// ArenaFogOff is the fog density forced on arenas without fog. It is 1, not 0:
// the engine treats 1 as minimal fog, while rain is disabled with 0.
const ArenaFogOff = 1.0

// SampleProvider finds the nearest world marker around a position.
type SampleProvider interface {
	Nearest(pos core.Position3D, radius float64) (core.Marker, bool)
}

// Rand is the random source used for marker fog. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Resolver computes a WeatherState at mission start.
type Resolver struct {
	samples SampleProvider
	rng     Rand
	radius  float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRadius overrides the marker search radius.
func WithRadius(radius float64) Option {
	return func(r *Resolver) {
		if radius > 0 {
			r.radius = radius
		}
	}
}

// New creates a Resolver. samples may be nil when no world markers exist.
// A nil rng gets a clock-seeded PCG source.
func New(samples SampleProvider, rng Rand, opts ...Option) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	r := &Resolver{
		samples: samples,
		rng:     rng,
		radius:  markers.DefaultRadius,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the weather for the mission.
//
// The resolver may return HasDust together with an active rain density; the
// presentation layer suppresses dust in that case.
func (r *Resolver) Resolve(
	mode core.Mode,
	settings core.Settings,
	mc core.MissionContext,
	selection core.Optional[core.CustomSelection],
) core.WeatherState {
	if mc.Indoor {
		return core.NoWeather()
	}

	switch mode {
	case core.ModePersistentWorld:
		return r.resolvePersistent(settings, mc)
	case core.ModeCustom:
		return resolveCustom(selection)
	default:
		return core.NoWeather()
	}
}

func (r *Resolver) resolvePersistent(settings core.Settings, mc core.MissionContext) core.WeatherState {
	state := core.NoWeather()

	if r.samples != nil {
		if m, ok := r.samples.Nearest(mc.PartyPosition, r.radius); ok {
			switch m.Kind() {
			case core.MarkerDust:
				state.HasDust = true
			case core.MarkerFog:
				state.FogDensity = float64(r.rng.IntN(MaxMarkerFog) + 1)
			}
		}
	}

	if settings.OverrideRainDensity {
		state.RainDensity = settings.RainDensity
	}
	if settings.OverrideFogDensity {
		state.FogDensity = settings.FogDensity
	}

	if mc.Arena {
		if !settings.ArenaRain {
			state.RainDensity = 0
		}
		if !settings.ArenaFog {
			state.FogDensity = ArenaFogOff
		}
		if !settings.ArenaDust {
			state.HasDust = false
		}
	}

	return state
}

// resolveCustom reads the operator's picks. Dust is encoded as a selected fog
// density of exactly 0, unlike the persistent world where dust comes from a
// marker.
func resolveCustom(selection core.Optional[core.CustomSelection]) core.WeatherState {
	state := core.NoWeather()

	sel, ok := selection.Get()
	if !ok {
		return state
	}

	if sel.RainDensity > 0 {
		state.RainDensity = sel.RainDensity
	}
	// a selected fog of 1 is the "off" value
	if sel.FogDensity > ArenaFogOff {
		state.FogDensity = sel.FogDensity
	}
	state.HasDust = sel.FogDensity == 0

	return state
}
