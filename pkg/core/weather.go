// pkg/core/weather.go
package core

// NoRainOverride leaves the engine's rain density untouched.
const NoRainOverride = -1.0

// WeatherState is the weather requested for one mission. It is computed once at
// mission start and not modified afterwards.
type WeatherState struct {
	RainDensity float64 `json:"rainDensity"` // [-1, 1], -1 means no override
	FogDensity  float64 `json:"fogDensity"`  // >= 0, 0 means no fog
	HasDust     bool    `json:"hasDust"`
}

// NoWeather is the state for scenes that never receive weather.
func NoWeather() WeatherState {
	return WeatherState{RainDensity: NoRainOverride}
}

// RainActive reports whether rain density is pushed to the scene.
func (s WeatherState) RainActive() bool {
	return s.RainDensity > NoRainOverride
}

// FogActive reports whether fog is pushed to the scene.
func (s WeatherState) FogActive() bool {
	return s.FogDensity > 0
}

// DustRendered reports whether the dust storm is spawned. Rain wins over dust.
func (s WeatherState) DustRendered() bool {
	return s.HasDust && s.RainDensity == NoRainOverride
}

// Mode is the kind of game the mission belongs to
type Mode int

const (
	// ModePersistentWorld is a mission inside the persistent campaign world.
	ModePersistentWorld Mode = iota
	// ModeCustom is a one-off custom battle configured by the operator.
	ModeCustom
	// ModeUnknown is any game type the weather core does not handle.
	ModeUnknown Mode = -1
)

func (m Mode) String() string {
	switch m {
	case ModePersistentWorld:
		return "campaign"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseMode maps the simulation's game type name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "campaign":
		return ModePersistentWorld, true
	case "custom":
		return ModeCustom, true
	default:
		return ModeUnknown, false
	}
}

// Season of the in-world calendar
type Season int

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	case SeasonWinter:
		return "winter"
	default:
		return "unknown"
	}
}

// Settings is the persistent weather configuration. It is owned by the config
// layer and read on every mission start.
type Settings struct {
	OverrideRainDensity bool    `json:"overrideRainDensity" mapstructure:"overrideRainDensity"`
	RainDensity         float64 `json:"rainDensity" mapstructure:"rainDensity"`
	OverrideFogDensity  bool    `json:"overrideFogDensity" mapstructure:"overrideFogDensity"`
	FogDensity          float64 `json:"fogDensity" mapstructure:"fogDensity"`

	// arena permissions
	ArenaRain bool `json:"arenaRain" mapstructure:"arenaRain"`
	ArenaFog  bool `json:"arenaFog" mapstructure:"arenaFog"`
	ArenaDust bool `json:"arenaDust" mapstructure:"arenaDust"`
}

// CustomSelection holds the densities an operator picked for a custom battle.
type CustomSelection struct {
	RainDensity float64 `json:"rainDensity"`
	FogDensity  float64 `json:"fogDensity"`
}

// Tier is a discrete rain intensity bucket
type Tier int

const (
	TierNone Tier = iota
	TierLight
	TierModerate
	TierHeavy
)

func (t Tier) String() string {
	switch t {
	case TierLight:
		return "light"
	case TierModerate:
		return "moderate"
	case TierHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// TierFor buckets a realized rain density. Anything below 0.7 has no tier.
func TierFor(density float64) Tier {
	switch {
	case density >= 0.925:
		return TierHeavy
	case density >= 0.775:
		return TierModerate
	case density >= 0.7:
		return TierLight
	default:
		return TierNone
	}
}

// AmbientSound returns the ambient loop event name for the tier, or "" for TierNone.
func (t Tier) AmbientSound(season Season) string {
	if t == TierNone {
		return ""
	}
	family := "rain"
	if season == SeasonWinter {
		family = "snow"
	}
	return family + "_" + t.String()
}
