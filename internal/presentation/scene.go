package presentation

import "github.com/OCAP2/weather/pkg/core"

// Scene is the live mission scene the controller mutates.
type Scene interface {
	TimeOfDay() float64

	SetRainDensity(density float64)
	// RainDensity returns the density the engine actually applied, which may
	// differ from the requested one.
	RainDensity() float64

	SetSun(color core.Color, altitude, angle, intensity float64)
	SetFog(density float64, color core.Color, falloff float64)
	SetFogAdvanced(offset, falloff, altitude float64)

	TerrainData() (nodesX, nodesY int, nodeSize float64)
	Instantiate(prefab string, frame core.Frame)

	SetSkyBrightness(brightness float64)
	SetColorGradeIndex(index int)
	SetSkyboxTexture(texture string)

	FindEntity(name string) (Entity, bool)
}

// Entity is a named scene object with child visual elements.
type Entity interface {
	Name() string
	Children() []Entity
	SetEmissionRateMultiplier(multiplier float64)
	FirstMesh() (Mesh, bool)
	AddMesh(m Mesh)
}

// Mesh is a visual mesh attached to an entity
type Mesh interface {
	Copy() Mesh
	LocalFrame() core.Frame
	SetLocalFrame(f core.Frame)
}

// Audio creates ambient sound instances bound to the scene.
type Audio interface {
	EventID(name string) int
	Create(eventID int) Sound
}

// Sound is a playable sound instance. Stop on a stopped sound is a no-op.
type Sound interface {
	Play()
	Stop()
}

// DustFlag is the world-level dust storm state shared with combat modifiers.
type DustFlag interface {
	SetDust(active bool)
}

// Rendered is what actually reached the scene after mutual exclusion.
type Rendered struct {
	RainDensity float64 `json:"rainDensity"`
	FogDensity  float64 `json:"fogDensity"`
	Dust        bool    `json:"dust"`
}

// CombatPatch is an optional third-party combat module that scales combat
// outcomes by the rendered weather.
type CombatPatch interface {
	WeatherApplied(r Rendered)
}

// FloatRand is the random source for rain mesh jitter. *rand.Rand from math/rand/v2 satisfies it.
type FloatRand interface {
	Float64() float64
}
