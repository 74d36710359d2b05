// Package presentation applies a resolved WeatherState to a running scene and
// keeps the ambient sounds that belong to it.
package presentation

import (
	"log/slog"

	"github.com/OCAP2/weather/pkg/core"
)

// Prefab, texture and sound names known to the scene engine.
const (
	DustPrefab      = "dust_prefab_entity"
	RainPrefab      = "rain_prefab_entity"
	SnowPrefab      = "snow_prefab_entity"
	DistantRain     = "rain_far"
	OvercastTexture = "sky_photo_overcast_01"
	DustSound       = "dust_storm"

	// HarshDesertGrade is the color grade index applied during dust storms.
	HarshDesertGrade = 23

	// MaxJitter bounds the per-axis offset of distant rain mesh copies.
	MaxJitter = 10.0
)

var (
	sunColor = core.Color{R: 255, G: 255, B: 255, A: 255}
	fogColor = core.Color{R: 1, G: 1, B: 1, A: 1}
)

// Phase of the controller's mission lifecycle
type Phase int

const (
	// PhaseIdle is before Start.
	PhaseIdle Phase = iota
	// PhasePending means the first-tick refinement has not yet run.
	PhasePending
	// PhaseRefined means the refinement ran; later ticks do nothing.
	PhaseRefined
	// PhaseEnded means sounds were released.
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseRefined:
		return "refined"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Dependencies holds the collaborators of a Controller
type Dependencies struct {
	Scene   Scene
	Audio   Audio
	Dust    DustFlag
	Rand    FloatRand
	Mission core.MissionContext
	Patch   core.Optional[CombatPatch]
	Logger  *slog.Logger
	Metrics *Instruments // optional
}

// Controller drives the weather presentation of one mission. It is used from
// the simulation thread only and holds no locks.
type Controller struct {
	deps Dependencies
	log  *slog.Logger

	phase    Phase
	state    core.WeatherState
	rendered Rendered
	realized float64
	tier     core.Tier
	sounds   []string

	rainSound Sound
	dustSound Sound
}

// Snapshot is a read-only view of the controller state
type Snapshot struct {
	Phase    Phase
	State    core.WeatherState
	Rendered Rendered
	Realized float64
	Tier     core.Tier
	Sounds   []string
}

// New creates a Controller in PhaseIdle.
func New(deps Dependencies) *Controller {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		deps: deps,
		log:  log.With("mission", deps.Mission.Name),
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Snapshot returns the current state for recording.
func (c *Controller) Snapshot() Snapshot {
	sounds := make([]string, len(c.sounds))
	copy(sounds, c.sounds)
	return Snapshot{
		Phase:    c.phase,
		State:    c.state,
		Rendered: c.rendered,
		Realized: c.realized,
		Tier:     c.tier,
		Sounds:   sounds,
	}
}

// Start applies the immediate scene mutations for state and arms the
// first-tick refinement.
func (c *Controller) Start(state core.WeatherState) {
	scene := c.deps.Scene
	t := scene.TimeOfDay()

	c.stopSounds()
	c.state = state
	c.rendered = Rendered{RainDensity: core.NoRainOverride}
	c.realized = 0
	c.tier = core.TierNone
	c.sounds = nil

	c.setDust(false)

	if state.RainActive() {
		scene.SetRainDensity(state.RainDensity)
		scene.SetSun(sunColor, SunAltitude(t), 0, SunIntensity(state.RainDensity))
		c.rendered.RainDensity = state.RainDensity
	}

	if state.FogActive() {
		scene.SetFog(state.FogDensity, fogColor, FogFalloff(t))
		scene.SetFogAdvanced(0, 0, -40)
		c.rendered.FogDensity = state.FogDensity
	}

	if state.DustRendered() {
		nodesX, nodesY, nodeSize := scene.TerrainData()
		extent := core.Terrain{NodesX: nodesX, NodesY: nodesY, NodeSize: nodeSize}
		x, y := extent.Extent()
		scene.Instantiate(DustPrefab, core.IdentityFrame(core.Position3D{X: x / 2, Y: y / 2}))
		scene.SetSkyBrightness(SkyBrightness(t))
		scene.SetColorGradeIndex(HarshDesertGrade)
		c.setDust(true)
		c.rendered.Dust = true

		c.dustSound = c.play(DustSound)
	} else if state.HasDust {
		c.log.Debug("Dust suppressed by rain", "rainDensity", state.RainDensity)
	}

	if patch, ok := c.deps.Patch.Get(); ok {
		patch.WeatherApplied(c.rendered)
	}

	c.deps.Metrics.missionStarted(c.rendered)
	c.phase = PhasePending

	c.log.Info("Weather applied",
		"rainDensity", c.rendered.RainDensity,
		"fogDensity", c.rendered.FogDensity,
		"dust", c.rendered.Dust,
		"timeOfDay", t)
}

// Tick runs the one-time refinement on the first tick after Start. It is a
// no-op in every other phase.
func (c *Controller) Tick(dt float64) {
	if c.phase != PhasePending {
		return
	}

	scene := c.deps.Scene
	density := scene.RainDensity()
	c.realized = density

	if density > 0 {
		c.detailRain(density)

		c.tier = core.TierFor(density)
		if name := c.tier.AmbientSound(c.deps.Mission.Season); name != "" {
			c.rainSound = c.play(name)
		}
		c.deps.Metrics.refined(c.tier.String())
	}

	c.phase = PhaseRefined
	c.log.Debug("Weather refined",
		"realizedRainDensity", density,
		"requestedRainDensity", c.state.RainDensity,
		"tier", c.tier.String(),
		"dt", dt)
}

// End releases the ambient sounds. Calling it more than once is safe.
func (c *Controller) End() {
	c.stopSounds()
	if c.phase != PhaseEnded {
		c.log.Debug("Weather released")
	}
	c.phase = PhaseEnded
}

// detailRain thickens an existing rain or snow prefab to match density.
func (c *Controller) detailRain(density float64) {
	scene := c.deps.Scene

	prefab, ok := scene.FindEntity(RainPrefab)
	if !ok {
		prefab, ok = scene.FindEntity(SnowPrefab)
	}
	if !ok {
		c.log.Debug("No rain or snow prefab in scene")
		return
	}

	scene.SetSkyboxTexture(OvercastTexture)

	for _, child := range prefab.Children() {
		if child.Name() != DistantRain {
			child.SetEmissionRateMultiplier(EmissionRate(density))
			continue
		}

		mesh, ok := child.FirstMesh()
		if !ok {
			continue
		}
		for i := 0; i < DistantRainCopies(density); i++ {
			cp := mesh.Copy()
			cp.SetLocalFrame(cp.LocalFrame().
				Advance(c.jitter()).
				Elevate(c.jitter()).
				Strafe(c.jitter()))
			child.AddMesh(cp)
		}
	}
}

func (c *Controller) jitter() float64 {
	if c.deps.Rand == nil {
		return 0
	}
	return c.deps.Rand.Float64() * MaxJitter
}

func (c *Controller) play(name string) Sound {
	s := c.deps.Audio.Create(c.deps.Audio.EventID(name))
	if s == nil {
		return nil
	}
	s.Play()
	c.sounds = append(c.sounds, name)
	return s
}

func (c *Controller) stopSounds() {
	if c.rainSound != nil {
		c.rainSound.Stop()
		c.rainSound = nil
	}
	if c.dustSound != nil {
		c.dustSound.Stop()
		c.dustSound = nil
	}
}

func (c *Controller) setDust(active bool) {
	if c.deps.Dust != nil {
		c.deps.Dust.SetDust(active)
	}
}
