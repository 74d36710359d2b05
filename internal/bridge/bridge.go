// Package bridge implements the presentation collaborators on top of the
// extension callback channel. Every mutation becomes one callback line the
// simulation executes on its side.
package bridge

import (
	"log/slog"

	"github.com/OCAP2/weather/pkg/core"
)

// Callback names sent to the simulation.
const (
	CmdRain          = ":SCENE:RAIN:"
	CmdSun           = ":SCENE:SUN:"
	CmdFog           = ":SCENE:FOG:"
	CmdFogAdvanced   = ":SCENE:FOG:ADVANCED:"
	CmdSpawn         = ":SCENE:SPAWN:"
	CmdSkyBrightness = ":SCENE:SKY:BRIGHTNESS:"
	CmdColorGrade    = ":SCENE:GRADE:"
	CmdSkybox        = ":SCENE:SKYBOX:"
	CmdEmission      = ":ENTITY:EMISSION:"
	CmdMeshAdd       = ":ENTITY:MESH:ADD:"
	CmdSoundPlay     = ":SOUND:PLAY:"
	CmdSoundStop     = ":SOUND:STOP:"
	CmdCombatWeather = ":COMBAT:WEATHER:"
)

// Emitter delivers one callback to the simulation.
type Emitter func(command string, args ...any) error

// sender wraps an Emitter. Delivery failures are logged and never surface
// to the weather core.
type sender struct {
	emit Emitter
	log  *slog.Logger
}

func newSender(emit Emitter, log *slog.Logger) sender {
	if log == nil {
		log = slog.Default()
	}
	return sender{emit: emit, log: log}
}

func (s sender) send(command string, args ...any) {
	if s.emit == nil {
		return
	}
	if err := s.emit(command, args...); err != nil {
		s.log.Warn("Callback failed", "command", command, "error", err)
	}
}

func vec(p core.Position3D) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func rgba(c core.Color) []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

func frameArgs(f core.Frame) []any {
	return []any{vec(f.Origin), vec(f.Side), vec(f.Forward), vec(f.Up)}
}
