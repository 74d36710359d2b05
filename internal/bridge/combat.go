package bridge

import (
	"log/slog"

	"github.com/OCAP2/weather/internal/presentation"
)

// CapabilityCombatWeather is announced by the simulation when the combat
// module that consumes rendered weather is loaded.
const CapabilityCombatWeather = "combat_weather"

// CombatPatch forwards the rendered weather to the combat module.
type CombatPatch struct {
	out sender
}

func NewCombatPatch(emit Emitter, log *slog.Logger) *CombatPatch {
	return &CombatPatch{out: newSender(emit, log)}
}

func (p *CombatPatch) WeatherApplied(r presentation.Rendered) {
	p.out.send(CmdCombatWeather, r.RainDensity, r.FogDensity, r.Dust)
}
