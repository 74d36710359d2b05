package parser

import (
	"encoding/json"
	"fmt"

	"github.com/OCAP2/weather/internal/geo"
	"github.com/OCAP2/weather/pkg/core"
)

// missionStart is the wire shape of the :MISSION:START: payload.
type missionStart struct {
	Name      string            `json:"name"`
	Mode      string            `json:"mode"`
	Indoor    bool              `json:"indoor"`
	Arena     bool              `json:"arena"`
	TimeOfDay float64           `json:"timeOfDay"`
	Season    float64           `json:"season"`
	Position  []float64         `json:"position"`
	Terrain   core.Terrain      `json:"terrain"`
	Entities  []core.EntityNode `json:"entities"`
}

// Tick is one per-frame progress report.
type Tick struct {
	DT float64
	// RealizedRain is the density the engine actually settled on; -1 when not reported.
	RealizedRain float64
}

// ParseMissionStart parses the mission start payload (a single JSON argument).
// An unknown mode is kept as core.ModeUnknown so the mission resolves to no weather.
func (p *Parser) ParseMissionStart(data []string) (core.MissionContext, core.SceneSnapshot, error) {
	var mc core.MissionContext
	var scene core.SceneSnapshot

	args, err := clean(data, 1)
	if err != nil {
		return mc, scene, err
	}

	var raw missionStart
	if err := json.Unmarshal([]byte(args[0]), &raw); err != nil {
		return mc, scene, fmt.Errorf("error unmarshalling mission data: %w", err)
	}

	mode, ok := core.ParseMode(raw.Mode)
	if !ok {
		p.logger.Warn("Unknown mission mode, weather disabled", "mode", raw.Mode)
	}

	season := core.Season(int(raw.Season))
	if season < core.SeasonSpring || season > core.SeasonWinter {
		p.logger.Warn("Season out of range, using spring", "season", raw.Season)
		season = core.SeasonSpring
	}

	var pos core.Position3D
	switch len(raw.Position) {
	case 0:
	case 2:
		pos = core.Position3D{X: raw.Position[0], Y: raw.Position[1]}
	case 3:
		pos = core.Position3D{X: raw.Position[0], Y: raw.Position[1], Z: raw.Position[2]}
	default:
		return mc, scene, fmt.Errorf("error parsing party position: %d components", len(raw.Position))
	}
	if err := geo.Validate(pos); err != nil {
		return mc, scene, fmt.Errorf("error parsing party position: %w", err)
	}

	mc = core.MissionContext{
		Name:          raw.Name,
		Mode:          mode,
		Indoor:        raw.Indoor,
		Arena:         raw.Arena,
		TimeOfDay:     raw.TimeOfDay,
		Season:        season,
		PartyPosition: pos,
	}
	scene = core.SceneSnapshot{
		Terrain:  raw.Terrain,
		Entities: raw.Entities,
	}
	return mc, scene, nil
}

// ParseTick parses [dt] or [dt, realizedRain].
func (p *Parser) ParseTick(data []string) (Tick, error) {
	tick := Tick{RealizedRain: core.NoRainOverride}

	args, err := clean(data, 1)
	if err != nil {
		return tick, err
	}

	tick.DT, err = parseFloat(args[0])
	if err != nil {
		return tick, fmt.Errorf("error parsing dt: %w", err)
	}

	if len(args) > 1 && args[1] != "" {
		tick.RealizedRain, err = parseFloat(args[1])
		if err != nil {
			return tick, fmt.Errorf("error parsing realized rain density: %w", err)
		}
	}
	return tick, nil
}
