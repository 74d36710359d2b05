package handlers

import (
	"github.com/OCAP2/weather/internal/dispatcher"
)

// Commands handled by the Service.
const (
	CmdInit           = ":INIT:"
	CmdSettingsReload = ":SETTINGS:RELOAD:"
	CmdMarkerSet      = ":MARKER:SET:"
	CmdMarkerDelete   = ":MARKER:DELETE:"
	CmdMarkerClear    = ":MARKER:CLEAR:"
	CmdCustomSelect   = ":CUSTOM:SELECT:"
	CmdCustomClear    = ":CUSTOM:CLEAR:"
	CmdCapability     = ":CAPABILITY:"
	CmdMissionStart   = ":MISSION:START:"
	CmdMissionTick    = ":MISSION:TICK:"
	CmdMissionEnd     = ":MISSION:END:"
	CmdWeatherGet     = ":WEATHER:GET:"
	CmdWeatherHistory = ":WEATHER:HISTORY:"
)

// RegisterHandlers registers all commands with the dispatcher.
// Ticks arrive every frame and are not logged.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CmdInit, s.handleInit, dispatcher.Logged())
	d.Register(CmdSettingsReload, s.handleSettingsReload, dispatcher.Logged())

	d.Register(CmdMarkerSet, s.handleMarkerSet, dispatcher.Logged())
	d.Register(CmdMarkerDelete, s.handleMarkerDelete, dispatcher.Logged())
	d.Register(CmdMarkerClear, s.handleMarkerClear, dispatcher.Logged())

	d.Register(CmdCustomSelect, s.handleCustomSelect, dispatcher.Logged())
	d.Register(CmdCustomClear, s.handleCustomClear, dispatcher.Logged())
	d.Register(CmdCapability, s.handleCapability, dispatcher.Logged())

	d.Register(CmdMissionStart, s.handleMissionStart, dispatcher.Logged())
	d.Register(CmdMissionTick, s.handleMissionTick)
	d.Register(CmdMissionEnd, s.handleMissionEnd, dispatcher.Logged())

	d.Register(CmdWeatherGet, s.handleWeatherGet)
	d.Register(CmdWeatherHistory, s.handleWeatherHistory, dispatcher.Logged())
}
