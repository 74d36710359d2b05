package handlers

import (
	"fmt"

	"github.com/OCAP2/weather/internal/bridge"
	"github.com/OCAP2/weather/internal/dispatcher"
	"github.com/OCAP2/weather/internal/presentation"
	"github.com/OCAP2/weather/pkg/core"
)

func (s *Service) handleInit(dispatcher.Event) (any, error) {
	return Version, nil
}

func (s *Service) handleSettingsReload(dispatcher.Event) (any, error) {
	if s.deps.Reload != nil {
		if err := s.deps.Reload(); err != nil {
			return nil, fmt.Errorf("failed to reload settings: %w", err)
		}
	}
	settings := s.deps.Settings()
	s.log.Info("Settings reloaded",
		"overrideRain", settings.OverrideRainDensity,
		"overrideFog", settings.OverrideFogDensity)
	return settings, nil
}

func (s *Service) handleMarkerSet(e dispatcher.Event) (any, error) {
	m, err := s.deps.Parser.ParseMarker(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to set marker: %w", err)
	}
	s.deps.Markers.Set(m)
	s.log.Debug("Weather marker set", "name", m.Name, "kind", m.Kind().String())
	return s.deps.Markers.Len(), nil
}

func (s *Service) handleMarkerDelete(e dispatcher.Event) (any, error) {
	name, err := s.deps.Parser.ParseMarkerName(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to delete marker: %w", err)
	}
	s.deps.Markers.Delete(name)
	return s.deps.Markers.Len(), nil
}

func (s *Service) handleMarkerClear(dispatcher.Event) (any, error) {
	s.deps.Markers.Reset()
	return 0, nil
}

func (s *Service) handleCustomSelect(e dispatcher.Event) (any, error) {
	sel, err := s.deps.Parser.ParseSelection(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom selection: %w", err)
	}
	s.deps.Mission.SetSelection(sel)
	return sel, nil
}

func (s *Service) handleCustomClear(dispatcher.Event) (any, error) {
	s.deps.Mission.ClearSelection()
	return nil, nil
}

// handleCapability enables optional collaborators announced by the simulation.
// Unknown capabilities are ignored and reported as false.
func (s *Service) handleCapability(e dispatcher.Event) (any, error) {
	name, err := s.deps.Parser.ParseCapability(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to read capability: %w", err)
	}

	switch name {
	case bridge.CapabilityCombatWeather:
		s.mu.Lock()
		s.patch = core.Some[presentation.CombatPatch](bridge.NewCombatPatch(s.deps.Emit, s.deps.Logger))
		s.mu.Unlock()
		s.log.Info("Combat weather module detected")
		return true, nil
	default:
		s.log.Warn("Unknown capability", "name", name)
		return false, nil
	}
}
