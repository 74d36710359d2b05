package handlers

import (
	"fmt"

	"github.com/OCAP2/weather/internal/bridge"
	"github.com/OCAP2/weather/internal/dispatcher"
	"github.com/OCAP2/weather/internal/presentation"
	"github.com/OCAP2/weather/internal/storage"
	"github.com/OCAP2/weather/pkg/core"
)

// WeatherView is the reply of :MISSION:START: and :WEATHER:GET:.
type WeatherView struct {
	Mission   string                `json:"mission"`
	Mode      string                `json:"mode"`
	Phase     string                `json:"phase"`
	Requested core.WeatherState     `json:"requested"`
	Rendered  presentation.Rendered `json:"rendered"`
	Realized  float64               `json:"realized"`
	Tier      string                `json:"tier"`
	Sounds    []string              `json:"sounds"`
}

// handleMissionStart resolves and applies the mission's weather. A mission
// still running is ended (and recorded) first.
func (s *Service) handleMissionStart(e dispatcher.Event) (any, error) {
	mc, snap, err := s.deps.Parser.ParseMissionStart(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to start mission: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller != nil && s.controller.Phase() != presentation.PhaseEnded {
		s.log.Warn("Mission started while another was running", "previous", s.current.Name)
		s.endLocked()
	}

	settings := s.deps.Settings()
	state := s.resolver.Resolve(mc.Mode, settings, mc, s.deps.Mission.Selection())

	s.deps.Mission.SetMission(mc)
	s.scene = bridge.NewScene(s.deps.Emit, s.deps.Logger, mc.TimeOfDay, snap)
	s.controller = presentation.New(presentation.Dependencies{
		Scene:   s.scene,
		Audio:   s.audio,
		Dust:    s.deps.Mission,
		Rand:    s.deps.Rand,
		Mission: mc,
		Patch:   s.patch,
		Logger:  s.deps.Logger,
		Metrics: s.deps.Metrics,
	})
	s.current = mc
	s.startedAt = s.deps.Now()

	s.controller.Start(state)
	s.syncPhase()

	s.log.Info("Mission weather resolved",
		"mission", mc.Name,
		"mode", mc.Mode.String(),
		"indoor", mc.Indoor,
		"arena", mc.Arena,
		"rainDensity", state.RainDensity,
		"fogDensity", state.FogDensity,
		"hasDust", state.HasDust)

	return s.viewLocked(), nil
}

// handleMissionTick forwards the realized rain density and ticks the controller.
// Without a running mission it does nothing.
func (s *Service) handleMissionTick(e dispatcher.Event) (any, error) {
	tick, err := s.deps.Parser.ParseTick(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to tick mission: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil || s.controller.Phase() == presentation.PhaseEnded {
		return nil, nil
	}

	if tick.RealizedRain >= 0 {
		s.scene.UpdateRealized(tick.RealizedRain)
	}
	s.controller.Tick(tick.DT)
	s.syncPhase()

	return s.controller.Phase().String(), nil
}

// handleMissionEnd releases sounds and stores the weather record.
// Without a running mission it does nothing.
func (s *Service) handleMissionEnd(dispatcher.Event) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil || s.controller.Phase() == presentation.PhaseEnded {
		return nil, nil
	}

	record := s.endLocked()
	return record.ID, nil
}

func (s *Service) handleWeatherGet(dispatcher.Event) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil {
		return WeatherView{Phase: presentation.PhaseIdle.String(), Requested: core.NoWeather()}, nil
	}
	return s.viewLocked(), nil
}

// handleWeatherHistory returns recent weather records, newest first.
// args: [limit] (optional)
func (s *Service) handleWeatherHistory(e dispatcher.Event) (any, error) {
	h, ok := s.deps.Backend.(storage.History)
	if !ok {
		return nil, fmt.Errorf("storage backend has no history")
	}

	limit := DefaultHistoryLimit
	if len(e.Args) > 0 {
		n, err := s.deps.Parser.ParseLimit(e.Args)
		if err != nil {
			return nil, fmt.Errorf("failed to read history limit: %w", err)
		}
		limit = n
	}

	records, err := h.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather history: %w", err)
	}
	return records, nil
}

// endLocked ends the current controller and records its weather. Storage
// failures are logged; they never affect the mission.
func (s *Service) endLocked() core.WeatherRecord {
	snap := s.controller.Snapshot()
	s.controller.End()
	s.deps.Mission.EndMission()
	s.syncPhase()

	record := core.WeatherRecord{
		MissionName:  s.current.Name,
		Mode:         s.current.Mode.String(),
		Season:       s.current.Season.String(),
		TimeOfDay:    s.current.TimeOfDay,
		Requested:    snap.State,
		DustRendered: snap.Rendered.Dust,
		Realized:     snap.Realized,
		Tier:         snap.Tier.String(),
		Sounds:       snap.Sounds,
		StartedAt:    s.startedAt,
		EndedAt:      s.deps.Now(),
	}

	if s.deps.Backend != nil {
		if err := s.deps.Backend.RecordWeather(&record); err != nil {
			s.log.Error("Failed to store weather record", "mission", record.MissionName, "error", err)
		}
	}

	s.log.Info("Mission weather ended",
		"mission", record.MissionName,
		"tier", record.Tier,
		"sounds", len(record.Sounds))

	if s.deps.OnMissionEnd != nil {
		s.deps.OnMissionEnd()
	}
	return record
}

func (s *Service) viewLocked() WeatherView {
	snap := s.controller.Snapshot()
	return WeatherView{
		Mission:   s.current.Name,
		Mode:      s.current.Mode.String(),
		Phase:     snap.Phase.String(),
		Requested: snap.State,
		Rendered:  snap.Rendered,
		Realized:  snap.Realized,
		Tier:      snap.Tier.String(),
		Sounds:    snap.Sounds,
	}
}
