// Package handlers implements the extension commands on top of the weather
// core: marker bookkeeping, custom battle picks and the mission lifecycle.
package handlers

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OCAP2/weather/internal/bridge"
	"github.com/OCAP2/weather/internal/markers"
	"github.com/OCAP2/weather/internal/mission"
	"github.com/OCAP2/weather/internal/parser"
	"github.com/OCAP2/weather/internal/presentation"
	"github.com/OCAP2/weather/internal/resolver"
	"github.com/OCAP2/weather/internal/storage"
	"github.com/OCAP2/weather/pkg/core"
)

// Version is reported by :INIT:.
const Version = "1.0.0"

// DefaultHistoryLimit caps :WEATHER:HISTORY: without an explicit limit.
const DefaultHistoryLimit = 10

// Random is the shared random source for marker fog and rain mesh jitter.
type Random interface {
	resolver.Rand
	presentation.FloatRand
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Parser   *parser.Parser
	Markers  *markers.Registry
	Mission  *mission.Context
	Emit     bridge.Emitter
	Backend  storage.Backend // optional
	Metrics  *presentation.Instruments
	Logger   *slog.Logger
	Rand     Random
	Settings func() core.Settings
	Reload   func() error // optional

	MarkerRadius float64
	Now          func() time.Time

	// OnMissionEnd runs after the weather record is stored, e.g. to flush telemetry.
	OnMissionEnd func()
}

// Service provides handler methods for the extension commands.
// Commands arrive on the simulation thread; mu only guards against the
// logging pipeline and tests reading state concurrently.
type Service struct {
	deps     Dependencies
	log      *slog.Logger
	resolver *resolver.Resolver
	audio    *bridge.Audio

	mu         sync.Mutex
	patch      core.Optional[presentation.CombatPatch]
	controller *presentation.Controller
	scene      *bridge.Scene
	current    core.MissionContext
	startedAt  time.Time

	phase atomic.Int32
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger)
	}
	if deps.Markers == nil {
		deps.Markers = markers.NewRegistry()
	}
	if deps.Mission == nil {
		deps.Mission = mission.NewContext()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if deps.Settings == nil {
		deps.Settings = func() core.Settings { return core.Settings{} }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Service{
		deps:     deps,
		log:      deps.Logger.With("component", "handlers"),
		resolver: resolver.New(deps.Markers, deps.Rand, resolver.WithRadius(deps.MarkerRadius)),
		audio:    bridge.NewAudio(deps.Emit, deps.Logger),
	}
}

// MissionContext returns the shared world state.
func (s *Service) MissionContext() *mission.Context {
	return s.deps.Mission
}

// Phase returns the presentation phase of the current mission. It is safe to
// call from any goroutine, including the log pipeline.
func (s *Service) Phase() presentation.Phase {
	return presentation.Phase(s.phase.Load())
}

// MissionName returns the running mission's name, or "" when idle.
func (s *Service) MissionName() string {
	mc, running := s.deps.Mission.GetMission()
	if !running {
		return ""
	}
	return mc.Name
}

func (s *Service) syncPhase() {
	if s.controller == nil {
		s.phase.Store(int32(presentation.PhaseIdle))
		return
	}
	s.phase.Store(int32(s.controller.Phase()))
}
