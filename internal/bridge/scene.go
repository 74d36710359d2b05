package bridge

import (
	"log/slog"
	"sync"

	"github.com/OCAP2/weather/internal/presentation"
	"github.com/OCAP2/weather/pkg/core"
)

// Scene mirrors the mission scene reported at mission start and forwards
// every mutation as a callback.
type Scene struct {
	out sender

	mu        sync.RWMutex
	timeOfDay float64
	terrain   core.Terrain
	rain      float64
	realized  core.Optional[float64]
	roots     []*Entity
}

// NewScene builds a Scene from the mission-start snapshot.
func NewScene(emit Emitter, log *slog.Logger, timeOfDay float64, snap core.SceneSnapshot) *Scene {
	s := &Scene{
		out:       newSender(emit, log),
		timeOfDay: timeOfDay,
		terrain:   snap.Terrain,
		rain:      core.NoRainOverride,
	}
	for _, n := range snap.Entities {
		s.roots = append(s.roots, newEntity(s.out, "", n))
	}
	return s
}

func (s *Scene) TimeOfDay() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeOfDay
}

func (s *Scene) SetRainDensity(density float64) {
	s.mu.Lock()
	s.rain = density
	s.mu.Unlock()
	s.out.send(CmdRain, density)
}

// UpdateRealized records the rain density the engine reports it settled on.
func (s *Scene) UpdateRealized(density float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.realized = core.Some(density)
}

// RainDensity returns the reported realized density, or the requested one
// clamped to [0,1] until the engine reports.
func (s *Scene) RainDensity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.realized.Get(); ok {
		return d
	}
	return clamp01(s.rain)
}

func (s *Scene) SetSun(color core.Color, altitude, angle, intensity float64) {
	s.out.send(CmdSun, rgba(color), altitude, angle, intensity)
}

func (s *Scene) SetFog(density float64, color core.Color, falloff float64) {
	s.out.send(CmdFog, density, rgba(color), falloff)
}

func (s *Scene) SetFogAdvanced(offset, falloff, altitude float64) {
	s.out.send(CmdFogAdvanced, offset, falloff, altitude)
}

func (s *Scene) TerrainData() (nodesX, nodesY int, nodeSize float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terrain.NodesX, s.terrain.NodesY, s.terrain.NodeSize
}

func (s *Scene) Instantiate(prefab string, frame core.Frame) {
	s.out.send(CmdSpawn, append([]any{prefab}, frameArgs(frame)...)...)
}

func (s *Scene) SetSkyBrightness(brightness float64) {
	s.out.send(CmdSkyBrightness, brightness)
}

func (s *Scene) SetColorGradeIndex(index int) {
	s.out.send(CmdColorGrade, index)
}

func (s *Scene) SetSkyboxTexture(texture string) {
	s.out.send(CmdSkybox, texture)
}

// FindEntity searches the entity tree depth-first, first match wins.
func (s *Scene) FindEntity(name string) (presentation.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, root := range s.roots {
		if e := root.find(name); e != nil {
			return e, true
		}
	}
	return nil, false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Entity is a scene entity addressed by its slash-separated path.
type Entity struct {
	out      sender
	name     string
	path     string
	children []*Entity

	mu     sync.Mutex
	meshes []*Mesh
}

func newEntity(out sender, parent string, n core.EntityNode) *Entity {
	path := n.Name
	if parent != "" {
		path = parent + "/" + n.Name
	}
	e := &Entity{out: out, name: n.Name, path: path}
	for i := 0; i < n.Meshes; i++ {
		e.meshes = append(e.meshes, &Mesh{frame: core.IdentityFrame(core.Position3D{})})
	}
	for _, c := range n.Children {
		e.children = append(e.children, newEntity(out, path, c))
	}
	return e
}

func (e *Entity) find(name string) *Entity {
	if e.name == name {
		return e
	}
	for _, c := range e.children {
		if f := c.find(name); f != nil {
			return f
		}
	}
	return nil
}

func (e *Entity) Name() string { return e.name }

// Path returns the entity's address in the scene tree.
func (e *Entity) Path() string { return e.path }

func (e *Entity) Children() []presentation.Entity {
	out := make([]presentation.Entity, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *Entity) SetEmissionRateMultiplier(multiplier float64) {
	e.out.send(CmdEmission, e.path, multiplier)
}

func (e *Entity) FirstMesh() (presentation.Mesh, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.meshes) == 0 {
		return nil, false
	}
	return e.meshes[0], true
}

// AddMesh attaches a mesh. Meshes from other implementations are ignored.
func (e *Entity) AddMesh(m presentation.Mesh) {
	mesh, ok := m.(*Mesh)
	if !ok {
		return
	}
	e.mu.Lock()
	e.meshes = append(e.meshes, mesh)
	e.mu.Unlock()
	e.out.send(CmdMeshAdd, append([]any{e.path}, frameArgs(mesh.frame)...)...)
}

// MeshCount returns the number of meshes attached to the entity.
func (e *Entity) MeshCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.meshes)
}

// Mesh is a mesh placement. Copies are detached until added to an entity.
type Mesh struct {
	frame core.Frame
}

func (m *Mesh) Copy() presentation.Mesh {
	return &Mesh{frame: m.frame}
}

func (m *Mesh) LocalFrame() core.Frame { return m.frame }

func (m *Mesh) SetLocalFrame(f core.Frame) { m.frame = f }
