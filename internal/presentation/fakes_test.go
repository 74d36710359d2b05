package presentation

import (
	"github.com/OCAP2/weather/pkg/core"
)

type sunCall struct {
	color                      core.Color
	altitude, angle, intensity float64
}

type fogCall struct {
	density float64
	color   core.Color
	falloff float64
}

type spawnCall struct {
	prefab string
	frame  core.Frame
}

// fakeScene records every mutation. realized, when set, overrides what
// RainDensity reports back (engine clamping).
type fakeScene struct {
	timeOfDay float64
	terrain   core.Terrain
	entities  map[string]*fakeEntity

	requestedRain *float64
	realized      *float64

	suns        []sunCall
	fogs        []fogCall
	fogAdvanced [][3]float64
	spawns      []spawnCall
	brightness  []float64
	grades      []int
	skybox      []string
}

func newFakeScene(timeOfDay float64) *fakeScene {
	return &fakeScene{
		timeOfDay: timeOfDay,
		terrain:   core.Terrain{NodesX: 100, NodesY: 50, NodeSize: 2},
		entities:  make(map[string]*fakeEntity),
	}
}

func (s *fakeScene) TimeOfDay() float64 { return s.timeOfDay }

func (s *fakeScene) SetRainDensity(d float64) { s.requestedRain = &d }

func (s *fakeScene) RainDensity() float64 {
	if s.realized != nil {
		return *s.realized
	}
	if s.requestedRain != nil {
		return *s.requestedRain
	}
	return 0
}

func (s *fakeScene) SetSun(color core.Color, altitude, angle, intensity float64) {
	s.suns = append(s.suns, sunCall{color, altitude, angle, intensity})
}

func (s *fakeScene) SetFog(density float64, color core.Color, falloff float64) {
	s.fogs = append(s.fogs, fogCall{density, color, falloff})
}

func (s *fakeScene) SetFogAdvanced(offset, falloff, altitude float64) {
	s.fogAdvanced = append(s.fogAdvanced, [3]float64{offset, falloff, altitude})
}

func (s *fakeScene) TerrainData() (int, int, float64) {
	return s.terrain.NodesX, s.terrain.NodesY, s.terrain.NodeSize
}

func (s *fakeScene) Instantiate(prefab string, frame core.Frame) {
	s.spawns = append(s.spawns, spawnCall{prefab, frame})
}

func (s *fakeScene) SetSkyBrightness(b float64) { s.brightness = append(s.brightness, b) }

func (s *fakeScene) SetColorGradeIndex(i int) { s.grades = append(s.grades, i) }

func (s *fakeScene) SetSkyboxTexture(tex string) { s.skybox = append(s.skybox, tex) }

func (s *fakeScene) FindEntity(name string) (Entity, bool) {
	e, ok := s.entities[name]
	if !ok {
		return nil, false
	}
	return e, true
}

func (s *fakeScene) addPrefab(name string, children ...*fakeEntity) *fakeEntity {
	e := &fakeEntity{name: name, children: children}
	s.entities[name] = e
	return e
}

type fakeEntity struct {
	name     string
	children []*fakeEntity
	meshes   []*fakeMesh
	rate     *float64
}

func newChild(name string, meshes int) *fakeEntity {
	e := &fakeEntity{name: name}
	for i := 0; i < meshes; i++ {
		e.meshes = append(e.meshes, &fakeMesh{frame: core.IdentityFrame(core.Position3D{})})
	}
	return e
}

func (e *fakeEntity) Name() string { return e.name }

func (e *fakeEntity) Children() []Entity {
	out := make([]Entity, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *fakeEntity) SetEmissionRateMultiplier(m float64) { e.rate = &m }

func (e *fakeEntity) FirstMesh() (Mesh, bool) {
	if len(e.meshes) == 0 {
		return nil, false
	}
	return e.meshes[0], true
}

func (e *fakeEntity) AddMesh(m Mesh) { e.meshes = append(e.meshes, m.(*fakeMesh)) }

type fakeMesh struct {
	frame  core.Frame
	copied bool
}

func (m *fakeMesh) Copy() Mesh {
	return &fakeMesh{frame: m.frame, copied: true}
}

func (m *fakeMesh) LocalFrame() core.Frame { return m.frame }

func (m *fakeMesh) SetLocalFrame(f core.Frame) { m.frame = f }

type fakeSound struct {
	name    string
	playing bool
	plays   int
	stops   int
}

func (s *fakeSound) Play() {
	s.playing = true
	s.plays++
}

func (s *fakeSound) Stop() {
	s.playing = false
	s.stops++
}

type fakeAudio struct {
	ids     map[string]int
	names   map[int]string
	created []*fakeSound
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{ids: make(map[string]int), names: make(map[int]string)}
}

func (a *fakeAudio) EventID(name string) int {
	id, ok := a.ids[name]
	if !ok {
		id = len(a.ids) + 1
		a.ids[name] = id
		a.names[id] = name
	}
	return id
}

func (a *fakeAudio) Create(id int) Sound {
	s := &fakeSound{name: a.names[id]}
	a.created = append(a.created, s)
	return s
}

func (a *fakeAudio) playing() []string {
	var out []string
	for _, s := range a.created {
		if s.playing {
			out = append(out, s.name)
		}
	}
	return out
}

type fakeDust struct {
	active bool
	calls  []bool
}

func (d *fakeDust) SetDust(active bool) {
	d.active = active
	d.calls = append(d.calls, active)
}

type fakePatch struct {
	got []Rendered
}

func (p *fakePatch) WeatherApplied(r Rendered) { p.got = append(p.got, r) }

// stepRand returns a fixed value
type stepRand float64

func (r stepRand) Float64() float64 { return float64(r) }
