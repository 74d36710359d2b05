// pkg/core/mission.go
package core

// MissionContext holds the read-only facts about the current mission instance.
type MissionContext struct {
	Name          string     `json:"name"`
	Mode          Mode       `json:"mode"`
	Indoor        bool       `json:"indoor"`
	Arena         bool       `json:"arena"`
	TimeOfDay     float64    `json:"timeOfDay"` // 0-24
	Season        Season     `json:"season"`
	PartyPosition Position3D `json:"partyPosition"`
}

// Terrain describes the scene's terrain grid
type Terrain struct {
	NodesX   int     `json:"nodesX"`
	NodesY   int     `json:"nodesY"`
	NodeSize float64 `json:"nodeSize"`
}

// Extent returns the world-space terrain size.
func (t Terrain) Extent() (x, y float64) {
	return float64(t.NodesX) * t.NodeSize, float64(t.NodesY) * t.NodeSize
}

// EntityNode is a named scene entity as reported at mission start.
type EntityNode struct {
	Name     string       `json:"name"`
	Meshes   int          `json:"meshes"`
	Children []EntityNode `json:"children"`
}

// SceneSnapshot is the scene state reported by the simulation at mission start.
type SceneSnapshot struct {
	Terrain  Terrain      `json:"terrain"`
	Entities []EntityNode `json:"entities"`
}
