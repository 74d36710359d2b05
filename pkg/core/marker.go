// pkg/core/marker.go
package core

// MarkerKind is the weather type a world marker biases towards
type MarkerKind int

const (
	MarkerNeutral MarkerKind = iota
	MarkerDust
	MarkerFog
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerDust:
		return "dust"
	case MarkerFog:
		return "fog"
	default:
		return "neutral"
	}
}

// Marker is a world-placed weather point. The kind is encoded in Position.Z.
type Marker struct {
	Name     string
	Position Position3D
}

// Kind decodes the discriminant: 1 is a dust storm, 2 is fog.
func (m Marker) Kind() MarkerKind {
	switch m.Position.Z {
	case 1:
		return MarkerDust
	case 2:
		return MarkerFog
	default:
		return MarkerNeutral
	}
}
