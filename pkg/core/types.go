// pkg/core/types.go
package core

// Position3D represents a point in scene units
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"` // elevation, or the marker discriminant for weather markers
}

// Add returns p + o
func (p Position3D) Add(o Position3D) Position3D {
	return Position3D{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Scale returns p * f
func (p Position3D) Scale(f float64) Position3D {
	return Position3D{X: p.X * f, Y: p.Y * f, Z: p.Z * f}
}

// Color is an RGBA color. Channel range depends on the consumer (sun uses 0-255, fog 0-1).
type Color struct {
	R, G, B, A float64
}

// Frame is a placement in the scene: an origin and three orthonormal axes.
type Frame struct {
	Origin  Position3D `json:"origin"`
	Side    Position3D `json:"side"`
	Forward Position3D `json:"forward"`
	Up      Position3D `json:"up"`
}

// IdentityFrame returns an unrotated frame at origin.
func IdentityFrame(origin Position3D) Frame {
	return Frame{
		Origin:  origin,
		Side:    Position3D{X: 1},
		Forward: Position3D{Y: 1},
		Up:      Position3D{Z: 1},
	}
}

// Advance moves the frame along its forward axis.
func (f Frame) Advance(d float64) Frame {
	f.Origin = f.Origin.Add(f.Forward.Scale(d))
	return f
}

// Elevate moves the frame along its up axis.
func (f Frame) Elevate(d float64) Frame {
	f.Origin = f.Origin.Add(f.Up.Scale(d))
	return f
}

// Strafe moves the frame along its side axis.
func (f Frame) Strafe(d float64) Frame {
	f.Origin = f.Origin.Add(f.Side.Scale(d))
	return f
}
