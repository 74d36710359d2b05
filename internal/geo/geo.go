package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/OCAP2/weather/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Scene positions are local units, not geodetic coordinates. Distances between
// weather markers and the party are planar (XY); Z carries the marker
// discriminant and never counts towards proximity.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Position3DFromString parses a "x,y" or "x,y,z" string into a core.Position3D.
// Surrounding brackets are accepted. NaN and infinite components are rejected.
func Position3DFromString(coords string) (core.Position3D, error) {
	coordsSplit := strings.Split(strings.Trim(strings.TrimSpace(coords), "[]"), ",")
	if len(coordsSplit) < 2 {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	var vals [3]float64
	for i, raw := range coordsSplit {
		if i == len(vals) {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !isFinite(v) {
			return core.Position3D{}, ErrInvalidCoordinates
		}
		vals[i] = v
	}
	return core.Position3D{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Validate reports ErrInvalidCoordinates when any component of p is NaN or
// infinite.
func Validate(p core.Position3D) error {
	if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.Z) {
		return ErrInvalidCoordinates
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PlanarPoint projects a position onto the XY plane.
func PlanarPoint(p core.Position3D) (geom.Point, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.X, Y: p.Y},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Point{}, errors.Join(ErrInvalidCoordinates, err)
	}
	return pt, nil
}

// PlanarDistance returns the XY distance between two positions. A position
// that cannot be projected is infinitely far from everything.
func PlanarDistance(a, b core.Position3D) float64 {
	pa, err := PlanarPoint(a)
	if err != nil {
		return math.Inf(1)
	}
	pb, err := PlanarPoint(b)
	if err != nil {
		return math.Inf(1)
	}
	d, ok := geom.Distance(pa.AsGeometry(), pb.AsGeometry())
	if !ok {
		return math.Inf(1)
	}
	return d
}
