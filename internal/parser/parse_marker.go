package parser

import (
	"fmt"

	"github.com/OCAP2/weather/internal/geo"
	"github.com/OCAP2/weather/pkg/core"
)

// ParseMarker parses [name, "x,y,z"]. The third coordinate is the weather kind.
func (p *Parser) ParseMarker(data []string) (core.Marker, error) {
	var marker core.Marker

	args, err := clean(data, 2)
	if err != nil {
		return marker, err
	}

	if args[0] == "" {
		return marker, fmt.Errorf("error parsing marker: empty name")
	}
	marker.Name = args[0]

	marker.Position, err = geo.Position3DFromString(args[1])
	if err != nil {
		return marker, fmt.Errorf("error parsing marker position: %w", err)
	}
	return marker, nil
}

// ParseMarkerName parses [name] for marker deletion.
func (p *Parser) ParseMarkerName(data []string) (string, error) {
	args, err := clean(data, 1)
	if err != nil {
		return "", err
	}
	return args[0], nil
}
