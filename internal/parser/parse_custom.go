package parser

import (
	"fmt"

	"github.com/OCAP2/weather/pkg/core"
)

// ParseSelection parses the operator's custom battle picks [rain, fog].
func (p *Parser) ParseSelection(data []string) (core.CustomSelection, error) {
	var sel core.CustomSelection

	args, err := clean(data, 2)
	if err != nil {
		return sel, err
	}

	sel.RainDensity, err = parseFloat(args[0])
	if err != nil {
		return sel, fmt.Errorf("error parsing rain selection: %w", err)
	}

	fog, err := parseIntFromFloat(args[1])
	if err != nil {
		return sel, fmt.Errorf("error parsing fog selection: %w", err)
	}
	sel.FogDensity = float64(fog)

	return sel, nil
}

// ParseCapability parses [name] announcing an optional engine-side capability.
func (p *Parser) ParseCapability(data []string) (string, error) {
	args, err := clean(data, 1)
	if err != nil {
		return "", err
	}
	if args[0] == "" {
		return "", fmt.Errorf("error parsing capability: empty name")
	}
	return args[0], nil
}

// ParseLimit parses [n] for paged queries. n must be positive.
func (p *Parser) ParseLimit(data []string) (int, error) {
	args, err := clean(data, 1)
	if err != nil {
		return 0, err
	}
	n, err := parseIntFromFloat(args[0])
	if err != nil {
		return 0, fmt.Errorf("error parsing limit: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("error parsing limit: %d is not positive", n)
	}
	return n, nil
}
