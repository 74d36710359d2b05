package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/OCAP2/weather/internal/util"
)

// ErrMissingArgs is returned when a command carries fewer arguments than required.
var ErrMissingArgs = errors.New("missing arguments")

// Parser provides pure []string -> core value conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// clean unquotes every argument and checks the minimum count.
func clean(data []string, want int) ([]string, error) {
	if len(data) < want {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrMissingArgs, want, len(data))
	}
	out := make([]string, len(data))
	for i, v := range data {
		out[i] = util.Unquote(v)
	}
	return out, nil
}

// parseFloat parses a number the way the simulation serializes it ("3", "3.00", " 0.5 ").
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseIntFromFloat parses a string that may be an integer ("3") or float ("3.00") into int.
// The simulation's scripting layer has no integer type.
func parseIntFromFloat(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid int", s)
	}
	return int(f), nil
}
