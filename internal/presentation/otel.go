package presentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/OCAP2/weather/internal/presentation"

// Instruments counts weather applications across missions.
type Instruments struct {
	started     metric.Int64Counter
	refinements metric.Int64Counter
}

// NewInstruments creates the counters on the global OTel meter (no-op if not configured).
func NewInstruments() (*Instruments, error) {
	m := otel.Meter(instrumentationName)

	started, err := m.Int64Counter(
		"weather.missions.started",
		metric.WithDescription("Missions that had weather applied"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating started counter: %w", err)
	}

	refinements, err := m.Int64Counter(
		"weather.refinements",
		metric.WithDescription("First-tick refinements by rain tier"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating refinement counter: %w", err)
	}

	return &Instruments{started: started, refinements: refinements}, nil
}

func (i *Instruments) missionStarted(r Rendered) {
	if i == nil {
		return
	}
	i.started.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Bool("rain", r.RainDensity > -1),
		attribute.Bool("fog", r.FogDensity > 0),
		attribute.Bool("dust", r.Dust),
	))
}

func (i *Instruments) refined(tier string) {
	if i == nil {
		return
	}
	i.refinements.Add(context.Background(), 1, metric.WithAttributes(attribute.String("tier", tier)))
}
