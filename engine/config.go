package engine

import (
	"go.opentelemetry.io/otel/metric"
)

// Config configures an Engine. The engine binaries are compiled with a fixed set of flags,
// every Binding given to New must have been built with Showdown and Log as configured here.
type Config struct {
	// Showdown selects Pokémon Showdown compatibility. In this mode an update may never
	// end in an error result.
	Showdown bool

	// Log enables the binary protocol log.
	Log bool

	// EnableTracing starts a span for every engine call. Default is true.
	EnableTracing bool

	// EnableMetrics records update and result counters. Default is true.
	EnableMetrics bool

	// MeterProvider for metrics. If nil, uses context.Meter().
	MeterProvider metric.MeterProvider
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		EnableTracing: true,
		EnableMetrics: true,
	}
}
