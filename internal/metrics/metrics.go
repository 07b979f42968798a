// Package metrics holds per robot run metrics for the sim runner.
package metrics

import "github.com/shrenikm/Morphac/internal/sim"

var (
	_ sim.Metric = (*ControlEffort)(nil)
	_ sim.Metric = (*Distance)(nil)
	_ sim.Metric = (*HeadingChange)(nil)
	_ sim.Metric = (*OutOfBounds)(nil)
)

// Default returns the metrics recorded by the CLI for a playground of the
// given size.
func Default(width, height float64) []sim.MetricFactory {
	return []sim.MetricFactory{
		func() sim.Metric { return NewDistance() },
		func() sim.Metric { return NewHeadingChange() },
		func() sim.Metric { return NewControlEffort() },
		func() sim.Metric { return NewOutOfBounds(width, height) },
	}
}
