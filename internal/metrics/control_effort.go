package metrics

import (
	"math"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// ControlEffort is the mean over ticks of the L1 norm of the control input.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s constructs.State, u constructs.ControlInput, t float64) {
	for _, val := range u.Data() {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
