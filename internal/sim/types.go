package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// Metric accumulates a scalar over one robot's run. A fresh instance is
// created per robot for every run.
type Metric interface {
	Name() string
	Observe(s constructs.State, u constructs.ControlInput, t float64)
	Value() float64
	Reset()
}

type MetricFactory func() Metric

// Result holds everything recorded during a run. Trajectories[uid] has one
// knot point per completed tick plus the initial state; Controls[uid][k] is
// the control that produced knot point k+1.
type Result struct {
	Ticks        int
	Dt           float64
	Times        []float64
	Trajectories map[int]*constructs.Trajectory
	Controls     map[int][]constructs.ControlInput
	Metrics      map[int]map[string]float64
}

// UIDs returns the recorded robot UIDs in ascending order.
func (r *Result) UIDs() []int {
	uids := make([]int, 0, len(r.Trajectories))
	for uid := range r.Trajectories {
		uids = append(uids, uid)
	}
	sort.Ints(uids)
	return uids
}

func (r *Result) Trajectory(uid int) (*constructs.Trajectory, error) {
	t, ok := r.Trajectories[uid]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrNotFound, "no trajectory for uid %d", uid)
	}
	return t, nil
}

// Final returns the last recorded state of robot uid.
func (r *Result) Final(uid int) (constructs.State, error) {
	t, err := r.Trajectory(uid)
	if err != nil {
		return constructs.State{}, err
	}
	return t.At(-1)
}

// TickError reports the tick at which a run stopped.
type TickError struct {
	Tick int
	Time float64
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Err)
}

func (e *TickError) Unwrap() error { return e.Err }

func isFinite(s constructs.State) bool {
	for _, v := range s.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
