// Package optim tunes scenario parameters by running experiments.
package optim

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/experiment"
	"github.com/shrenikm/Morphac/internal/geometry"
	"github.com/shrenikm/Morphac/internal/sim"
)

// Builder creates the experiment for one point of the grid.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// Objective scores a finished run. Lower is better.
type Objective func(res *sim.Result) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the cartesian product of ranges, one range per name.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, errors.Wrapf(constructs.ErrInvalidArgument,
			"got %d parameter names and %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, errors.Wrapf(constructs.ErrInvalidArgument, "range of %q is empty", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

type Best struct {
	Params map[string]float64
	Value  float64
}

// Search runs every grid point and returns the one with the lowest objective.
// Failed points are skipped; the error is only returned when no point
// succeeded or ctx was cancelled.
func (g *GridSearch) Search(ctx context.Context, build Builder, obj Objective) (*Best, error) {
	best := &Best{Value: math.Inf(1)}
	var errs error

	var walk func(depth int, current map[string]float64) error
	walk = func(depth int, current map[string]float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if depth == len(g.paramNames) {
			v, err := g.evaluate(ctx, current, build, obj)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				errs = multierr.Append(errs, errors.WithMessagef(err, "params %v", current))
				return nil
			}
			if v < best.Value {
				best.Value = v
				best.Params = copyParams(current)
			}
			return nil
		}
		name := g.paramNames[depth]
		for _, val := range g.ranges[depth] {
			next := copyParams(current)
			next[name] = val
			if err := walk(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0, map[string]float64{}); err != nil {
		return nil, err
	}
	if best.Params == nil {
		return nil, errors.WithMessage(errs, "no grid point succeeded")
	}
	return best, nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64, build Builder, obj Objective) (float64, error) {
	e, err := build(params)
	if err != nil {
		return 0, err
	}
	res, err := e.Run(ctx)
	if err != nil {
		return 0, err
	}
	v, err := obj(res)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, errors.Wrap(constructs.ErrDomain, "objective is NaN")
	}
	return v, nil
}

func copyParams(p map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// SortedNames returns the keys of params in ascending order.
func SortedNames(params map[string]float64) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// HeadingError is the mean absolute wrapped difference between the heading
// of robot uid and target over its whole trajectory.
func HeadingError(uid int, target float64) Objective {
	return func(res *sim.Result) (float64, error) {
		traj, err := res.Trajectory(uid)
		if err != nil {
			return 0, err
		}
		if traj.PoseSize() < 3 {
			return 0, errors.Wrapf(constructs.ErrInvalidArgument, "robot %d has no heading", uid)
		}
		total := 0.0
		for k := 0; k < traj.Size(); k++ {
			s, err := traj.At(k)
			if err != nil {
				return 0, err
			}
			total += math.Abs(geometry.NormalizeAngle(s.Data()[2] - target))
		}
		return total / float64(traj.Size()), nil
	}
}

// Metric scores a run by a metric recorded for robot uid.
func Metric(uid int, name string) Objective {
	return func(res *sim.Result) (float64, error) {
		m, ok := res.Metrics[uid]
		if !ok {
			return 0, errors.Wrapf(constructs.ErrNotFound, "no metrics for robot %d", uid)
		}
		v, ok := m[name]
		if !ok {
			return 0, errors.Wrapf(constructs.ErrKeyNotFound, "metric %q", name)
		}
		return v, nil
	}
}
