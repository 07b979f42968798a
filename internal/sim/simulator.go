package sim

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/playground"
)

// Runner drives a playground for a number of ticks and records what happens.
type Runner struct {
	pg            *playground.Playground
	logger        *zap.Logger
	factories     []MetricFactory
	validateState bool

	active  *Result
	metrics map[int][]Metric
}

type Option func(*Runner)

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics adds metrics computed separately for every robot.
func WithMetrics(fs ...MetricFactory) Option {
	return func(r *Runner) { r.factories = append(r.factories, fs...) }
}

// WithStateValidation stops the run with ErrDomain when a robot state turns NaN or Inf.
func WithStateValidation() Option {
	return func(r *Runner) { r.validateState = true }
}

func New(pg *playground.Playground, opts ...Option) (*Runner, error) {
	if pg == nil {
		return nil, errors.Wrap(constructs.ErrInvalidArgument, "playground must not be nil")
	}
	r := &Runner{pg: pg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	pg.AddObserver(playground.ObserverFunc(r.onStep))
	return r, nil
}

func (r *Runner) Playground() *playground.Playground { return r.pg }

func (r *Runner) Run(ctx context.Context, ticks int) (*Result, error) {
	return r.run(ctx, ticks, nil)
}

// RunWithCallback calls fn after every completed tick and stops early when it
// returns false.
func (r *Runner) RunWithCallback(ctx context.Context, ticks int, fn func(tick int, s *playground.State) bool) (*Result, error) {
	return r.run(ctx, ticks, fn)
}

func (r *Runner) run(ctx context.Context, ticks int, fn func(int, *playground.State) bool) (*Result, error) {
	if ticks < 0 {
		return nil, errors.Wrapf(constructs.ErrInvalidArgument, "ticks must be non-negative, got %d", ticks)
	}

	res, err := r.begin()
	if err != nil {
		return nil, err
	}
	defer r.finish(res)

	r.logger.Info("run started",
		zap.String("playground", r.pg.Spec().Name),
		zap.Int("ticks", ticks),
		zap.Int("robots", r.pg.State().NumRobots()),
	)

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			r.logger.Warn("run cancelled", zap.Int("tick", i))
			return res, ctx.Err()
		default:
		}

		if err := r.pg.Execute(); err != nil {
			return res, r.fail(res, i, err)
		}
		if err := r.record(res); err != nil {
			return res, r.fail(res, i, err)
		}

		if fn != nil && !fn(i, r.pg.State()) {
			break
		}
	}

	r.logger.Info("run finished", zap.Int("ticks", res.Ticks), zap.Float64("time", r.pg.Time()))
	return res, nil
}

func (r *Runner) begin() (*Result, error) {
	st := r.pg.State()
	res := &Result{
		Dt:           r.pg.Spec().Dt,
		Times:        []float64{r.pg.Time()},
		Trajectories: make(map[int]*constructs.Trajectory),
		Controls:     make(map[int][]constructs.ControlInput),
		Metrics:      make(map[int]map[string]float64),
	}
	r.metrics = make(map[int][]Metric)

	for _, uid := range st.UIDs() {
		s, err := st.GetRobotState(uid)
		if err != nil {
			return nil, err
		}
		traj, err := constructs.NewTrajectory(s)
		if err != nil {
			return nil, errors.WithMessagef(err, "robot %d", uid)
		}
		res.Trajectories[uid] = traj
		res.Controls[uid] = nil

		ms := make([]Metric, 0, len(r.factories))
		for _, f := range r.factories {
			m := f()
			m.Reset()
			ms = append(ms, m)
		}
		r.metrics[uid] = ms
	}
	r.active = res
	return res, nil
}

func (r *Runner) onStep(uid int, t float64, s constructs.State, u constructs.ControlInput) {
	if r.active == nil {
		return
	}
	if _, ok := r.active.Trajectories[uid]; !ok {
		return
	}
	r.active.Controls[uid] = append(r.active.Controls[uid], u.Clone())
	for _, m := range r.metrics[uid] {
		m.Observe(s, u, t)
	}
}

func (r *Runner) record(res *Result) error {
	st := r.pg.State()
	for uid, traj := range res.Trajectories {
		s, err := st.GetRobotState(uid)
		if err != nil {
			return err
		}
		if r.validateState && !isFinite(s) {
			return errors.Wrapf(constructs.ErrDomain, "robot %d state is not finite: %v", uid, s)
		}
		if err := traj.Append(s); err != nil {
			return err
		}
	}
	res.Times = append(res.Times, r.pg.Time())
	res.Ticks++
	return nil
}

// fail trims controls recorded during the failed tick so every control
// series stays aligned with its trajectory.
func (r *Runner) fail(res *Result, tick int, err error) error {
	for uid, us := range res.Controls {
		if len(us) > res.Ticks {
			res.Controls[uid] = us[:res.Ticks]
		}
	}
	tickErr := &TickError{Tick: tick, Time: r.pg.Time(), Err: err}
	r.logger.Error("run failed", zap.Int("tick", tick), zap.Error(err))
	return tickErr
}

func (r *Runner) finish(res *Result) {
	for uid, ms := range r.metrics {
		values := make(map[string]float64, len(ms))
		for _, m := range ms {
			values[m.Name()] = m.Value()
		}
		res.Metrics[uid] = values
	}
	r.active = nil
	r.metrics = nil
}
