// Package experiment turns a scenario into a ready to run playground.
package experiment

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/environment"
	"github.com/shrenikm/Morphac/internal/integrators"
	"github.com/shrenikm/Morphac/internal/metrics"
	"github.com/shrenikm/Morphac/internal/playground"
	"github.com/shrenikm/Morphac/internal/robot"
	"github.com/shrenikm/Morphac/internal/sim"
)

type Experiment struct {
	scenario   *config.Scenario
	registry   *Registry
	logger     *zap.Logger
	overrides  map[int]playground.Pilot
	playground *playground.Playground
	runner     *sim.Runner
}

type Option func(*Experiment)

func WithLogger(l *zap.Logger) Option {
	return func(e *Experiment) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

// WithPilot replaces the configured pilot of robot uid.
func WithPilot(uid int, p playground.Pilot) Option {
	return func(e *Experiment) { e.overrides[uid] = p }
}

// New validates sc and builds its playground and runner.
func New(sc *config.Scenario, opts ...Option) (*Experiment, error) {
	if sc == nil {
		return nil, errors.Wrap(constructs.ErrInvalidArgument, "scenario must not be nil")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{
		scenario:  sc,
		registry:  NewRegistry(),
		logger:    zap.NewNop(),
		overrides: make(map[int]playground.Pilot),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.setup(); err != nil {
		return nil, errors.WithMessagef(err, "scenario %q", sc.Name)
	}
	return e, nil
}

func (e *Experiment) setup() error {
	sc := e.scenario

	m, err := environment.NewMap(sc.Map.Width, sc.Map.Height, sc.Map.Resolution)
	if err != nil {
		return err
	}
	for _, o := range sc.Obstacles {
		m.AddRectangularObstacle(o.X0, o.Y0, o.X1, o.Y1)
	}

	spec := playground.Spec{Name: sc.Name, Dt: sc.Dt, Width: sc.Map.Width, Height: sc.Map.Height}
	e.playground, err = playground.New(spec, m, playground.WithLogger(e.logger))
	if err != nil {
		return err
	}

	for _, rc := range sc.Robots {
		if err := e.addRobot(rc); err != nil {
			return errors.WithMessagef(err, "robot %d", rc.UID)
		}
	}

	e.runner, err = sim.New(e.playground,
		sim.WithLogger(e.logger),
		sim.WithStateValidation(),
		sim.WithMetrics(metrics.Default(sc.Map.Width, sc.Map.Height)...),
	)
	return err
}

func (e *Experiment) addRobot(rc config.RobotConfig) error {
	model, err := e.registry.GetModel(rc.Model)
	if err != nil {
		return err
	}

	data := append(append([]float64(nil), rc.Pose...), rc.Velocity...)
	state, err := constructs.StateFromData(data, model.PoseSize(), model.VelocitySize())
	if err != nil {
		return errors.WithMessagef(err, "initial state %v", data)
	}
	r, err := robot.New(model, robot.WithState(state))
	if err != nil {
		return err
	}

	pilot, ok := e.overrides[rc.UID]
	if !ok {
		if pilot, err = e.registry.GetPilot(rc.Pilot, model); err != nil {
			return err
		}
	}

	typ, err := integrators.ParseType(e.scenario.RobotIntegrator(rc))
	if err != nil {
		return err
	}
	return e.playground.AddRobot(r, pilot, typ, rc.UID)
}

func (e *Experiment) Scenario() *config.Scenario         { return e.scenario }
func (e *Experiment) Playground() *playground.Playground { return e.playground }
func (e *Experiment) Runner() *sim.Runner                { return e.runner }

// Run executes the scenario's tick count.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, e.scenario.Ticks)
}
