package playground

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/environment"
	"github.com/shrenikm/Morphac/internal/integrators"
	"github.com/shrenikm/Morphac/internal/models"
	"github.com/shrenikm/Morphac/internal/robot"
)

type Playground struct {
	spec      Spec
	state     *State
	logger    *zap.Logger
	observers []Observer
}

type Option func(*Playground)

func WithLogger(l *zap.Logger) Option {
	return func(p *Playground) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds an empty playground. A nil map is replaced by an empty
// spec.Width×spec.Height map at DefaultMapResolution.
func New(spec Spec, m *environment.Map, opts ...Option) (*Playground, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		var err error
		if m, err = environment.NewMap(spec.Width, spec.Height, DefaultMapResolution); err != nil {
			return nil, err
		}
	}
	p := &Playground{
		spec:   spec,
		state:  NewState(m),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Playground) Spec() Spec    { return p.spec }
func (p *Playground) State() *State { return p.state }
func (p *Playground) Time() float64 { return p.state.time }

// PilotOracle is a map style view of the pilots.
func (p *Playground) PilotOracle() PilotOracle { return PilotOracle{state: p.state} }

// AddRobot registers r under uid with a pilot and a built in integrator.
func (p *Playground) AddRobot(r *robot.Robot, pilot Pilot, typ integrators.Type, uid int) error {
	if r == nil {
		return errors.Wrap(constructs.ErrInvalidArgument, "robot must not be nil")
	}
	integ, err := integrators.New(typ, r.KinematicModel())
	if err != nil {
		return err
	}
	return p.AddRobotWithIntegrator(r, pilot, integ, uid)
}

// AddRobotWithIntegrator registers r under uid with a caller supplied
// integrator. The integrator's model must have the robot's sizes.
func (p *Playground) AddRobotWithIntegrator(r *robot.Robot, pilot Pilot, integ integrators.Integrator, uid int) error {
	if uid < 0 {
		return errors.Wrapf(constructs.ErrInvalidArgument, "uid must be non-negative, got %d", uid)
	}
	if _, exists := p.state.entries[uid]; exists {
		return errors.Wrapf(constructs.ErrInvalidArgument, "uid %d is already registered", uid)
	}
	if r == nil || pilot == nil || integ == nil {
		return errors.Wrap(constructs.ErrInvalidArgument, "robot, pilot and integrator are required")
	}
	rm, im := r.KinematicModel(), integ.Model()
	if im == nil || rm.PoseSize() != im.PoseSize() || rm.VelocitySize() != im.VelocitySize() ||
		rm.ControlInputSize() != im.ControlInputSize() {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "integrator model does not match robot %d", uid)
	}

	p.state.add(uid, &entry{robot: r, pilot: pilot, integrator: integ})
	p.logger.Info("robot added",
		zap.Int("uid", uid),
		zap.String("model", ModelName(rm)),
		zap.String("integrator", fmt.Sprintf("%T", integ)),
	)
	return nil
}

func (p *Playground) GetPilot(uid int) (Pilot, error) {
	e, err := p.state.lookup(uid)
	if err != nil {
		return nil, err
	}
	return e.pilot, nil
}

func (p *Playground) GetIntegrator(uid int) (integrators.Integrator, error) {
	e, err := p.state.lookup(uid)
	if err != nil {
		return nil, err
	}
	return e.integrator, nil
}

// Execute runs one tick. See the package documentation for ordering and
// failure semantics.
func (p *Playground) Execute() error {
	for _, uid := range p.state.order {
		if err := p.executeRobot(uid); err != nil {
			return errors.WithMessagef(err, "tick at t=%g, robot %d", p.state.time, uid)
		}
	}
	p.state.time += p.spec.Dt
	p.logger.Debug("tick", zap.Float64("time", p.state.time), zap.Int("robots", len(p.state.order)))
	return nil
}

func (p *Playground) executeRobot(uid int) error {
	e := p.state.entries[uid]

	u, err := e.pilot.Execute(p.state, uid)
	if err != nil {
		return errors.WithMessage(err, "pilot")
	}
	if want := e.robot.KinematicModel().ControlInputSize(); u.Size() != want {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "pilot returned %d controls, model expects %d", u.Size(), want)
	}
	for _, o := range p.observers {
		o.OnStep(uid, p.state.time, e.robot.State(), u)
	}
	next, err := e.integrator.Step(e.robot.State(), u, p.spec.Dt)
	if err != nil {
		return errors.WithMessage(err, "integrator")
	}
	return e.robot.SetState(next)
}

// ModelName returns the registry name of built in models and the Go type
// name otherwise.
func ModelName(m models.KinematicModel) string {
	if k, ok := m.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return fmt.Sprintf("%T", m)
}
