// Package config reads and writes yaml scenario files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/integrators"
)

const (
	DefaultDt         = 0.01
	DefaultTicks      = 1000
	DefaultWidth      = 10.0
	DefaultHeight     = 10.0
	DefaultResolution = 0.05
	DefaultKp         = 2.0
	DefaultKi         = 0.0
	DefaultKd         = 0.1
)

// Model names.
const (
	ModelAckermann = "ackermann"
	ModelDiffDrive = "diffdrive"
	ModelDubin     = "dubin"
	ModelTricycle  = "tricycle"
)

// Pilot names.
const (
	PilotZero     = "zero"
	PilotConstant = "constant"
	PilotHeading  = "heading"
)

var (
	ModelTypes = []string{ModelAckermann, ModelDiffDrive, ModelDubin, ModelTricycle}
	PilotTypes = []string{PilotZero, PilotConstant, PilotHeading}
)

type Scenario struct {
	Name       string           `yaml:"name"`
	Dt         float64          `yaml:"dt"`
	Ticks      int              `yaml:"ticks"`
	Integrator string           `yaml:"integrator"`
	Map        MapConfig        `yaml:"map"`
	Obstacles  []ObstacleConfig `yaml:"obstacles,omitempty"`
	Robots     []RobotConfig    `yaml:"robots"`
}

type MapConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Resolution float64 `yaml:"resolution"`
}

// ObstacleConfig is an axis aligned rectangle in world coordinates.
type ObstacleConfig struct {
	X0 float64 `yaml:"x0"`
	Y0 float64 `yaml:"y0"`
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
}

type RobotConfig struct {
	UID        int         `yaml:"uid"`
	Model      ModelConfig `yaml:"model"`
	Pose       []float64   `yaml:"pose"`
	Velocity   []float64   `yaml:"velocity,omitempty"`
	Integrator string      `yaml:"integrator,omitempty"`
	Pilot      PilotConfig `yaml:"pilot"`
}

// ModelConfig carries the parameters of every model; each model reads the
// ones it needs.
type ModelConfig struct {
	Type   string  `yaml:"type"`
	Width  float64 `yaml:"width,omitempty"`
	Length float64 `yaml:"length,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Speed  float64 `yaml:"speed,omitempty"`
}

type PilotConfig struct {
	Type          string    `yaml:"type"`
	Control       []float64 `yaml:"control,omitempty"`
	TargetHeading float64   `yaml:"target_heading,omitempty"`
	Speed         float64   `yaml:"speed,omitempty"`
	Kp            float64   `yaml:"kp,omitempty"`
	Ki            float64   `yaml:"ki,omitempty"`
	Kd            float64   `yaml:"kd,omitempty"`
}

// DefaultScenario is a single Dubin car driving a circle in an empty map.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:       "circle",
		Dt:         DefaultDt,
		Ticks:      DefaultTicks,
		Integrator: "rk4",
		Map:        MapConfig{Width: DefaultWidth, Height: DefaultHeight, Resolution: DefaultResolution},
		Robots: []RobotConfig{{
			UID:   0,
			Model: ModelConfig{Type: ModelDubin, Speed: 1},
			Pose:  []float64{5, 3, 0},
			Pilot: PilotConfig{Type: PilotConstant, Control: []float64{0.5}},
		}},
	}
}

// Load reads a scenario. Fields missing from the file keep their defaults,
// except robots which replace the default robot entirely.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario")
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	sc.Robots = nil
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errors.Wrap(err, "parsing scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return errors.Wrap(err, "encoding scenario")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "writing scenario")
}

// Validate reports every problem found, combined with multierr. Each problem
// wraps constructs.ErrInvalidArgument.
func (s *Scenario) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, errors.Wrapf(constructs.ErrInvalidArgument, format, args...))
	}

	if s.Dt <= 0 {
		invalid("dt must be positive, got %g", s.Dt)
	}
	if s.Ticks < 0 {
		invalid("ticks must be non-negative, got %d", s.Ticks)
	}
	if _, perr := integrators.ParseType(s.Integrator); perr != nil {
		invalid("integrator: %v", perr)
	}
	if s.Map.Width <= 0 || s.Map.Height <= 0 || s.Map.Resolution <= 0 {
		invalid("map dimensions must be positive, got %gx%g at %g", s.Map.Width, s.Map.Height, s.Map.Resolution)
	}
	if len(s.Robots) == 0 {
		invalid("scenario has no robots")
	}

	seen := make(map[int]bool, len(s.Robots))
	for i, r := range s.Robots {
		where := fmt.Sprintf("robots[%d]", i)
		if r.UID < 0 {
			invalid("%s: uid must be non-negative, got %d", where, r.UID)
		}
		if seen[r.UID] {
			invalid("%s: duplicate uid %d", where, r.UID)
		}
		seen[r.UID] = true

		if !oneOf(r.Model.Type, ModelTypes) {
			invalid("%s: unknown model %q (want one of %s)", where, r.Model.Type, strings.Join(ModelTypes, ", "))
		}
		if !oneOf(r.Pilot.Type, PilotTypes) {
			invalid("%s: unknown pilot %q (want one of %s)", where, r.Pilot.Type, strings.Join(PilotTypes, ", "))
		}
		if r.Pilot.Type == PilotConstant && len(r.Pilot.Control) == 0 {
			invalid("%s: constant pilot needs a control", where)
		}
		if r.Integrator != "" {
			if _, perr := integrators.ParseType(r.Integrator); perr != nil {
				invalid("%s: integrator: %v", where, perr)
			}
		}
	}
	return err
}

// RobotIntegrator returns the integrator name for r, falling back to the
// scenario default.
func (s *Scenario) RobotIntegrator(r RobotConfig) string {
	if r.Integrator != "" {
		return r.Integrator
	}
	return s.Integrator
}

// Duration is the simulated time covered by Ticks.
func (s *Scenario) Duration() float64 { return float64(s.Ticks) * s.Dt }

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
