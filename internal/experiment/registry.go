package experiment

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/models"
	"github.com/shrenikm/Morphac/internal/pilots"
	"github.com/shrenikm/Morphac/internal/playground"
)

type ModelFactory func(cfg config.ModelConfig) (models.KinematicModel, error)

// PilotFactory builds a pilot for a robot driven by model.
type PilotFactory func(cfg config.PilotConfig, model models.KinematicModel) (playground.Pilot, error)

// Registry maps the names used in scenario files to constructors.
type Registry struct {
	models map[string]ModelFactory
	pilots map[string]PilotFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]ModelFactory),
		pilots: make(map[string]PilotFactory),
	}

	r.models[config.ModelAckermann] = func(c config.ModelConfig) (models.KinematicModel, error) {
		return models.NewAckermann(c.Width, c.Length)
	}
	r.models[config.ModelDiffDrive] = func(c config.ModelConfig) (models.KinematicModel, error) {
		return models.NewDiffDrive(c.Radius, c.Width)
	}
	r.models[config.ModelDubin] = func(c config.ModelConfig) (models.KinematicModel, error) {
		return models.NewDubin(c.Speed), nil
	}
	r.models[config.ModelTricycle] = func(c config.ModelConfig) (models.KinematicModel, error) {
		return models.NewTricycle(c.Width, c.Length)
	}

	r.pilots[config.PilotZero] = func(_ config.PilotConfig, m models.KinematicModel) (playground.Pilot, error) {
		return pilots.Zero(m.ControlInputSize())
	}
	r.pilots[config.PilotConstant] = func(c config.PilotConfig, m models.KinematicModel) (playground.Pilot, error) {
		if len(c.Control) != m.ControlInputSize() {
			return nil, errors.Wrapf(constructs.ErrDimensionMismatch,
				"constant control has %d values, model expects %d", len(c.Control), m.ControlInputSize())
		}
		return pilots.Constant(c.Control...)
	}
	r.pilots[config.PilotHeading] = func(c config.PilotConfig, _ models.KinematicModel) (playground.Pilot, error) {
		kp, ki, kd := c.Kp, c.Ki, c.Kd
		if kp == 0 && ki == 0 && kd == 0 {
			kp, ki, kd = config.DefaultKp, config.DefaultKi, config.DefaultKd
		}
		speed := c.Speed
		if speed == 0 {
			speed = 1
		}
		return pilots.NewHeadingPilot(c.TargetHeading, speed, kp, ki, kd), nil
	}

	return r
}

func (r *Registry) RegisterModel(name string, f ModelFactory) { r.models[name] = f }
func (r *Registry) RegisterPilot(name string, f PilotFactory) { r.pilots[name] = f }

func (r *Registry) GetModel(cfg config.ModelConfig) (models.KinematicModel, error) {
	fn, ok := r.models[cfg.Type]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrKeyNotFound, "unknown model: %s", cfg.Type)
	}
	return fn(cfg)
}

func (r *Registry) GetPilot(cfg config.PilotConfig, model models.KinematicModel) (playground.Pilot, error) {
	fn, ok := r.pilots[cfg.Type]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrKeyNotFound, "unknown pilot: %s", cfg.Type)
	}
	return fn(cfg, model)
}

func (r *Registry) ListModels() []string { return sortedKeys(r.models) }
func (r *Registry) ListPilots() []string { return sortedKeys(r.pilots) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
