package control

import (
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/geometry"
)

// PID drives state element Index toward Target. With Angular set the error
// is wrapped into (-π, π] so the controller turns the short way round.
type PID struct {
	Kp      float64
	Ki      float64
	Kd      float64
	Target  float64
	Index   int
	Angular bool

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Output returns the scalar PID output for state s at time t.
func (p *PID) Output(s constructs.State, t float64) (float64, error) {
	x, err := s.At(p.Index)
	if err != nil {
		return 0, err
	}

	e := p.Target - x
	if p.Angular {
		e = geometry.NormalizeAngle(e)
	}

	if p.first {
		p.prevErr = e
		p.prevT = t
		p.first = false
		return p.Kp * e, nil
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.Kp * e, nil
	}
	p.integral += e * dt
	derivative := (e - p.prevErr) / dt
	p.prevErr = e
	p.prevT = t

	return p.Kp*e + p.Ki*p.integral + p.Kd*derivative, nil
}

func (p *PID) Compute(s constructs.State, t float64) (constructs.ControlInput, error) {
	u, err := p.Output(s, t)
	if err != nil {
		return constructs.ControlInput{}, err
	}
	return constructs.ControlInputFrom(u), nil
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	}
}
