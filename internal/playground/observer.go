package playground

import "github.com/shrenikm/Morphac/internal/constructs"

// Observer is notified for every robot on every tick, after the pilot has
// produced a control and before the integrator runs.
type Observer interface {
	OnStep(uid int, t float64, s constructs.State, u constructs.ControlInput)
}

type ObserverFunc func(uid int, t float64, s constructs.State, u constructs.ControlInput)

func (f ObserverFunc) OnStep(uid int, t float64, s constructs.State, u constructs.ControlInput) {
	f(uid, t, s, u)
}

func (p *Playground) AddObserver(o Observer) {
	if o != nil {
		p.observers = append(p.observers, o)
	}
}
