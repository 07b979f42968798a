package playground

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/environment"
	"github.com/shrenikm/Morphac/internal/integrators"
	"github.com/shrenikm/Morphac/internal/robot"
)

// entry is everything registered under one UID.
type entry struct {
	robot      *robot.Robot
	pilot      Pilot
	integrator integrators.Integrator
}

// State is the mutable snapshot of a playground: the map, the robots and the
// clock. Pilots receive it read only by convention.
type State struct {
	envMap  *environment.Map
	entries map[int]*entry
	order   []int
	time    float64
}

func NewState(m *environment.Map) *State {
	return &State{
		envMap:  m,
		entries: make(map[int]*entry),
	}
}

func (s *State) Map() *environment.Map { return s.envMap }
func (s *State) Time() float64         { return s.time }
func (s *State) NumRobots() int        { return len(s.order) }

// UIDs returns the registered UIDs in ascending order.
func (s *State) UIDs() []int {
	return append([]int(nil), s.order...)
}

func (s *State) lookup(uid int) (*entry, error) {
	e, ok := s.entries[uid]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrNotFound, "no robot with uid %d", uid)
	}
	return e, nil
}

func (s *State) GetRobot(uid int) (*robot.Robot, error) {
	e, err := s.lookup(uid)
	if err != nil {
		return nil, err
	}
	return e.robot, nil
}

// GetRobotState returns the live state of robot uid.
func (s *State) GetRobotState(uid int) (constructs.State, error) {
	e, err := s.lookup(uid)
	if err != nil {
		return constructs.State{}, err
	}
	return e.robot.State(), nil
}

// SetRobotState replaces the state of robot uid.
func (s *State) SetRobotState(uid int, st constructs.State) error {
	e, err := s.lookup(uid)
	if err != nil {
		return err
	}
	return e.robot.SetState(st)
}

// RobotOracle is a map style view of the robots.
func (s *State) RobotOracle() RobotOracle { return RobotOracle{state: s} }

func (s *State) add(uid int, e *entry) {
	s.entries[uid] = e
	i := sort.SearchInts(s.order, uid)
	s.order = append(s.order, 0)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = uid
}
