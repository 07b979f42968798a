package playground_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/integrators"
	"github.com/shrenikm/Morphac/internal/models"
	"github.com/shrenikm/Morphac/internal/playground"
	"github.com/shrenikm/Morphac/internal/robot"
)

func constantPilot(values ...float64) playground.Pilot {
	return playground.PilotFunc(func(*playground.State, int) (constructs.ControlInput, error) {
		return constructs.ControlInputFrom(values...), nil
	})
}

func dubinRobot(x, y, theta float64) *robot.Robot {
	r, err := robot.New(models.NewDubin(1),
		robot.WithState(constructs.StateFrom(constructs.PoseFrom(x, y, theta), constructs.VelocityFrom())))
	Expect(err).NotTo(HaveOccurred())
	return r
}

var _ = Describe("Playground", func() {
	var pg *playground.Playground

	BeforeEach(func() {
		spec := playground.DefaultSpec()
		spec.Dt = 0.1
		var err error
		pg, err = playground.New(spec, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a non-positive dt", func() {
			_, err := playground.New(playground.Spec{Name: "bad", Dt: 0, Width: 1, Height: 1}, nil)
			Expect(errors.Is(err, constructs.ErrConstruction)).To(BeTrue())
		})

		It("builds a map of the configured size", func() {
			Expect(pg.State().Map().Width()).To(Equal(10.0))
			Expect(pg.State().Map().Height()).To(Equal(10.0))
			Expect(pg.Time()).To(BeZero())
		})
	})

	Describe("AddRobot", func() {
		It("registers robot, pilot and integrator together", func() {
			r := dubinRobot(0, 0, 0)
			Expect(pg.AddRobot(r, constantPilot(0), integrators.TypeRK4, 3)).To(Succeed())

			got, err := pg.State().GetRobot(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(r))

			integ, err := pg.GetIntegrator(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(integ).To(BeAssignableToTypeOf(&integrators.RK4{}))

			_, err = pg.GetPilot(3)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects negative and duplicate uids", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)).To(Succeed())

			err := pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)
			Expect(errors.Is(err, constructs.ErrInvalidArgument)).To(BeTrue())

			err = pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, -1)
			Expect(errors.Is(err, constructs.ErrInvalidArgument)).To(BeTrue())

			Expect(pg.State().NumRobots()).To(Equal(1))
		})

		It("rejects an integrator bound to a model of another shape", func() {
			ack, _ := models.NewAckermann(1, 1)
			err := pg.AddRobotWithIntegrator(dubinRobot(0, 0, 0), constantPilot(0), integrators.NewEuler(ack), 1)
			Expect(errors.Is(err, constructs.ErrDimensionMismatch)).To(BeTrue())
			Expect(pg.State().NumRobots()).To(BeZero())
		})
	})

	Describe("lookups", func() {
		BeforeEach(func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 7)).To(Succeed())
		})

		It("returns ErrNotFound from accessors", func() {
			_, err := pg.GetPilot(1)
			Expect(errors.Is(err, constructs.ErrNotFound)).To(BeTrue())
			_, err = pg.GetIntegrator(1)
			Expect(errors.Is(err, constructs.ErrNotFound)).To(BeTrue())
			_, err = pg.State().GetRobot(1)
			Expect(errors.Is(err, constructs.ErrNotFound)).To(BeTrue())
			_, err = pg.State().GetRobotState(1)
			Expect(errors.Is(err, constructs.ErrNotFound)).To(BeTrue())
		})

		It("returns ErrKeyNotFound from oracles", func() {
			_, err := pg.PilotOracle().Get(1)
			Expect(errors.Is(err, constructs.ErrKeyNotFound)).To(BeTrue())
			Expect(errors.Is(err, constructs.ErrNotFound)).To(BeFalse())

			_, err = pg.State().RobotOracle().Get(1)
			Expect(errors.Is(err, constructs.ErrKeyNotFound)).To(BeTrue())

			Expect(pg.PilotOracle().Keys()).To(Equal([]int{7}))
			Expect(pg.State().RobotOracle().Len()).To(Equal(1))
		})
	})

	Describe("Execute", func() {
		It("advances the clock by dt on every tick", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)).To(Succeed())
			for i := 1; i <= 5; i++ {
				Expect(pg.Execute()).To(Succeed())
				Expect(pg.Time()).To(BeNumerically("~", 0.1*float64(i), 1e-12))
			}
		})

		It("advances the clock with no robots", func() {
			Expect(pg.Execute()).To(Succeed())
			Expect(pg.Time()).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("leaves a robot with zero control unchanged", func() {
			ack, _ := models.NewAckermann(1, 2)
			init := constructs.StateFrom(constructs.PoseFrom(1, 2, 0.3, 0.1), constructs.VelocityFrom())
			r, err := robot.New(ack, robot.WithState(init))
			Expect(err).NotTo(HaveOccurred())
			Expect(pg.AddRobot(r, constantPilot(0, 0), integrators.TypeMidPoint, 0)).To(Succeed())

			Expect(pg.Execute()).To(Succeed())
			Expect(r.State().Equal(init)).To(BeTrue())
		})

		It("moves each robot with its own integrator", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)).To(Succeed())
			Expect(pg.AddRobot(dubinRobot(0, 0, math.Pi/2), constantPilot(0), integrators.TypeRK4, 1)).To(Succeed())

			Expect(pg.Execute()).To(Succeed())

			s0, _ := pg.State().GetRobotState(0)
			s1, _ := pg.State().GetRobotState(1)
			Expect(s0.Data()).To(HaveLen(3))
			Expect(s0.Data()[0]).To(BeNumerically("~", 0.1, 1e-12))
			Expect(s1.Data()[1]).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("fails on a control input of the wrong size without advancing the clock", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(1, 2), integrators.TypeEuler, 0)).To(Succeed())

			err := pg.Execute()
			Expect(errors.Is(err, constructs.ErrDimensionMismatch)).To(BeTrue())
			Expect(pg.Time()).To(BeZero())
		})

		It("keeps updates of robots processed before a failure", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)).To(Succeed())
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(), integrators.TypeEuler, 1)).To(Succeed())

			Expect(pg.Execute()).NotTo(Succeed())
			s0, _ := pg.State().GetRobotState(0)
			Expect(s0.Data()[0]).To(BeNumerically("~", 0.1, 1e-12))
			s1, _ := pg.State().GetRobotState(1)
			Expect(s1.Data()[0]).To(BeZero())
		})

		It("lets later pilots observe states already updated this tick", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(0), integrators.TypeEuler, 0)).To(Succeed())

			var observed float64
			follower := playground.PilotFunc(func(s *playground.State, uid int) (constructs.ControlInput, error) {
				leader, err := s.GetRobotState(0)
				if err != nil {
					return constructs.ControlInput{}, err
				}
				observed = leader.Data()[0]
				return constructs.ControlInputFrom(0), nil
			})
			Expect(pg.AddRobot(dubinRobot(5, 5, 0), follower, integrators.TypeEuler, 1)).To(Succeed())

			Expect(pg.Execute()).To(Succeed())
			Expect(observed).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("processes robots in ascending uid order regardless of registration order", func() {
			var order []int
			recorder := playground.PilotFunc(func(_ *playground.State, uid int) (constructs.ControlInput, error) {
				order = append(order, uid)
				return constructs.ControlInputFrom(0), nil
			})
			for _, uid := range []int{5, 1, 3} {
				Expect(pg.AddRobot(dubinRobot(0, 0, 0), recorder, integrators.TypeEuler, uid)).To(Succeed())
			}

			Expect(pg.Execute()).To(Succeed())
			Expect(order).To(Equal([]int{1, 3, 5}))
			Expect(pg.State().UIDs()).To(Equal([]int{1, 3, 5}))
		})

		It("surfaces pilot errors", func() {
			failing := playground.PilotFunc(func(*playground.State, int) (constructs.ControlInput, error) {
				return constructs.ControlInput{}, errors.Wrap(constructs.ErrDomain, "no route")
			})
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), failing, integrators.TypeEuler, 0)).To(Succeed())
			Expect(errors.Is(pg.Execute(), constructs.ErrDomain)).To(BeTrue())
		})
	})

	Describe("observers", func() {
		It("see the pre-step state and the pilot's control of every robot", func() {
			Expect(pg.AddRobot(dubinRobot(1, 2, 0), constantPilot(0.5), integrators.TypeEuler, 0)).To(Succeed())

			type step struct {
				uid   int
				t     float64
				x     float64
				omega float64
			}
			var seen []step
			pg.AddObserver(playground.ObserverFunc(func(uid int, t float64, s constructs.State, u constructs.ControlInput) {
				w, _ := u.At(0)
				seen = append(seen, step{uid, t, s.Data()[0], w})
			}))

			Expect(pg.Execute()).To(Succeed())
			Expect(pg.Execute()).To(Succeed())

			Expect(seen).To(HaveLen(2))
			Expect(seen[0]).To(Equal(step{0, 0, 1, 0.5}))
			Expect(seen[1].t).To(BeNumerically("~", 0.1, 1e-12))
			Expect(seen[1].x).To(BeNumerically("~", 1.1, 1e-12))
		})

		It("are not called for a control of the wrong size", func() {
			Expect(pg.AddRobot(dubinRobot(0, 0, 0), constantPilot(1, 2), integrators.TypeEuler, 0)).To(Succeed())
			calls := 0
			pg.AddObserver(playground.ObserverFunc(func(int, float64, constructs.State, constructs.ControlInput) { calls++ }))
			Expect(pg.Execute()).NotTo(Succeed())
			Expect(calls).To(BeZero())
		})
	})
})
