package experiment

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/playground"
)

func TestRegistryLists(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	g.Expect(r.ListModels()).To(Equal([]string{"ackermann", "diffdrive", "dubin", "tricycle"}))
	g.Expect(r.ListPilots()).To(Equal([]string{"constant", "heading", "zero"}))
}

func TestNewFromPresets(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)
			sc := config.GetPreset(name)

			e, err := New(sc)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(e.Playground().State().NumRobots()).To(Equal(len(sc.Robots)))
			g.Expect(e.Playground().Spec().Dt).To(Equal(sc.Dt))
		})
	}
}

func TestRunCircle(t *testing.T) {
	g := NewWithT(t)
	sc := config.DefaultScenario()
	sc.Ticks = 100

	e, err := New(sc)
	g.Expect(err).NotTo(HaveOccurred())

	res, err := e.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Ticks).To(Equal(100))

	// Metrics see the state before each step, so 99 intervals of 0.01s at
	// unit speed and 0.5 rad/s.
	g.Expect(res.Metrics[0]["distance"]).To(BeNumerically("~", 0.99, 1e-6))
	g.Expect(res.Metrics[0]["heading_change"]).To(BeNumerically("~", 0.495, 1e-6))
	g.Expect(res.Metrics[0]["control_effort"]).To(BeNumerically("~", 0.5, 1e-12))
	g.Expect(res.Metrics[0]["out_of_bounds"]).To(BeZero())
}

func TestObstaclesAreApplied(t *testing.T) {
	g := NewWithT(t)
	e, err := New(config.GetPreset("fleet"))
	g.Expect(err).NotTo(HaveOccurred())

	m := e.Playground().State().Map()
	g.Expect(m.IsObstacle(10, 10)).To(BeTrue())
	g.Expect(m.IsObstacle(2, 2)).To(BeFalse())
}

func TestInitialStateShape(t *testing.T) {
	g := NewWithT(t)
	sc := config.DefaultScenario()
	sc.Robots[0].Pose = []float64{1, 2}

	_, err := New(sc)
	g.Expect(errors.Is(err, constructs.ErrConstruction)).To(BeTrue(), "got %v", err)
}

func TestConstantControlSize(t *testing.T) {
	g := NewWithT(t)
	sc := config.DefaultScenario()
	sc.Robots[0].Pilot.Control = []float64{1, 2}

	_, err := New(sc)
	g.Expect(errors.Is(err, constructs.ErrDimensionMismatch)).To(BeTrue(), "got %v", err)
}

func TestInvalidModelParameters(t *testing.T) {
	g := NewWithT(t)
	sc := config.GetPreset("ackermann-turn")
	sc.Robots[0].Model.Length = -1

	_, err := New(sc)
	g.Expect(err).To(HaveOccurred())
}

func TestUnknownModel(t *testing.T) {
	g := NewWithT(t)
	_, err := NewRegistry().GetModel(config.ModelConfig{Type: "hovercraft"})
	g.Expect(errors.Is(err, constructs.ErrKeyNotFound)).To(BeTrue())
}

func TestWithPilot(t *testing.T) {
	g := NewWithT(t)
	sc := config.DefaultScenario()
	sc.Ticks = 10

	calls := 0
	override := playground.PilotFunc(func(*playground.State, int) (constructs.ControlInput, error) {
		calls++
		return constructs.ControlInputFrom(0), nil
	})

	e, err := New(sc, WithPilot(0, override))
	g.Expect(err).NotTo(HaveOccurred())

	res, err := e.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(calls).To(Equal(10))

	final, err := res.Final(0)
	g.Expect(err).NotTo(HaveOccurred())
	theta, _ := final.At(2)
	g.Expect(math.Abs(theta)).To(BeNumerically("<", 1e-12))
}
