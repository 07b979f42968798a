package robot

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/geometry"
	"github.com/shrenikm/Morphac/internal/models"
)

func diffDrive(t *testing.T) *models.DiffDrive {
	t.Helper()
	m, err := models.NewDiffDrive(0.1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewDefaults(t *testing.T) {
	m := diffDrive(t)
	r, err := New(m)
	if err != nil {
		t.Fatal(err)
	}
	if !r.State().Equal(constructs.StateFrom(constructs.PoseFrom(0, 0, 0), constructs.VelocityFrom())) {
		t.Errorf("expected zero state, got %v", r.State())
	}
	def, _ := m.DefaultFootprint()
	if r.Footprint().Size() != def.Size() {
		t.Errorf("expected default footprint with %d vertices, got %d", def.Size(), r.Footprint().Size())
	}
	if r.KinematicModel() != models.KinematicModel(m) {
		t.Error("robot must keep its model")
	}
}

func TestNewWithOptions(t *testing.T) {
	fp, _ := footprint.FromPolygon(geometry.Rectangle(1, 1, 0, r2.Point{}))
	init := constructs.StateFrom(constructs.PoseFrom(1, 2, 3), constructs.VelocityFrom())

	r, err := New(diffDrive(t), WithFootprint(fp), WithState(init))
	if err != nil {
		t.Fatal(err)
	}
	if r.Footprint() != fp {
		t.Error("expected custom footprint")
	}
	if !r.State().Equal(init) {
		t.Errorf("expected %v, got %v", init, r.State())
	}
	_ = init.Set(0, 100)
	if v, _ := r.State().At(0); v != 1 {
		t.Error("initial state must be copied")
	}
}

func TestNewRejectsMismatchedState(t *testing.T) {
	bad := constructs.StateFrom(constructs.PoseFrom(1, 2), constructs.VelocityFrom())
	if _, err := New(diffDrive(t), WithState(bad)); !errors.Is(err, constructs.ErrConstruction) {
		t.Errorf("expected ErrConstruction, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, constructs.ErrConstruction) {
		t.Errorf("expected ErrConstruction, got %v", err)
	}
}

func TestStateAccessors(t *testing.T) {
	r, _ := New(diffDrive(t))

	if err := r.SetState(constructs.StateFrom(constructs.PoseFrom(4, 5, 6), constructs.VelocityFrom())); err != nil {
		t.Fatal(err)
	}
	if err := r.SetState(constructs.StateFrom(constructs.PoseFrom(4, 5), constructs.VelocityFrom(6))); !errors.Is(err, constructs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	p, err := r.Pose()
	if err != nil {
		t.Fatal(err)
	}
	_ = p.Set(0, -1)
	if v, _ := r.State().At(0); v != -1 {
		t.Error("pose view must write through to the robot state")
	}

	if err := r.SetPose(constructs.PoseFrom(1, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := r.SetPose(constructs.PoseFrom(1)); !errors.Is(err, constructs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	if _, err := r.Velocity(); !errors.Is(err, constructs.ErrDomain) {
		t.Errorf("expected ErrDomain for empty velocity, got %v", err)
	}
	if err := r.SetVelocity(constructs.VelocityFrom()); !errors.Is(err, constructs.ErrDomain) {
		t.Errorf("expected ErrDomain for empty velocity, got %v", err)
	}
}

func TestComputeStateDerivative(t *testing.T) {
	m, _ := models.NewDiffDrive(1, 1)
	r, _ := New(m, WithState(constructs.StateFrom(constructs.PoseFrom(0, 0, 0), constructs.VelocityFrom())))

	d, err := r.ComputeStateDerivative(constructs.ControlInputFrom(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !d.ApproxEqual(constructs.StateFrom(constructs.PoseFrom(1, 0, 0), constructs.VelocityFrom()), 1e-12) {
		t.Errorf("unexpected derivative %v", d)
	}

	other := constructs.StateFrom(constructs.PoseFrom(0, 0, 1.5707963267948966), constructs.VelocityFrom())
	d, err = r.ComputeStateDerivativeAt(other, constructs.ControlInputFrom(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !d.ApproxEqual(constructs.StateFrom(constructs.PoseFrom(0, 1, 0), constructs.VelocityFrom()), 1e-12) {
		t.Errorf("unexpected derivative %v", d)
	}

	if _, err := r.ComputeStateDerivative(constructs.ControlInputFrom(1)); !errors.Is(err, constructs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
