package control

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/shrenikm/Morphac/internal/constructs"
)

func pose(p ...float64) constructs.State {
	return constructs.StateFrom(constructs.PoseFrom(p...), constructs.VelocityFrom())
}

func TestZero(t *testing.T) {
	ctrl, err := NewZero(2)
	if err != nil {
		t.Fatal(err)
	}
	u, err := ctrl.Compute(pose(1, 2), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Equal(constructs.ControlInputFrom(0, 0)) {
		t.Errorf("expected zero control, got %v", u)
	}

	if _, err := NewZero(0); !errors.Is(err, constructs.ErrConstruction) {
		t.Errorf("expected ErrConstruction, got %v", err)
	}
}

func TestConstant(t *testing.T) {
	ctrl, err := NewConstant(1, -2)
	if err != nil {
		t.Fatal(err)
	}
	u, _ := ctrl.Compute(pose(0), 0)
	_ = u.Set(0, 100)
	u, _ = ctrl.Compute(pose(0), 1)
	if !u.Equal(constructs.ControlInputFrom(1, -2)) {
		t.Errorf("constant control must not change, got %v", u)
	}

	if _, err := NewConstant(); !errors.Is(err, constructs.ErrConstruction) {
		t.Errorf("expected ErrConstruction, got %v", err)
	}
}

func TestManual(t *testing.T) {
	ctrl, err := NewManual(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SetControl(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Nudge(-1, 0.5); err != nil {
		t.Fatal(err)
	}
	u, _ := ctrl.Compute(pose(0), 0)
	if !u.Equal(constructs.ControlInputFrom(1, 2.5)) {
		t.Errorf("unexpected manual control %v", u)
	}
	if err := ctrl.SetControl(1); !errors.Is(err, constructs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := ctrl.Nudge(5, 1); !errors.Is(err, constructs.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if ctrl.Size() != 2 {
		t.Errorf("expected size 2, got %d", ctrl.Size())
	}
	ctrl.Stop()
	if !ctrl.Control().Equal(constructs.ControlInputFrom(0, 0)) {
		t.Errorf("expected zero control after Stop, got %v", ctrl.Control())
	}
}

func TestPID(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 0.0)
	u, err := ctrl.Compute(pose(1.0, 0.0), 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if u.Size() != 1 {
		t.Fatalf("expected 1 control, got %d", u.Size())
	}
	if v, _ := u.At(0); v >= 0 {
		t.Error("PID should output negative control for positive error")
	}

	ctrl.Index = 5
	if _, err := ctrl.Compute(pose(1.0), 0.1); !errors.Is(err, constructs.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestPIDAngularTakesShortWay(t *testing.T) {
	ctrl := NewPID(1, 0, 0, 3)
	ctrl.Index = 2
	ctrl.Angular = true

	// From -3 the short way to +3 is through ±π, i.e. negative.
	out, err := ctrl.Output(pose(0, 0, -3), 0)
	if err != nil {
		t.Fatal(err)
	}
	if out >= 0 {
		t.Errorf("expected negative turn, got %f", out)
	}
	if math.Abs(out-(6-2*math.Pi)) > 1e-12 {
		t.Errorf("expected %f, got %f", 6-2*math.Pi, out)
	}
}

func TestPIDIntegralAndReset(t *testing.T) {
	ctrl := NewPID(0, 1, 0, 1)

	_, _ = ctrl.Output(pose(0), 0)
	out, _ := ctrl.Output(pose(0), 1)
	if math.Abs(out-1) > 1e-12 {
		t.Errorf("expected integral 1 after one second, got %f", out)
	}

	ctrl.Reset()
	ctrl.SetParam("Ki", 2)
	if ctrl.GetParams()["Ki"] != 2 {
		t.Error("SetParam did not apply")
	}
	out, _ = ctrl.Output(pose(0), 5)
	if out != 0 {
		t.Errorf("first output after reset is proportional only, got %f", out)
	}
}

func TestLinear(t *testing.T) {
	k := mat.NewDense(1, 2, []float64{1.0, 2.0})
	ctrl, err := NewLinear(k, pose(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	u, err := ctrl.Compute(pose(0, 0), 0)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := u.At(0); v != 0 {
		t.Errorf("expected zero control at target, got %f", v)
	}

	u, _ = ctrl.Compute(pose(1, 1), 0)
	if v, _ := u.At(0); v != -3 {
		t.Errorf("expected -3, got %f", v)
	}

	if _, err := ctrl.Compute(pose(1), 0); !errors.Is(err, constructs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := NewLinear(k, pose(1, 2, 3)); !errors.Is(err, constructs.ErrConstruction) {
		t.Errorf("expected ErrConstruction, got %v", err)
	}
}
