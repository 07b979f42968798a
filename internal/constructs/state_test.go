package constructs

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/onsi/gomega"
)

func TestNewState(t *testing.T) {
	g := NewWithT(t)

	s, err := NewState(3, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Size()).To(Equal(5))
	g.Expect(s.PoseSize()).To(Equal(3))
	g.Expect(s.VelocitySize()).To(Equal(2))
	g.Expect(s.IsPartial()).To(BeFalse())

	_, err = NewState(-1, 2)
	g.Expect(errors.Is(err, ErrConstruction)).To(BeTrue())

	_, err = StateFromData([]float64{1, 2, 3}, 2, 2)
	g.Expect(errors.Is(err, ErrConstruction)).To(BeTrue())
}

func TestStatePoseIsView(t *testing.T) {
	s := StateFrom(PoseFrom(1, 2, 3), VelocityFrom(4, 5))

	p, err := s.Pose()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Set(0, 10); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.At(0); got != 10 {
		t.Errorf("write through pose view not visible in state, got %f", got)
	}

	v, err := s.Velocity()
	if err != nil {
		t.Fatal(err)
	}
	_ = v.Set(-1, 50)
	if got, _ := s.At(-1); got != 50 {
		t.Errorf("write through velocity view not visible in state, got %f", got)
	}

	// Arithmetic on a view allocates.
	scaled := p.Scale(2)
	_ = scaled.Set(1, -1)
	if got, _ := s.At(1); got != 2 {
		t.Errorf("scaled pose must not alias the state, got %f", got)
	}
}

func TestStateSetPoseValidatesSize(t *testing.T) {
	s := StateFrom(PoseFrom(1, 2, 3), VelocityFrom(4, 5))

	if err := s.SetPose(PoseFrom(7, 8, 9)); err != nil {
		t.Fatal(err)
	}
	if !s.Equal(StateFrom(PoseFrom(7, 8, 9), VelocityFrom(4, 5))) {
		t.Errorf("unexpected state %v", s)
	}
	if err := s.SetPose(PoseFrom(1, 2)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := s.SetVelocity(VelocityFrom(1, 2, 3)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestPartialState(t *testing.T) {
	g := NewWithT(t)

	poseOnly := StateFrom(PoseFrom(1, 2), VelocityFrom())
	g.Expect(poseOnly.IsPartial()).To(BeTrue())
	_, err := poseOnly.Velocity()
	g.Expect(errors.Is(err, ErrDomain)).To(BeTrue())
	g.Expect(errors.Is(err, ErrDimensionMismatch)).To(BeFalse())
	g.Expect(errors.Is(poseOnly.SetVelocity(VelocityFrom()), ErrDomain)).To(BeTrue())

	velOnly := StateFrom(PoseFrom(), VelocityFrom(3, 4))
	_, err = velOnly.Pose()
	g.Expect(errors.Is(err, ErrDomain)).To(BeTrue())

	v, err := velOnly.Velocity()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v.Data()).To(Equal([]float64{3, 4}))

	sum, err := velOnly.Add(velOnly)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sum.Data()).To(Equal([]float64{6, 8}))

	like := velOnly.CreateLike()
	g.Expect(like.PoseSize()).To(Equal(0))
	g.Expect(like.VelocitySize()).To(Equal(2))
}

func TestStateAlgebraProperties(t *testing.T) {
	states := []State{
		StateFrom(PoseFrom(1, -2, 3), VelocityFrom(0.5)),
		StateFrom(PoseFrom(), VelocityFrom(4, 5, 6)),
		StateFrom(PoseFrom(7, 8), VelocityFrom()),
	}

	for _, s := range states {
		zero := s.CreateLike()

		sum, err := s.Add(zero)
		if err != nil {
			t.Fatal(err)
		}
		if !sum.Equal(s) {
			t.Errorf("s + zero != s for %v", s)
		}
		if !s.Scale(0).Equal(zero) {
			t.Errorf("s * 0 != zero for %v", s)
		}

		diff, err := s.Sub(s)
		if err != nil {
			t.Fatal(err)
		}
		if !diff.Equal(zero) {
			t.Errorf("s - s != zero for %v", s)
		}
	}
}

func TestStateShapeMismatch(t *testing.T) {
	a := StateFrom(PoseFrom(1, 2), VelocityFrom(3))
	b := StateFrom(PoseFrom(1), VelocityFrom(2, 3))

	if _, err := a.Add(b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := a.Sub(b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := a.AddScaled(2, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if a.Equal(b) {
		t.Error("states with different partitions must not compare equal")
	}
}

func TestStateAddScaled(t *testing.T) {
	s := StateFrom(PoseFrom(1, 2), VelocityFrom(3))
	d := StateFrom(PoseFrom(1, 1), VelocityFrom(-1))

	got, err := s.AddScaled(0.5, d)
	if err != nil {
		t.Fatal(err)
	}
	want := StateFrom(PoseFrom(1.5, 2.5), VelocityFrom(2.5))
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !s.Equal(StateFrom(PoseFrom(1, 2), VelocityFrom(3))) {
		t.Error("AddScaled must not modify the receiver")
	}
}
