package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

func near(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestArc(t *testing.T) {
	arc, err := Arc(0, math.Pi/2, 2, math.Pi/8, r2.Point{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(arc) != 4 {
		t.Fatalf("expected 4 points, got %d", len(arc))
	}
	if !near(arc[0], r2.Point{X: 3, Y: 1}) {
		t.Errorf("unexpected first point %v", arc[0])
	}
	if !near(arc[3], r2.Point{X: 1, Y: 3}) {
		t.Errorf("unexpected last point %v", arc[3])
	}
	for _, p := range arc {
		if d := p.Sub(r2.Point{X: 1, Y: 1}).Norm(); math.Abs(d-2) > 1e-9 {
			t.Errorf("point %v not on the arc, distance %f", p, d)
		}
	}

	if _, err := Arc(0, 1, 1, 0, r2.Point{}); !errors.Is(err, constructs.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCircle(t *testing.T) {
	res := 0.1
	c, err := Circle(1.5, res, r2.Point{})
	if err != nil {
		t.Fatal(err)
	}
	want := int(math.Round((2*math.Pi - res) / res))
	if len(c) != want {
		t.Errorf("expected %d points, got %d", want, len(c))
	}
	if near(c[0], c[len(c)-1]) {
		t.Error("first and last points must differ")
	}
}

func TestRectangle(t *testing.T) {
	rect := Rectangle(4, 2, 0, r2.Point{})
	want := Polygon{{X: -2, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: -1}}
	for i := range want {
		if !near(rect[i], want[i]) {
			t.Errorf("corner %d: got %v, want %v", i, rect[i], want[i])
		}
	}

	rotated := Rectangle(4, 2, math.Pi/2, r2.Point{X: 10, Y: 0})
	if !near(rotated[0], r2.Point{X: 9, Y: -2}) {
		t.Errorf("unexpected rotated corner %v", rotated[0])
	}
}

func TestRoundedRectangleBounds(t *testing.T) {
	poly, err := RoundedRectangle(4, 2, 0.5, 0, r2.Point{}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	b := poly.Bounds()
	if math.Abs(b.X.Hi-2) > 1e-9 || math.Abs(b.X.Lo+2) > 1e-9 {
		t.Errorf("unexpected x bounds %v", b.X)
	}
	if math.Abs(b.Y.Hi-1) > 1e-9 || math.Abs(b.Y.Lo+1) > 1e-9 {
		t.Errorf("unexpected y bounds %v", b.Y)
	}
	if !poly.Contains(r2.Point{}) {
		t.Error("center must be inside")
	}
	if poly.Contains(r2.Point{X: 1.95, Y: 0.95}) {
		t.Error("cut corner must be outside")
	}
}

func TestTriangle(t *testing.T) {
	tri := Triangle(1, 2, 0, r2.Point{})
	if !near(tri[0], r2.Point{X: 0, Y: 1}) {
		t.Errorf("unexpected apex %v", tri[0])
	}

	// Rotated by -π/2 the apex points along +X.
	tri = Triangle(1, 2, -math.Pi/2, r2.Point{})
	if !near(tri[0], r2.Point{X: 1, Y: 0}) {
		t.Errorf("unexpected rotated apex %v", tri[0])
	}
	if !tri.Contains(r2.Point{X: 0.2, Y: 0}) {
		t.Error("expected point inside triangle")
	}
	if tri.Contains(r2.Point{X: -2, Y: 0}) {
		t.Error("expected point outside triangle")
	}
}
