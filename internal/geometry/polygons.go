package geometry

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// Polygon is an ordered list of vertices.
type Polygon []r2.Point

// Rotate returns p rotated by angle about the origin.
func Rotate(p r2.Point, angle float64) r2.Point {
	s, c := math.Sincos(angle)
	return r2.Point{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// Transform rotates every vertex by angle and then translates by center.
func (poly Polygon) Transform(angle float64, center r2.Point) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[i] = Rotate(p, angle).Add(center)
	}
	return out
}

// Bounds returns the axis aligned bounding rectangle of the polygon.
func (poly Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(poly...)
}

// Contains reports whether p lies inside the polygon (even-odd rule).
func (poly Polygon) Contains(p r2.Point) bool {
	if len(poly) < 3 || !poly.Bounds().ContainsPoint(p) {
		return false
	}
	inside := false
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func checkResolution(res float64) error {
	if res <= 0 {
		return errors.Wrapf(constructs.ErrInvalidArgument, "angular resolution must be positive, got %g", res)
	}
	return nil
}

// Arc returns points on a circle of the given radius about center, evenly
// spaced from start to end (both included). The number of points is
// |end-start| / resolution, rounded.
func Arc(start, end, radius, resolution float64, center r2.Point) (Polygon, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	n := int(math.Round(math.Abs(end-start) / resolution))
	arc := make(Polygon, n)
	for i := 0; i < n; i++ {
		a := start
		if n > 1 {
			a = start + (end-start)*float64(i)/float64(n-1)
		}
		s, c := math.Sincos(a)
		arc[i] = r2.Point{X: radius * c, Y: radius * s}.Add(center)
	}
	return arc, nil
}

// Circle returns a closed circular polygon. The vertex at 2π is omitted so
// the first and last points are distinct.
func Circle(radius, resolution float64, center r2.Point) (Polygon, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	return Arc(0, 2*math.Pi-resolution, radius, resolution, center)
}

// Rectangle returns the four corners of a sizeX×sizeY rectangle, clockwise
// from the top left, rotated by angle and moved to center.
func Rectangle(sizeX, sizeY, angle float64, center r2.Point) Polygon {
	hx, hy := sizeX/2, sizeY/2
	poly := Polygon{
		{X: -hx, Y: hy},
		{X: hx, Y: hy},
		{X: hx, Y: -hy},
		{X: -hx, Y: -hy},
	}
	return poly.Transform(angle, center)
}

// RoundedRectangle returns a rectangle whose corners are quarter arcs of the
// given radius.
func RoundedRectangle(sizeX, sizeY, radius, angle float64, center r2.Point, resolution float64) (Polygon, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	corners := Rectangle(sizeX-2*radius, sizeY-2*radius, 0, r2.Point{})
	spans := [4][2]float64{
		{math.Pi, math.Pi / 2},
		{math.Pi / 2, 0},
		{0, -math.Pi / 2},
		{-math.Pi / 2, -math.Pi},
	}

	var poly Polygon
	for i, span := range spans {
		arc, err := Arc(span[0], span[1], radius, resolution, corners[i])
		if err != nil {
			return nil, err
		}
		poly = append(poly, arc...)
	}
	return poly.Transform(angle, center), nil
}

// Triangle returns an isosceles triangle with its apex on +Y before rotation.
func Triangle(base, height, angle float64, center r2.Point) Polygon {
	poly := Polygon{
		{X: 0, Y: height / 2},
		{X: base / 2, Y: -height / 2},
		{X: -base / 2, Y: -height / 2},
	}
	return poly.Transform(angle, center)
}
