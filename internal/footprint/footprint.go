// Package footprint defines the polygonal silhouette attached to a robot and
// the default silhouettes for each built in model.
package footprint

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/geometry"
)

// Footprint is an immutable N×2 matrix of polygon vertices in the robot frame.
type Footprint struct {
	data *mat.Dense
}

// New copies an N×2 matrix (N ≥ 1) into a Footprint.
func New(data mat.Matrix) (*Footprint, error) {
	r, c := data.Dims()
	if r == 0 || c != 2 {
		return nil, errors.Wrapf(constructs.ErrConstruction, "footprint must be N×2 with N > 0, got %d×%d", r, c)
	}
	return &Footprint{data: mat.DenseCopyOf(data)}, nil
}

// FromPolygon builds a Footprint from polygon vertices.
func FromPolygon(poly geometry.Polygon) (*Footprint, error) {
	if len(poly) == 0 {
		return nil, errors.Wrap(constructs.ErrConstruction, "footprint polygon must not be empty")
	}
	d := mat.NewDense(len(poly), 2, nil)
	for i, p := range poly {
		d.Set(i, 0, p.X)
		d.Set(i, 1, p.Y)
	}
	return &Footprint{data: d}, nil
}

// Size returns the number of vertices.
func (f *Footprint) Size() int {
	r, _ := f.data.Dims()
	return r
}

// Data returns a copy of the vertex matrix.
func (f *Footprint) Data() *mat.Dense {
	return mat.DenseCopyOf(f.data)
}

// Polygon returns the vertices in the robot frame.
func (f *Footprint) Polygon() geometry.Polygon {
	n := f.Size()
	poly := make(geometry.Polygon, n)
	for i := 0; i < n; i++ {
		poly[i] = r2.Point{X: f.data.At(i, 0), Y: f.data.At(i, 1)}
	}
	return poly
}

// Transform places the footprint in the world frame at (x, y) with heading.
func (f *Footprint) Transform(x, y, heading float64) geometry.Polygon {
	return f.Polygon().Transform(heading, r2.Point{X: x, Y: y})
}
