// Package environment holds the occupancy grid robots move on.
package environment

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// Cell values.
const (
	Empty    = 0.
	Obstacle = -1.
)

// resolutionTolerance bounds the error allowed when checking that a map
// dimension is a whole number of cells.
const resolutionTolerance = 1e-9

// Map is a rows×cols grid of cell values. Each cell covers a square of side
// Resolution in world units. Row 0 is the top of the map (largest y).
type Map struct {
	width      float64
	height     float64
	resolution float64
	data       *mat.Dense
}

// NewMap returns an empty map. Width and height must be whole multiples of
// the resolution.
func NewMap(width, height, resolution float64) (*Map, error) {
	if width <= 0 || height <= 0 || resolution <= 0 {
		return nil, errors.Wrapf(constructs.ErrConstruction,
			"map width, height and resolution must be positive, got %g, %g, %g", width, height, resolution)
	}
	rows, ok := cellCount(height, resolution)
	if !ok {
		return nil, errors.Wrapf(constructs.ErrConstruction, "height %g is not a multiple of resolution %g", height, resolution)
	}
	cols, ok := cellCount(width, resolution)
	if !ok {
		return nil, errors.Wrapf(constructs.ErrConstruction, "width %g is not a multiple of resolution %g", width, resolution)
	}
	return &Map{
		width:      width,
		height:     height,
		resolution: resolution,
		data:       mat.NewDense(rows, cols, nil),
	}, nil
}

func cellCount(length, resolution float64) (int, bool) {
	n := math.Round(length / resolution)
	if n < 1 || math.Abs(length-n*resolution) > resolutionTolerance*math.Max(1, length) {
		return 0, false
	}
	return int(n), true
}

// MapFromData builds a map whose size follows from the grid and resolution.
func MapFromData(data mat.Matrix, resolution float64) (*Map, error) {
	if resolution <= 0 {
		return nil, errors.Wrapf(constructs.ErrConstruction, "map resolution must be positive, got %g", resolution)
	}
	r, c := data.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(constructs.ErrConstruction, "map data must not be empty")
	}
	return &Map{
		width:      float64(c) * resolution,
		height:     float64(r) * resolution,
		resolution: resolution,
		data:       mat.DenseCopyOf(data),
	}, nil
}

func (m *Map) Width() float64      { return m.width }
func (m *Map) Height() float64     { return m.height }
func (m *Map) Resolution() float64 { return m.resolution }

// Dims returns the grid size in cells.
func (m *Map) Dims() (rows, cols int) { return m.data.Dims() }

// Data returns a copy of the grid.
func (m *Map) Data() *mat.Dense { return mat.DenseCopyOf(m.data) }

// SetData replaces the grid. The new grid must have the same dimensions.
func (m *Map) SetData(data mat.Matrix) error {
	if err := m.checkDims(data); err != nil {
		return err
	}
	m.data = mat.DenseCopyOf(data)
	return nil
}

// Evolve returns a new map with the same resolution holding data. The
// receiver is not modified.
func (m *Map) Evolve(data mat.Matrix) (*Map, error) {
	if err := m.checkDims(data); err != nil {
		return nil, err
	}
	return MapFromData(data, m.resolution)
}

func (m *Map) checkDims(data mat.Matrix) error {
	r, c := data.Dims()
	rows, cols := m.data.Dims()
	if r != rows || c != cols {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "map data is %d×%d, want %d×%d", r, c, rows, cols)
	}
	return nil
}

// Cell maps a world coordinate to a grid cell. ok is false outside the map.
func (m *Map) Cell(x, y float64) (row, col int, ok bool) {
	rows, cols := m.data.Dims()
	col = int(math.Floor(x / m.resolution))
	row = rows - 1 - int(math.Floor(y/m.resolution))
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// IsObstacle reports whether the world coordinate falls on an obstacle cell.
// Points outside the map are not obstacles.
func (m *Map) IsObstacle(x, y float64) bool {
	row, col, ok := m.Cell(x, y)
	return ok && m.data.At(row, col) == Obstacle
}

// CellCenter is the world coordinate of the center of a grid cell.
func (m *Map) CellCenter(row, col int) r2.Point {
	rows, _ := m.data.Dims()
	return r2.Point{
		X: (float64(col) + 0.5) * m.resolution,
		Y: (float64(rows-1-row) + 0.5) * m.resolution,
	}
}

// AddRectangularObstacle marks every cell whose center lies inside the axis
// aligned rectangle [x0, x1]×[y0, y1].
func (m *Map) AddRectangularObstacle(x0, y0, x1, y1 float64) {
	rect := r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})
	rows, cols := m.data.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rect.ContainsPoint(m.CellCenter(r, c)) {
				m.data.Set(r, c, Obstacle)
			}
		}
	}
}

// Obstacles returns the centers of all obstacle cells.
func (m *Map) Obstacles() []r2.Point {
	var pts []r2.Point
	rows, cols := m.data.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if m.data.At(r, c) == Obstacle {
				pts = append(pts, m.CellCenter(r, c))
			}
		}
	}
	return pts
}
