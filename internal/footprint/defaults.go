package footprint

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/shrenikm/Morphac/internal/geometry"
)

const defaultAngularResolution = 0.1

// Buffers added around the nominal vehicle outline.
const (
	ackermannWidthBufferScaler  = 0.25 / 3
	ackermannWidthBuffer        = 0.2
	ackermannLengthBufferScaler = 0.25
	ackermannLengthBuffer       = 0.2

	tricycleWidthBufferScaler  = 0.2 / 3
	tricycleWidthBuffer        = 0.2
	tricycleLengthBufferScaler = 0.25
	tricycleLengthBuffer       = 0.2

	diffDriveRadiusBufferScaler = 0.25
	diffDriveRadiusBuffer       = 0.

	dubinBase   = 0.5
	dubinHeight = 0.5
)

// Both buffers scale with the vehicle length.
func carFootprint(width, length, widthScaler, widthBuf, lengthScaler, lengthBuf float64) (*Footprint, error) {
	sizeX := length + length*lengthScaler + lengthBuf
	sizeY := width + length*widthScaler + widthBuf
	radius := math.Min(width, length) / 4
	poly, err := geometry.RoundedRectangle(sizeX, sizeY, radius, 0, r2.Point{X: -length / 2}, defaultAngularResolution)
	if err != nil {
		return nil, err
	}
	return FromPolygon(poly)
}

// Ackermann returns the default footprint of an Ackermann vehicle.
func Ackermann(width, length float64) (*Footprint, error) {
	return carFootprint(width, length,
		ackermannWidthBufferScaler, ackermannWidthBuffer,
		ackermannLengthBufferScaler, ackermannLengthBuffer)
}

// Tricycle returns the default footprint of a tricycle.
func Tricycle(width, length float64) (*Footprint, error) {
	return carFootprint(width, length,
		tricycleWidthBufferScaler, tricycleWidthBuffer,
		tricycleLengthBufferScaler, tricycleLengthBuffer)
}

// DiffDrive returns a circular footprint around the wheel axis. Only the
// track width sets its size.
func DiffDrive(width float64) (*Footprint, error) {
	r := width/2 + width*diffDriveRadiusBufferScaler + diffDriveRadiusBuffer
	poly, err := geometry.Circle(r, defaultAngularResolution, r2.Point{})
	if err != nil {
		return nil, err
	}
	return FromPolygon(poly)
}

// Dubin returns a small triangle pointing along the heading.
func Dubin() (*Footprint, error) {
	return FromPolygon(geometry.Triangle(dubinBase, dubinHeight, -math.Pi/2, r2.Point{}))
}
