package viz

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"

	"github.com/shrenikm/Morphac/internal/geometry"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Width×Height grid of braille characters, giving
// (2·Width)×(4·Height) addressable pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels is the canvas size in pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on pixel (x, y). Pixels off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world rectangle [0, Width]×[0, Height] onto a canvas with
// y pointing up. The scale is uniform so shapes keep their aspect.
type Viewport struct {
	Width, Height float64
	canvas        *Canvas
	scale         float64
}

func NewViewport(c *Canvas, width, height float64) *Viewport {
	pw, ph := c.Pixels()
	scale := math.Min(float64(pw-1)/width, float64(ph-1)/height)
	return &Viewport{Width: width, Height: height, canvas: c, scale: scale}
}

func (v *Viewport) ToPixel(p r2.Point) (int, int) {
	_, ph := v.canvas.Pixels()
	x := int(math.Round(p.X * v.scale))
	y := ph - 1 - int(math.Round(p.Y*v.scale))
	return x, y
}

func (v *Viewport) Point(p r2.Point) {
	v.canvas.Set(v.ToPixel(p))
}

func (v *Viewport) Line(a, b r2.Point) {
	x0, y0 := v.ToPixel(a)
	x1, y1 := v.ToPixel(b)
	v.canvas.DrawLine(x0, y0, x1, y1)
}

// Polygon draws the closed outline of poly.
func (v *Viewport) Polygon(poly geometry.Polygon) {
	for i := range poly {
		v.Line(poly[i], poly[(i+1)%len(poly)])
	}
}

// Border draws the edge of the world rectangle.
func (v *Viewport) Border() {
	v.Polygon(geometry.Polygon{{X: 0, Y: 0}, {X: v.Width, Y: 0}, {X: v.Width, Y: v.Height}, {X: 0, Y: v.Height}})
}
