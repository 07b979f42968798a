// Package export writes recorded runs as images and JSON.
package export

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/environment"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/sim"
)

const defaultSize = 6 * vg.Inch

type PlotOptions struct {
	Title string
	// Size is the side of the square image. Zero means 6 inches.
	Size vg.Length
	// Map fixes the axes to the map extents and draws its obstacles.
	Map *environment.Map
	// Footprints are drawn at each robot's final pose.
	Footprints map[int]*footprint.Footprint
}

// PathPlot draws the (x, y) path of every robot in res.
func PathPlot(res *sim.Result, opts PlotOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	if m := opts.Map; m != nil {
		p.X.Min, p.X.Max = 0, m.Width()
		p.Y.Min, p.Y.Max = 0, m.Height()
		if obstacles := m.Obstacles(); len(obstacles) > 0 {
			pts := make(plotter.XYs, len(obstacles))
			for i, o := range obstacles {
				pts[i].X, pts[i].Y = o.X, o.Y
			}
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, errors.Wrap(err, "obstacles")
			}
			sc.GlyphStyle.Shape = draw.BoxGlyph{}
			sc.GlyphStyle.Color = color.Gray{Y: 96}
			sc.GlyphStyle.Radius = vg.Points(1.5)
			p.Add(sc)
		}
	}

	for i, uid := range res.UIDs() {
		traj := res.Trajectories[uid]
		if traj.PoseSize() < 2 {
			continue
		}
		pts, err := pathXYs(traj)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "robot %d path", uid)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("robot %d", uid), line)

		if fp := opts.Footprints[uid]; fp != nil {
			outline, err := footprintLine(traj, fp)
			if err != nil {
				return nil, errors.Wrapf(err, "robot %d footprint", uid)
			}
			outline.LineStyle.Color = plotutil.Color(i)
			outline.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
			p.Add(outline)
		}
	}
	return p, nil
}

func pathXYs(traj *constructs.Trajectory) (plotter.XYs, error) {
	pts := make(plotter.XYs, traj.Size())
	for k := range pts {
		s, err := traj.At(k)
		if err != nil {
			return nil, err
		}
		pts[k].X, _ = s.At(0)
		pts[k].Y, _ = s.At(1)
	}
	return pts, nil
}

func footprintLine(traj *constructs.Trajectory, fp *footprint.Footprint) (*plotter.Line, error) {
	final, err := traj.At(-1)
	if err != nil {
		return nil, err
	}
	d := final.Data()
	heading := 0.0
	if final.PoseSize() >= 3 {
		heading = d[2]
	}
	poly := fp.Transform(d[0], d[1], heading)
	pts := make(plotter.XYs, len(poly)+1)
	for i, v := range poly {
		pts[i].X, pts[i].Y = v.X, v.Y
	}
	pts[len(poly)] = pts[0]
	return plotter.NewLine(pts)
}

// SavePlot renders PathPlot to path. The format follows the extension
// (png, svg, pdf, eps, jpg, tiff).
func SavePlot(path string, res *sim.Result, opts PlotOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return errors.Wrapf(constructs.ErrInvalidArgument, "unsupported image format %q", filepath.Ext(path))
	}
	p, err := PathPlot(res, opts)
	if err != nil {
		return err
	}
	size := opts.Size
	if size == 0 {
		size = defaultSize
	}
	return errors.Wrap(p.Save(size, size, path), "saving plot")
}
