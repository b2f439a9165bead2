package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/yyyoichi/pointlearn"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	pngWidth  = 8 * vg.Inch
	pngHeight = 6 * vg.Inch
)

func xys(points []pointlearn.Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, p := range points {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

func glyphs(points []pointlearn.Point, c color.Color, shape draw.GlyphDrawer, radius vg.Length) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys(points))
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = radius
	return s, nil
}

func writePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// ClustersPNG draws the samples colored by centroid, with every centroid as
// a larger ring.
func ClustersPNG(w io.Writer, samples []pointlearn.Point, snap pointlearn.ClusterSnapshot) error {
	members, err := groups(samples, snap)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = clusterTitle(snap)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	for i, c := range snap.Centroids {
		col := plotutil.Color(i)
		if len(members[i]) > 0 {
			s, err := glyphs(members[i], col, draw.CircleGlyph{}, vg.Points(2))
			if err != nil {
				return fmt.Errorf("cluster %d: %w", i, err)
			}
			p.Add(s)
		}
		center, err := glyphs([]pointlearn.Point{c.Position}, col, draw.RingGlyph{}, vg.Points(6))
		if err != nil {
			return fmt.Errorf("centroid %d: %w", i, err)
		}
		p.Add(center)
		p.Legend.Add(fmt.Sprintf("cluster %d (%d)", c.Label, len(c.Members)), center)
	}
	p.Legend.Top = true
	return writePNG(w, p)
}

// BoundaryPNG draws ClassA samples in red, ClassB samples in blue and the
// decision line clipped to [-span, span].
func BoundaryPNG(w io.Writer, samples []pointlearn.Sample, snap pointlearn.BoundarySnapshot, span float64) error {
	from, to, err := snap.Boundary.Segment(span)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = boundaryTitle(snap)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = -span, span
	p.Y.Min, p.Y.Max = -span, span

	a, b := byClass(samples)
	for _, set := range []struct {
		name   string
		points []pointlearn.Point
		color  color.Color
	}{
		{"class A", a, color.RGBA{R: 220, A: 255}},
		{"class B", b, color.RGBA{B: 220, A: 255}},
	} {
		if len(set.points) == 0 {
			continue
		}
		s, err := glyphs(set.points, set.color, draw.CircleGlyph{}, vg.Points(3))
		if err != nil {
			return fmt.Errorf("%s: %w", set.name, err)
		}
		p.Add(s)
		p.Legend.Add(set.name, s)
	}

	line, err := plotter.NewLine(xys([]pointlearn.Point{from, to}))
	if err != nil {
		return err
	}
	line.Width = vg.Points(1.5)
	line.Color = color.Black
	p.Add(line)
	p.Legend.Add(snap.Equation, line)
	p.Legend.Top = true
	return writePNG(w, p)
}
