package overlay

import (
	"errors"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrEmpty is returned when an overlay has nothing to draw.
var ErrEmpty = errors.New("overlay: nothing to draw")

// Plot builds a gonum plot of o with equal axes over the rectangle.
func (o *Overlay) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	drawn := false
	for _, l := range o.Layers {
		width := vg.Points(l.Width)
		for i, s := range l.Segments {
			line, err := plotter.NewLine(plotter.XYs{{X: s.A[0], Y: s.A[1]}, {X: s.B[0], Y: s.B[1]}})
			if err != nil {
				return nil, err
			}
			line.Color = l.Color
			line.Width = width
			p.Add(line)
			if i == 0 {
				p.Legend.Add(l.Name, line)
			}
			drawn = true
		}
		if len(l.Points) > 0 {
			xys := make(plotter.XYs, len(l.Points))
			for i, pt := range l.Points {
				xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			sc.GlyphStyle.Color = l.Color
			sc.GlyphStyle.Radius = vg.Points(2)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			p.Legend.Add(l.Name, sc)
			drawn = true
		}
	}
	if !drawn {
		return nil, ErrEmpty
	}

	p.X.Min, p.X.Max = 0, o.Width
	p.Y.Min, p.Y.Max = 0, o.Height
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// plotSize returns the canvas for a given width, keeping the aspect ratio.
func (o *Overlay) plotSize(width vg.Length) (vg.Length, vg.Length) {
	return width, vg.Length(float64(width) * o.Height / o.Width)
}

// WritePNG renders o as a PNG of the given width to w.
func WritePNG(w io.Writer, o *Overlay, width vg.Length) error {
	p, err := o.Plot()
	if err != nil {
		return err
	}
	cw, ch := o.plotSize(width)
	wt, err := p.WriterTo(cw, ch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG renders o to a file; the format follows the file extension.
func SavePNG(path string, o *Overlay, width vg.Length) error {
	p, err := o.Plot()
	if err != nil {
		return err
	}
	cw, ch := o.plotSize(width)
	return p.Save(cw, ch, path)
}
