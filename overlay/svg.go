package overlay

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/jbeda/geom"

	"github.com/katalvlaran/kvis/geometry"
)

// svgMargin is the blank border around the rectangle, as a fraction of its
// larger side.
const svgMargin = 0.05

// WriteSVG writes o as an SVG drawing. The y axis points up, as in
// building coordinates.
func WriteSVG(w io.Writer, o *Overlay) error {
	bw := bufio.NewWriter(w)
	svg := &svgWriter{w: bw, height: o.Height}

	view := o.viewBox()
	unit := math.Max(o.Width, o.Height) / 500
	svg.printf("<?xml version=\"1.0\"?>\n<svg version=\"1.1\" viewBox=\"%f %f %f %f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		view.Min.X, view.Min.Y, view.Width(), view.Height())
	if o.Title != "" {
		svg.printf("<title>%s</title>\n", o.Title)
	}
	for _, l := range o.Layers {
		svg.printf("<g id=%q stroke='%s' fill='%s' stroke-width='%f'>\n", l.Name, hexColor(l.Color), hexColor(l.Color), l.Width*unit)
		for _, s := range l.Segments {
			svg.line(svg.coord(s.A), svg.coord(s.B))
		}
		for _, p := range l.Points {
			svg.circle(svg.coord(p), 2*unit)
		}
		svg.printf("</g>\n")
	}
	svg.printf("</svg>\n")

	if svg.err != nil {
		return svg.err
	}
	return bw.Flush()
}

// viewBox covers the rectangle and every drawn coordinate, plus a margin.
func (o *Overlay) viewBox() geom.Rect {
	flip := func(p geometry.Point) geom.Coord { return geom.Coord{X: p[0], Y: o.Height - p[1]} }
	r := geom.Rect{Min: geom.Coord{}, Max: geom.Coord{X: o.Width, Y: o.Height}}
	for _, l := range o.Layers {
		for _, s := range l.Segments {
			r.ExpandToContainCoord(flip(s.A))
			r.ExpandToContainCoord(flip(s.B))
		}
		for _, p := range l.Points {
			r.ExpandToContainCoord(flip(p))
		}
	}
	m := svgMargin * math.Max(o.Width, o.Height)
	r.Min.X -= m
	r.Min.Y -= m
	r.Max.X += m
	r.Max.Y += m
	return r
}

type svgWriter struct {
	w      io.Writer
	height float64
	err    error
}

func (s *svgWriter) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) coord(p geometry.Point) geom.Coord {
	return geom.Coord{X: p[0], Y: s.height - p[1]}
}

func (s *svgWriter) line(a, b geom.Coord) {
	s.printf("<line x1='%f' y1='%f' x2='%f' y2='%f'/>\n", a.X, a.Y, b.X, b.Y)
}

func (s *svgWriter) circle(c geom.Coord, r float64) {
	s.printf("<circle cx='%f' cy='%f' r='%f'/>\n", c.X, c.Y, r)
}
