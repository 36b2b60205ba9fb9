package overlay

import (
	"image/color"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/recon"
	"github.com/katalvlaran/kvis/scene"
)

// Default layer colours.
var (
	FrameColor   = color.RGBA{A: 255}
	WallColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	CandColor    = color.RGBA{R: 60, G: 120, B: 220, A: 255}
	VertexColor  = color.RGBA{R: 20, G: 160, B: 60, A: 255}
	ResultColor  = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	defaultWidth = 1.0
)

// Layer is one drawable group.
type Layer struct {
	Name     string
	Segments []geometry.Segment
	Points   []geometry.Point
	Color    color.Color
	// Width is the stroke width in points.
	Width float64
}

// Overlay is a width×height drawing.
type Overlay struct {
	Width, Height float64
	Title         string
	Layers        []Layer
}

// New returns an empty overlay.
func New(width, height float64, title string) *Overlay {
	return &Overlay{Width: width, Height: height, Title: title}
}

// AddSegments appends a segment layer.
func (o *Overlay) AddSegments(name string, c color.Color, segs []geometry.Segment) *Overlay {
	o.Layers = append(o.Layers, Layer{Name: name, Segments: segs, Color: c, Width: defaultWidth})
	return o
}

// AddPoints appends a point layer.
func (o *Overlay) AddPoints(name string, c color.Color, pts []geometry.Point) *Overlay {
	o.Layers = append(o.Layers, Layer{Name: name, Points: pts, Color: c, Width: defaultWidth})
	return o
}

// FromResult stacks a scene and the reconstruction of it. Layers without
// content are left out.
func FromResult(sc scene.Scene, res *recon.Result) *Overlay {
	o := New(sc.Width, sc.Height, "k-visibility reconstruction")
	o.AddSegments("frame", FrameColor, sc.Frame)
	if len(sc.Walls) > 0 {
		o.AddSegments("walls", WallColor, sc.Walls)
	}
	if res == nil {
		return o
	}

	rect := geometry.Rect(sc.Width, sc.Height)
	colors := Palette(len(res.KeyPairs))
	for i, fp := range res.KeyPairs {
		var rs []geometry.Segment
		for _, p := range fp.Pairs {
			for _, r := range []geometry.Segment{p.RayA, p.RayB} {
				if c, ok := geometry.ClipLine(r.A, r.B, rect); ok {
					rs = append(rs, c)
				}
			}
		}
		if len(rs) > 0 {
			o.Layers = append(o.Layers, Layer{Name: rayLayerName(fp.Angle), Segments: rs, Color: colors[i], Width: 0.3})
		}
	}

	if len(res.Candidates) > 0 {
		pts := make([]geometry.Point, len(res.Candidates))
		for i, c := range res.Candidates {
			pts[i] = c.Point
		}
		o.AddPoints("candidates", CandColor, pts)
	}
	if len(res.Vertices) > 0 {
		o.AddPoints("vertices", VertexColor, res.Points())
	}
	if len(res.Segments) > 0 {
		o.Layers = append(o.Layers, Layer{Name: "reconstructed", Segments: res.Segments, Color: ResultColor, Width: 2})
	}

	return o
}
