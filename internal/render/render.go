// Package render draws board frames to PNG images.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/pdrpinto/gridastar"
)

// Palette maps cell hints to fill colours.
type Palette struct {
	Background  color.Color
	Cell        color.Color
	Border      color.Color
	Source      color.Color
	Destination color.Color
	Obstacle    color.Color
	Frontier    color.Color
	Visited     color.Color
	Path        color.Color
	PathWidth   float64
}

// DefaultPalette is the visualiser's colour scheme.
var DefaultPalette = Palette{
	Background:  color.White,
	Cell:        color.White,
	Border:      color.NRGBA{66, 148, 255, 90},
	Source:      color.NRGBA{87, 50, 168, 255},
	Destination: color.NRGBA{140, 68, 20, 255},
	Obstacle:    color.NRGBA{128, 128, 128, 255},
	Frontier:    color.NRGBA{45, 196, 129, 255},
	Visited:     color.NRGBA{255, 0, 0, 50},
	Path:        color.NRGBA{255, 0, 200, 255},
	PathWidth:   4,
}

// Fill returns the colour for a hint. Unknown hints use the plain cell colour.
func (p Palette) Fill(h gridastar.Hint) color.Color {
	switch h {
	case gridastar.HintSource:
		return p.Source
	case gridastar.HintDestination:
		return p.Destination
	case gridastar.HintObstacle:
		return p.Obstacle
	case gridastar.HintFrontier:
		return p.Frontier
	case gridastar.HintVisited:
		return p.Visited
	}
	return p.Cell
}

// Renderer draws frames with a fixed palette.
type Renderer struct {
	palette Palette
}

func New(palette Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Image draws the frame and returns the resulting image.
func (r *Renderer) Image(frame gridastar.Frame) image.Image {
	return r.draw(frame).Image()
}

// WritePNG encodes the frame as PNG to w.
func (r *Renderer) WritePNG(w io.Writer, frame gridastar.Frame) error {
	return r.draw(frame).EncodePNG(w)
}

// SavePNG writes the frame as a PNG file at path.
func (r *Renderer) SavePNG(path string, frame gridastar.Frame) error {
	return r.draw(frame).SavePNG(path)
}

func (r *Renderer) draw(frame gridastar.Frame) *gg.Context {
	size := frame.Resolution
	width := int(math.Ceil(float64(frame.Cols) * size))
	height := int(math.Ceil(float64(frame.Rows) * size))

	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(r.palette.Background)
	dc.Clear()

	// Roles go on top of the path, everything else below it.
	var roles []gridastar.Coord
	for i := 0; i < frame.Cols; i++ {
		for j := 0; j < frame.Rows; j++ {
			c := gridastar.Coord{I: i, J: j}
			hint := frame.HintAt(c)
			if hint == gridastar.HintSource || hint == gridastar.HintDestination {
				roles = append(roles, c)
				continue
			}
			r.cell(dc, c, size, r.palette.Cell)
			if hint != gridastar.HintDefault {
				r.cell(dc, c, size, r.palette.Fill(hint))
			}
		}
	}

	if line := frame.PathLine(); len(line) > 1 {
		dc.SetColor(r.palette.Path)
		dc.SetLineWidth(r.palette.PathWidth)
		dc.MoveTo(line[0].X(), line[0].Y())
		for _, p := range line[1:] {
			dc.LineTo(p.X(), p.Y())
		}
		dc.Stroke()
	}

	for _, c := range roles {
		r.cell(dc, c, size, r.palette.Fill(frame.HintAt(c)))
	}
	return dc
}

func (r *Renderer) cell(dc *gg.Context, c gridastar.Coord, size float64, fill color.Color) {
	dc.DrawRectangle(float64(c.I)*size, float64(c.J)*size, size, size)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(r.palette.Border)
	dc.SetLineWidth(1)
	dc.Stroke()
}
