package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
)

// DefaultGridSpacing is the distance between grid lines in pixels.
const DefaultGridSpacing = 20

// DefaultGridColor is translucent black, faint enough not to compete with ink.
var DefaultGridColor = color.NRGBA{A: 26}

// Grid is a presentation-only overlay of evenly spaced lines.
//
// The rendered layer is cached per size and rebuilt only when the requested
// size changes.
type Grid struct {
	spacing int
	color   color.NRGBA
	layer   *image.NRGBA
}

// NewGrid creates a grid with the given line spacing and color.
func NewGrid(spacing int, c color.NRGBA) (*Grid, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("invalid grid spacing %d", spacing)
	}
	return &Grid{spacing: spacing, color: c}, nil
}

// Spacing returns the distance between grid lines.
func (g *Grid) Spacing() int {
	return g.spacing
}

// Color returns the grid line color.
func (g *Grid) Color() color.NRGBA {
	return g.color
}

// Layer returns the grid lines alone on a transparent layer of the given
// size. Lines sit on every multiple of the spacing, starting at 0.
func (g *Grid) Layer(width, height int) *image.NRGBA {
	if g.layer != nil && g.layer.Bounds().Dx() == width && g.layer.Bounds().Dy() == height {
		return g.layer
	}

	layer := image.NewNRGBA(image.Rect(0, 0, width, height))
	line := &image.Uniform{C: g.color}

	for x := 0; x < width; x += g.spacing {
		draw.Draw(layer, image.Rect(x, 0, x+1, height), line, image.Point{}, draw.Src)
	}
	for y := 0; y < height; y += g.spacing {
		draw.Draw(layer, image.Rect(0, y, width, y+1), line, image.Point{}, draw.Src)
	}

	g.layer = layer
	return layer
}

// Apply composes the grid over base and returns the result. base is not
// modified.
func (g *Grid) Apply(base image.Image) *image.RGBA {
	b := base.Bounds()
	return blend.Normal(base, g.Layer(b.Dx(), b.Dy()))
}
