package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
)

// Surface is the ink layer of a sketch board.
type Surface struct {
	ink *image.RGBA
}

// NewSurface creates a blank, fully transparent surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &Surface{
		ink: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.ink.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.ink.Bounds().Dy()
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.ink.Bounds()
}

// Ink returns the live ink layer. Callers must not keep it across mutations.
func (s *Surface) Ink() *image.RGBA {
	return s.ink
}

// Clone returns a copy of the ink layer.
func (s *Surface) Clone() *image.RGBA {
	out := image.NewRGBA(s.ink.Bounds())
	copy(out.Pix, s.ink.Pix)
	return out
}

// Clear erases the whole surface.
func (s *Surface) Clear() {
	draw.Draw(s.ink, s.ink.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Replace clears the surface and draws img at the origin. Parts of img
// outside the surface are clipped.
func (s *Surface) Replace(img image.Image) {
	s.Clear()
	draw.Draw(s.ink, s.ink.Bounds(), img, img.Bounds().Min, draw.Src)
}

// EraseRect clears the given rectangle, clipped to the surface.
func (s *Surface) EraseRect(r image.Rectangle) {
	r = r.Intersect(s.ink.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.ink, r, image.Transparent, image.Point{}, draw.Src)
}

// EraseBox clears a square of the given size centred on p.
func (s *Surface) EraseBox(p detection.Point, size int) {
	half := size / 2
	x := int(math.Round(p.X))
	y := int(math.Round(p.Y))
	s.EraseRect(image.Rect(x-half, y-half, x-half+size, y-half+size))
}

// EraseDisc clears every pixel whose center lies within radius of p.
func (s *Surface) EraseDisc(p detection.Point, radius float64) {
	if radius <= 0 {
		return
	}
	r := image.Rect(
		int(math.Floor(p.X-radius)), int(math.Floor(p.Y-radius)),
		int(math.Ceil(p.X+radius))+1, int(math.Ceil(p.Y+radius))+1,
	).Intersect(s.ink.Bounds())

	sq := radius * radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := float64(x) + 0.5 - p.X
			dy := float64(y) + 0.5 - p.Y
			if dx*dx+dy*dy <= sq {
				s.ink.SetRGBA(x, y, color.RGBA{})
			}
		}
	}
}

// IsBlank reports whether no pixel carries any ink.
func (s *Surface) IsBlank() bool {
	for i := 3; i < len(s.ink.Pix); i += 4 {
		if s.ink.Pix[i] != 0 {
			return false
		}
	}
	return true
}
