package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var (
	// ErrEmptySnapshot indicates a snapshot without encoded data.
	ErrEmptySnapshot = errors.New("snapshot has no data")

	// ErrSnapshotSize indicates a snapshot whose dimensions differ from the
	// surface it is restored into.
	ErrSnapshotSize = errors.New("snapshot size does not match surface")

	// ErrSnapshotFormat indicates snapshot data that is a valid image but
	// not a layout the surface was encoded in.
	ErrSnapshotFormat = errors.New("unexpected snapshot pixel format")
)

// Snapshot is a self-contained PNG encoding of the ink layer at one instant.
//
// The ink layer's premultiplied bytes are stored as they are, framed as
// NRGBA, so a restore reproduces the layer bit for bit. The PNG is only
// meaningful to DecodeSnapshot; other viewers see unpremultiplied colors
// darkened on translucent pixels.
type Snapshot struct {
	// ID uniquely identifies the snapshot.
	ID string `json:"id"`

	// Width and Height are the encoded image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Data is the PNG-encoded ink layer.
	Data []byte `json:"-"`

	// CreatedAt records when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot encodes the ink layer. The grid and any other presentation layer
// are not part of it.
func (s *Surface) Snapshot() (Snapshot, error) {
	raw := &image.NRGBA{Pix: s.ink.Pix, Stride: s.ink.Stride, Rect: s.ink.Rect}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, raw, imaging.PNG); err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return Snapshot{
		ID:        uuid.NewString(),
		Width:     s.Width(),
		Height:    s.Height(),
		Data:      buf.Bytes(),
		CreatedAt: time.Now(),
	}, nil
}

// DecodeSnapshot materializes a snapshot back into an ink layer with the
// exact bytes it was taken from.
//
// The context is checked before decoding starts; a cancelled context is
// reported as a decode failure. Decoding itself is a bounded, in-memory
// operation.
//
// # Errors
//
//   - ErrEmptySnapshot if the snapshot carries no data
//   - a wrapped decode error if the data is not a valid image
//   - ErrSnapshotSize if the decoded size disagrees with the recorded size
//   - ErrSnapshotFormat if the PNG is not 8-bit RGB or RGBA
func DecodeSnapshot(ctx context.Context, snap Snapshot) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", snap.ID, err)
	}
	if len(snap.Data) == 0 {
		return nil, ErrEmptySnapshot
	}

	img, err := imaging.Decode(bytes.NewReader(snap.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", snap.ID, err)
	}

	b := img.Bounds()
	if b.Dx() != snap.Width || b.Dy() != snap.Height {
		return nil, fmt.Errorf("%w: decoded %dx%d, recorded %dx%d",
			ErrSnapshotSize, b.Dx(), b.Dy(), snap.Width, snap.Height)
	}

	// Opaque layers are written as RGB and decode as *image.RGBA; alpha is
	// 255 everywhere then, so both forms carry the premultiplied bytes.
	var pix []byte
	var stride int
	switch m := img.(type) {
	case *image.NRGBA:
		pix, stride = m.Pix, m.Stride
	case *image.RGBA:
		pix, stride = m.Pix, m.Stride
	default:
		return nil, fmt.Errorf("%w: snapshot %s decoded as %T", ErrSnapshotFormat, snap.ID, img)
	}

	out := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	for y := 0; y < snap.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+4*snap.Width], pix[y*stride:y*stride+4*snap.Width])
	}
	return out, nil
}

// Restore replaces the ink layer with the content of snap.
//
// The snapshot is fully decoded and validated before the surface is touched;
// on any error the surface is left unchanged.
func (s *Surface) Restore(ctx context.Context, snap Snapshot) error {
	img, err := DecodeSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	if snap.Width != s.Width() || snap.Height != s.Height() {
		return fmt.Errorf("%w: snapshot %dx%d, surface %dx%d",
			ErrSnapshotSize, snap.Width, snap.Height, s.Width(), s.Height())
	}
	copy(s.ink.Pix, img.Pix)
	return nil
}
