// Package export renders the board into shareable files.
//
// Exports are flattened onto an opaque background first, since the ink
// layer is transparent wherever nothing was drawn.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat maps a format name to a Format. An empty name means PNG.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (valid: png, pdf)", name)
	}
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Flatten draws base and then each layer, in order, over a solid background
// the size of base.
func Flatten(base image.Image, bg color.Color, layers ...image.Image) *image.NRGBA {
	b := base.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), bg)
	out = imaging.Overlay(out, base, image.Point{}, 1.0)
	for _, l := range layers {
		out = imaging.Overlay(out, l, image.Point{}, 1.0)
	}
	return out
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Base64PNG encodes img as a base64 PNG string.
func Base64PNG(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// WritePDF writes img as a single-page PDF whose page matches the image
// size, one point per pixel.
func WritePDF(w io.Writer, img image.Image, title string) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("sketchpad-mcp", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("board", opts, bytes.NewReader(data))
	pdf.ImageOptions("board", 0, 0, width, height, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// Save writes img to path in the given format, creating parent directories
// as needed.
func Save(img image.Image, path string, format Format, title string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch format {
	case FormatPNG:
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	case FormatPDF:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		if err := WritePDF(f, img, title); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
