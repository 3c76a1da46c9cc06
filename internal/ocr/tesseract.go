package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a recognized word with its location and confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the word's bounding box in board coordinates.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text read from the board.
type OCRResult struct {
	// FullText is all recognized text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// Regions lists individual words. It may be empty when word boxes are
	// unavailable; FullText is still set.
	Regions []TextRegion `json:"regions"`
}

// Flatten composes img onto an opaque white page. Ink layers are
// transparent where nothing was drawn, which Tesseract reads as black.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	page := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(page, img, image.Point{}, 1.0)
}

// Recognize reads handwritten or drawn text from an image.
//
// The image is flattened onto white and handed to Tesseract in memory as
// PNG. language is a Tesseract language code such as "eng"; empty means
// DefaultLanguage. The matching traineddata must be installed.
//
// If word-level boxes cannot be extracted the full text is still returned
// with empty Regions.
func Recognize(img image.Image, language string) (*OCRResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Flatten(img), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{FullText: text, Regions: regions}, nil
}

// RecognizeRegion runs Recognize on the part of img inside r. Word boxes
// are shifted back into img coordinates.
//
// # Errors
//
// Returns an error when r does not overlap img.
func RecognizeRegion(img image.Image, r image.Rectangle, language string) (*OCRResult, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("region lies outside the image")
	}

	result, err := Recognize(imaging.Crop(img, r), language)
	if err != nil {
		return nil, err
	}

	offset(result, r.Min)
	return result, nil
}

func offset(result *OCRResult, p image.Point) {
	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += p.X
		result.Regions[i].Bounds.Y1 += p.Y
		result.Regions[i].Bounds.X2 += p.X
		result.Regions[i].Bounds.Y2 += p.Y
	}
}
