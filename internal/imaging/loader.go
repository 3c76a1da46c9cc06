package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Open loads an image file from disk.
//
// Supported formats are those registered with disintegration/imaging: PNG,
// JPEG, GIF, TIFF and BMP.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}
