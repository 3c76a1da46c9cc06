// Package ocr reads text written on the board using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). The ink
// layer is transparent, so images are flattened onto white before they are
// recognized.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Accuracy
//
// Handwriting recognition depends heavily on stroke width and letter size.
// Wider brushes and letters at least 20 px tall read considerably better.
//
// # Thread Safety
//
// Each call creates its own Tesseract client, so concurrent calls are safe.
package ocr
