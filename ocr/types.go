// Package ocr defines the OCR collaborator contract and converts
// heterogeneous engine payloads into a uniform, deduplicated list of text
// spans with pixel-coordinate bounding boxes.
package ocr

import (
	"context"
	"errors"
	"image"
)

// BBox is an axis-aligned box in pixel coordinates, origin upper-left.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Center returns the box midpoint.
func (b BBox) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Union returns the minimal box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: min(b.X0, other.X0),
		Y0: min(b.Y0, other.Y0),
		X1: max(b.X1, other.X1),
		Y1: max(b.Y1, other.Y1),
	}
}

// Span is a located, confidence-scored text fragment recognized on one image.
// Confidence is nil when the engine did not report a score.
type Span struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
	BBox       BBox     `json:"bbox"`
	ImageIndex int      `json:"image_index"`
}

// Line is a recognized text line without geometry.
type Line struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Options are the per-call flags accepted by every engine.
type Options struct {
	// OrientationClassify enables whole-document orientation detection.
	OrientationClassify bool
	// Unwarp enables document de-warping before recognition.
	Unwarp bool
	// TextlineOrientation enables per-line orientation correction.
	TextlineOrientation bool
}

// DefaultOptions enables all correction passes.
func DefaultOptions() Options {
	return Options{OrientationClassify: true, Unwarp: true, TextlineOrientation: true}
}

// Engine is the OCR collaborator contract: one raster image in, one
// engine-specific payload out. Implementations are not required to be safe
// for concurrent use; wrap with Serialize when sharing across goroutines.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image, opts Options) (Payload, error)
}

// ErrNoTextDetected reports that an extraction attempt, including the
// enhanced-image fallback passes, produced zero spans.
var ErrNoTextDetected = errors.New("ocr: no text detected")
