// Package tesseract provides a gosseract-backed OCR engine.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/jkassemi/ttb-labeling/ocr"
)

// Engine implements ocr.Engine using the gosseract client. Clients are
// created per call; the package-level Tesseract API is not safe for
// concurrent use, so callers sharing one Engine should wrap it with
// ocr.Serialize.
type Engine struct {
	clientFactory func() *gosseract.Client
	languages     []string
}

// New constructs a Tesseract-backed OCR engine.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{clientFactory: gosseract.NewClient, languages: languages}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs line-level recognition and returns the pair-list payload
// shape: one (box, (text, score)) entry per recognized line.
func (e *Engine) Recognize(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Payload, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(e.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	psm := gosseract.PSM_AUTO
	if opts.OrientationClassify {
		psm = gosseract.PSM_AUTO_OSD
	}
	if err := c.SetPageSegMode(psm); err != nil {
		return nil, fmt.Errorf("set page segmentation: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}
	pairs := make(ocr.Pairs, 0, len(boxes))
	for _, b := range boxes {
		score := b.Confidence / 100.0
		pairs = append(pairs, ocr.PairLine{
			Polygon: []float64{
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			},
			Text:  b.Word,
			Score: &score,
		})
	}
	return pairs, nil
}
