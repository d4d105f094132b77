package ocr

import (
	"context"
	"fmt"
	"image"
)

// ExtractSpans runs the engine over every application image and returns the
// normalized spans. When a plain pass over all images detects no text, one
// enhanced pass re-runs the engine on geometry-safe image variants. Zero
// spans after the fallback is fatal for the extraction.
func ExtractSpans(ctx context.Context, engine Engine, images []image.Image, opts Options) ([]Span, error) {
	spans, err := collectSpans(ctx, engine, images, opts, false)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		spans, err = collectSpans(ctx, engine, images, opts, true)
		if err != nil {
			return nil, err
		}
	}
	if len(spans) == 0 {
		return nil, ErrNoTextDetected
	}
	return spans, nil
}

func collectSpans(ctx context.Context, engine Engine, images []image.Image, opts Options, enhance bool) ([]Span, error) {
	var spans []Span
	for index, img := range images {
		// Enhanced passes stay geometry-safe: spans must keep their
		// original pixel coordinates.
		for _, variant := range Variants(img, enhance, true) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			payload, err := engine.Recognize(ctx, variant, opts)
			if err != nil {
				return nil, fmt.Errorf("recognize image %d: %w", index, err)
			}
			spans = append(spans, SpansFromPayload(DecodePayload(payload), index)...)
		}
	}
	return spans, nil
}

// LinesFromSpans projects spans onto geometry-free lines.
func LinesFromSpans(spans []Span) []Line {
	lines := make([]Line, 0, len(spans))
	for _, span := range spans {
		lines = append(lines, Line{Text: span.Text, Confidence: span.Confidence})
	}
	return lines
}
