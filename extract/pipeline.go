package extract

import (
	"context"
	"fmt"
	"image"

	"github.com/jkassemi/ttb-labeling/classify"
	"github.com/jkassemi/ttb-labeling/config"
	"github.com/jkassemi/ttb-labeling/geometry"
	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/observability"
	"github.com/jkassemi/ttb-labeling/ocr"
	"github.com/jkassemi/ttb-labeling/vlm"
)

// Result carries the resolved fields plus the OCR spans used to verify
// them. Rules re-use the spans for boldness analysis.
type Result struct {
	LabelInfo label.LabelInfo
	Spans     []ocr.Span
}

// Pipeline extracts structured label fields from one application's images.
type Pipeline struct {
	Engine ocr.Engine
	Model  vlm.Extractor
	Config *config.Config
	Log    observability.Logger
}

// Run performs model extraction and OCR, cross-verifies the model readings
// against the spans, and resolves everything into a LabelInfo.
func (p *Pipeline) Run(ctx context.Context, images []image.Image) (*Result, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("extract: no images provided")
	}
	cfg := p.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := p.Log
	if log == nil {
		log = observability.NopLogger{}
	}
	model := p.Model
	if model == nil {
		model = vlm.Nop{}
	}

	modelResult, err := model.Extract(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("extract: model extraction: %w", err)
	}

	spans, err := ocr.ExtractSpans(ctx, p.Engine, images, ocr.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	log.Debug("ocr spans collected", observability.Int("spans", len(spans)))

	prediction := classify.FromModelHint(modelResult.BeverageType)

	candidates := BuildCandidates(spans, modelResult.Fields, log)
	info := ResolveFields(candidates, prediction)

	sizes := make([]image.Point, len(images))
	for i, img := range images {
		sizes[i] = img.Bounds().Size()
	}
	info = geometry.ApplyFieldOfVision(info, candidates, sizes, cfg.FieldOfVision.MaxSpanRatio)

	return &Result{LabelInfo: info, Spans: spans}, nil
}
