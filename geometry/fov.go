// Package geometry analyzes where fields sit on the label images: whether
// the mandatory trio shares one field of vision, and whether the warning
// header is printed bolder than its surroundings.
package geometry

import (
	"image"
	"math"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/ocr"
)

// Field-of-vision statuses.
const (
	StatusPass        = "pass"
	StatusNeedsReview = "needs_review"
	StatusUnknown     = "unknown"
)

// FieldOfVision records whether brand name, class/type, and alcohol content
// were located on one image within the allowed horizontal spread.
type FieldOfVision struct {
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	ImageIndex int       `json:"image_index"`
	SpanRatio  float64   `json:"span_ratio,omitempty"`
	BBoxUnion  *ocr.BBox `json:"bbox_union,omitempty"`
}

var fieldOfVisionFields = []string{
	label.FieldBrandName,
	label.FieldClassType,
	label.FieldAlcoholContent,
}

type locatedSpan struct {
	bbox       ocr.BBox
	imageIndex int
}

// FieldOfVisionMetadata inspects the located candidates for the mandatory
// trio and reports whether they share one field of vision. maxSpanRatio is
// the widest allowed horizontal spread as a fraction of image width.
func FieldOfVisionMetadata(candidates map[string]*label.FieldCandidate, imageSizes []image.Point, maxSpanRatio float64) *FieldOfVision {
	spans := make([]locatedSpan, 0, len(fieldOfVisionFields))
	for _, field := range fieldOfVisionFields {
		candidate := candidates[field]
		if candidate == nil || candidate.Metadata == nil {
			return &FieldOfVision{Status: StatusUnknown, Reason: "missing_fields", ImageIndex: -1}
		}
		bbox, ok := candidate.Metadata[label.MetaBBox].(ocr.BBox)
		if !ok {
			return &FieldOfVision{Status: StatusUnknown, Reason: "missing_bbox", ImageIndex: -1}
		}
		index, ok := candidate.Metadata[label.MetaImageIndex].(int)
		if !ok || index < 0 {
			return &FieldOfVision{Status: StatusUnknown, Reason: "missing_image_index", ImageIndex: -1}
		}
		spans = append(spans, locatedSpan{bbox: bbox, imageIndex: index})
	}

	imageIndex := spans[0].imageIndex
	for _, span := range spans[1:] {
		if span.imageIndex != imageIndex {
			return &FieldOfVision{Status: StatusNeedsReview, Reason: "multiple_images", ImageIndex: -1}
		}
	}
	if imageIndex >= len(imageSizes) {
		return &FieldOfVision{Status: StatusUnknown, Reason: "image_index_out_of_range", ImageIndex: -1}
	}
	width := imageSizes[imageIndex].X
	if width <= 0 {
		return &FieldOfVision{Status: StatusUnknown, Reason: "invalid_image_size", ImageIndex: -1}
	}

	union := spans[0].bbox
	for _, span := range spans[1:] {
		union = union.Union(span.bbox)
	}
	ratio := round4(union.Width() / float64(width))
	status := StatusPass
	if ratio > maxSpanRatio {
		status = StatusNeedsReview
	}
	return &FieldOfVision{
		Status:     status,
		ImageIndex: imageIndex,
		SpanRatio:  ratio,
		BBoxUnion:  &union,
	}
}

// ApplyFieldOfVision attaches the field-of-vision metadata to the trio of
// fields the placement requirement covers. Other fields are untouched.
func ApplyFieldOfVision(info label.LabelInfo, candidates map[string]*label.FieldCandidate, imageSizes []image.Point, maxSpanRatio float64) label.LabelInfo {
	metadata := FieldOfVisionMetadata(candidates, imageSizes, maxSpanRatio)
	if metadata == nil {
		return info
	}
	for _, name := range fieldOfVisionFields {
		field, ok := info.Field(name)
		if !ok {
			continue
		}
		info = info.WithField(name, field.WithMetadata(label.MetaFieldOfVision, metadata))
	}
	return info
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
