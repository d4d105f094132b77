package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/observability"
	"github.com/jkassemi/ttb-labeling/ocr"
)

// AttachWarningHeader locates the "GOVERNMENT WARNING" header on the label
// and records its bounding box on the warning text candidate. A miss leaves
// the candidate unchanged.
func AttachWarningHeader(candidate *label.FieldCandidate, spans []ocr.Span, log observability.Logger) *label.FieldCandidate {
	if candidate == nil {
		return nil
	}
	header, ok := findWarningHeader(spans)
	if !ok && candidate.Value != "" {
		header, ok = warningHeaderFromText(spans, candidate.Value)
	}
	if !ok {
		logWarningHeaderMiss(log, spans)
		return candidate
	}
	updated := candidate.WithMetadata(label.MetaWarningHeaderBBox, header.bbox)
	updated = updated.WithMetadata(label.MetaWarningHeaderImageIndex, header.imageIndex)
	return &updated
}

type warningHeader struct {
	bbox       ocr.BBox
	imageIndex int
}

// findWarningHeader prefers a single span carrying both header words, then
// the closest GOVERNMENT/WARNING pair on one image, then any single match.
func findWarningHeader(spans []ocr.Span) (warningHeader, bool) {
	var matches []ocr.Span
	for _, span := range spans {
		upper := strings.ToUpper(span.Text)
		gov := strings.Contains(upper, "GOVERNMENT")
		warn := strings.Contains(upper, "WARNING")
		if gov && warn {
			return warningHeader{bbox: span.BBox, imageIndex: span.ImageIndex}, true
		}
		if gov || warn {
			matches = append(matches, span)
		}
	}
	if len(matches) == 0 {
		return warningHeader{}, false
	}
	var govSpans, warnSpans []ocr.Span
	for _, span := range matches {
		upper := strings.ToUpper(span.Text)
		if strings.Contains(upper, "GOVERNMENT") {
			govSpans = append(govSpans, span)
		}
		if strings.Contains(upper, "WARNING") {
			warnSpans = append(warnSpans, span)
		}
	}
	bestScore := math.Inf(1)
	var best warningHeader
	found := false
	for _, gov := range govSpans {
		for _, warn := range warnSpans {
			if gov.ImageIndex != warn.ImageIndex {
				continue
			}
			score := pairSpanScore(gov, warn)
			if score < bestScore {
				bestScore = score
				best = warningHeader{bbox: gov.BBox.Union(warn.BBox), imageIndex: gov.ImageIndex}
				found = true
			}
		}
	}
	if found {
		return best, true
	}
	return warningHeader{bbox: matches[0].BBox, imageIndex: matches[0].ImageIndex}, true
}

// warningHeaderFromText clusters spans whose normalized text appears inside
// the extracted warning statement and unions the topmost band of them.
func warningHeaderFromText(spans []ocr.Span, warningText string) (warningHeader, bool) {
	target := ocr.NormalizeForMatch(warningText)
	if target == "" {
		return warningHeader{}, false
	}
	var matches []ocr.Span
	for _, span := range spans {
		norm := ocr.NormalizeForMatch(span.Text)
		if norm == "" {
			continue
		}
		if strings.Contains(target, norm) {
			matches = append(matches, span)
		}
	}
	if len(matches) == 0 {
		return warningHeader{}, false
	}
	byImage := make(map[int][]ocr.Span)
	for _, span := range matches {
		byImage[span.ImageIndex] = append(byImage[span.ImageIndex], span)
	}
	imageIndex, imageSpans := -1, []ocr.Span(nil)
	for index, group := range byImage {
		if len(group) > len(imageSpans) || (len(group) == len(imageSpans) && index < imageIndex) {
			imageIndex = index
			imageSpans = group
		}
	}

	minY := math.Inf(1)
	var heights []float64
	for _, span := range imageSpans {
		if span.BBox.Y0 < minY {
			minY = span.BBox.Y0
		}
		if h := span.BBox.Height(); h > 0 {
			heights = append(heights, h)
		}
	}
	if len(heights) == 0 {
		return warningHeader{}, false
	}
	sort.Float64s(heights)
	band := heights[len(heights)/2] * 1.6

	var headerSpans []ocr.Span
	for _, span := range imageSpans {
		if span.BBox.Y0 <= minY+band {
			headerSpans = append(headerSpans, span)
		}
	}
	if len(headerSpans) == 0 {
		return warningHeader{}, false
	}
	bbox := headerSpans[0].BBox
	for _, span := range headerSpans[1:] {
		bbox = bbox.Union(span.BBox)
	}
	return warningHeader{bbox: bbox, imageIndex: imageIndex}, true
}

// pairSpanScore measures center offset between two spans, normalized by
// their average dimensions. Lower is closer.
func pairSpanScore(a, b ocr.Span) float64 {
	ax, ay := a.BBox.Center()
	bx, by := b.BBox.Center()
	width := (a.BBox.Width() + b.BBox.Width()) / 2
	height := (a.BBox.Height() + b.BBox.Height()) / 2
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return math.Abs(ax-bx)/width + math.Abs(ay-by)/height
}

func logWarningHeaderMiss(log observability.Logger, spans []ocr.Span) {
	if len(spans) == 0 {
		return
	}
	tokenSpans := 0
	for _, span := range spans {
		upper := strings.ToUpper(span.Text)
		if strings.Contains(upper, "GOVERNMENT") || strings.Contains(upper, "WARN") {
			tokenSpans++
		}
	}
	log.Debug("warning header bbox not found",
		observability.Int("spans", len(spans)),
		observability.Int("token_spans", tokenSpans),
	)
}
