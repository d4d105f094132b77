package ocr

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Payload is an engine recognition result in one of the shapes the
// normalizer understands. Each shape carries its own conversion to spans, so
// new engine formats are added as new types rather than reflection chains.
type Payload interface {
	spans(imageIndex int) []Span
}

// JSONResult is implemented by engine results that wrap their payload behind
// a JSON accessor.
type JSONResult interface {
	JSON() any
}

// PairLine is one recognized line in the pair-list payload shape.
type PairLine struct {
	// Polygon holds geometry in 4-point, 8-value-flat, or 4-value-flat form.
	Polygon any
	Text    string
	Score   *float64
}

// Pairs is the list-of-(polygon, (text, score)) payload shape.
type Pairs []PairLine

func (p Pairs) spans(imageIndex int) []Span {
	spans := make([]Span, 0, len(p))
	for _, line := range p {
		bbox, ok := polygonBBox(line.Polygon)
		if !ok {
			continue
		}
		text := NormalizeText(line.Text)
		if text == "" {
			continue
		}
		spans = append(spans, Span{Text: text, Confidence: line.Score, BBox: bbox, ImageIndex: imageIndex})
	}
	return spans
}

// Arrays is the parallel-array payload shape: recognized texts with aligned
// score and polygon arrays.
type Arrays struct {
	Texts  []string
	Scores []*float64
	Polys  []any
}

func (a Arrays) spans(imageIndex int) []Span {
	spans := make([]Span, 0, len(a.Texts))
	for i, raw := range a.Texts {
		if i >= len(a.Polys) {
			break
		}
		bbox, ok := polygonBBox(a.Polys[i])
		if !ok {
			continue
		}
		text := NormalizeText(raw)
		if text == "" {
			continue
		}
		var score *float64
		if i < len(a.Scores) {
			score = a.Scores[i]
		}
		spans = append(spans, Span{Text: text, Confidence: score, BBox: bbox, ImageIndex: imageIndex})
	}
	return spans
}

// Document is a payload of unknown nesting: a decoded JSON container that is
// searched recursively for array-matching triples or pair lists.
type Document struct {
	Root any
}

func (d Document) spans(imageIndex int) []Span {
	var spans []Span
	walkDocument(d.Root, func(group Payload) {
		spans = append(spans, group.spans(imageIndex)...)
	})
	return spans
}

// DecodePayload adapts a raw engine result into a typed payload. Results
// wrapping a JSON accessor are unwrapped; generic containers become a
// Document searched recursively.
func DecodePayload(raw any) Payload {
	switch v := raw.(type) {
	case nil:
		return Document{}
	case Payload:
		return v
	case JSONResult:
		return Document{Root: v.JSON()}
	default:
		return Document{Root: raw}
	}
}

// SpansFromPayload normalizes one payload into spans tagged with the source
// image index. Records with unparsable geometry are dropped.
func SpansFromPayload(p Payload, imageIndex int) []Span {
	if p == nil {
		return nil
	}
	return p.spans(imageIndex)
}

func walkDocument(node any, emit func(Payload)) {
	switch v := node.(type) {
	case map[string]any:
		if group, ok := arraysFromMap(v); ok {
			emit(group)
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkDocument(v[k], emit)
		}
	case []any:
		if pairs, ok := pairsFromList(v); ok {
			emit(pairs)
			return
		}
		for _, item := range v {
			walkDocument(item, emit)
		}
	}
}

func arraysFromMap(m map[string]any) (Arrays, bool) {
	rawTexts, ok := m["rec_texts"].([]any)
	if !ok {
		return Arrays{}, false
	}
	texts := make([]string, 0, len(rawTexts))
	for _, t := range rawTexts {
		s, ok := t.(string)
		if !ok {
			return Arrays{}, false
		}
		texts = append(texts, s)
	}
	polys, ok := selectPolys(len(texts), m, "rec_polys", "rec_boxes", "dt_polys", "dt_boxes")
	if !ok {
		return Arrays{}, false
	}
	scores := make([]*float64, len(texts))
	if rawScores, ok := m["rec_scores"].([]any); ok && len(rawScores) == len(texts) {
		for i, raw := range rawScores {
			scores[i] = coerceScore(raw)
		}
	}
	return Arrays{Texts: texts, Scores: scores, Polys: polys}, true
}

func selectPolys(count int, m map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		if polys, ok := m[key].([]any); ok && len(polys) == count {
			return polys, true
		}
	}
	return nil, false
}

// pairsFromList recognizes the per-line pair shape: each entry is a
// two-element container of polygon and (text, score).
func pairsFromList(items []any) (Pairs, bool) {
	if len(items) == 0 {
		return nil, false
	}
	pairs := make(Pairs, 0, len(items))
	for _, raw := range items {
		entry, ok := raw.([]any)
		if !ok || len(entry) < 2 {
			return nil, false
		}
		info, ok := entry[1].([]any)
		if !ok || len(info) == 0 {
			return nil, false
		}
		text, ok := info[0].(string)
		if !ok {
			return nil, false
		}
		line := PairLine{Polygon: entry[0], Text: text}
		if len(info) > 1 {
			line.Score = coerceScore(info[1])
		}
		pairs = append(pairs, line)
	}
	return pairs, true
}

func coerceScore(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

// polygonBBox parses geometry in 4-point, 8-value-flat, or 4-value-flat
// (already a box) form. The 4-point interpretation is tried first for
// four-element containers.
func polygonBBox(poly any) (BBox, bool) {
	switch v := poly.(type) {
	case BBox:
		return v, true
	case []float64:
		return bboxFromValues(v)
	case [][]float64:
		points := make([]any, len(v))
		for i := range v {
			points[i] = v[i]
		}
		return bboxFromPoints(points)
	case []any:
		if len(v) == 4 {
			if bbox, ok := bboxFromPoints(v); ok {
				return bbox, true
			}
		}
		values := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return BBox{}, false
			}
			values = append(values, f)
		}
		return bboxFromValues(values)
	}
	return BBox{}, false
}

func bboxFromPoints(points []any) (BBox, bool) {
	var xs, ys []float64
	for _, raw := range points {
		var coords []float64
		switch p := raw.(type) {
		case []float64:
			coords = p
		case []any:
			for _, c := range p {
				f, ok := toFloat(c)
				if !ok {
					return BBox{}, false
				}
				coords = append(coords, f)
			}
		default:
			return BBox{}, false
		}
		if len(coords) < 2 {
			return BBox{}, false
		}
		xs = append(xs, coords[0])
		ys = append(ys, coords[1])
	}
	if len(xs) == 0 {
		return BBox{}, false
	}
	return BBox{X0: minOf(xs), Y0: minOf(ys), X1: maxOf(xs), Y1: maxOf(ys)}, true
}

func bboxFromValues(values []float64) (BBox, bool) {
	switch len(values) {
	case 8:
		xs := []float64{values[0], values[2], values[4], values[6]}
		ys := []float64{values[1], values[3], values[5], values[7]}
		return BBox{X0: minOf(xs), Y0: minOf(ys), X1: maxOf(xs), Y1: maxOf(ys)}, true
	case 4:
		return BBox{
			X0: min(values[0], values[2]),
			Y0: min(values[1], values[3]),
			X1: max(values[0], values[2]),
			Y1: max(values[1], values[3]),
		}, true
	}
	return BBox{}, false
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = max(m, v)
	}
	return m
}

// NormalizeText collapses whitespace so downstream comparisons see
// consistent spacing regardless of engine output.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

var matchKeyRE = regexp.MustCompile(`[^A-Z0-9]+`)

// NormalizeForMatch reduces text to an uppercase alphanumeric key for loose
// matching and deduplication.
func NormalizeForMatch(text string) string {
	return matchKeyRE.ReplaceAllString(strings.ToUpper(text), "")
}

func confidenceOrZero(c *float64) float64 {
	if c == nil {
		return 0
	}
	return *c
}

// DedupeSpans drops near-identical spans: spans sharing a canonical key keep
// the highest-confidence occurrence (unset confidence compares as zero),
// ties keeping the latest seen. The operation is idempotent.
func DedupeSpans(spans []Span) []Span {
	kept := make(map[string]Span)
	var order []string
	for _, span := range spans {
		key := NormalizeForMatch(span.Text)
		if key == "" {
			continue
		}
		existing, seen := kept[key]
		if !seen {
			kept[key] = span
			order = append(order, key)
			continue
		}
		if confidenceOrZero(span.Confidence) >= confidenceOrZero(existing.Confidence) {
			kept[key] = span
		}
	}
	result := make([]Span, 0, len(order))
	for _, key := range order {
		result = append(result, kept[key])
	}
	return result
}

// DedupeLines applies the same keep-the-best policy to lines without
// geometry.
func DedupeLines(lines []Line) []Line {
	kept := make(map[string]Line)
	var order []string
	for _, line := range lines {
		key := NormalizeForMatch(line.Text)
		if key == "" {
			continue
		}
		existing, seen := kept[key]
		if !seen {
			kept[key] = line
			order = append(order, key)
			continue
		}
		if confidenceOrZero(line.Confidence) >= confidenceOrZero(existing.Confidence) {
			kept[key] = line
		}
	}
	result := make([]Line, 0, len(order))
	for _, key := range order {
		result = append(result, kept[key])
	}
	return result
}
