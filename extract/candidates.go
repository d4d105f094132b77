package extract

import (
	"strings"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/observability"
	"github.com/jkassemi/ttb-labeling/ocr"
	"github.com/jkassemi/ttb-labeling/vlm"
)

// CandidateFromModel turns a model field reading into a candidate, or nil
// when the model returned nothing usable.
func CandidateFromModel(field string, fields map[string]*vlm.FieldValue) *label.FieldCandidate {
	value := fields[field]
	if value == nil {
		return nil
	}
	cleaned := strings.TrimSpace(value.Text)
	if cleaned == "" {
		return nil
	}
	return &label.FieldCandidate{
		Value:        cleaned,
		Evidence:     cleaned,
		NumericValue: value.NumericValue,
		Unit:         value.Unit,
		Metadata: map[string]any{
			label.MetaSource:     string(label.SourceModel),
			label.MetaModelField: field,
		},
	}
}

func candidateImageIndex(candidate *label.FieldCandidate) int {
	if candidate.Metadata == nil {
		return -1
	}
	if index, ok := candidate.Metadata[label.MetaImageIndex].(int); ok {
		return index
	}
	return -1
}

// AttachVerification verifies the candidate's tokens against the spans and
// records the verification summary plus the best matching span's location.
// When the candidate has no confidence, token coverage fills it in.
func AttachVerification(candidate *label.FieldCandidate, spans []ocr.Span) *label.FieldCandidate {
	if candidate == nil {
		return nil
	}
	tokens := Tokenize(candidate.Value)
	imageIndex := candidateImageIndex(candidate)
	span := BestSpan(tokens, spans, imageIndex)
	verification := VerifyTokens(tokens, spans, imageIndex)

	updated := candidate.WithMetadata(label.MetaVerification, verification)
	if span != nil {
		updated = updated.WithMetadata(label.MetaBBox, span.BBox)
		updated = updated.WithMetadata(label.MetaImageIndex, span.ImageIndex)
	}
	if updated.Confidence == nil && verification.TokenCount > 0 {
		coverage := round3(float64(verification.MatchedTokenCount) / float64(verification.TokenCount))
		updated.Confidence = &coverage
	}
	return &updated
}

// BuildCandidates assembles one candidate per label field, verifying each
// against the spans. The warning text candidate additionally gets the
// warning header location attached.
func BuildCandidates(spans []ocr.Span, fields map[string]*vlm.FieldValue, log observability.Logger) map[string]*label.FieldCandidate {
	if log == nil {
		log = observability.NopLogger{}
	}
	candidates := make(map[string]*label.FieldCandidate, len(label.FieldNames()))
	for _, name := range label.FieldNames() {
		candidate := CandidateFromModel(name, fields)
		candidate = AttachVerification(candidate, spans)
		if name == label.FieldWarningText {
			candidate = AttachWarningHeader(candidate, spans, log)
		}
		candidates[name] = candidate
	}
	return candidates
}

// ResolveField converts a verified candidate into the final extraction.
// Full token coverage marks the field verified; anything less needs review.
func ResolveField(candidate *label.FieldCandidate) label.FieldExtraction {
	if candidate == nil {
		return label.MissingField()
	}
	return label.FieldExtraction{
		Value:        candidate.Value,
		Confidence:   candidate.Confidence,
		Evidence:     candidate.Evidence,
		Source:       label.SourceModel,
		Status:       verificationStatus(candidate),
		Metadata:     candidate.Metadata,
		NumericValue: candidate.NumericValue,
		Unit:         candidate.Unit,
	}
}

func verificationStatus(candidate *label.FieldCandidate) label.Status {
	if candidate.Metadata == nil {
		return label.StatusNeedsReview
	}
	verification, ok := candidate.Metadata[label.MetaVerification].(label.TokenVerification)
	if !ok {
		return label.StatusNeedsReview
	}
	if verification.TokenCount > 0 && verification.MatchedTokenCount == verification.TokenCount {
		return label.StatusVerified
	}
	return label.StatusNeedsReview
}

// ResolveFields builds a LabelInfo from the per-field candidates.
func ResolveFields(candidates map[string]*label.FieldCandidate, beverageType *label.BeverageTypeClassification) label.LabelInfo {
	info := label.NewLabelInfo()
	for _, name := range label.FieldNames() {
		info = info.WithField(name, ResolveField(candidates[name]))
	}
	return info.WithBeverageType(beverageType)
}
