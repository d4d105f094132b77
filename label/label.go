// Package label defines the immutable data model for a verified beverage
// label: per-field extractions, token verification summaries, and the
// beverage type classification attached to one application.
package label

// Source identifies which collaborator produced a field value.
type Source string

const (
	SourceModel     Source = "model"
	SourceOCREngine Source = "ocr-engine"
)

// Status is the verification outcome for a single extracted field.
type Status string

const (
	StatusVerified    Status = "verified"
	StatusNeedsReview Status = "needs_review"
	StatusMissing     Status = "missing"
)

// BeverageType is a product category supported by the checklist.
type BeverageType string

const (
	BeverageDistilledSpirits BeverageType = "distilled_spirits"
	BeverageWine             BeverageType = "wine"
)

// TokenVerification summarizes how many of a candidate's tokens were found
// in the OCR spans.
type TokenVerification struct {
	Matched           bool    `json:"matched"`
	Coverage          float64 `json:"coverage"`
	TokenCount        int     `json:"token_count"`
	MatchedTokenCount int     `json:"matched_token_count"`
}

// FieldCandidate is a proposed, not-yet-verified value for a target field.
// Candidates are transient: they exist only between the model extraction and
// field resolution.
type FieldCandidate struct {
	Value        string
	Confidence   *float64
	Evidence     string
	NumericValue *float64
	Unit         string
	// Metadata carries verification evidence (matched bbox, image index,
	// token coverage) accumulated while the candidate is built.
	Metadata map[string]any
}

// WithMetadata returns a copy of the candidate with key set in a cloned
// metadata map. The receiver is never modified.
func (c FieldCandidate) WithMetadata(key string, value any) FieldCandidate {
	meta := make(map[string]any, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		meta[k] = v
	}
	meta[key] = value
	c.Metadata = meta
	return c
}

// FieldExtraction is the resolved, immutable result for one label field.
// The zero value is a missing field.
type FieldExtraction struct {
	Value        string         `json:"value,omitempty"`
	NumericValue *float64       `json:"numeric_value,omitempty"`
	Unit         string         `json:"unit,omitempty"`
	Confidence   *float64       `json:"confidence,omitempty"`
	Evidence     string         `json:"evidence,omitempty"`
	Source       Source         `json:"source"`
	Status       Status         `json:"status"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// MissingField returns the default extraction recorded for a field with no
// candidate.
func MissingField() FieldExtraction {
	return FieldExtraction{Source: SourceModel, Status: StatusMissing}
}

// WithMetadata returns a copy of the extraction with key set in a cloned
// metadata map.
func (f FieldExtraction) WithMetadata(key string, value any) FieldExtraction {
	meta := make(map[string]any, len(f.Metadata)+1)
	for k, v := range f.Metadata {
		meta[k] = v
	}
	meta[key] = value
	f.Metadata = meta
	return f
}

// Empty reports whether the field carries neither text nor a numeric value.
func (f FieldExtraction) Empty() bool {
	return f.Value == "" && f.NumericValue == nil
}

// BeverageTypeClassification is a best-effort product category prediction.
type BeverageTypeClassification struct {
	BeverageType BeverageType   `json:"beverage_type"`
	Confidence   float64        `json:"confidence"`
	Evidence     map[string]any `json:"evidence,omitempty"`
}
