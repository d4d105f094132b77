// Package vlm defines the vision-language model collaborator boundary: the
// extraction contract, the field instruction, and parsing of model
// responses into structured field values.
package vlm

import (
	"context"
	"image"
	"strings"

	"github.com/jkassemi/ttb-labeling/classify"
	"github.com/jkassemi/ttb-labeling/label"
)

// FieldValue is the model's structured reading of one label field.
type FieldValue struct {
	Text         string
	NumericValue *float64
	Unit         string
}

// Result is the model's reading of one image set: a best-guess value per
// field (nil when the field was not found) plus a top-level beverage type
// hint.
type Result struct {
	Fields       map[string]*FieldValue
	BeverageType string
}

// Extractor is the model collaborator contract.
type Extractor interface {
	Extract(ctx context.Context, images []image.Image) (Result, error)
}

// Nop is an Extractor that reads nothing; the pipeline then reports every
// field missing.
type Nop struct{}

func (Nop) Extract(context.Context, []image.Image) (Result, error) {
	return Result{Fields: map[string]*FieldValue{}}, nil
}

// NumericFields are the fields whose value key carries a number.
var NumericFields = map[string]bool{
	label.FieldAlcoholContent:                   true,
	label.FieldNetContents:                      true,
	label.FieldPercentageOfForeignWine:          true,
	label.FieldCommodityStatementNeutralSpirits: true,
	label.FieldStatementOfAge:                   true,
}

const beverageTypeKey = "beverage_type"

// RequestFields lists the keys the model is instructed to return: every
// label field plus the beverage type hint.
func RequestFields() []string {
	return append(label.FieldNames(), beverageTypeKey)
}

// Prompt builds the strict JSON-only field instruction.
func Prompt() string {
	fields := strings.Join(RequestFields(), ", ")
	var numeric []string
	for _, name := range label.FieldNames() {
		if NumericFields[name] {
			numeric = append(numeric, name)
		}
	}
	classOptions := uniqueClassOptions()

	var b strings.Builder
	b.WriteString("You are extracting label text from a single alcohol beverage label. ")
	b.WriteString("Return text exactly as it appears on the label (no paraphrasing). ")
	b.WriteString("Prefer the most complete instance of each field and include units. ")
	b.WriteString("If a field is missing, return null. ")
	b.WriteString("Use pattern matching to locate fields (e.g., ABV/proof, mL/oz, government warning, and origin phrases). ")
	b.WriteString("Response format: return ONLY a JSON object (no markdown, no extra text). ")
	b.WriteString("Keys: " + fields + ". ")
	b.WriteString("Each key maps to either null or an object with keys: text, value, unit. ")
	b.WriteString("text must be the exact label text (no paraphrasing). ")
	b.WriteString("value must be a number or null; unit must be a short unit string or null. ")
	b.WriteString("Numeric fields: " + strings.Join(numeric, ", ") + ". ")
	b.WriteString("For non-numeric fields, set value and unit to null. ")
	b.WriteString("For class_type, set text to the exact label text and set value to one of: ")
	b.WriteString(strings.Join(classOptions, ", ") + ". Set unit to null. ")
	b.WriteString("For beverage_type, set text to the exact label text supporting the category ")
	b.WriteString("and set value to one of: distilled_spirits, wine. Set unit to null. ")
	b.WriteString("If no class option matches, use null. ")
	b.WriteString("If beverage type is unclear, use null. ")
	b.WriteString("Do not add extra keys.")
	return b.String()
}

func uniqueClassOptions() []string {
	seen := make(map[string]bool)
	var options []string
	for _, keyword := range classify.ClassKeywords() {
		normalized := strings.ToLower(strings.TrimSpace(keyword))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		options = append(options, keyword)
	}
	return options
}
