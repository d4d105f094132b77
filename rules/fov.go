package rules

import (
	"github.com/jkassemi/ttb-labeling/geometry"
	"github.com/jkassemi/ttb-labeling/label"
)

// FieldOfVisionCheck verifies that brand name, class/type, and alcohol
// content share one field of vision, using the placement metadata the
// extraction pipeline attached to the brand name field.
func FieldOfVisionCheck(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"field_of_vision", "field_of_vision"); gate != nil {
		return *gate
	}
	metadata := ctx.LabelInfo.BrandName.Metadata
	fov, ok := metadata[label.MetaFieldOfVision].(*geometry.FieldOfVision)
	if !ok || fov == nil {
		return buildFinding("field_of_vision", StatusNeedsReview,
			"Field-of-vision metadata unavailable.",
			withField("field_of_vision"))
	}
	evidence := map[string]any{"field_of_vision": fov}
	switch fov.Status {
	case geometry.StatusPass:
		return buildFinding("field_of_vision", StatusPass,
			"Brand, class/type, and alcohol content appear in the same field of vision.",
			withField("field_of_vision"), withSeverity(SeverityInfo), withEvidence(evidence))
	case geometry.StatusNeedsReview:
		return buildFinding("field_of_vision", StatusNeedsReview,
			"Brand, class/type, and alcohol content may not be in the same field of vision.",
			withField("field_of_vision"), withEvidence(evidence))
	default:
		return buildFinding("field_of_vision", StatusNeedsReview,
			"Field-of-vision status could not be determined.",
			withField("field_of_vision"), withEvidence(evidence))
	}
}
