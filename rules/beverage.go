package rules

import (
	"github.com/jkassemi/ttb-labeling/classify"
	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/ocr"
)

func classifierThresholds(ctx *RuleContext) classify.Thresholds {
	if ctx.Config == nil {
		return classify.DefaultThresholds()
	}
	return classify.Thresholds{
		MinScore:  ctx.Config.Classifier.MinScore,
		AutoApply: ctx.Config.Classifier.AutoApply,
	}
}

func predictFromSpans(spans []ocr.Span, thresholds classify.Thresholds) *label.BeverageTypeClassification {
	if len(spans) == 0 {
		return nil
	}
	var blocks []string
	for _, span := range spans {
		if span.Text != "" {
			blocks = append(blocks, span.Text)
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	return classify.Classify(blocks, thresholds)
}

// BeverageTypePresence checks that a beverage type was detected and, when
// the applicant selected one, that the detection agrees with it.
func BeverageTypePresence(ctx *RuleContext) Finding {
	var selected label.BeverageType
	if ctx.Application != nil {
		selected = ctx.Application.BeverageType
	}
	thresholds := classifierThresholds(ctx)
	prediction := ctx.LabelInfo.BeverageType
	source := "label_info"
	if prediction == nil {
		prediction = predictFromSpans(ctx.Spans, thresholds)
		source = "ocr_spans"
	}

	if selected != "" {
		if prediction == nil {
			return buildFinding("beverage_type_presence", StatusNeedsReview,
				"Beverage type selected, but none was detected on the label.",
				withField("beverage_type"),
				withEvidence(map[string]any{
					"prediction_source": source,
					"selected":          string(selected),
					"prediction":        nil,
				}))
		}
		if prediction.BeverageType != selected {
			return buildFinding("beverage_type_presence", StatusNeedsReview,
				"Selected beverage type does not match the detected label type.",
				withField("beverage_type"),
				withEvidence(map[string]any{
					"prediction_source": source,
					"selected":          string(selected),
					"prediction":        prediction,
				}))
		}
		return buildFinding("beverage_type_presence", StatusPass,
			"Selected beverage type matches the detected label type.",
			withField("beverage_type"), withSeverity(SeverityInfo),
			withEvidence(map[string]any{
				"prediction_source": source,
				"selected":          string(selected),
				"prediction":        prediction,
			}))
	}

	if prediction == nil {
		return buildFinding("beverage_type_presence", StatusFail,
			"Beverage type not detected on the label.",
			withField("beverage_type"))
	}
	evidence := map[string]any{
		"prediction_source": source,
		"prediction":        prediction,
	}
	if classify.ShouldAutoApply(prediction, thresholds) {
		return buildFinding("beverage_type_presence", StatusPass,
			"Beverage type detected on the label.",
			withField("beverage_type"), withSeverity(SeverityInfo),
			withEvidence(evidence))
	}
	return buildFinding("beverage_type_presence", StatusNeedsReview,
		"Beverage type detected, but confidence is low.",
		withField("beverage_type"), withEvidence(evidence))
}
