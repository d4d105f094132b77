package rules

import (
	"strings"

	"github.com/jkassemi/ttb-labeling/geometry"
	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/ocr"
)

// CanonicalWarningText is the government warning statement exactly as the
// regulation prescribes it.
const CanonicalWarningText = "GOVERNMENT WARNING: (1) According to the Surgeon General, women " +
	"should not drink alcoholic beverages during pregnancy because of the risk of " +
	"birth defects. (2) Consumption of alcoholic beverages impairs your ability to " +
	"drive a car or operate machinery, and may cause health problems."

// WarningText evaluates the government warning statement: presence, exact
// wording, and whether the header is printed bold.
func WarningText(ctx *RuleContext) Finding {
	field := ctx.LabelInfo.WarningText
	value := field.Value
	if value == "" {
		return buildFinding("warning_text", StatusFail,
			"Government warning statement not detected.",
			withField(label.FieldWarningText))
	}

	normalized := normalizeWarningText(value)
	headerPresent := strings.Contains(strings.ToUpper(value), "GOVERNMENT WARNING")
	exactMatch := matchesCanonicalWarning(value) || matchesCanonicalWarningAllCaps(value)

	boldness := warningBoldness(ctx, field)

	evidence := map[string]any{
		"warning_text_normalized":  normalized,
		"warning_header_present":   headerPresent,
		"warning_text_exact_match": exactMatch,
	}
	if boldness != nil {
		evidence["boldness"] = boldness
	} else {
		evidence["boldness"] = map[string]any{"status": "needs_review", "reason": "boldness_unavailable"}
	}

	var issues []string
	hasTextIssue := false

	if !headerPresent {
		issues = append(issues, "header text may be incomplete")
		hasTextIssue = true
	} else if issue := exactnessIssue(normalized, exactMatch); issue != "" {
		issues = append(issues, issue)
		hasTextIssue = true
	}

	if headerPresent && (boldness == nil || boldness.Status != geometry.StatusPass) {
		issues = append(issues, "header boldness could not be confirmed")
	}

	if len(issues) > 0 {
		message := "Warning statement detected, but " + strings.Join(issues, "; ") + "."
		if !hasTextIssue && len(issues) == 1 && issues[0] == "header boldness could not be confirmed" {
			message = "Warning statement text matches the required wording, but header boldness could not be confirmed."
		}
		severity := SeverityInfo
		if hasTextIssue {
			severity = SeverityWarning
		}
		return buildFinding("warning_text", StatusNeedsReview, message,
			withField(label.FieldWarningText), withSeverity(severity), withEvidence(evidence))
	}

	return buildFinding("warning_text", StatusPass,
		"Warning statement matches the required text and header appears bold.",
		withField(label.FieldWarningText), withSeverity(SeverityInfo), withEvidence(evidence))
}

func normalizeWarningText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func matchesCanonicalWarning(text string) bool {
	return normalizeWarningText(text) == CanonicalWarningText
}

func matchesCanonicalWarningAllCaps(text string) bool {
	normalized := normalizeWarningText(text)
	if normalized != strings.ToUpper(normalized) {
		return false
	}
	return normalized == strings.ToUpper(CanonicalWarningText)
}

func exactnessIssue(normalized string, exactMatch bool) string {
	if exactMatch {
		return ""
	}
	if !strings.Contains(normalized, "GOVERNMENT WARNING:") {
		return "header text may not be correctly formatted"
	}
	if !strings.Contains(normalized, "Surgeon General") {
		if normalized == strings.ToUpper(normalized) && strings.Contains(normalized, "SURGEON GENERAL") {
			return "wording does not exactly match the required statement"
		}
		return "capitalization for Surgeon General may be incorrect"
	}
	return "wording does not exactly match the required statement"
}

// warningBoldness reuses precomputed boldness metadata when present, and
// otherwise measures the header crop on the original image. Without peer
// spans a fallback pass still needs review.
func warningBoldness(ctx *RuleContext, field label.FieldExtraction) *geometry.Boldness {
	if field.Metadata != nil {
		if boldness, ok := field.Metadata[label.MetaWarningBoldness].(*geometry.Boldness); ok {
			return boldness
		}
	}
	if len(ctx.Images) == 0 || field.Metadata == nil {
		return nil
	}
	headerIndex, ok := field.Metadata[label.MetaWarningHeaderImageIndex].(int)
	if !ok || headerIndex < 0 || headerIndex >= len(ctx.Images) {
		return nil
	}
	headerBBox, ok := field.Metadata[label.MetaWarningHeaderBBox].(ocr.BBox)
	if !ok {
		return nil
	}
	limits := geometry.BoldnessLimits{
		MinContrast:        ctx.Config.Boldness.MinContrast,
		MinStrokeRatio:     ctx.Config.Boldness.MinStrokeRatio,
		MinForegroundRatio: ctx.Config.Boldness.MinForegroundRatio,
		PeerScore:          ctx.Config.Boldness.PeerScore,
	}
	boldness := geometry.EstimateBoldness(ctx.Images[headerIndex], headerBBox, nil, limits)
	if boldness != nil && boldness.Reason == "no_peer_spans" {
		adjusted := *boldness
		adjusted.Status = geometry.StatusNeedsReview
		return &adjusted
	}
	return boldness
}
