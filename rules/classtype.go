package rules

import (
	"regexp"
	"strings"
	"sync"

	"github.com/jkassemi/ttb-labeling/classify"
	"github.com/jkassemi/ttb-labeling/label"
)

var (
	classTypeEdgeRE = regexp.MustCompile(`^[\W_]+|[\W_]+$`)
	abvLineRE       = regexp.MustCompile(`(?i)\b\d{1,3}(?:\.\d+)?\s*%?\s*.*\b(?:ALC|ALCOHOL|ABV|VOL)\b`)
	netContentsRE   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(m\s*l|ml|milliliter|milliliters|l|liter|liters|fl\.?\s*oz|oz)\b`)
	nameAddressRE   = regexp.MustCompile(`(?i)\b(BOTTLED|DISTILLED|PRODUCED|IMPORTED|MANUFACTURED|RECTIFIED)\s+BY\b`)
	classStopRE     = regexp.MustCompile(`(?i)\b(ALC|ALCOHOL|ABV|PROOF|BY\s+VOL|VOL\.?|NET\s+CONTENTS?)\b`)
	countryOriginRE = regexp.MustCompile(`(?i)\b(PRODUCT OF|MADE IN|PRODUCED IN|IMPORTED FROM)\b`)
)

var classStopPatterns = []*regexp.Regexp{
	abvLineRE,
	netContentsRE,
	countryOriginRE,
	nameAddressRE,
	classStopRE,
}

var classKeywordRE = sync.OnceValue(func() *regexp.Regexp {
	keywords := classify.ClassKeywords()
	escaped := make([]string, len(keywords))
	for i, keyword := range keywords {
		escaped[i] = regexp.QuoteMeta(keyword)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
})

func cleanClassTypeValue(value string) string {
	return strings.TrimSpace(classTypeEdgeRE.ReplaceAllString(value, ""))
}

// trimClassTypeValue cuts a noisy class/type reading down to the designation
// itself: it anchors on the first class keyword and stops before trailing
// ABV, net contents, origin, or producer text.
func trimClassTypeValue(value string) string {
	match := classKeywordRE().FindStringIndex(value)
	if match == nil {
		return cleanClassTypeValue(value)
	}
	start := match[0]
	stop := len(value)
	for _, pattern := range classStopPatterns {
		for _, loc := range pattern.FindAllStringIndex(value, -1) {
			if loc[0] > start {
				if loc[0] < stop {
					stop = loc[0]
				}
				break
			}
		}
	}
	candidate := cleanClassTypeValue(value[:stop])
	if candidate != "" {
		return candidate
	}
	return cleanClassTypeValue(value)
}

// ClassTypePresence checks the class/type designation. Wines may omit it
// when a varietal or composition statement serves as the designation.
func ClassTypePresence(ctx *RuleContext) Finding {
	beverageType, ok := resolveBeverageType(ctx)
	if !ok {
		return buildFinding("class_type_presence", StatusNotEvaluated,
			"Beverage type not selected; class/type not evaluated.",
			withField(label.FieldClassType), withSeverity(SeverityInfo))
	}
	if beverageType != string(label.BeverageDistilledSpirits) && beverageType != string(label.BeverageWine) {
		return buildFinding("class_type_presence", StatusNotApplicable,
			"Class/type rule not applicable to the selected beverage type.",
			withField(label.FieldClassType), withSeverity(SeverityInfo))
	}
	info := ctx.LabelInfo
	value := info.ClassType.Value
	normalized := value
	if value != "" {
		normalized = trimClassTypeValue(value)
	}
	if normalized == "" {
		if beverageType == string(label.BeverageWine) &&
			(info.GrapeVarietals.Value != "" || info.StatementOfComposition.Value != "") {
			return buildFinding("class_type_presence", StatusNotApplicable,
				"Class/type designation omitted; varietal or composition serves as designation.",
				withField(label.FieldClassType), withSeverity(SeverityInfo))
		}
		return buildFinding("class_type_presence", StatusFail,
			"Class/type designation not detected.",
			withField(label.FieldClassType))
	}
	return buildFinding("class_type_presence", StatusPass,
		"Class/type designation detected.",
		withField(label.FieldClassType), withSeverity(SeverityInfo))
}
