package classify

import (
	"strings"

	"github.com/jkassemi/ttb-labeling/label"
)

// Wine indicator terms. These include common varietals so wine labels that
// never print the word "wine" still classify.
var wineKeywords = []string{
	"WINE",
	"RED WINE",
	"WHITE WINE",
	"SPARKLING",
	"ROSE",
	"CABERNET",
	"SAUVIGNON",
	"MERLOT",
	"PINOT",
	"CHARDONNAY",
	"RIESLING",
	"MALBEC",
	"SYRAH",
	"SHIRAZ",
	"ZINFANDEL",
	"TEMPRANILLO",
	"SANGIOVESE",
	"PETIT VERDOT",
}

const (
	wineWeight    = 1.5
	spiritsWeight = 1.2
)

// Thresholds control score gating for keyword classification.
type Thresholds struct {
	// MinScore is the absolute floor below which no prediction is made.
	MinScore float64
	// AutoApply is the confidence at which a prediction is trusted without
	// review.
	AutoApply float64
}

// DefaultThresholds returns the tuned gating values.
func DefaultThresholds() Thresholds {
	return Thresholds{MinScore: 1.2, AutoApply: 0.6}
}

// Classify scores the text blocks against the wine and spirits keyword
// lists and returns the winning category, or nil when neither score clears
// the floor. Each unique keyword counts once per text block.
func Classify(textBlocks []string, thresholds Thresholds) *label.BeverageTypeClassification {
	if len(textBlocks) == 0 {
		return nil
	}
	wineScore, wineHits := scoreKeywords(textBlocks, wineKeywords, wineWeight)
	spiritsUpper := make([]string, len(SpiritsClassKeywords))
	for i, kw := range SpiritsClassKeywords {
		spiritsUpper[i] = strings.ToUpper(kw)
	}
	spiritsScore, spiritsHits := scoreKeywords(textBlocks, spiritsUpper, spiritsWeight)

	if wineScore < thresholds.MinScore && spiritsScore < thresholds.MinScore {
		return nil
	}

	beverageType := label.BeverageDistilledSpirits
	bestScore := spiritsScore
	hits := spiritsHits
	if wineScore >= spiritsScore {
		beverageType = label.BeverageWine
		bestScore = wineScore
		hits = wineHits
	}

	total := wineScore + spiritsScore
	confidence := 0.0
	if total > 0 {
		confidence = bestScore / total
	}
	return &label.BeverageTypeClassification{
		BeverageType: beverageType,
		Confidence:   confidence,
		Evidence: map[string]any{
			"type":          string(beverageType),
			"matched_terms": hits,
		},
	}
}

// ShouldAutoApply reports whether a prediction is confident enough to act
// on without review.
func ShouldAutoApply(prediction *label.BeverageTypeClassification, thresholds Thresholds) bool {
	return prediction != nil && prediction.Confidence >= thresholds.AutoApply
}

func scoreKeywords(textBlocks, keywords []string, weight float64) (float64, []string) {
	score := 0.0
	var hits []string
	for _, text := range textBlocks {
		if text == "" {
			continue
		}
		upper := strings.ToUpper(text)
		for _, keyword := range keywords {
			if strings.Contains(upper, keyword) {
				score += weight
				if !contains(hits, keyword) {
					hits = append(hits, keyword)
				}
			}
		}
	}
	return score, hits
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// FromModelHint converts the model collaborator's direct category guess into
// a classification. An unambiguous hint bypasses keyword scoring entirely
// and is reported at full confidence.
func FromModelHint(value string) *label.BeverageTypeClassification {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return nil
	}
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)

	var beverageType label.BeverageType
	switch {
	case normalized == "wine" || strings.Contains(normalized, " wine") || strings.HasPrefix(normalized, "wine"):
		beverageType = label.BeverageWine
	case strings.Contains(normalized, "distilled spirits") || strings.Contains(normalized, "distilled spirit"):
		beverageType = label.BeverageDistilledSpirits
	case normalized == "spirits" || normalized == "spirit":
		beverageType = label.BeverageDistilledSpirits
	default:
		return nil
	}
	return &label.BeverageTypeClassification{
		BeverageType: beverageType,
		Confidence:   1.0,
		Evidence:     map[string]any{"source": "model", "raw_value": value},
	}
}
