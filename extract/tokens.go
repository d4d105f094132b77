// Package extract runs the label extraction pipeline: model field readings
// cross-checked against OCR spans, warning header location, and placement
// metadata, resolved into an immutable LabelInfo.
package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/ocr"
)

var tokenRE = regexp.MustCompile(`[A-Z0-9]+`)

// Tokenize breaks text into the uppercase alphanumeric tokens used for
// span verification. Single characters are dropped unless they are digits.
func Tokenize(text string) []string {
	raw := tokenRE.FindAllString(strings.ToUpper(text), -1)
	tokens := raw[:0]
	for _, token := range raw {
		if len(token) > 1 || isDigit(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func isDigit(token string) bool {
	return len(token) == 1 && token[0] >= '0' && token[0] <= '9'
}

// SpanTokenSet collects the verification tokens present in the spans.
// imageIndex < 0 means all images.
func SpanTokenSet(spans []ocr.Span, imageIndex int) map[string]bool {
	tokens := make(map[string]bool)
	for _, span := range spans {
		if imageIndex >= 0 && span.ImageIndex != imageIndex {
			continue
		}
		for _, token := range Tokenize(span.Text) {
			tokens[token] = true
		}
	}
	return tokens
}

// BestSpan selects the span sharing the most tokens with the candidate,
// scored by the fraction of candidate tokens covered. Ties keep the earlier
// span. imageIndex < 0 means all images.
func BestSpan(tokens []string, spans []ocr.Span, imageIndex int) *ocr.Span {
	if len(tokens) == 0 {
		return nil
	}
	tokenSet := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		tokenSet[token] = true
	}
	var best *ocr.Span
	bestScore := 0.0
	for i := range spans {
		span := &spans[i]
		if imageIndex >= 0 && span.ImageIndex != imageIndex {
			continue
		}
		spanTokens := make(map[string]bool)
		for _, token := range Tokenize(span.Text) {
			spanTokens[token] = true
		}
		if len(spanTokens) == 0 {
			continue
		}
		overlap := 0
		for token := range tokenSet {
			if spanTokens[token] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		score := float64(overlap) / float64(len(tokenSet))
		if score > bestScore {
			bestScore = score
			best = span
		}
	}
	return best
}

// VerifyTokens computes token coverage of the candidate against the spans.
func VerifyTokens(tokens []string, spans []ocr.Span, imageIndex int) label.TokenVerification {
	if len(tokens) == 0 {
		return label.TokenVerification{}
	}
	spanTokens := SpanTokenSet(spans, imageIndex)
	matched := 0
	for _, token := range tokens {
		if spanTokens[token] {
			matched++
		}
	}
	coverage := round3(float64(matched) / float64(len(tokens)))
	return label.TokenVerification{
		Matched:           matched > 0,
		Coverage:          coverage,
		TokenCount:        len(tokens),
		MatchedTokenCount: matched,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
