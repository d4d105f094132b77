package extract

import (
	"testing"

	"github.com/jkassemi/ttb-labeling/ocr"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Old Tom Gin", []string{"OLD", "TOM", "GIN"}},
		{"ALC. 12% BY VOL.", []string{"ALC", "12", "BY", "VOL"}},
		{"A 5 B", []string{"5"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
			}
		}
	}
}

func spanAt(text string, imageIndex int, x0, y0, x1, y1 float64) ocr.Span {
	return ocr.Span{Text: text, ImageIndex: imageIndex, BBox: ocr.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}}
}

func TestVerifyTokensFullCoverage(t *testing.T) {
	spans := []ocr.Span{
		spanAt("OLD TOM", 0, 0, 0, 100, 20),
		spanAt("GIN", 0, 0, 30, 60, 50),
	}
	got := VerifyTokens(Tokenize("Old Tom Gin"), spans, -1)
	if !got.Matched || got.Coverage != 1 || got.TokenCount != 3 || got.MatchedTokenCount != 3 {
		t.Fatalf("VerifyTokens = %+v", got)
	}
}

func TestVerifyTokensPartialCoverage(t *testing.T) {
	spans := []ocr.Span{spanAt("OLD TOM", 0, 0, 0, 100, 20)}
	got := VerifyTokens(Tokenize("Old Tom Gin"), spans, -1)
	if !got.Matched {
		t.Error("partial overlap should still report matched")
	}
	if got.Coverage != 0.667 {
		t.Errorf("Coverage = %v, want 0.667", got.Coverage)
	}
}

func TestVerifyTokensImageScoped(t *testing.T) {
	spans := []ocr.Span{spanAt("OLD TOM GIN", 1, 0, 0, 100, 20)}
	got := VerifyTokens(Tokenize("Old Tom Gin"), spans, 0)
	if got.Matched {
		t.Fatalf("spans on other images must not count: %+v", got)
	}
}

func TestVerifyTokensNoTokens(t *testing.T) {
	got := VerifyTokens(nil, []ocr.Span{spanAt("X", 0, 0, 0, 1, 1)}, -1)
	if got.Matched || got.TokenCount != 0 {
		t.Fatalf("VerifyTokens = %+v", got)
	}
}

func TestBestSpanPrefersHighestOverlap(t *testing.T) {
	spans := []ocr.Span{
		spanAt("TOM COLLINS", 0, 0, 0, 100, 20),
		spanAt("OLD TOM GIN", 0, 0, 40, 100, 60),
	}
	best := BestSpan(Tokenize("Old Tom Gin"), spans, -1)
	if best == nil {
		t.Fatal("expected a span")
	}
	if best.BBox.Y0 != 40 {
		t.Fatalf("picked %+v, want the fuller match", best)
	}
}

func TestBestSpanTieKeepsEarlier(t *testing.T) {
	spans := []ocr.Span{
		spanAt("OLD TOM", 0, 0, 0, 100, 20),
		spanAt("TOM OLD", 0, 0, 40, 100, 60),
	}
	best := BestSpan(Tokenize("Old Tom Gin"), spans, -1)
	if best == nil || best.BBox.Y0 != 0 {
		t.Fatalf("picked %+v, ties should keep the earlier span", best)
	}
}

func TestBestSpanNoOverlap(t *testing.T) {
	spans := []ocr.Span{spanAt("NAPA VALLEY", 0, 0, 0, 100, 20)}
	if best := BestSpan(Tokenize("Old Tom Gin"), spans, -1); best != nil {
		t.Fatalf("expected nil, got %+v", best)
	}
}
