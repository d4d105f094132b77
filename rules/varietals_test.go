package rules

import (
	"strings"
	"testing"

	"github.com/jkassemi/ttb-labeling/label"
)

func TestNormalizeGrapeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Torrontés Riojano", "torrontesriojano"},
		{"Xarel·lo", "xarello"},
		{"Schönburger", "schonburger"},
		{"L'Acadie Blanc", "lacadieblanc"},
		{"  Falanghina  ", "falanghina"},
	}
	for _, tt := range tests {
		if got := NormalizeGrapeName(tt.name); got != tt.want {
			t.Errorf("NormalizeGrapeName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSplitGrapeVarietals(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"Falanghina", []string{"Falanghina"}},
		{"Falanghina and Greco", []string{"Falanghina", "Greco"}},
		{"Falanghina & Greco", []string{"Falanghina", "Greco"}},
		{"Falanghina/Greco, Pecorino", []string{"Falanghina", "Greco", "Pecorino"}},
	}
	for _, tt := range tests {
		got := SplitGrapeVarietals(tt.value)
		if len(got) != len(tt.want) {
			t.Errorf("SplitGrapeVarietals(%q) = %v, want %v", tt.value, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitGrapeVarietals(%q)[%d] = %q, want %q", tt.value, i, got[i], tt.want[i])
			}
		}
	}
}

func wineWithVarietals(varietals, appellation string) label.LabelInfo {
	fields := map[string]string{}
	if varietals != "" {
		fields[label.FieldGrapeVarietals] = varietals
	}
	if appellation != "" {
		fields[label.FieldAppellationOfOrigin] = appellation
	}
	return infoWithFields(label.BeverageWine, fields)
}

func domesticApplication() *ApplicationFields {
	return &ApplicationFields{SourceOfProduct: []string{"domestic"}}
}

func TestGrapeVarietalsApprovedDomestic(t *testing.T) {
	info := wineWithVarietals("Torrontés Riojano", "Napa Valley")
	finding := findingByID(t, Evaluate(info, Options{Application: domesticApplication()}), "grape_varietals")
	if finding.Status != StatusPass {
		t.Fatalf("Status = %q (%s), want pass", finding.Status, finding.Message)
	}
	if finding.Evidence["appellation_present"] != true {
		t.Errorf("evidence = %v", finding.Evidence)
	}
}

func TestGrapeVarietalsUnknownDomestic(t *testing.T) {
	info := wineWithVarietals("Concord Imperial", "Napa Valley")
	finding := findingByID(t, Evaluate(info, Options{Application: domesticApplication()}), "grape_varietals")
	if finding.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", finding.Status)
	}
	unknown, ok := finding.Evidence["unknown_varietals"].([]string)
	if !ok || len(unknown) != 1 || unknown[0] != "Concord Imperial" {
		t.Errorf("unknown_varietals = %v", finding.Evidence["unknown_varietals"])
	}
}

func TestGrapeVarietalsImported(t *testing.T) {
	info := wineWithVarietals("Concord Imperial", "Bordeaux")
	application := &ApplicationFields{SourceOfProduct: []string{"imported"}}
	finding := findingByID(t, Evaluate(info, Options{Application: application}), "grape_varietals")
	if finding.Status != StatusPass {
		t.Fatalf("Status = %q, want pass", finding.Status)
	}
	if !strings.Contains(finding.Message, "not restricted to the domestic varietal list") {
		t.Errorf("Message = %q", finding.Message)
	}
}

func TestGrapeVarietalsUnknownSource(t *testing.T) {
	info := wineWithVarietals("Falanghina", "Campania")
	finding := findingByID(t, Evaluate(info, Options{}), "grape_varietals")
	if finding.Status != StatusNotEvaluated {
		t.Fatalf("Status = %q, want not_evaluated", finding.Status)
	}
}

func TestGrapeVarietalsMissingAppellation(t *testing.T) {
	info := wineWithVarietals("Falanghina", "")
	finding := findingByID(t, Evaluate(info, Options{Application: domesticApplication()}), "grape_varietals")
	if finding.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", finding.Status)
	}
	if finding.Field != label.FieldAppellationOfOrigin {
		t.Errorf("Field = %q, the finding should point at the appellation", finding.Field)
	}
	if !strings.Contains(finding.Message, "Appellation not detected") {
		t.Errorf("Message = %q", finding.Message)
	}
}

func TestGrapeVarietalsMissing(t *testing.T) {
	info := infoWithFields(label.BeverageWine, nil)
	finding := findingByID(t, Evaluate(info, Options{Application: domesticApplication()}), "grape_varietals")
	if finding.Status != StatusFail {
		t.Fatalf("Status = %q, want fail", finding.Status)
	}
}
