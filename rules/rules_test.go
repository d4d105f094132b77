package rules

import (
	"testing"

	"github.com/jkassemi/ttb-labeling/label"
)

func verifiedField(value string) label.FieldExtraction {
	return label.FieldExtraction{Value: value, Source: label.SourceModel, Status: label.StatusVerified}
}

func infoWithFields(beverageType label.BeverageType, fields map[string]string) label.LabelInfo {
	info := label.NewLabelInfo()
	for name, value := range fields {
		info = info.WithField(name, verifiedField(value))
	}
	if beverageType != "" {
		info = info.WithBeverageType(&label.BeverageTypeClassification{
			BeverageType: beverageType,
			Confidence:   1,
		})
	}
	return info
}

func findingByID(t *testing.T, result Result, ruleID string) Finding {
	t.Helper()
	for _, finding := range result.Findings {
		if finding.RuleID == ruleID {
			return finding
		}
	}
	t.Fatalf("no finding for rule %q", ruleID)
	return Finding{}
}

func TestEvaluateRunsEveryRule(t *testing.T) {
	result := Evaluate(label.NewLabelInfo(), Options{})
	want := len(CommonRules) + len(DistilledSpiritsRules) + len(WineRules)
	if len(result.Findings) != want {
		t.Fatalf("got %d findings, want %d", len(result.Findings), want)
	}
	seen := make(map[string]bool)
	for _, finding := range result.Findings {
		if finding.RuleID == "" || finding.Status == "" || finding.Message == "" {
			t.Errorf("incomplete finding: %+v", finding)
		}
		if seen[finding.RuleID] {
			t.Errorf("duplicate rule id %q", finding.RuleID)
		}
		seen[finding.RuleID] = true
	}
}

func TestBeverageGatedRulesWithoutType(t *testing.T) {
	result := Evaluate(label.NewLabelInfo(), Options{})
	for _, ruleID := range []string{"statement_of_age_presence", "grape_varietals", "field_of_vision"} {
		finding := findingByID(t, result, ruleID)
		if finding.Status != StatusNotEvaluated {
			t.Errorf("%s: Status = %q, want not_evaluated", ruleID, finding.Status)
		}
	}
}

func TestBeverageGatedRulesWrongType(t *testing.T) {
	info := infoWithFields(label.BeverageWine, nil)
	result := Evaluate(info, Options{})
	finding := findingByID(t, result, "statement_of_age_presence")
	if finding.Status != StatusNotApplicable {
		t.Errorf("spirits rule on wine: Status = %q, want not_applicable", finding.Status)
	}
	spirits := infoWithFields(label.BeverageDistilledSpirits, nil)
	result = Evaluate(spirits, Options{})
	finding = findingByID(t, result, "grape_varietals")
	if finding.Status != StatusNotApplicable {
		t.Errorf("wine rule on spirits: Status = %q, want not_applicable", finding.Status)
	}
}

func TestPresenceRules(t *testing.T) {
	info := infoWithFields(label.BeverageDistilledSpirits, map[string]string{
		label.FieldBrandName:      "OLD TOM",
		label.FieldAlcoholContent: "ALC. 45% BY VOL.",
		label.FieldNetContents:    "750 mL",
		label.FieldNameAndAddress: "DISTILLED BY OLD TOM CO, PORTLAND, OR",
	})
	result := Evaluate(info, Options{})
	for ruleID, want := range map[string]Status{
		"brand_name_presence":       StatusPass,
		"alcohol_content_presence":  StatusPass,
		"net_contents_presence":     StatusPass,
		"name_and_address_presence": StatusPass,
	} {
		if got := findingByID(t, result, ruleID).Status; got != want {
			t.Errorf("%s: Status = %q, want %q", ruleID, got, want)
		}
	}

	empty := infoWithFields(label.BeverageDistilledSpirits, nil)
	result = Evaluate(empty, Options{})
	for _, ruleID := range []string{"brand_name_presence", "alcohol_content_presence", "net_contents_presence", "name_and_address_presence"} {
		if got := findingByID(t, result, ruleID).Status; got != StatusFail {
			t.Errorf("%s: Status = %q, want fail", ruleID, got)
		}
	}
}

func TestFormulationDependentRulesAreInformational(t *testing.T) {
	result := Evaluate(label.NewLabelInfo(), Options{})
	for _, ruleID := range []string{"sulfite_declaration_presence", "fd_and_c_yellow_5_presence", "carmine_presence"} {
		finding := findingByID(t, result, ruleID)
		if finding.Status != StatusNotEvaluated {
			t.Errorf("%s: Status = %q, want not_evaluated", ruleID, finding.Status)
		}
		if finding.Severity != SeverityInfo {
			t.Errorf("%s: Severity = %q, want info", ruleID, finding.Severity)
		}
	}
}

func TestCountryOfOriginDependsOnSource(t *testing.T) {
	info := label.NewLabelInfo()

	imported := Evaluate(info, Options{Application: &ApplicationFields{SourceOfProduct: []string{"imported"}}})
	if got := findingByID(t, imported, "country_of_origin_presence").Status; got != StatusFail {
		t.Errorf("imported without statement: Status = %q, want fail", got)
	}

	domestic := Evaluate(info, Options{Application: &ApplicationFields{SourceOfProduct: []string{"domestic"}}})
	if got := findingByID(t, domestic, "country_of_origin_presence").Status; got != StatusNotApplicable {
		t.Errorf("domestic without statement: Status = %q, want not_applicable", got)
	}

	unknown := Evaluate(info, Options{})
	if got := findingByID(t, unknown, "country_of_origin_presence").Status; got != StatusNotEvaluated {
		t.Errorf("unknown source without statement: Status = %q, want not_evaluated", got)
	}

	withStatement := infoWithFields("", map[string]string{label.FieldCountryOfOrigin: "PRODUCT OF FRANCE"})
	present := Evaluate(withStatement, Options{Application: &ApplicationFields{SourceOfProduct: []string{"imported"}}})
	if got := findingByID(t, present, "country_of_origin_presence").Status; got != StatusPass {
		t.Errorf("imported with statement: Status = %q, want pass", got)
	}
}

func TestIsImported(t *testing.T) {
	if isImported(nil) != nil {
		t.Error("nil application must resolve to unknown")
	}
	if isImported(&ApplicationFields{}) != nil {
		t.Error("empty source list must resolve to unknown")
	}
	if got := isImported(&ApplicationFields{SourceOfProduct: []string{"domestic"}}); got == nil || *got {
		t.Error("domestic must resolve to false")
	}
	// Imported wins when the applicant checked both boxes.
	if got := isImported(&ApplicationFields{SourceOfProduct: []string{"domestic", "imported"}}); got == nil || !*got {
		t.Error("imported must win over domestic")
	}
}
