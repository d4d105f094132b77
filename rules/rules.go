// Package rules evaluates the label compliance checklist. Every rule
// inspects the extracted LabelInfo (plus optional application fields) and
// returns exactly one finding; the engine runs the common rules first, then
// the beverage-specific groups.
package rules

import (
	"image"

	"github.com/jkassemi/ttb-labeling/config"
	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/ocr"
)

// Status is the outcome of one checklist rule.
type Status string

const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusNeedsReview   Status = "needs_review"
	StatusNotApplicable Status = "not_applicable"
	StatusNotEvaluated  Status = "not_evaluated"
)

// Severity grades how serious a finding is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is a single checklist outcome.
type Finding struct {
	RuleID   string         `json:"rule_id"`
	Status   Status         `json:"status"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Field    string         `json:"field,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

// ApplicationFields are the values the applicant entered on the COLA
// application, used for context-specific checks. Empty strings mean the
// applicant left the field blank.
type ApplicationFields struct {
	BeverageType        label.BeverageType `json:"beverage_type,omitempty"`
	BrandName           string             `json:"brand_name,omitempty"`
	ClassType           string             `json:"class_type,omitempty"`
	AlcoholContent      string             `json:"alcohol_content,omitempty"`
	NetContents         string             `json:"net_contents,omitempty"`
	NameAndAddress      string             `json:"name_and_address,omitempty"`
	WarningText         string             `json:"warning_text,omitempty"`
	GrapeVarietals      string             `json:"grape_varietals,omitempty"`
	AppellationOfOrigin string             `json:"appellation_of_origin,omitempty"`
	SourceOfProduct     []string           `json:"source_of_product,omitempty"`
}

// RuleContext carries the inputs every rule may inspect.
type RuleContext struct {
	LabelInfo   label.LabelInfo
	Application *ApplicationFields
	Config      *config.Config
	Spans       []ocr.Span
	Images      []image.Image
}

// Rule evaluates one checklist requirement.
type Rule func(*RuleContext) Finding

// Result is the checklist evaluation output.
type Result struct {
	Findings []Finding `json:"findings"`
}

// CommonRules run for every application regardless of beverage type.
var CommonRules = []Rule{
	BeverageTypePresence,
	WarningText,
	NameAndAddressPresence,
	BrandNamePresence,
	ClassTypePresence,
	AlcoholContentPresence,
	NetContentsPresence,
	CountryOfOriginPresence,
	SulfiteDeclarationPresence,
	FDAndCYellow5Presence,
	CarminePresence,
}

// DistilledSpiritsRules gate themselves on the distilled spirits type.
var DistilledSpiritsRules = []Rule{
	FieldOfVisionCheck,
	StatementOfCompositionPresence,
	ColoringMaterialsPresence,
	TreatmentWithWoodPresence,
	CommodityStatementNeutralSpiritsPresence,
	CommodityStatementDistilledFromPresence,
	StateOfDistillationPresence,
	StatementOfAgePresence,
}

// WineRules gate themselves on the wine type.
var WineRules = []Rule{
	WineDesignationPresent,
	GrapeVarietals,
	AppellationPresence,
	PercentageOfForeignWinePresence,
}

// AllRules is the full ordered checklist.
func AllRules() []Rule {
	rules := make([]Rule, 0, len(CommonRules)+len(DistilledSpiritsRules)+len(WineRules))
	rules = append(rules, CommonRules...)
	rules = append(rules, DistilledSpiritsRules...)
	rules = append(rules, WineRules...)
	return rules
}

// Options are the optional inputs to Evaluate.
type Options struct {
	Application *ApplicationFields
	Config      *config.Config
	Spans       []ocr.Span
	Images      []image.Image
}

// Evaluate runs the full checklist for a label.
func Evaluate(info label.LabelInfo, opts Options) Result {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := &RuleContext{
		LabelInfo:   info,
		Application: opts.Application,
		Config:      cfg,
		Spans:       opts.Spans,
		Images:      opts.Images,
	}
	rules := AllRules()
	findings := make([]Finding, 0, len(rules))
	for _, rule := range rules {
		findings = append(findings, rule(ctx))
	}
	return Result{Findings: findings}
}
