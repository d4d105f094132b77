package rules

import "strings"

func resolveBeverageType(ctx *RuleContext) (string, bool) {
	prediction := ctx.LabelInfo.BeverageType
	if prediction == nil {
		return "", false
	}
	return string(prediction.BeverageType), true
}

type findingOpts struct {
	severity Severity
	field    string
	evidence map[string]any
}

type findingOpt func(*findingOpts)

func withSeverity(severity Severity) findingOpt {
	return func(o *findingOpts) { o.severity = severity }
}

func withField(field string) findingOpt {
	return func(o *findingOpts) { o.field = field }
}

func withEvidence(evidence map[string]any) findingOpt {
	return func(o *findingOpts) { o.evidence = evidence }
}

func buildFinding(ruleID string, status Status, message string, opts ...findingOpt) Finding {
	resolved := findingOpts{severity: SeverityWarning}
	for _, opt := range opts {
		opt(&resolved)
	}
	return Finding{
		RuleID:   ruleID,
		Status:   status,
		Message:  message,
		Severity: resolved.severity,
		Field:    resolved.field,
		Evidence: resolved.evidence,
	}
}

// requireBeverageType gates a rule on the classified beverage type. A nil
// return means the rule should proceed.
func requireBeverageType(ctx *RuleContext, allowed string, ruleID, field string) *Finding {
	beverageType, ok := resolveBeverageType(ctx)
	if !ok {
		finding := buildFinding(ruleID, StatusNotEvaluated,
			"Beverage type not selected; rule not evaluated.",
			withField(field), withSeverity(SeverityInfo))
		return &finding
	}
	if beverageType != allowed {
		finding := buildFinding(ruleID, StatusNotApplicable,
			"Rule not applicable to the selected beverage type.",
			withField(field), withSeverity(SeverityInfo))
		return &finding
	}
	return nil
}

// presenceRule reports on a field value. required is tri-state: true means
// the field must appear, false means it is known not to apply, nil means
// the requirement could not be determined.
func presenceRule(value string, ruleID, field, presentMessage, missingMessage string, required *bool, notApplicableMessage, notEvaluatedMessage string) Finding {
	if value != "" {
		return buildFinding(ruleID, StatusPass, presentMessage,
			withField(field), withSeverity(SeverityInfo))
	}
	if required != nil && *required {
		return buildFinding(ruleID, StatusFail, missingMessage, withField(field))
	}
	if required != nil {
		message := notApplicableMessage
		if message == "" {
			message = missingMessage
		}
		return buildFinding(ruleID, StatusNotApplicable, message,
			withField(field), withSeverity(SeverityInfo))
	}
	message := notEvaluatedMessage
	if message == "" {
		message = missingMessage
	}
	return buildFinding(ruleID, StatusNotEvaluated, message,
		withField(field), withSeverity(SeverityInfo))
}

// isImported resolves the application's source of product. nil means the
// applicant did not say.
func isImported(application *ApplicationFields) *bool {
	if application == nil || len(application.SourceOfProduct) == 0 {
		return nil
	}
	imported := false
	domestic := false
	for _, item := range application.SourceOfProduct {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "imported":
			imported = true
		case "domestic":
			domestic = true
		}
	}
	if imported {
		return &imported
	}
	if domestic {
		result := false
		return &result
	}
	return nil
}
