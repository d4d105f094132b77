package rules

import "github.com/jkassemi/ttb-labeling/label"

func BrandNamePresence(ctx *RuleContext) Finding {
	if ctx.LabelInfo.BrandName.Value == "" {
		return buildFinding("brand_name_presence", StatusFail,
			"Brand name not detected on the label.",
			withField(label.FieldBrandName))
	}
	return buildFinding("brand_name_presence", StatusPass,
		"Brand name detected.",
		withField(label.FieldBrandName), withSeverity(SeverityInfo))
}

func AlcoholContentPresence(ctx *RuleContext) Finding {
	field := ctx.LabelInfo.AlcoholContent
	if field.Empty() {
		return buildFinding("alcohol_content_presence", StatusFail,
			"Alcohol content not detected.",
			withField(label.FieldAlcoholContent))
	}
	return buildFinding("alcohol_content_presence", StatusPass,
		"Alcohol content detected.",
		withField(label.FieldAlcoholContent), withSeverity(SeverityInfo))
}

func NetContentsPresence(ctx *RuleContext) Finding {
	field := ctx.LabelInfo.NetContents
	if field.Empty() {
		return buildFinding("net_contents_presence", StatusFail,
			"Net contents statement not detected.",
			withField(label.FieldNetContents))
	}
	return buildFinding("net_contents_presence", StatusPass,
		"Net contents statement detected.",
		withField(label.FieldNetContents), withSeverity(SeverityInfo))
}

func NameAndAddressPresence(ctx *RuleContext) Finding {
	if ctx.LabelInfo.NameAndAddress.Value != "" {
		return buildFinding("name_and_address_presence", StatusPass,
			"Name and address statement detected.",
			withField(label.FieldNameAndAddress), withSeverity(SeverityInfo))
	}
	return buildFinding("name_and_address_presence", StatusFail,
		"Name and address statement not detected.",
		withField(label.FieldNameAndAddress))
}

func CountryOfOriginPresence(ctx *RuleContext) Finding {
	return presenceRule(ctx.LabelInfo.CountryOfOrigin.Value,
		"country_of_origin_presence", label.FieldCountryOfOrigin,
		"Country of origin statement detected.",
		"Country of origin statement not detected.",
		isImported(ctx.Application),
		"Country of origin statement not required for domestic products.",
		"Source of product not provided; cannot determine if country of origin statement is required.")
}

func SulfiteDeclarationPresence(ctx *RuleContext) Finding {
	return presenceRule(ctx.LabelInfo.SulfiteDeclaration.Value,
		"sulfite_declaration_presence", label.FieldSulfiteDeclaration,
		"Sulfite declaration detected.",
		"Sulfite declaration not detected; requirement depends on formulation.",
		nil, "", "")
}

func FDAndCYellow5Presence(ctx *RuleContext) Finding {
	return presenceRule(ctx.LabelInfo.FDAndCYellow5.Value,
		"fd_and_c_yellow_5_presence", label.FieldFDAndCYellow5,
		"FD&C Yellow #5 disclosure detected.",
		"FD&C Yellow #5 disclosure not detected; requirement depends on formulation.",
		nil, "", "")
}

func CarminePresence(ctx *RuleContext) Finding {
	return presenceRule(ctx.LabelInfo.Carmine.Value,
		"carmine_presence", label.FieldCarmine,
		"Carmine/cochineal disclosure detected.",
		"Carmine/cochineal disclosure not detected; requirement depends on formulation.",
		nil, "", "")
}

func StatementOfCompositionPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"statement_of_composition_presence", label.FieldStatementOfComposition); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.StatementOfComposition.Value,
		"statement_of_composition_presence", label.FieldStatementOfComposition,
		"Statement of composition detected.",
		"Statement of composition not detected; required for some distinctive or fanciful designations.",
		nil, "", "")
}

func ColoringMaterialsPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"coloring_materials_presence", label.FieldColoringMaterials); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.ColoringMaterials.Value,
		"coloring_materials_presence", label.FieldColoringMaterials,
		"Coloring materials disclosure detected.",
		"Coloring materials disclosure not detected; requirement depends on formulation.",
		nil, "", "")
}

func TreatmentWithWoodPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"treatment_with_wood_presence", label.FieldTreatmentWithWood); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.TreatmentWithWood.Value,
		"treatment_with_wood_presence", label.FieldTreatmentWithWood,
		"Treatment with wood disclosure detected.",
		"Treatment with wood disclosure not detected; requirement depends on production method.",
		nil, "", "")
}

func CommodityStatementNeutralSpiritsPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"commodity_statement_neutral_spirits_presence", label.FieldCommodityStatementNeutralSpirits); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.CommodityStatementNeutralSpirits.Value,
		"commodity_statement_neutral_spirits_presence", label.FieldCommodityStatementNeutralSpirits,
		"Neutral spirits commodity statement detected.",
		"Neutral spirits commodity statement not detected; requirement depends on formulation.",
		nil, "", "")
}

func CommodityStatementDistilledFromPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"commodity_statement_distilled_from_presence", label.FieldCommodityStatementDistilledFrom); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.CommodityStatementDistilledFrom.Value,
		"commodity_statement_distilled_from_presence", label.FieldCommodityStatementDistilledFrom,
		"Distilled-from commodity statement detected.",
		"Distilled-from commodity statement not detected; requirement depends on formulation.",
		nil, "", "")
}

func StateOfDistillationPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"state_of_distillation_presence", label.FieldStateOfDistillation); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.StateOfDistillation.Value,
		"state_of_distillation_presence", label.FieldStateOfDistillation,
		"State of distillation statement detected.",
		"State of distillation statement not detected; requirement depends on product type.",
		nil, "", "")
}

func StatementOfAgePresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageDistilledSpirits),
		"statement_of_age_presence", label.FieldStatementOfAge); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.StatementOfAge.Value,
		"statement_of_age_presence", label.FieldStatementOfAge,
		"Statement of age detected.",
		"Statement of age not detected; requirement depends on product type and aging.",
		nil, "", "")
}

func WineDesignationPresent(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageWine),
		"wine_designation_presence", label.FieldClassType); gate != nil {
		return *gate
	}
	info := ctx.LabelInfo
	if info.ClassType.Value != "" || info.GrapeVarietals.Value != "" || info.StatementOfComposition.Value != "" {
		return buildFinding("wine_designation_presence", StatusPass,
			"Wine designation detected on the label.",
			withField(label.FieldClassType), withSeverity(SeverityInfo))
	}
	return buildFinding("wine_designation_presence", StatusFail,
		"Wine designation not detected on the label.",
		withField(label.FieldClassType))
}

func AppellationPresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageWine),
		"appellation_presence", label.FieldAppellationOfOrigin); gate != nil {
		return *gate
	}
	if ctx.LabelInfo.AppellationOfOrigin.Value == "" {
		return buildFinding("appellation_presence", StatusFail,
			"Appellation not detected on the label.",
			withField(label.FieldAppellationOfOrigin))
	}
	return buildFinding("appellation_presence", StatusPass,
		"Appellation detected on the label.",
		withField(label.FieldAppellationOfOrigin), withSeverity(SeverityInfo))
}

func PercentageOfForeignWinePresence(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageWine),
		"percentage_of_foreign_wine_presence", label.FieldPercentageOfForeignWine); gate != nil {
		return *gate
	}
	return presenceRule(ctx.LabelInfo.PercentageOfForeignWine.Value,
		"percentage_of_foreign_wine_presence", label.FieldPercentageOfForeignWine,
		"Percentage of foreign wine statement detected.",
		"Percentage of foreign wine statement not detected; requirement depends on labeling.",
		nil, "", "")
}
