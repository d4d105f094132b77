package label

// Field names shared with the model collaborator instruction and the
// checklist rules.
const (
	FieldBrandName                        = "brand_name"
	FieldClassType                        = "class_type"
	FieldStatementOfComposition           = "statement_of_composition"
	FieldGrapeVarietals                   = "grape_varietals"
	FieldAppellationOfOrigin              = "appellation_of_origin"
	FieldPercentageOfForeignWine          = "percentage_of_foreign_wine"
	FieldAlcoholContent                   = "alcohol_content"
	FieldNetContents                      = "net_contents"
	FieldNameAndAddress                   = "name_and_address"
	FieldWarningText                      = "warning_text"
	FieldCountryOfOrigin                  = "country_of_origin"
	FieldSulfiteDeclaration               = "sulfite_declaration"
	FieldColoringMaterials                = "coloring_materials"
	FieldFDAndCYellow5                    = "fd_and_c_yellow_5"
	FieldCarmine                          = "carmine"
	FieldTreatmentWithWood                = "treatment_with_wood"
	FieldCommodityStatementNeutralSpirits = "commodity_statement_neutral_spirits"
	FieldCommodityStatementDistilledFrom  = "commodity_statement_distilled_from"
	FieldStateOfDistillation              = "state_of_distillation"
	FieldStatementOfAge                   = "statement_of_age"
)

var fieldNames = []string{
	FieldBrandName,
	FieldClassType,
	FieldStatementOfComposition,
	FieldGrapeVarietals,
	FieldAppellationOfOrigin,
	FieldPercentageOfForeignWine,
	FieldAlcoholContent,
	FieldNetContents,
	FieldNameAndAddress,
	FieldWarningText,
	FieldCountryOfOrigin,
	FieldSulfiteDeclaration,
	FieldColoringMaterials,
	FieldFDAndCYellow5,
	FieldCarmine,
	FieldTreatmentWithWood,
	FieldCommodityStatementNeutralSpirits,
	FieldCommodityStatementDistilledFrom,
	FieldStateOfDistillation,
	FieldStatementOfAge,
}

// FieldNames returns the label field names in declaration order.
func FieldNames() []string {
	names := make([]string, len(fieldNames))
	copy(names, fieldNames)
	return names
}

// LabelInfo holds the resolved fields extracted from one application's label
// images. Every declared field always carries exactly one FieldExtraction,
// defaulting to missing. Instances are treated as immutable: updates produce
// a new LabelInfo via the With* helpers.
type LabelInfo struct {
	BrandName                        FieldExtraction             `json:"brand_name"`
	ClassType                        FieldExtraction             `json:"class_type"`
	StatementOfComposition           FieldExtraction             `json:"statement_of_composition"`
	GrapeVarietals                   FieldExtraction             `json:"grape_varietals"`
	AppellationOfOrigin              FieldExtraction             `json:"appellation_of_origin"`
	PercentageOfForeignWine          FieldExtraction             `json:"percentage_of_foreign_wine"`
	AlcoholContent                   FieldExtraction             `json:"alcohol_content"`
	NetContents                      FieldExtraction             `json:"net_contents"`
	NameAndAddress                   FieldExtraction             `json:"name_and_address"`
	WarningText                      FieldExtraction             `json:"warning_text"`
	CountryOfOrigin                  FieldExtraction             `json:"country_of_origin"`
	SulfiteDeclaration               FieldExtraction             `json:"sulfite_declaration"`
	ColoringMaterials                FieldExtraction             `json:"coloring_materials"`
	FDAndCYellow5                    FieldExtraction             `json:"fd_and_c_yellow_5"`
	Carmine                          FieldExtraction             `json:"carmine"`
	TreatmentWithWood                FieldExtraction             `json:"treatment_with_wood"`
	CommodityStatementNeutralSpirits FieldExtraction             `json:"commodity_statement_neutral_spirits"`
	CommodityStatementDistilledFrom  FieldExtraction             `json:"commodity_statement_distilled_from"`
	StateOfDistillation              FieldExtraction             `json:"state_of_distillation"`
	StatementOfAge                   FieldExtraction             `json:"statement_of_age"`
	BeverageType                     *BeverageTypeClassification `json:"beverage_type,omitempty"`
}

// NewLabelInfo constructs a LabelInfo with every field defaulted to missing.
func NewLabelInfo() LabelInfo {
	var info LabelInfo
	for _, name := range fieldNames {
		*info.slot(name) = MissingField()
	}
	return info
}

func (l *LabelInfo) slot(name string) *FieldExtraction {
	switch name {
	case FieldBrandName:
		return &l.BrandName
	case FieldClassType:
		return &l.ClassType
	case FieldStatementOfComposition:
		return &l.StatementOfComposition
	case FieldGrapeVarietals:
		return &l.GrapeVarietals
	case FieldAppellationOfOrigin:
		return &l.AppellationOfOrigin
	case FieldPercentageOfForeignWine:
		return &l.PercentageOfForeignWine
	case FieldAlcoholContent:
		return &l.AlcoholContent
	case FieldNetContents:
		return &l.NetContents
	case FieldNameAndAddress:
		return &l.NameAndAddress
	case FieldWarningText:
		return &l.WarningText
	case FieldCountryOfOrigin:
		return &l.CountryOfOrigin
	case FieldSulfiteDeclaration:
		return &l.SulfiteDeclaration
	case FieldColoringMaterials:
		return &l.ColoringMaterials
	case FieldFDAndCYellow5:
		return &l.FDAndCYellow5
	case FieldCarmine:
		return &l.Carmine
	case FieldTreatmentWithWood:
		return &l.TreatmentWithWood
	case FieldCommodityStatementNeutralSpirits:
		return &l.CommodityStatementNeutralSpirits
	case FieldCommodityStatementDistilledFrom:
		return &l.CommodityStatementDistilledFrom
	case FieldStateOfDistillation:
		return &l.StateOfDistillation
	case FieldStatementOfAge:
		return &l.StatementOfAge
	}
	return nil
}

// Field returns the extraction for a declared field name.
func (l LabelInfo) Field(name string) (FieldExtraction, bool) {
	slot := l.slot(name)
	if slot == nil {
		return FieldExtraction{}, false
	}
	return *slot, true
}

// WithField returns a copy of the LabelInfo with the named field replaced.
// Unknown names return the receiver unchanged.
func (l LabelInfo) WithField(name string, field FieldExtraction) LabelInfo {
	slot := l.slot(name)
	if slot == nil {
		return l
	}
	*slot = field
	return l
}

// WithBeverageType returns a copy of the LabelInfo with the classification
// replaced.
func (l LabelInfo) WithBeverageType(prediction *BeverageTypeClassification) LabelInfo {
	l.BeverageType = prediction
	return l
}
