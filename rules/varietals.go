package rules

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jkassemi/ttb-labeling/label"
)

// Grape varieties administratively approved for domestic wine labels,
// per the TTB list of grape variety designations.
var approvedVarietals = []string{
	"Albillo Mayor",
	"Alexander",
	"Ambulo Blanc",
	"Amigne",
	"Arandell",
	"Arinarnoa",
	"Aromella",
	"Arvine",
	"Assyrtiko",
	"Baga",
	"Bianchetta Trevigiana",
	"Black Spanish",
	"Bluebell",
	"Bourboulenc",
	"Brachetto",
	"By George",
	"Cabernet Dorsa",
	"Cabernet Volos",
	"Caladoc",
	"Caminante Blanc",
	"Camminare Noir",
	"Cannonau",
	"Caprettone",
	"Carignano",
	"Carricante",
	"Catarratto",
	"Chisago",
	"Ciliegiolo",
	"Cinsault",
	"Clarion",
	"Coda di Volpe",
	"Colorino",
	"Courbu Blanc",
	"Crimson Pearl",
	"Diana",
	"Dobricic",
	"Enchantment",
	"Errante Noir",
	"Esprit",
	"Falanghina",
	"Fleurtai",
	"Frappato",
	"Frontenac Blanc",
	"Garanoir",
	"Garnacha Roja",
	"Geneva Red",
	"Godello",
	"Golubok",
	"Gouais Blanc",
	"Greco",
	"Greco Bianco",
	"Grenache Gris",
	"Gros Manseng",
	"Humagne Rouge",
	"Itasca",
	"Jacquez",
	"Jupiter",
	"King of the North",
	"Koshu",
	"L'Acadie Blanc",
	"Lambrusca di Alessandria",
	"Lomanto",
	"Loureiro",
	"Macabeo",
	"Madeleine Angevine",
	"Madeleine Sylvaner",
	"Marquis",
	"Marselan",
	"Mavron",
	"Mencia",
	"Merlot Kanthus",
	"Moschofilero",
	"Mourtaou",
	"Muscardin",
	"Mustang",
	"Nerello Mascalese",
	"Opportunity",
	"Pallagrello Bianco",
	"Parellada",
	"Paseante Noir",
	"Pecorino",
	"Petite Pearl",
	"Picardan",
	"Pinot Bianco",
	"Pinot Nero",
	"Plymouth",
	"Poulsard",
	"Prieto Picudo",
	"Regent",
	"Ribolla Gialla",
	"Rieslaner",
	"Riverbank",
	"Roditis",
	"Rose of Peru",
	"Rossese",
	"Ruche",
	"San Marco",
	"Saperavi",
	"Sauvignon Kretos",
	"Sauvignon Rytos",
	"Savagnin",
	"Savagnin Blanc",
	"Schiava Grossa",
	"Schioppettino",
	"Schönburger",
	"Sheridan",
	"Somerset Seedless",
	"Soreli",
	"Southern Cross",
	"Terret Noir",
	"Thiakon",
	"Tibouren",
	"Tinta Amarela",
	"Tinta Cao",
	"Tinta Roriz",
	"Torrontés Riojano",
	"Touriga Nacional",
	"Treixadura",
	"Trentina",
	"Trincadeira",
	"Vaccarèse",
	"Valjohn",
	"Verdejo",
	"Verdicchio",
	"Vranac",
	"Xarel·lo",
	"Xynisteri",
}

var varietalSeparators = []string{" & ", " and ", "/", ","}

var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeGrapeName reduces a varietal name to lowercase alphanumerics
// with diacritics stripped, for loose list matching.
func NormalizeGrapeName(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitGrapeVarietals breaks a varietal designation into candidate names.
func SplitGrapeVarietals(value string) []string {
	normalized := value
	for _, sep := range varietalSeparators {
		normalized = strings.ReplaceAll(normalized, sep, "|")
	}
	var parts []string
	for _, part := range strings.Split(normalized, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

var approvedVarietalSet = sync.OnceValue(func() map[string]bool {
	set := make(map[string]bool, len(approvedVarietals))
	for _, name := range approvedVarietals {
		set[NormalizeGrapeName(name)] = true
	}
	return set
})

// GrapeVarietals checks the varietal designation against the approved list
// for domestic wine and requires an appellation alongside any varietal.
func GrapeVarietals(ctx *RuleContext) Finding {
	if gate := requireBeverageType(ctx, string(label.BeverageWine),
		"grape_varietals", label.FieldGrapeVarietals); gate != nil {
		return *gate
	}

	info := ctx.LabelInfo
	value := info.GrapeVarietals.Value
	if value == "" {
		return buildFinding("grape_varietals", StatusFail,
			"Grape varietals not detected on the label.",
			withField(label.FieldGrapeVarietals))
	}

	appellationPresent := info.AppellationOfOrigin.Value != ""
	missingAppellation := !appellationPresent

	approvalStatus := StatusPass
	approvalMessage := "Grape varietal designation is on the approved list."
	var unknownVarietals []string

	imported := isImported(ctx.Application)
	switch {
	case imported == nil:
		approvalStatus = StatusNotEvaluated
		approvalMessage = "Source of product not provided; cannot validate varietal approval."
	case *imported:
		approvalStatus = StatusNotApplicable
		approvalMessage = "Imported wines are not restricted to the domestic varietal list."
	default:
		approved := approvedVarietalSet()
		for _, varietal := range SplitGrapeVarietals(value) {
			if !approved[NormalizeGrapeName(varietal)] {
				unknownVarietals = append(unknownVarietals, varietal)
			}
		}
		if len(unknownVarietals) > 0 {
			approvalStatus = StatusNeedsReview
			approvalMessage = "Grape varietal designation may not be approved for domestic wine."
		}
	}

	evidence := map[string]any{"appellation_present": appellationPresent}
	if imported != nil {
		evidence["imported"] = *imported
	}
	if len(unknownVarietals) > 0 {
		evidence["unknown_varietals"] = unknownVarietals
	}
	evidence["approval_status"] = string(approvalStatus)

	field := label.FieldGrapeVarietals
	if missingAppellation && approvalStatus != StatusNeedsReview {
		field = label.FieldAppellationOfOrigin
	}

	var message string
	var status Status
	switch {
	case missingAppellation && approvalStatus == StatusNeedsReview:
		message = "Appellation not detected with a grape varietal designation, and one or more varietals may not be approved for domestic wine."
		status = StatusNeedsReview
	case missingAppellation:
		message = "Appellation not detected with a grape varietal designation."
		status = StatusNeedsReview
	case approvalStatus == StatusNeedsReview:
		message = approvalMessage
		status = StatusNeedsReview
	case approvalStatus == StatusNotEvaluated:
		message = approvalMessage
		status = StatusNotEvaluated
	default:
		message = approvalMessage
		status = StatusPass
	}

	severity := SeverityWarning
	if status == StatusPass || status == StatusNotApplicable || status == StatusNotEvaluated {
		severity = SeverityInfo
	}
	return buildFinding("grape_varietals", status, message,
		withField(field), withSeverity(severity), withEvidence(evidence))
}
