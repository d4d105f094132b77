// Package classify predicts the product category of a label from its text,
// using keyword taxonomies derived from TTB class/type guidance.
package classify

// SpiritsClassKeywords are class designations for distilled spirits.
var SpiritsClassKeywords = []string{
	"vodka",
	"gin",
	"rum",
	"whiskey",
	"whisky",
	"bourbon",
	"rye",
	"tequila",
	"mezcal",
	"brandy",
	"liqueur",
	"cordial",
	"schnapps",
	"absinthe",
	"spirit",
	"liqueurs",
	"spirits",
}

// MaltClassKeywords are class designations for malt beverages.
var MaltClassKeywords = []string{
	"malt beverage",
	"malt liquor",
	"beer",
	"ale",
	"lager",
	"lager beer",
	"porter",
	"stout",
	"near beer",
	"cereal beverage",
}

// WineClassKeywords are class designations for wine.
var WineClassKeywords = []string{
	"wine",
	"red wine",
	"white wine",
	"rose",
	"sparkling wine",
	"champagne",
	"dessert wine",
	"table wine",
	"fortified wine",
	"port",
	"sherry",
	"vermouth",
	"sake",
}

// ClassKeywords is the combined class designation list in taxonomy order.
func ClassKeywords() []string {
	keywords := make([]string, 0, len(SpiritsClassKeywords)+len(MaltClassKeywords)+len(WineClassKeywords))
	keywords = append(keywords, SpiritsClassKeywords...)
	keywords = append(keywords, MaltClassKeywords...)
	keywords = append(keywords, WineClassKeywords...)
	return keywords
}
