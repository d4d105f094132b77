package vlm

import (
	"strings"
	"testing"
)

func TestExtractJSONFenced(t *testing.T) {
	text := "Here is the extraction:\n```json\n{\"brand_name\": {\"text\": \"OLD TOM\"}}\n```\nDone."
	payload, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if _, ok := payload["brand_name"]; !ok {
		t.Fatalf("brand_name missing from %v", payload)
	}
}

func TestExtractJSONEmbedded(t *testing.T) {
	text := `The label shows {"brand_name": {"text": "FIRST"}} but on review {"brand_name": {"text": "SECOND"}}`
	payload, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	field, ok := payload["brand_name"].(map[string]any)
	if !ok {
		t.Fatalf("brand_name missing from %v", payload)
	}
	if field["text"] != "SECOND" {
		t.Errorf("kept %v, the last object should win", field["text"])
	}
}

func TestExtractJSONNone(t *testing.T) {
	if _, err := ExtractJSON("no structured output here"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		value any
		want  float64
		ok    bool
	}{
		{12.5, 12.5, true},
		{"12,5", 12.5, true},
		{"1,500", 1500, true},
		{"45", 45, true},
		{" 13.9 ", 13.9, true},
		{"alc 12%", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got := coerceFloat(tt.value)
		if tt.ok != (got != nil) {
			t.Errorf("coerceFloat(%v) = %v, want ok=%v", tt.value, got, tt.ok)
			continue
		}
		if got != nil && *got != tt.want {
			t.Errorf("coerceFloat(%v) = %v, want %v", tt.value, *got, tt.want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"null", ""},
		{"N/A", ""},
		{" 750 mL ", "750 mL"},
		{map[string]any{"text": "ALC. 12% BY VOL."}, "ALC. 12% BY VOL."},
		{map[string]any{"value": 12.0, "unit": "% ABV"}, "12 % ABV"},
		{[]any{"Cabernet", "Sauvignon"}, "Cabernet Sauvignon"},
		{45.5, "45.5"},
	}
	for _, tt := range tests {
		if got := normalizeValue(tt.value); got != tt.want {
			t.Errorf("normalizeValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestParseResponse(t *testing.T) {
	text := "```json\n" + `{
  "brand_name": {"text": "CHATEAU NOIR"},
  "alcohol_content": {"text": "ALC. 13.5% BY VOL.", "value": 13.5, "unit": "% ABV"},
  "net_contents": null,
  "beverage_type": {"value": "wine"}
}` + "\n```"
	result, err := ParseResponse(text)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if result.BeverageType != "wine" {
		t.Errorf("BeverageType = %q, want wine", result.BeverageType)
	}
	brand := result.Fields["brand_name"]
	if brand == nil || brand.Text != "CHATEAU NOIR" {
		t.Fatalf("brand_name = %+v", brand)
	}
	abv := result.Fields["alcohol_content"]
	if abv == nil || abv.NumericValue == nil || *abv.NumericValue != 13.5 || abv.Unit != "% ABV" {
		t.Fatalf("alcohol_content = %+v", abv)
	}
	if result.Fields["net_contents"] != nil {
		t.Errorf("net_contents should be nil, got %+v", result.Fields["net_contents"])
	}
	if result.Fields["warning_text"] != nil {
		t.Errorf("absent fields should be nil, got %+v", result.Fields["warning_text"])
	}
}

func TestPromptListsEveryRequestField(t *testing.T) {
	prompt := Prompt()
	for _, field := range RequestFields() {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt does not mention %q", field)
		}
	}
}
