package vlm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var fencedJSONRE = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls the last valid JSON object out of a model response,
// tolerating fenced blocks and surrounding prose.
func ExtractJSON(text string) (map[string]any, error) {
	if matches := fencedJSONRE.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		for i := len(matches) - 1; i >= 0; i-- {
			var payload map[string]any
			if err := json.Unmarshal([]byte(matches[i][1]), &payload); err == nil {
				return payload, nil
			}
		}
	}

	var parsed []map[string]any
	index := 0
	for {
		offset := strings.Index(text[index:], "{")
		if offset == -1 {
			break
		}
		index += offset
		dec := json.NewDecoder(strings.NewReader(text[index:]))
		var payload map[string]any
		if err := dec.Decode(&payload); err != nil {
			index++
			continue
		}
		parsed = append(parsed, payload)
		end := int(dec.InputOffset())
		if end < 1 {
			end = 1
		}
		index += end
	}
	if len(parsed) > 0 {
		return parsed[len(parsed)-1], nil
	}
	return nil, fmt.Errorf("model response did not contain JSON")
}

// normalizeValue flattens a mixed-shape model value into a clean string.
// Returns "" when the value carries nothing usable.
func normalizeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			if cleaned := strings.TrimSpace(text); cleaned != "" {
				return cleaned
			}
		}
		numeric := v["value"]
		if numeric == nil {
			return ""
		}
		if unit, ok := v["unit"].(string); ok && unit != "" {
			return strings.TrimSpace(fmt.Sprintf("%v %s", numeric, unit))
		}
		return strings.TrimSpace(fmt.Sprintf("%v", numeric))
	case []any:
		var parts []string
		for _, item := range v {
			if part := strings.TrimSpace(fmt.Sprintf("%v", item)); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, " ")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		cleaned := strings.TrimSpace(v)
		switch strings.ToLower(cleaned) {
		case "", "null", "none", "n/a":
			return ""
		}
		return cleaned
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// coerceFloat turns numeric-looking inputs into a float. Strings with a
// single decimal comma ("12,5") are read as decimals; other commas are
// treated as thousands separators.
func coerceFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		f := v
		return &f
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
		return nil
	case string:
		cleaned := strings.TrimSpace(v)
		if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
			parts := strings.Split(cleaned, ",")
			if len(parts) == 2 && isDigits(parts[0]) && isDigits(parts[1]) && len(parts[1]) <= 2 {
				cleaned = parts[0] + "." + parts[1]
			} else {
				cleaned = strings.ReplaceAll(cleaned, ",", "")
			}
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func extractTextValue(value any) string {
	if m, ok := value.(map[string]any); ok {
		if text, ok := m["text"].(string); ok {
			if cleaned := strings.TrimSpace(text); cleaned != "" {
				return cleaned
			}
		}
	}
	return normalizeValue(value)
}

// parseFieldValue converts one raw field payload into a FieldValue, or nil
// when the payload carries nothing.
func parseFieldValue(raw any, numeric bool) *FieldValue {
	text := extractTextValue(raw)
	var numericValue *float64
	unit := ""
	if numeric {
		source := raw
		if m, ok := raw.(map[string]any); ok {
			source = m["value"]
			if candidate, ok := m["unit"].(string); ok {
				unit = strings.TrimSpace(candidate)
			}
		}
		numericValue = coerceFloat(source)
	}
	if text == "" && numericValue == nil && unit == "" {
		return nil
	}
	return &FieldValue{Text: text, NumericValue: numericValue, Unit: unit}
}

func normalizeBeverageType(value any) string {
	if m, ok := value.(map[string]any); ok {
		if raw := m["value"]; raw != nil {
			return normalizeValue(raw)
		}
	}
	return normalizeValue(value)
}

// ParseResponse interprets a raw model response into a Result keyed by the
// request field names.
func ParseResponse(text string) (Result, error) {
	payload, err := ExtractJSON(text)
	if err != nil {
		return Result{}, err
	}
	result := Result{Fields: make(map[string]*FieldValue)}
	for _, field := range RequestFields() {
		raw := payload[field]
		if field == beverageTypeKey {
			result.BeverageType = normalizeBeverageType(raw)
			continue
		}
		result.Fields[field] = parseFieldValue(raw, NumericFields[field])
	}
	return result, nil
}
