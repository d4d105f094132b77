// Package fixtures loads collected COLA samples from disk. Each sample
// directory holds a data.json with the application fields plus an images/
// directory with the label scans.
package fixtures

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/rules"
)

// Sample is one collected application: its parsed data.json plus the label
// images that were present on disk.
type Sample struct {
	ID     string
	Data   Data
	Images []image.Image
	Names  []string
}

// Data mirrors the data.json layout written by the sample collector.
type Data struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Synthetic bool           `json:"synthetic"`
	Fields    map[string]any `json:"fields"`
	Images    []string       `json:"images"`
}

// Load reads one sample directory. Missing image files are skipped.
func Load(dir string) (*Sample, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "data.json"))
	if err != nil {
		return nil, fmt.Errorf("fixtures: read data.json: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("fixtures: parse data.json: %w", err)
	}
	sample := &Sample{ID: data.ID, Data: data}
	for _, name := range data.Images {
		path := filepath.Join(dir, "images", name)
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("fixtures: decode %s: %w", path, err)
		}
		sample.Images = append(sample.Images, img)
		sample.Names = append(sample.Names, name)
	}
	return sample, nil
}

// LoadAll reads every sample directory under root, skipping entries
// without a data.json.
func LoadAll(root string) ([]*Sample, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	var samples []*Sample
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "data.json")); err != nil {
			continue
		}
		sample, err := Load(dir)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// ApplicationFields maps the sample's collected fields onto the checklist's
// application context. Returns nil when the sample carries none of them.
func (s *Sample) ApplicationFields() *rules.ApplicationFields {
	fields := &rules.ApplicationFields{
		BrandName:           s.stringField("brand_name"),
		ClassType:           s.stringField("class_type_description"),
		AlcoholContent:      s.stringField("alcohol_content"),
		NetContents:         s.stringField("net_contents"),
		NameAndAddress:      s.stringField("applicant_name_address"),
		GrapeVarietals:      s.stringField("grape_varietals"),
		AppellationOfOrigin: s.stringField("wine_appellation"),
		SourceOfProduct:     s.listField("source_of_product"),
	}
	for _, product := range s.listField("type_of_product") {
		switch product {
		case "wine":
			fields.BeverageType = label.BeverageWine
		case "distilled_spirits":
			fields.BeverageType = label.BeverageDistilledSpirits
		}
		if fields.BeverageType != "" {
			break
		}
	}
	if fields.BeverageType == "" && len(fields.SourceOfProduct) == 0 &&
		fields.BrandName == "" && fields.ClassType == "" &&
		fields.AlcoholContent == "" && fields.NetContents == "" &&
		fields.NameAndAddress == "" && fields.GrapeVarietals == "" &&
		fields.AppellationOfOrigin == "" {
		return nil
	}
	return fields
}

func (s *Sample) stringField(key string) string {
	if value, ok := s.Data.Fields[key].(string); ok {
		return value
	}
	return ""
}

func (s *Sample) listField(key string) []string {
	raw, ok := s.Data.Fields[key].([]any)
	if !ok {
		return nil
	}
	var values []string
	for _, item := range raw {
		if value, ok := item.(string); ok && value != "" {
			values = append(values, value)
		}
	}
	return values
}
