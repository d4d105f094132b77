package fixtures

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jkassemi/ttb-labeling/label"
)

const sampleData = `{
  "id": "24123001000001",
  "source": "ttb_real",
  "synthetic": false,
  "fields": {
    "brand_name": "CHATEAU NOIR",
    "class_type_description": "RED WINE",
    "alcohol_content": "13.5% ALC BY VOL",
    "net_contents": "750 mL",
    "applicant_name_address": "CHATEAU NOIR WINERY, NAPA, CA",
    "grape_varietals": "Falanghina",
    "wine_appellation": "Napa Valley",
    "type_of_product": ["wine"],
    "source_of_product": ["domestic"]
  },
  "images": ["front.png", "back.png"]
}`

func writeSample(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(sampleData), 0o644); err != nil {
		t.Fatal(err)
	}
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Only front.png exists; back.png is skipped at load time.
	file, err := os.Create(filepath.Join(imagesDir, "front.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSample(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir)

	sample, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sample.ID != "24123001000001" {
		t.Errorf("ID = %q", sample.ID)
	}
	if len(sample.Images) != 1 || len(sample.Names) != 1 || sample.Names[0] != "front.png" {
		t.Fatalf("images = %v, want just front.png", sample.Names)
	}
}

func TestApplicationFieldsMapping(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir)
	sample, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fields := sample.ApplicationFields()
	if fields == nil {
		t.Fatal("expected application fields")
	}
	if fields.BeverageType != label.BeverageWine {
		t.Errorf("BeverageType = %q, want wine", fields.BeverageType)
	}
	if fields.BrandName != "CHATEAU NOIR" {
		t.Errorf("BrandName = %q", fields.BrandName)
	}
	if fields.ClassType != "RED WINE" {
		t.Errorf("ClassType = %q", fields.ClassType)
	}
	if fields.AppellationOfOrigin != "Napa Valley" {
		t.Errorf("AppellationOfOrigin = %q", fields.AppellationOfOrigin)
	}
	if len(fields.SourceOfProduct) != 1 || fields.SourceOfProduct[0] != "domestic" {
		t.Errorf("SourceOfProduct = %v", fields.SourceOfProduct)
	}
}

func TestApplicationFieldsEmpty(t *testing.T) {
	sample := &Sample{Data: Data{Fields: map[string]any{}}}
	if fields := sample.ApplicationFields(); fields != nil {
		t.Fatalf("expected nil, got %+v", fields)
	}
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	sampleDir := filepath.Join(root, "24123001000001")
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSample(t, sampleDir)
	// A directory without data.json is skipped.
	if err := os.MkdirAll(filepath.Join(root, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}

	samples, err := LoadAll(root)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(samples) != 1 || samples[0].ID != "24123001000001" {
		t.Fatalf("samples = %v", samples)
	}
}

func TestLoadMissingDataJSON(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected an error")
	}
}
