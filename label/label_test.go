package label

import "testing"

func TestNewLabelInfoDefaultsToMissing(t *testing.T) {
	info := NewLabelInfo()
	for _, name := range FieldNames() {
		field, ok := info.Field(name)
		if !ok {
			t.Fatalf("Field(%q) not found", name)
		}
		if field.Status != StatusMissing {
			t.Errorf("Field(%q).Status = %q, want %q", name, field.Status, StatusMissing)
		}
		if field.Source != SourceModel {
			t.Errorf("Field(%q).Source = %q, want %q", name, field.Source, SourceModel)
		}
		if !field.Empty() {
			t.Errorf("Field(%q) should start empty", name)
		}
	}
}

func TestWithFieldDoesNotMutateReceiver(t *testing.T) {
	info := NewLabelInfo()
	updated := info.WithField(FieldBrandName, FieldExtraction{
		Value:  "OLD TOM",
		Source: SourceModel,
		Status: StatusVerified,
	})
	if info.BrandName.Value != "" {
		t.Fatalf("receiver mutated: BrandName.Value = %q", info.BrandName.Value)
	}
	if updated.BrandName.Value != "OLD TOM" || updated.BrandName.Status != StatusVerified {
		t.Fatalf("unexpected updated field: %+v", updated.BrandName)
	}
}

func TestWithFieldUnknownName(t *testing.T) {
	info := NewLabelInfo()
	updated := info.WithField("no_such_field", FieldExtraction{Value: "x"})
	if _, ok := updated.Field("no_such_field"); ok {
		t.Fatal("unknown field should not resolve")
	}
}

func TestFieldExtractionWithMetadataClones(t *testing.T) {
	base := FieldExtraction{Metadata: map[string]any{"a": 1}}
	updated := base.WithMetadata("b", 2)
	if _, ok := base.Metadata["b"]; ok {
		t.Fatal("receiver metadata mutated")
	}
	if updated.Metadata["a"] != 1 || updated.Metadata["b"] != 2 {
		t.Fatalf("unexpected metadata: %v", updated.Metadata)
	}
}

func TestFieldCandidateWithMetadataClones(t *testing.T) {
	base := FieldCandidate{Value: "12% ALC/VOL"}
	updated := base.WithMetadata(MetaImageIndex, 1)
	if base.Metadata != nil {
		t.Fatal("receiver metadata mutated")
	}
	if updated.Metadata[MetaImageIndex] != 1 {
		t.Fatalf("unexpected metadata: %v", updated.Metadata)
	}
}

func TestFieldExtractionEmpty(t *testing.T) {
	if !(FieldExtraction{}).Empty() {
		t.Fatal("zero extraction should be empty")
	}
	if (FieldExtraction{Value: "750 mL"}).Empty() {
		t.Fatal("extraction with a value should not be empty")
	}
	numeric := 45.0
	if (FieldExtraction{NumericValue: &numeric}).Empty() {
		t.Fatal("extraction with a numeric value should not be empty")
	}
}

func TestFieldNamesIsACopy(t *testing.T) {
	names := FieldNames()
	names[0] = "tampered"
	if FieldNames()[0] != FieldBrandName {
		t.Fatal("FieldNames must return a fresh copy")
	}
}
