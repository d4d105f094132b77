package rules

import (
	"testing"

	"github.com/jkassemi/ttb-labeling/geometry"
	"github.com/jkassemi/ttb-labeling/label"
)

func spiritsWithFieldOfVision(fov *geometry.FieldOfVision) label.LabelInfo {
	info := infoWithFields(label.BeverageDistilledSpirits, map[string]string{
		label.FieldBrandName: "OLD TOM",
	})
	field := info.BrandName.WithMetadata(label.MetaFieldOfVision, fov)
	return info.WithField(label.FieldBrandName, field)
}

func TestFieldOfVisionCheckPass(t *testing.T) {
	info := spiritsWithFieldOfVision(&geometry.FieldOfVision{Status: geometry.StatusPass, ImageIndex: 0, SpanRatio: 0.2})
	finding := findingByID(t, Evaluate(info, Options{}), "field_of_vision")
	if finding.Status != StatusPass {
		t.Fatalf("Status = %q, want pass", finding.Status)
	}
}

func TestFieldOfVisionCheckNeedsReview(t *testing.T) {
	info := spiritsWithFieldOfVision(&geometry.FieldOfVision{Status: geometry.StatusNeedsReview, Reason: "multiple_images", ImageIndex: -1})
	finding := findingByID(t, Evaluate(info, Options{}), "field_of_vision")
	if finding.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", finding.Status)
	}
}

func TestFieldOfVisionCheckUnknownStatus(t *testing.T) {
	info := spiritsWithFieldOfVision(&geometry.FieldOfVision{Status: geometry.StatusUnknown, Reason: "missing_bbox", ImageIndex: -1})
	finding := findingByID(t, Evaluate(info, Options{}), "field_of_vision")
	if finding.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", finding.Status)
	}
	if finding.Message != "Field-of-vision status could not be determined." {
		t.Errorf("Message = %q", finding.Message)
	}
}

func TestFieldOfVisionCheckMetadataUnavailable(t *testing.T) {
	info := infoWithFields(label.BeverageDistilledSpirits, nil)
	finding := findingByID(t, Evaluate(info, Options{}), "field_of_vision")
	if finding.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", finding.Status)
	}
	if finding.Message != "Field-of-vision metadata unavailable." {
		t.Errorf("Message = %q", finding.Message)
	}
}

func TestFieldOfVisionCheckGatedForWine(t *testing.T) {
	info := infoWithFields(label.BeverageWine, nil)
	finding := findingByID(t, Evaluate(info, Options{}), "field_of_vision")
	if finding.Status != StatusNotApplicable {
		t.Fatalf("Status = %q, want not_applicable", finding.Status)
	}
}
