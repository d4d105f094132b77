package geometry

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/jkassemi/ttb-labeling/ocr"
)

func testLimits() BoldnessLimits {
	return BoldnessLimits{
		MinContrast:        0.15,
		MinStrokeRatio:     3,
		MinForegroundRatio: 0.02,
		PeerScore:          1.1,
	}
}

// darkLabel builds a black canvas; text is simulated with white bars so the
// bar pixels carry the edge response.
func darkLabel(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func fillBar(img *image.RGBA, x0, y0, x1, y1 int) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(color.White), image.Point{}, draw.Src)
}

// thickText fills one heavy bar inside the box.
func thickText(img *image.RGBA, box ocr.BBox) {
	x0, y0 := int(box.X0), int(box.Y0)
	fillBar(img, x0, y0+12, x0+180, y0+28)
}

// thinText draws three hairline bars inside the box.
func thinText(img *image.RGBA, box ocr.BBox) {
	x0, y0 := int(box.X0), int(box.Y0)
	for i := 0; i < 3; i++ {
		fillBar(img, x0, y0+6+i*12, x0+180, y0+8+i*12)
	}
}

func TestEstimateBoldnessBoldHeaderPasses(t *testing.T) {
	img := darkLabel(400, 220)
	header := ocr.BBox{X0: 20, Y0: 20, X1: 200, Y1: 60}
	peerBoxes := []ocr.BBox{
		{X0: 20, Y0: 100, X1: 200, Y1: 140},
		{X0: 20, Y0: 150, X1: 200, Y1: 190},
	}
	thickText(img, header)
	var peers []ocr.Span
	for _, box := range peerBoxes {
		thinText(img, box)
		peers = append(peers, ocr.Span{Text: "peer", BBox: box})
	}

	result := EstimateBoldness(img, header, peers, testLimits())
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Status != StatusPass {
		t.Fatalf("Status = %q (score %v), want pass", result.Status, result.Score)
	}
	if result.PeerCount != 2 {
		t.Errorf("PeerCount = %d, want 2", result.PeerCount)
	}
	if result.Header == nil || result.Header.StrokeRatio <= 0 {
		t.Errorf("header metrics = %+v", result.Header)
	}
	if result.PeerMedian == nil || result.PeerMedian.StrokeRatio <= 0 {
		t.Errorf("peer median = %+v", result.PeerMedian)
	}
}

func TestEstimateBoldnessThinHeaderNeedsReview(t *testing.T) {
	img := darkLabel(400, 220)
	header := ocr.BBox{X0: 20, Y0: 20, X1: 200, Y1: 60}
	peerBoxes := []ocr.BBox{
		{X0: 20, Y0: 100, X1: 200, Y1: 140},
		{X0: 20, Y0: 150, X1: 200, Y1: 190},
	}
	thinText(img, header)
	var peers []ocr.Span
	for _, box := range peerBoxes {
		thickText(img, box)
		peers = append(peers, ocr.Span{Text: "peer", BBox: box})
	}

	result := EstimateBoldness(img, header, peers, testLimits())
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Status != StatusNeedsReview {
		t.Fatalf("Status = %q (score %v), want needs_review", result.Status, result.Score)
	}
}

func TestEstimateBoldnessWithoutPeers(t *testing.T) {
	img := darkLabel(400, 120)
	header := ocr.BBox{X0: 20, Y0: 20, X1: 200, Y1: 60}
	thickText(img, header)

	result := EstimateBoldness(img, header, nil, testLimits())
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Reason != "no_peer_spans" {
		t.Fatalf("Reason = %q, want no_peer_spans", result.Reason)
	}
	if result.Status != StatusPass {
		t.Errorf("Status = %q, a heavy header should clear the absolute thresholds", result.Status)
	}
}

func TestEstimateBoldnessUnreadableCrop(t *testing.T) {
	img := darkLabel(400, 120)
	header := ocr.BBox{X0: 20, Y0: 20, X1: 200, Y1: 60}
	if result := EstimateBoldness(img, header, nil, testLimits()); result != nil {
		t.Fatalf("uniform crop should be unreadable, got %+v", result)
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("median odd = %v, want 2", got)
	}
	if got := median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("median even = %v, want 2.5", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("median empty = %v, want 0", got)
	}
}

func TestOtsuThresholdBimodal(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range gray.Pix {
		if i < 30 {
			gray.Pix[i] = 10
		} else {
			gray.Pix[i] = 240
		}
	}
	threshold := otsuThreshold(gray)
	if threshold < 10 || threshold >= 240 {
		t.Fatalf("threshold = %d, want a split between the modes", threshold)
	}
}

func TestCropWithPaddingClamps(t *testing.T) {
	img := darkLabel(100, 50)
	crop := cropWithPadding(img, ocr.BBox{X0: -20, Y0: -20, X1: 300, Y1: 300})
	if crop.Bounds().Dx() != 100 || crop.Bounds().Dy() != 50 {
		t.Fatalf("crop = %v, must clamp to the image", crop.Bounds())
	}
}
