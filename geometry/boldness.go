package geometry

import (
	"image"
	"image/color"
	"sort"

	"github.com/jkassemi/ttb-labeling/ocr"
)

// Metrics are the per-crop measurements used to compare print weight.
type Metrics struct {
	ForegroundRatio float64 `json:"foreground_ratio"`
	EdgeRatio       float64 `json:"edge_ratio"`
	StrokeRatio     float64 `json:"stroke_ratio"`
	Contrast        float64 `json:"contrast"`
}

// PeerMedian holds the median metrics of the peer spans the header was
// compared against.
type PeerMedian struct {
	ForegroundRatio float64 `json:"foreground_ratio"`
	StrokeRatio     float64 `json:"stroke_ratio"`
}

// Boldness is the outcome of the warning-header weight analysis.
type Boldness struct {
	Status     string      `json:"status"`
	Reason     string      `json:"reason,omitempty"`
	Score      float64     `json:"score,omitempty"`
	Header     *Metrics    `json:"header_metrics,omitempty"`
	PeerMedian *PeerMedian `json:"peer_median,omitempty"`
	PeerCount  int         `json:"peer_count,omitempty"`
}

// BoldnessLimits are the accept thresholds for the analysis.
type BoldnessLimits struct {
	MinContrast        float64
	MinStrokeRatio     float64
	MinForegroundRatio float64
	PeerScore          float64
}

const (
	cropPaddingRatio = 0.1
	minCropContrast  = 0.05
)

// EstimateBoldness measures the warning header crop and compares it against
// the peer spans on the same image. Without usable peers it falls back to
// absolute thresholds. Returns nil when the header crop is unreadable.
func EstimateBoldness(img image.Image, header ocr.BBox, peers []ocr.Span, limits BoldnessLimits) *Boldness {
	headerMetrics := measureMetrics(cropWithPadding(img, header))
	if headerMetrics == nil {
		return nil
	}
	var peerMetrics []Metrics
	for _, span := range peers {
		if metrics := measureMetrics(cropWithPadding(img, span.BBox)); metrics != nil {
			peerMetrics = append(peerMetrics, *metrics)
		}
	}
	if len(peerMetrics) == 0 {
		return fallbackWithoutPeers(headerMetrics, limits)
	}

	fgValues := make([]float64, len(peerMetrics))
	strokeValues := make([]float64, len(peerMetrics))
	for i, metrics := range peerMetrics {
		fgValues[i] = metrics.ForegroundRatio
		strokeValues[i] = metrics.StrokeRatio
	}
	medianFg := median(fgValues)
	medianStroke := median(strokeValues)
	if medianFg <= 0 || medianStroke <= 0 {
		return &Boldness{
			Status: StatusNeedsReview,
			Reason: "invalid_peer_metrics",
			Header: roundMetrics(headerMetrics),
		}
	}

	score := (headerMetrics.ForegroundRatio/medianFg + headerMetrics.StrokeRatio/medianStroke) / 2
	status := StatusNeedsReview
	if score >= limits.PeerScore {
		status = StatusPass
	}
	return &Boldness{
		Status: status,
		Score:  round3(score),
		Header: roundMetrics(headerMetrics),
		PeerMedian: &PeerMedian{
			ForegroundRatio: round4(medianFg),
			StrokeRatio:     round4(medianStroke),
		},
		PeerCount: len(peerMetrics),
	}
}

func fallbackWithoutPeers(metrics *Metrics, limits BoldnessLimits) *Boldness {
	status := StatusNeedsReview
	if metrics.Contrast >= limits.MinContrast &&
		metrics.StrokeRatio >= limits.MinStrokeRatio &&
		metrics.ForegroundRatio >= limits.MinForegroundRatio {
		status = StatusPass
	}
	return &Boldness{
		Status: status,
		Reason: "no_peer_spans",
		Header: roundMetrics(metrics),
	}
}

func cropWithPadding(img image.Image, bbox ocr.BBox) *image.Gray {
	bounds := img.Bounds()
	padX := bbox.Width() * cropPaddingRatio
	padY := bbox.Height() * cropPaddingRatio
	left := clampInt(int(bbox.X0-padX), 0, bounds.Dx())
	top := clampInt(int(bbox.Y0-padY), 0, bounds.Dy())
	right := clampInt(int(bbox.X1+padX), 0, bounds.Dx())
	bottom := clampInt(int(bbox.Y1+padY), 0, bounds.Dy())

	gray := image.NewGray(image.Rect(0, 0, right-left, bottom-top))
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			gray.Set(x-left, y-top, color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return gray
}

func measureMetrics(gray *image.Gray) *Metrics {
	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil
	}
	stretchContrast(gray)
	contrast := contrastRatio(gray)
	if contrast < minCropContrast {
		return nil
	}
	threshold := otsuThreshold(gray)

	total := width * height
	foreground := make([]bool, total)
	below := 0
	for i := 0; i < total; i++ {
		if gray.Pix[i] <= uint8(threshold) {
			foreground[i] = true
			below++
		}
	}
	above := total - below
	if below == 0 || above == 0 {
		return nil
	}
	foregroundPixels := below
	if below > above {
		for i := range foreground {
			foreground[i] = !foreground[i]
		}
		foregroundPixels = above
	}
	foregroundRatio := float64(foregroundPixels) / float64(total)

	edges := findEdges(gray)
	var edgeSum int
	for i := 0; i < total; i++ {
		edgeSum += int(edges[i])
	}
	edgeMean := float64(edgeSum) / float64(total)
	edgeThreshold := edgeMean * 1.5
	if edgeThreshold < 10 {
		edgeThreshold = 10
	}
	edgeInForeground := 0
	for i := 0; i < total; i++ {
		if foreground[i] && float64(edges[i]) > edgeThreshold {
			edgeInForeground++
		}
	}
	edgeRatio := float64(edgeInForeground) / float64(total)
	strokeRatio := 0.0
	if edgeInForeground > 0 {
		strokeRatio = float64(foregroundPixels) / float64(edgeInForeground)
	}
	return &Metrics{
		ForegroundRatio: foregroundRatio,
		EdgeRatio:       edgeRatio,
		StrokeRatio:     strokeRatio,
		Contrast:        contrast,
	}
}

// stretchContrast linearly rescales the gray range to the full 0..255 span.
func stretchContrast(gray *image.Gray) {
	min, max := uint8(255), uint8(0)
	for _, v := range gray.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min >= max {
		return
	}
	scale := 255.0 / float64(max-min)
	for i, v := range gray.Pix {
		gray.Pix[i] = uint8(float64(v-min)*scale + 0.5)
	}
}

func contrastRatio(gray *image.Gray) float64 {
	n := len(gray.Pix)
	if n == 0 {
		return 0
	}
	pixels := make([]uint8, n)
	copy(pixels, gray.Pix)
	sort.Slice(pixels, func(i, j int) bool { return pixels[i] < pixels[j] })
	p5 := pixels[int(float64(n)*0.05)]
	p95 := pixels[int(float64(n)*0.95)]
	return float64(p95-p5) / 255
}

// otsuThreshold picks the gray level maximizing between-class variance.
func otsuThreshold(gray *image.Gray) int {
	var hist [256]int
	for _, v := range gray.Pix {
		hist[v]++
	}
	total := len(gray.Pix)
	sumTotal := 0
	for value, count := range hist {
		sumTotal += value * count
	}
	sumBackground := 0
	weightBackground := 0
	maxVariance := 0.0
	threshold := 128
	for value, count := range hist {
		weightBackground += count
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}
		sumBackground += value * count
		meanBackground := float64(sumBackground) / float64(weightBackground)
		meanForeground := float64(sumTotal-sumBackground) / float64(weightForeground)
		diff := meanBackground - meanForeground
		variance := float64(weightBackground) * float64(weightForeground) * diff * diff
		if variance > maxVariance {
			maxVariance = variance
			threshold = value
		}
	}
	return threshold
}

// findEdges applies a 3x3 edge kernel with the border pixels left at zero.
func findEdges(gray *image.Gray) []uint8 {
	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()
	out := make([]uint8, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := int(gray.Pix[y*width+x])
			sum := 8 * center
			sum -= int(gray.Pix[(y-1)*width+x-1])
			sum -= int(gray.Pix[(y-1)*width+x])
			sum -= int(gray.Pix[(y-1)*width+x+1])
			sum -= int(gray.Pix[y*width+x-1])
			sum -= int(gray.Pix[y*width+x+1])
			sum -= int(gray.Pix[(y+1)*width+x-1])
			sum -= int(gray.Pix[(y+1)*width+x])
			sum -= int(gray.Pix[(y+1)*width+x+1])
			if sum < 0 {
				sum = 0
			} else if sum > 255 {
				sum = 255
			}
			out[y*width+x] = uint8(sum)
		}
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func roundMetrics(m *Metrics) *Metrics {
	return &Metrics{
		ForegroundRatio: round4(m.ForegroundRatio),
		EdgeRatio:       round4(m.EdgeRatio),
		StrokeRatio:     round4(m.StrokeRatio),
		Contrast:        round4(m.Contrast),
	}
}
