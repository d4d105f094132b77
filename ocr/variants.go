package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Variants yields the recognition attempts for one image: the original
// first, then enhancement passes when requested. Geometry-safe passes keep
// every pixel at its original coordinates so span bounding boxes remain
// valid; the remaining passes trade geometry for recall and are only used
// when callers discard positions.
func Variants(img image.Image, enhance, geometrySafe bool) []image.Image {
	variants := []image.Image{img}
	if !enhance {
		return variants
	}

	base := toRGBA(img)
	baseVariants := []image.Image{
		autocontrast(base),
		unsharpMask(base),
		autocontrast(grayscale(base)),
		invert(autocontrast(base)),
	}
	variants = append(variants, baseVariants...)

	if geometrySafe {
		return variants
	}

	for _, v := range baseVariants[:2] {
		variants = append(variants, resize(v, 1.5))
	}
	for _, angle := range []float64{-8, 8} {
		variants = append(variants, rotate(baseVariants[0], angle))
	}
	for _, strength := range []float64{-0.25, -0.45} {
		dewarped := cylindricalWarp(baseVariants[0], strength)
		variants = append(variants, dewarped, autocontrast(dewarped))
	}
	return variants
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// autocontrast stretches each channel's observed range to the full 0-255
// span.
func autocontrast(img image.Image) image.Image {
	if gray, ok := img.(*image.Gray); ok {
		return autocontrastGray(gray)
	}
	src := toRGBA(img)
	bounds := src.Bounds()
	lo := [3]uint8{255, 255, 255}
	hi := [3]uint8{0, 0, 0}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := src.Pix[i+c]
				lo[c] = min(lo[c], v)
				hi[c] = max(hi[c], v)
			}
		}
	}
	dst := image.NewRGBA(bounds)
	copy(dst.Pix, src.Pix)
	for c := 0; c < 3; c++ {
		span := int(hi[c]) - int(lo[c])
		if span <= 0 {
			continue
		}
		for i := c; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = uint8((int(dst.Pix[i]) - int(lo[c])) * 255 / span)
		}
	}
	return dst
}

func autocontrastGray(src *image.Gray) *image.Gray {
	var lo uint8 = 255
	var hi uint8 = 0
	for _, v := range src.Pix {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	dst := image.NewGray(src.Bounds())
	copy(dst.Pix, src.Pix)
	span := int(hi) - int(lo)
	if span <= 0 {
		return dst
	}
	for i, v := range dst.Pix {
		dst.Pix[i] = uint8((int(v) - int(lo)) * 255 / span)
	}
	return dst
}

func invert(img image.Image) image.Image {
	src := toRGBA(img)
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i] = 255 - src.Pix[i]
		dst.Pix[i+1] = 255 - src.Pix[i+1]
		dst.Pix[i+2] = 255 - src.Pix[i+2]
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

// unsharpMask sharpens with a small separable blur: out = in + 1.5*(in-blur)
// where the difference exceeds a small threshold.
func unsharpMask(src *image.RGBA) image.Image {
	blurred := blur5(src)
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	const threshold = 3
	for i := 0; i < len(src.Pix); i++ {
		if i%4 == 3 {
			continue
		}
		diff := int(src.Pix[i]) - int(blurred.Pix[i])
		if diff > threshold || diff < -threshold {
			dst.Pix[i] = clampByte(int(src.Pix[i]) + diff*3/2)
		}
	}
	return dst
}

var blurKernel = [5]int{1, 4, 6, 4, 1}

func blur5(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	horizontal := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for c := 0; c < 4; c++ {
				var sum, weight int
				for k := -2; k <= 2; k++ {
					sx := x + k
					if sx < bounds.Min.X || sx >= bounds.Max.X {
						continue
					}
					w := blurKernel[k+2]
					sum += w * int(src.Pix[src.PixOffset(sx, y)+c])
					weight += w
				}
				horizontal.Pix[horizontal.PixOffset(x, y)+c] = uint8(sum / weight)
			}
		}
	}
	dst := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for c := 0; c < 4; c++ {
				var sum, weight int
				for k := -2; k <= 2; k++ {
					sy := y + k
					if sy < bounds.Min.Y || sy >= bounds.Max.Y {
						continue
					}
					w := blurKernel[k+2]
					sum += w * int(horizontal.Pix[horizontal.PixOffset(x, sy)+c])
					weight += w
				}
				dst.Pix[dst.PixOffset(x, y)+c] = uint8(sum / weight)
			}
		}
	}
	return dst
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func resize(img image.Image, scale float64) image.Image {
	bounds := img.Bounds()
	w := int(float64(bounds.Dx()) * scale)
	h := int(float64(bounds.Dy()) * scale)
	if w <= 0 || h <= 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// rotate rotates by degrees around the image center, expanding the canvas
// and filling the background white.
func rotate(img image.Image, degrees float64) image.Image {
	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	theta := degrees * math.Pi / 180
	sin, cos := math.Sincos(theta)
	dw := math.Abs(w*cos) + math.Abs(h*sin)
	dh := math.Abs(w*sin) + math.Abs(h*cos)
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(dw)), int(math.Ceil(dh))))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Source-to-destination affine: translate source center to origin,
	// rotate, translate to destination center.
	cx, cy := w/2, h/2
	dcx, dcy := dw/2, dh/2
	m := f64.Aff3{
		cos, -sin, dcx - cos*cx + sin*cy,
		sin, cos, dcy - sin*cx - cos*cy,
	}
	xdraw.BiLinear.Transform(dst, m, img, bounds, xdraw.Over, nil)
	return dst
}

// cylindricalWarp applies a horizontal slice-wise scale that widens or
// narrows columns toward the edges, simulating label curvature.
func cylindricalWarp(img image.Image, strength float64) image.Image {
	src := toRGBA(img)
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return img
	}
	slices := min(24, width)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	sliceWidth := float64(width) / float64(slices)
	for x := 0; x < width; x++ {
		i := min(int(float64(x)/sliceWidth), slices-1)
		x0 := float64(width) * float64(i) / float64(slices)
		x1 := float64(width) * float64(i+1) / float64(slices)
		center := (x0 + x1) / 2
		norm := math.Abs((center - float64(width)/2) / (float64(width) / 2))
		scale := 1 + strength*norm*norm
		srcX := int(math.Round(center + (float64(x)-center)*scale))
		if srcX < 0 {
			srcX = 0
		}
		if srcX >= width {
			srcX = width - 1
		}
		for y := 0; y < height; y++ {
			di := dst.PixOffset(x, y)
			si := src.PixOffset(bounds.Min.X+srcX, bounds.Min.Y+y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
