package differ

import (
	"image"
	"math"
)

// Perceptual comparison in YIQ color space. A pixel pair counts as changed
// when its squared YIQ distance exceeds the tolerance share of the maximum
// possible distance. Anti-aliased edge pixels are counted as changes.
const maxYIQDelta = 35215.0

// Highlight colors for changed pixels. The choice between the two follows
// the sign of the brightness delta, which alternates along edges; it carries
// no semantic meaning and exists purely for visual legibility.
var (
	diffColor    = [3]uint8{255, 0, 0}
	diffColorAlt = [3]uint8{0, 0, 255}
)

func (d *ImageDiffer) matchPixels(imgA, imgB, out *image.RGBA, width, height int) int {
	maxDelta := maxYIQDelta * d.cfg.Tolerance * d.cfg.Tolerance
	diffCount := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			posA := imgA.PixOffset(imgA.Bounds().Min.X+x, imgA.Bounds().Min.Y+y)
			posB := imgB.PixOffset(imgB.Bounds().Min.X+x, imgB.Bounds().Min.Y+y)
			posOut := out.PixOffset(x, y)

			pa := imgA.Pix[posA : posA+4 : posA+4]
			pb := imgB.Pix[posB : posB+4 : posB+4]

			if pa[0] == pb[0] && pa[1] == pb[1] && pa[2] == pb[2] && pa[3] == pb[3] {
				d.drawGrayPixel(pa, out.Pix[posOut:posOut+4:posOut+4])
				continue
			}

			delta := colorDelta(pa, pb)
			if math.Abs(delta) > maxDelta {
				diffCount++
				highlight := diffColor
				if delta < 0 {
					highlight = diffColorAlt
				}
				px := out.Pix[posOut : posOut+4 : posOut+4]
				px[0], px[1], px[2], px[3] = highlight[0], highlight[1], highlight[2], 255
				continue
			}

			d.drawGrayPixel(pa, out.Pix[posOut:posOut+4:posOut+4])
		}
	}

	return diffCount
}

// drawGrayPixel renders an unchanged pixel as a brightness-blended gray so
// the page stays recognizable behind the highlights.
func (d *ImageDiffer) drawGrayPixel(src, dst []uint8) {
	y := rgb2y(blendToWhite(src))
	val := blend(y, d.cfg.BackgroundAlpha*float64(src[3])/255)
	g := clampByte(val)
	dst[0], dst[1], dst[2], dst[3] = g, g, g, 255
}

// colorDelta returns the squared YIQ distance between two pixels, negated
// when the first pixel is the lighter one.
func colorDelta(pa, pb []uint8) float64 {
	r1, g1, b1 := blendToWhite(pa)
	r2, g2, b2 := blendToWhite(pb)

	y1 := rgb2y(r1, g1, b1)
	y2 := rgb2y(r2, g2, b2)
	i := rgb2i(r1, g1, b1) - rgb2i(r2, g2, b2)
	q := rgb2q(r1, g1, b1) - rgb2q(r2, g2, b2)
	yd := y1 - y2

	delta := 0.5053*yd*yd + 0.299*i*i + 0.1957*q*q
	if y1 > y2 {
		return -delta
	}
	return delta
}

// blendToWhite composites a semi-transparent pixel onto a white background
// so transparency does not mask real color differences.
func blendToWhite(p []uint8) (float64, float64, float64) {
	if p[3] == 255 {
		return float64(p[0]), float64(p[1]), float64(p[2])
	}
	a := float64(p[3]) / 255
	return blend(float64(p[0]), a), blend(float64(p[1]), a), blend(float64(p[2]), a)
}

func blend(c, a float64) float64 {
	return 255 + (c-255)*a
}

func rgb2y(r, g, b float64) float64 { return r*0.29889531 + g*0.58662247 + b*0.11448223 }
func rgb2i(r, g, b float64) float64 { return r*0.59597799 - g*0.27417610 - b*0.32180189 }
func rgb2q(r, g, b float64) float64 { return r*0.21147017 - g*0.52261711 + b*0.31114694 }

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
