// Package differ compares two equally sized captures pixel by pixel and
// renders a visual diff raster. The comparator is side-effect-free; the
// caller persists the returned buffer.
package differ

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/rs/zerolog"

	"pagewatch/internal/common"
	"pagewatch/internal/config"
	"pagewatch/internal/models"
)

// ImageDiffer performs perceptual pixel comparison between two PNG buffers.
type ImageDiffer struct {
	cfg    config.CompareConfig
	logger zerolog.Logger
}

// NewImageDiffer creates a new image differ.
func NewImageDiffer(cfg config.CompareConfig, logger zerolog.Logger) *ImageDiffer {
	return &ImageDiffer{
		cfg:    cfg,
		logger: logger.With().Str("component", "ImageDiffer").Logger(),
	}
}

// Compare decodes both buffers, classifies every pixel as changed or unchanged
// against the configured perceptual tolerance, and returns the change count
// plus the encoded diff raster. Unequal dimensions is a hard error; there is
// no resizing fallback. Comparing the same pair twice yields bit-identical
// output.
func (d *ImageDiffer) Compare(bufA, bufB []byte) (*models.DiffResult, []byte, error) {
	imgA, err := decodeRGBA(bufA)
	if err != nil {
		return nil, nil, common.WrapError(err, "failed to decode first image")
	}
	imgB, err := decodeRGBA(bufB)
	if err != nil {
		return nil, nil, common.WrapError(err, "failed to decode second image")
	}

	boundsA := imgA.Bounds()
	boundsB := imgB.Bounds()
	if boundsA.Dx() != boundsB.Dx() || boundsA.Dy() != boundsB.Dy() {
		return nil, nil, &common.DimensionMismatchError{
			WidthA: boundsA.Dx(), HeightA: boundsA.Dy(),
			WidthB: boundsB.Dx(), HeightB: boundsB.Dy(),
		}
	}

	width, height := boundsA.Dx(), boundsA.Dy()
	diffImg := image.NewRGBA(image.Rect(0, 0, width, height))

	diffCount := d.matchPixels(imgA, imgB, diffImg, width, height)

	var out bytes.Buffer
	if err := png.Encode(&out, diffImg); err != nil {
		return nil, nil, common.WrapError(err, "failed to encode diff image")
	}

	totalPixels := width * height
	result := &models.DiffResult{
		DiffCount:      diffCount,
		TotalPixels:    totalPixels,
		DiffPercentage: float64(diffCount) / float64(totalPixels) * 100,
	}

	d.logger.Debug().
		Int("diff_count", diffCount).
		Int("total_pixels", totalPixels).
		Float64("diff_percentage", result.DiffPercentage).
		Msg("Image comparison completed")

	return result, out.Bytes(), nil
}

func decodeRGBA(buf []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba, nil
}
