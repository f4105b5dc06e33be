package config

// CompareConfig tunes the pixel comparator.
type CompareConfig struct {
	// Tolerance is the perceptual color distance (0..1) below which two
	// pixels count as equal. Tightening it trades false positives from
	// rendering jitter against missed real changes.
	Tolerance float64 `json:"tolerance" yaml:"tolerance" validate:"gte=0,lte=1"`
	// BackgroundAlpha controls how strongly unchanged pixels show through
	// the grayscale background of the diff raster.
	BackgroundAlpha float64 `json:"background_alpha" yaml:"background_alpha" validate:"gte=0,lte=1"`
}

// NewDefaultCompareConfig creates default compare configuration.
func NewDefaultCompareConfig() CompareConfig {
	return CompareConfig{
		Tolerance:       0.1,
		BackgroundAlpha: 0.5,
	}
}
