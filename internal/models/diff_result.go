package models

// DiffResult holds the outcome of comparing two equally sized captures.
type DiffResult struct {
	// Path is the public path of the persisted diff artifact. It is filled
	// in by the caller that persists the raster, not by the comparator.
	Path           string  `json:"path"`
	DiffCount      int     `json:"diffCount"`
	TotalPixels    int     `json:"totalPixels"`
	DiffPercentage float64 `json:"diffPercentage"`
}
