package models

// URLOutcome is the per-URL record of one batch run. A failed URL carries
// Error and leaves the remaining fields zeroed; a processed URL leaves
// Error empty.
type URLOutcome struct {
	URL                string      `json:"url"`
	ScreenshotPath     string      `json:"screenshot,omitempty"`
	PreviousScreenshot *string     `json:"previousScreenshot"`
	Diff               *DiffResult `json:"diff"`
	NotificationSent   bool        `json:"notificationSent"`
	Error              string      `json:"error,omitempty"`
}

// IsError reports whether the outcome records a per-URL failure.
func (o *URLOutcome) IsError() bool {
	return o.Error != ""
}

// BatchResult aggregates one outcome per configured URL, in configured order.
type BatchResult struct {
	Results []URLOutcome `json:"results"`
}

// ErrorCount returns the number of failed URL outcomes.
func (br *BatchResult) ErrorCount() int {
	count := 0
	for i := range br.Results {
		if br.Results[i].IsError() {
			count++
		}
	}
	return count
}

// ChangedCount returns how many outcomes crossed the notification threshold.
func (br *BatchResult) ChangedCount() int {
	count := 0
	for i := range br.Results {
		if br.Results[i].NotificationSent {
			count++
		}
	}
	return count
}
