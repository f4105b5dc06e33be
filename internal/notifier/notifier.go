package notifier

import "context"

// Notifier is an interface for raising change alerts.
type Notifier interface {
	// SendChangeNotification alerts that a monitored URL changed by
	// diffPercentage, linking to the persisted diff artifact.
	SendChangeNotification(ctx context.Context, url string, diffPercentage float64, diffPublicPath string) error
}
