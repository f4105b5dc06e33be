package config

// MonitorConfig defines the monitored URL list and the notification gate.
type MonitorConfig struct {
	// URLs to capture each run, processed sequentially in this order.
	URLs []string `json:"urls,omitempty" yaml:"urls,omitempty" validate:"omitempty,dive,url"`
	// ChangeThreshold is the diff percentage above which a change
	// notification is raised.
	ChangeThreshold float64 `json:"change_threshold" yaml:"change_threshold" validate:"gte=0,lte=100"`
}

// NewDefaultMonitorConfig creates default monitor configuration.
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		URLs:            []string{},
		ChangeThreshold: 10.0,
	}
}
