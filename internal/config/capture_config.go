package config

// CaptureConfig defines headless browser and rendering settings.
type CaptureConfig struct {
	// ChromePath overrides the browser binary; empty lets the launcher
	// resolve or download one.
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	// UserDataDir for the browser profile, empty for a throwaway profile.
	UserDataDir string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	// ViewportWidth is the fixed capture width; height is measured per page.
	ViewportWidth int `json:"viewport_width" yaml:"viewport_width" validate:"gt=0"`
	// NavigationTimeoutSecs bounds navigation plus load waiting per URL.
	NavigationTimeoutSecs int `json:"navigation_timeout_secs" yaml:"navigation_timeout_secs" validate:"gt=0"`
	// SettleDelayMs is how long to wait after scrolling to the bottom so
	// lazy-loaded content finishes rendering.
	SettleDelayMs int `json:"settle_delay_ms" yaml:"settle_delay_ms" validate:"gte=0"`
	// Stealth creates pages with bot-detection evasion applied.
	Stealth bool `json:"stealth" yaml:"stealth"`
}

// NewDefaultCaptureConfig creates default capture configuration.
func NewDefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		ViewportWidth:         1280,
		NavigationTimeoutSecs: 30,
		SettleDelayMs:         1000,
		Stealth:               false,
	}
}
