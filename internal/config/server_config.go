package config

// ServerConfig defines the HTTP surface.
type ServerConfig struct {
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required"`
	// CronSecret is the shared secret a manual caller presents as the
	// testKey query parameter on the trigger endpoint.
	CronSecret string `json:"cron_secret,omitempty" yaml:"cron_secret,omitempty"`
	// ReadTimeoutSecs and WriteTimeoutSecs bound request handling;
	// WriteTimeoutSecs must cover a full batch run on the trigger endpoint.
	ReadTimeoutSecs  int `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"gt=0"`
	WriteTimeoutSecs int `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"gt=0"`
}

// NewDefaultServerConfig creates default server configuration.
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:       ":8080",
		ReadTimeoutSecs:  30,
		WriteTimeoutSecs: 600,
	}
}
