package config

// NotificationConfig defines the outbound mail transport and addressing for
// change alerts.
type NotificationConfig struct {
	SMTPHost   string `json:"smtp_host,omitempty" yaml:"smtp_host,omitempty"`
	SMTPPort   int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,gt=0,lte=65535"`
	SMTPSecure bool   `json:"smtp_secure" yaml:"smtp_secure"`
	SMTPUser   string `json:"smtp_user,omitempty" yaml:"smtp_user,omitempty"`
	SMTPPass   string `json:"smtp_pass,omitempty" yaml:"smtp_pass,omitempty"`
	// From defaults to SMTPUser when empty.
	From string `json:"from,omitempty" yaml:"from,omitempty" validate:"omitempty,email"`
	To   string `json:"to,omitempty" yaml:"to,omitempty" validate:"omitempty,email"`
	// BaseURL builds absolute links to diff artifacts inside mail bodies.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		SMTPPort: 587,
		BaseURL:  "http://localhost:8080",
	}
}

// IsComplete reports whether the transport settings required for sending
// are present.
func (nc NotificationConfig) IsComplete() bool {
	return nc.SMTPHost != "" && nc.SMTPUser != "" && nc.SMTPPass != "" && nc.To != ""
}

// Sender returns the effective From address.
func (nc NotificationConfig) Sender() string {
	if nc.From != "" {
		return nc.From
	}
	return nc.SMTPUser
}
