package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, ModeOnetime, cfg.Mode)
	assert.Equal(t, 10.0, cfg.MonitorConfig.ChangeThreshold)
	assert.Equal(t, 7, cfg.StorageConfig.RetentionDays)
	assert.Equal(t, 1280, cfg.CaptureConfig.ViewportWidth)
	assert.Equal(t, 0.1, cfg.CompareConfig.Tolerance)
	assert.Equal(t, 587, cfg.NotificationConfig.SMTPPort)
	assert.Empty(t, cfg.MonitorConfig.URLs)
}

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GlobalConfig)
	}{
		{"bad mode", func(c *GlobalConfig) { c.Mode = "forever" }},
		{"threshold above 100", func(c *GlobalConfig) { c.MonitorConfig.ChangeThreshold = 150 }},
		{"zero retention", func(c *GlobalConfig) { c.StorageConfig.RetentionDays = 0 }},
		{"tolerance above 1", func(c *GlobalConfig) { c.CompareConfig.Tolerance = 2 }},
		{"invalid url in list", func(c *GlobalConfig) { c.MonitorConfig.URLs = []string{"not a url"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
mode: serve
monitor_config:
  urls:
    - https://example.com
    - https://example.org
  change_threshold: 25.5
storage_config:
  artifacts_dir: ./shots
  retention_days: 14
server_config:
  listen_addr: ":9090"
  cron_secret: hunter2
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeServe, cfg.Mode)
	assert.Equal(t, []string{"https://example.com", "https://example.org"}, cfg.MonitorConfig.URLs)
	assert.Equal(t, 25.5, cfg.MonitorConfig.ChangeThreshold)
	assert.Equal(t, 14, cfg.StorageConfig.RetentionDays)
	assert.Equal(t, ":9090", cfg.ServerConfig.ListenAddr)
	assert.Equal(t, "hunter2", cfg.ServerConfig.CronSecret)
	// Untouched sections keep defaults.
	assert.Equal(t, 1280, cfg.CaptureConfig.ViewportWidth)
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SCREENSHOT_URLS", "https://a.example.com, https://b.example.com")
	t.Setenv("CHANGE_THRESHOLD", "42.5")
	t.Setenv("SCREENSHOT_RETENTION_DAYS", "3")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("NOTIFICATION_EMAIL", "ops@example.com")

	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.MonitorConfig.URLs)
	assert.Equal(t, 42.5, cfg.MonitorConfig.ChangeThreshold)
	assert.Equal(t, 3, cfg.StorageConfig.RetentionDays)
	assert.Equal(t, "s3cret", cfg.ServerConfig.CronSecret)
	assert.Equal(t, "mail.example.com", cfg.NotificationConfig.SMTPHost)
	assert.Equal(t, "ops@example.com", cfg.NotificationConfig.To)
}

func TestNotificationConfig_IsComplete(t *testing.T) {
	nc := NewDefaultNotificationConfig()
	assert.False(t, nc.IsComplete())

	nc.SMTPHost = "mail.example.com"
	nc.SMTPUser = "alerts@example.com"
	nc.SMTPPass = "pw"
	nc.To = "ops@example.com"
	assert.True(t, nc.IsComplete())

	assert.Equal(t, "alerts@example.com", nc.Sender())
	nc.From = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", nc.Sender())
}
