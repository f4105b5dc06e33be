package config

import (
	"pagewatch/internal/logger"
)

// Run modes.
const (
	ModeOnetime   = "onetime"
	ModeAutomated = "automated"
	ModeServe     = "serve"
)

// GlobalConfig contains all configuration sections for the application. It is
// captured once at process start and passed down explicitly; nothing reads
// configuration ambiently after startup.
type GlobalConfig struct {
	Mode               string               `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required,oneof=onetime automated serve"`
	MonitorConfig      MonitorConfig        `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	CaptureConfig      CaptureConfig        `json:"capture_config,omitempty" yaml:"capture_config,omitempty"`
	CompareConfig      CompareConfig        `json:"compare_config,omitempty" yaml:"compare_config,omitempty"`
	StorageConfig      StorageConfig        `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	NotificationConfig NotificationConfig   `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	ServerConfig       ServerConfig         `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	SchedulerConfig    SchedulerConfig      `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty"`
	LogConfig          logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:               ModeOnetime,
		MonitorConfig:      NewDefaultMonitorConfig(),
		CaptureConfig:      NewDefaultCaptureConfig(),
		CompareConfig:      NewDefaultCompareConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		ServerConfig:       NewDefaultServerConfig(),
		SchedulerConfig:    NewDefaultSchedulerConfig(),
		LogConfig:          logger.NewDefaultFileLogConfig(),
	}
}
