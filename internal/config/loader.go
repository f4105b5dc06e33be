package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pagewatch/internal/common"

	"gopkg.in/yaml.v3"
)

// GetConfigPath determines the configuration file path.
// Priority:
//  1. -config command-line flag
//  2. PAGEWATCH_CONFIG_PATH environment variable
//  3. config.yaml / config.json in the current working directory
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if _, err := os.Stat(configFilePathFlag); err == nil {
			return configFilePathFlag
		}
	}

	if envPath := os.Getenv("PAGEWATCH_CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, file := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(cwd, file)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadGlobalConfig loads configuration from a file (YAML or JSON) located via
// GetConfigPath, applies environment overrides, and validates the result.
// A missing config file is not an error; defaults plus environment apply.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
		}
		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "failed to parse YAML config '%s'", filePath)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "failed to parse JSON config '%s'", filePath)
		}
	default:
		return common.NewConfigurationError("", "config_file", "unsupported config file extension: "+filepath.Ext(filePath))
	}
	return nil
}

// applyEnvOverrides layers deployment-environment settings over the file
// configuration. The variable names match the original deployment surface.
func applyEnvOverrides(cfg *GlobalConfig) {
	if v := os.Getenv("SCREENSHOT_URLS"); v != "" {
		urls := make([]string, 0)
		for _, u := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(u); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
		cfg.MonitorConfig.URLs = urls
	}
	if v := os.Getenv("CHANGE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MonitorConfig.ChangeThreshold = f
		}
	}
	if v := os.Getenv("SCREENSHOT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StorageConfig.RetentionDays = n
		}
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		cfg.ServerConfig.CronSecret = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.NotificationConfig.BaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.NotificationConfig.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NotificationConfig.SMTPPort = n
		}
	}
	if v := os.Getenv("SMTP_SECURE"); v != "" {
		cfg.NotificationConfig.SMTPSecure = v == "true"
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.NotificationConfig.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.NotificationConfig.SMTPPass = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.NotificationConfig.From = v
	}
	if v := os.Getenv("NOTIFICATION_EMAIL"); v != "" {
		cfg.NotificationConfig.To = v
	}
}
