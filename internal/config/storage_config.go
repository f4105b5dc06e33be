package config

// StorageConfig defines where artifacts live and how long captures are kept.
type StorageConfig struct {
	// ArtifactsDir is the flat directory owning all screenshot and diff
	// artifacts. Created on startup if missing.
	ArtifactsDir string `json:"artifacts_dir,omitempty" yaml:"artifacts_dir,omitempty" validate:"required"`
	// RetentionDays is the age beyond which screenshot artifacts are
	// pruned. Diff artifacts are never pruned.
	RetentionDays int `json:"retention_days" yaml:"retention_days" validate:"gt=0"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		ArtifactsDir:  "./artifacts",
		RetentionDays: 7,
	}
}
