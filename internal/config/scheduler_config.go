package config

// SchedulerConfig controls automated mode and run-history recording.
type SchedulerConfig struct {
	// IntervalMinutes between batch runs in automated mode.
	IntervalMinutes int `json:"interval_minutes" yaml:"interval_minutes" validate:"gt=0"`
	// SQLiteDBPath is where batch run history is recorded.
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
}

// NewDefaultSchedulerConfig creates default scheduler configuration.
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		IntervalMinutes: 1440,
		SQLiteDBPath:    "./data/pagewatch.db",
	}
}
