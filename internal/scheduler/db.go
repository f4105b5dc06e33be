package scheduler

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"pagewatch/internal/common"
)

// DB wraps the SQL connection holding batch run history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunHistoryEntry represents one recorded batch run.
type RunHistoryEntry struct {
	ID         int64
	StartTime  time.Time
	EndTime    sql.NullTime
	Status     string
	NumURLs    int
	NumErrors  int
	NumChanged int
}

// Run statuses recorded in run_history.
const (
	RunStatusStarted   = "STARTED"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// NewDB opens (creating if needed) the run-history database and ensures
// the schema exists.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	dbLogger := logger.With().Str("component", "SchedulerDB").Logger()

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, common.WrapErrorf(err, "failed to create database directory '%s'", dbDir)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to open run-history database '%s'", dataSourceName)
	}

	db := &DB{db: dbInstance, logger: dbLogger}
	if err := db.initSchema(); err != nil {
		db.Close()
		return nil, common.WrapError(err, "failed to initialize run-history schema")
	}

	dbLogger.Info().Str("db_path", dataSourceName).Msg("Run-history database initialized")
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT NOT NULL,
		num_urls INTEGER DEFAULT 0,
		num_errors INTEGER DEFAULT 0,
		num_changed INTEGER DEFAULT 0
	);
	`
	_, err := d.db.Exec(query)
	return err
}

// RecordRunStart inserts a STARTED row and returns its ID. The URL count
// is not known until the batch resolves its configuration; completion
// fills it in.
func (d *DB) RecordRunStart(startTime time.Time) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO run_history (start_time, status) VALUES (?, ?)`,
		startTime, RunStatusStarted,
	)
	if err != nil {
		return 0, common.WrapError(err, "failed to insert run start record")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, common.WrapError(err, "failed to get last insert ID")
	}
	return id, nil
}

// UpdateRunCompletion finalizes a run row with its end time and counters.
func (d *DB) UpdateRunCompletion(runID int64, endTime time.Time, status string, numURLs, numErrors, numChanged int) error {
	_, err := d.db.Exec(
		`UPDATE run_history SET end_time = ?, status = ?, num_urls = ?, num_errors = ?, num_changed = ? WHERE id = ?`,
		endTime, status, numURLs, numErrors, numChanged, runID,
	)
	if err != nil {
		return common.WrapErrorf(err, "failed to update run completion for ID %d", runID)
	}
	return nil
}

// GetLastCompletedRun returns the most recent completed run, or nil when
// no run has completed yet.
func (d *DB) GetLastCompletedRun() (*RunHistoryEntry, error) {
	var entry RunHistoryEntry
	err := d.db.QueryRow(
		`SELECT id, start_time, end_time, status, num_urls, num_errors, num_changed
		 FROM run_history WHERE status = ? ORDER BY start_time DESC LIMIT 1`,
		RunStatusCompleted,
	).Scan(&entry.ID, &entry.StartTime, &entry.EndTime, &entry.Status,
		&entry.NumURLs, &entry.NumErrors, &entry.NumChanged)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to query last completed run")
	}
	return &entry, nil
}
