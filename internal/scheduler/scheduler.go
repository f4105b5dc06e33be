// Package scheduler drives periodic batch runs in automated mode and
// records every run in a local history database.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pagewatch/internal/config"
	"pagewatch/internal/models"
)

// BatchRunner is the slice of the monitor service the scheduler drives.
type BatchRunner interface {
	RunBatch(ctx context.Context) (*models.BatchResult, error)
}

// Scheduler runs batches on a fixed interval, resuming the cadence from
// the last completed run recorded in the history database.
type Scheduler struct {
	cfg      config.SchedulerConfig
	db       *DB
	runner   BatchRunner
	logger   zerolog.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewScheduler creates a new Scheduler instance.
func NewScheduler(cfg config.SchedulerConfig, runner BatchRunner, logger zerolog.Logger) (*Scheduler, error) {
	db, err := NewDB(cfg.SQLiteDBPath, logger)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cfg:      cfg,
		db:       db,
		runner:   runner,
		logger:   logger.With().Str("component", "Scheduler").Logger(),
		stopChan: make(chan struct{}),
	}, nil
}

// Start blocks, running batches on the configured interval until the
// context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	select {
	case <-s.stopChan:
	case <-ctx.Done():
		s.Stop()
	}

	s.wg.Wait()
	if err := s.db.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to close run-history database")
	}
	s.logger.Info().Msg("Scheduler stopped")
	return nil
}

// Stop signals the scheduler loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopChan)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		nextRun := s.nextRunTime()
		s.logger.Info().Time("next_run", nextRun).Msg("Next batch run scheduled")

		timer := time.NewTimer(time.Until(nextRun))
		select {
		case <-timer.C:
			s.executeRun(ctx)
		case <-s.stopChan:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// nextRunTime continues the cadence from the last completed run; a cold
// start or an overdue interval runs immediately.
func (s *Scheduler) nextRunTime() time.Time {
	interval := time.Duration(s.cfg.IntervalMinutes) * time.Minute

	last, err := s.db.GetLastCompletedRun()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read last completed run, scheduling immediately")
		return time.Now()
	}
	if last == nil {
		return time.Now()
	}

	next := last.StartTime.Add(interval)
	if next.Before(time.Now()) {
		return time.Now()
	}
	return next
}

func (s *Scheduler) executeRun(ctx context.Context) {
	startTime := time.Now()
	runID, err := s.db.RecordRunStart(startTime)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to record run start")
	}

	result, err := s.runner.RunBatch(ctx)

	status := RunStatusCompleted
	numURLs, numErrors, numChanged := 0, 0, 0
	if err != nil {
		status = RunStatusFailed
		s.logger.Error().Err(err).Msg("Batch run failed")
	} else {
		numURLs = len(result.Results)
		numErrors = result.ErrorCount()
		numChanged = result.ChangedCount()
	}

	if runID != 0 {
		if err := s.db.UpdateRunCompletion(runID, time.Now(), status, numURLs, numErrors, numChanged); err != nil {
			s.logger.Error().Err(err).Msg("Failed to record run completion")
		}
	}

	s.logger.Info().
		Str("status", status).
		Dur("duration", time.Since(startTime)).
		Int("urls", numURLs).
		Int("errors", numErrors).
		Int("changed", numChanged).
		Msg("Scheduled batch run finished")
}
