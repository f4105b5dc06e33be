// Package monitor orchestrates the per-URL capture pipeline and the batch
// runner over it. The service owns no persistent state; it is a pure
// orchestrator over the store, comparator and notifier.
package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pagewatch/internal/artifact"
	"pagewatch/internal/common"
	"pagewatch/internal/config"
	"pagewatch/internal/models"
	"pagewatch/internal/notifier"
)

// Service runs the capture → persist → locate previous → compare →
// threshold-gate pipeline for each configured URL.
type Service struct {
	monitorCfg config.MonitorConfig
	storageCfg config.StorageConfig
	renderer   Renderer
	store      ArtifactStore
	comparator ImageComparator
	notifier   notifier.Notifier
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a new monitoring service.
func NewService(
	monitorCfg config.MonitorConfig,
	storageCfg config.StorageConfig,
	renderer Renderer,
	store ArtifactStore,
	comparator ImageComparator,
	notif notifier.Notifier,
	logger zerolog.Logger,
) *Service {
	return &Service{
		monitorCfg: monitorCfg,
		storageCfg: storageCfg,
		renderer:   renderer,
		store:      store,
		comparator: comparator,
		notifier:   notif,
		logger:     logger.With().Str("component", "MonitorService").Logger(),
		now:        time.Now,
	}
}

// RunBatch prunes expired captures once, then processes every configured
// URL sequentially, collecting one outcome per URL in configured order. A
// failing URL yields an error outcome; it never aborts the batch. An empty
// URL list is a configuration error and performs no captures.
func (s *Service) RunBatch(ctx context.Context) (*models.BatchResult, error) {
	retention := time.Duration(s.storageCfg.RetentionDays) * 24 * time.Hour
	s.logger.Info().Int("retention_days", s.storageCfg.RetentionDays).Msg("Pruning expired screenshots")
	if err := s.store.Prune(retention); err != nil {
		// Retention is housekeeping; a listing failure must not cost us
		// the capture run.
		s.logger.Error().Err(err).Msg("Retention pruning failed")
	}

	if len(s.monitorCfg.URLs) == 0 {
		return nil, common.NewConfigurationError("monitor", "urls", "no URLs configured")
	}

	result := &models.BatchResult{Results: make([]models.URLOutcome, 0, len(s.monitorCfg.URLs))}
	for _, url := range s.monitorCfg.URLs {
		outcome := s.ProcessURL(ctx, url)
		if outcome.IsError() {
			s.logger.Error().Str("url", url).Str("error", outcome.Error).Msg("URL processing failed")
		}
		result.Results = append(result.Results, outcome)
	}

	s.logger.Info().
		Int("urls", len(result.Results)).
		Int("errors", result.ErrorCount()).
		Int("changed", result.ChangedCount()).
		Msg("Batch run finished")
	return result, nil
}

// ProcessURL runs the pipeline for one URL. Each step is terminal on its
// first unrecoverable failure and records an error outcome; artifacts
// persisted before the failure stay persisted.
func (s *Service) ProcessURL(ctx context.Context, url string) models.URLOutcome {
	outcome := models.URLOutcome{URL: url}

	screenshot, err := s.renderer.CaptureFullPage(ctx, url)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	filename := artifact.Filename(artifact.KindScreenshot, url, s.now())
	if _, err := s.store.Save(screenshot, filename); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.ScreenshotPath = artifact.PublicPath(filename)
	s.logger.Info().Str("url", url).Str("filename", filename).Msg("Saved new screenshot")

	// The artifact just saved must never be matched as its own previous.
	previous, err := s.store.FindMostRecent(artifact.NormalizeKey(url), filename)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	if previous == "" {
		s.logger.Info().Str("url", url).Msg("No previous screenshot found")
		return outcome
	}
	previousPath := artifact.PublicPath(previous)
	outcome.PreviousScreenshot = &previousPath

	previousBuf, err := s.store.Read(previous)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	diffResult, diffBuf, err := s.comparator.Compare(previousBuf, screenshot)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	diffFilename := artifact.DiffFilename(previous, filename, s.now())
	if _, err := s.store.Save(diffBuf, diffFilename); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	diffResult.Path = artifact.PublicPath(diffFilename)
	outcome.Diff = diffResult

	if diffResult.DiffPercentage > s.monitorCfg.ChangeThreshold {
		s.logger.Info().
			Str("url", url).
			Float64("diff_percentage", diffResult.DiffPercentage).
			Float64("threshold", s.monitorCfg.ChangeThreshold).
			Msg("Change threshold exceeded")
		if err := s.notifier.SendChangeNotification(ctx, url, diffResult.DiffPercentage, diffResult.Path); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		outcome.NotificationSent = true
	} else {
		s.logger.Debug().
			Str("url", url).
			Float64("diff_percentage", diffResult.DiffPercentage).
			Msg("Change within threshold")
	}

	return outcome
}
