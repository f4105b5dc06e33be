// Package datastore owns the on-disk artifact namespace. Nothing else
// writes into the artifacts directory.
package datastore

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pagewatch/internal/artifact"
	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

// ScreenshotStore persists screenshot and diff artifacts in one flat
// directory. All methods are scoped to that directory; filenames never
// contain path separators.
type ScreenshotStore struct {
	dir    string
	logger zerolog.Logger
	remove func(path string) error
}

// NewScreenshotStore creates the store and ensures its directory exists.
func NewScreenshotStore(cfg config.StorageConfig, logger zerolog.Logger) (*ScreenshotStore, error) {
	if err := os.MkdirAll(cfg.ArtifactsDir, 0755); err != nil {
		return nil, common.NewStoreError("init", cfg.ArtifactsDir, err)
	}
	return &ScreenshotStore{
		dir:    cfg.ArtifactsDir,
		logger: logger.With().Str("component", "ScreenshotStore").Logger(),
		remove: os.Remove,
	}, nil
}

// validateFilename rejects names that could escape the flat namespace.
// Every operation taking a caller-supplied name goes through it.
func validateFilename(op, filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) {
		return common.NewStoreError(op, filename, common.NewError("invalid artifact filename"))
	}
	return nil
}

// Save writes bytes under filename and returns the filesystem path.
// An existing artifact with the same name is overwritten; names are
// timestamp-qualified so that does not happen within a batch.
func (s *ScreenshotStore) Save(data []byte, filename string) (string, error) {
	if err := validateFilename("save", filename); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", common.NewStoreError("save", filename, err)
	}

	s.logger.Debug().Str("filename", filename).Int("bytes", len(data)).Msg("Saved artifact")
	return path, nil
}

// Read returns the bytes of a stored artifact.
func (s *ScreenshotStore) Read(filename string) ([]byte, error) {
	if err := validateFilename("read", filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewStoreError("read", filename, err)
	}
	return data, nil
}

// List returns the filenames of all stored image artifacts, unordered.
func (s *ScreenshotStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, common.NewStoreError("list", "", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), artifact.Extension) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// FindMostRecent returns the latest screenshot artifact whose name contains
// the normalized key, or "" if none exists. The excluding argument removes
// a just-saved artifact from consideration so a capture never matches
// itself as its own previous. Matching is by substring containment, which
// the persisted layout dictates; keys that are substrings of other keys can
// false-match.
func (s *ScreenshotStore) FindMostRecent(normalizedKey string, excluding string) (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}

	// The sortable timestamp encoding makes the lexicographic maximum the
	// chronologically latest capture.
	mostRecent := ""
	for _, name := range names {
		if !artifact.HasKind(name, artifact.KindScreenshot) {
			continue
		}
		if name == excluding {
			continue
		}
		if !strings.Contains(name, normalizedKey) {
			continue
		}
		if name > mostRecent {
			mostRecent = name
		}
	}

	return mostRecent, nil
}

// Prune deletes screenshot artifacts whose encoded timestamp is older than
// now minus retention. Diff artifacts are exempt. Failures on individual
// files are logged and skipped; pruning of the rest continues.
func (s *ScreenshotStore) Prune(retention time.Duration) error {
	names, err := s.List()
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-retention)
	pruned := 0
	for _, name := range names {
		if !artifact.HasKind(name, artifact.KindScreenshot) {
			continue
		}

		ts, err := artifact.ParseTimestamp(name)
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", name).Msg("Skipping artifact with unparseable timestamp")
			continue
		}
		if !ts.Before(cutoff) {
			continue
		}

		if err := s.remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Error().Err(err).Str("filename", name).Msg("Failed to delete expired screenshot")
			continue
		}
		pruned++
		s.logger.Info().Str("filename", name).Msg("Deleted expired screenshot")
	}

	if pruned > 0 {
		s.logger.Info().Int("pruned", pruned).Dur("retention", retention).Msg("Retention pruning finished")
	}
	return nil
}

// Dir returns the directory the store owns, for static file serving.
func (s *ScreenshotStore) Dir() string {
	return s.dir
}
