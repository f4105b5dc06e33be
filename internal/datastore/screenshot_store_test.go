package datastore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagewatch/internal/artifact"
	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

func newTestStore(t *testing.T) *ScreenshotStore {
	t.Helper()
	cfg := config.StorageConfig{ArtifactsDir: t.TempDir(), RetentionDays: 7}
	store, err := NewScreenshotStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestSaveAndRead(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("png-bytes"), "screenshot-2024-03-15-09-30-05-example-com.png")
	require.NoError(t, err)
	assert.FileExists(t, path)

	data, err := store.Read("screenshot-2024-03-15-09-30-05-example-com.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSave_RejectsPathSeparators(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save([]byte("x"), filepath.Join("..", "escape.png"))
	assert.Error(t, err)

	_, err = store.Save([]byte("x"), "")
	assert.Error(t, err)
}

func TestRead_RejectsPathSeparators(t *testing.T) {
	cfg := config.StorageConfig{ArtifactsDir: filepath.Join(t.TempDir(), "artifacts"), RetentionDays: 7}
	store, err := NewScreenshotStore(cfg, zerolog.Nop())
	require.NoError(t, err)

	// A file one level above the store directory must stay unreachable.
	outside := filepath.Join(filepath.Dir(cfg.ArtifactsDir), "outside.png")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0644))

	_, err = store.Read(filepath.Join("..", "outside.png"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)

	_, err = store.Read("")
	assert.Error(t, err)

	_, err = store.Read("..")
	assert.Error(t, err)
}

func TestRead_Missing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read("screenshot-2024-03-15-09-30-05-nope.png")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList_FiltersToImageArtifacts(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save([]byte("a"), "screenshot-2024-03-15-09-30-05-example-com.png")
	require.NoError(t, err)
	_, err = store.Save([]byte("b"), "diff-2024-03-15-09-31-00-a-vs-b.png")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0644))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"screenshot-2024-03-15-09-30-05-example-com.png",
		"diff-2024-03-15-09-31-00-a-vs-b.png",
	}, names)
}

func TestFindMostRecent(t *testing.T) {
	store := newTestStore(t)

	saved := []string{
		"screenshot-2024-03-14-08-00-00-example-com.png",
		"screenshot-2024-03-15-08-00-00-example-com.png",
		"screenshot-2024-03-16-08-00-00-example-com.png",
		"screenshot-2024-03-17-08-00-00-other-site-net.png",
		"diff-2024-03-18-08-00-00-example-com-vs-example-com.png",
	}
	for _, name := range saved {
		_, err := store.Save([]byte("x"), name)
		require.NoError(t, err)
	}

	match, err := store.FindMostRecent("example-com", "")
	require.NoError(t, err)
	assert.Equal(t, "screenshot-2024-03-16-08-00-00-example-com.png", match)

	// Diff artifacts never match even though their names contain the key.
	match, err = store.FindMostRecent("other-site-net", "")
	require.NoError(t, err)
	assert.Equal(t, "screenshot-2024-03-17-08-00-00-other-site-net.png", match)
}

func TestFindMostRecent_ExcludesSelf(t *testing.T) {
	store := newTestStore(t)

	older := "screenshot-2024-03-15-08-00-00-example-com.png"
	newest := "screenshot-2024-03-16-08-00-00-example-com.png"
	for _, name := range []string{older, newest} {
		_, err := store.Save([]byte("x"), name)
		require.NoError(t, err)
	}

	match, err := store.FindMostRecent("example-com", newest)
	require.NoError(t, err)
	assert.Equal(t, older, match)
}

func TestFindMostRecent_NoMatchReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	match, err := store.FindMostRecent("example-com", "")
	require.NoError(t, err)
	assert.Empty(t, match)
}

func TestFindMostRecent_OnlySelfReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	only := "screenshot-2024-03-16-08-00-00-example-com.png"
	_, err := store.Save([]byte("x"), only)
	require.NoError(t, err)

	match, err := store.FindMostRecent("example-com", only)
	require.NoError(t, err)
	assert.Empty(t, match)
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().UTC()
	oldShot := artifact.Filename(artifact.KindScreenshot, "https://old.example.com", now.Add(-10*24*time.Hour))
	freshShot := artifact.Filename(artifact.KindScreenshot, "https://fresh.example.com", now.Add(-time.Hour))
	oldDiff := "diff-" + artifact.FormatTimestamp(now.Add(-30*24*time.Hour)) + "-a-vs-b.png"

	for _, name := range []string{oldShot, freshShot, oldDiff} {
		_, err := store.Save([]byte("x"), name)
		require.NoError(t, err)
	}

	require.NoError(t, store.Prune(7*24*time.Hour))

	names, err := store.List()
	require.NoError(t, err)
	// Old screenshot gone; fresh screenshot and the diff survive, diffs
	// regardless of age.
	assert.ElementsMatch(t, []string{freshShot, oldDiff}, names)
}

func TestPrune_SkipsUnparseableNames(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save([]byte("x"), "screenshot-garbage.png")
	require.NoError(t, err)

	require.NoError(t, store.Prune(time.Hour))

	names, err := store.List()
	require.NoError(t, err)
	assert.Contains(t, names, "screenshot-garbage.png")
}

func TestPrune_ContinuesPastFailedDelete(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().UTC()
	stuck := artifact.Filename(artifact.KindScreenshot, "https://stuck.example.com", now.Add(-10*24*time.Hour))
	old := artifact.Filename(artifact.KindScreenshot, "https://old.example.com", now.Add(-10*24*time.Hour))
	fresh := artifact.Filename(artifact.KindScreenshot, "https://fresh.example.com", now.Add(-time.Hour))

	for _, name := range []string{stuck, old, fresh} {
		_, err := store.Save([]byte("x"), name)
		require.NoError(t, err)
	}

	store.remove = func(path string) error {
		if strings.HasSuffix(path, stuck) {
			return errors.New("remove blocked")
		}
		return os.Remove(path)
	}

	require.NoError(t, store.Prune(7*24*time.Hour))

	names, err := store.List()
	require.NoError(t, err)
	// The blocked file stays; the other expired screenshot is still pruned.
	assert.ElementsMatch(t, []string{stuck, fresh}, names)
}

func TestPrune_Idempotent(t *testing.T) {
	store := newTestStore(t)

	old := artifact.Filename(artifact.KindScreenshot, "https://example.com", time.Now().UTC().Add(-10*24*time.Hour))
	_, err := store.Save([]byte("x"), old)
	require.NoError(t, err)

	require.NoError(t, store.Prune(7*24*time.Hour))
	require.NoError(t, store.Prune(7*24*time.Hour))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}
