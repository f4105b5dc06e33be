// Package artifact is the single owner of the persisted filename layout.
// Every artifact is named <kind>-<YYYY-MM-DD-HH-mm-ss>-<key>.png where the
// timestamp is lexicographically sortable, so string ordering of filenames
// equals chronological ordering. The most-recent lookup and the retention
// pruner both depend on this layout.
package artifact

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"pagewatch/internal/common"
)

// Kind identifies the artifact category encoded in the filename prefix.
type Kind string

const (
	// KindScreenshot marks a full-page capture.
	KindScreenshot Kind = "screenshot"
	// KindDiff marks a comparison raster between two captures.
	KindDiff Kind = "diff"
)

const (
	// TimestampLayout encodes timestamps to whole-second precision. The
	// field order makes lexicographic and chronological ordering agree.
	TimestampLayout = "2006-01-02-15-04-05"

	// Extension is the only on-disk image format.
	Extension = ".png"

	// diffKeyJoiner separates the two source key segments in a diff name.
	diffKeyJoiner = "-vs-"

	// PublicMountPath is where the HTTP layer exposes the artifact
	// namespace. Paths built from it appear in outcomes and mail bodies.
	PublicMountPath = "/artifacts"
)

var schemeRegex = regexp.MustCompile(`^https?://`)

var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)

// NormalizeKey derives the logical key for a URL: scheme stripped, every
// character outside [A-Za-z0-9] replaced with a dash, lowercased. The
// mapping is lossy and many-to-one; what matters is that it is total,
// deterministic, and idempotent.
func NormalizeKey(rawURL string) string {
	key := schemeRegex.ReplaceAllString(rawURL, "")
	key = nonAlphanumericRegex.ReplaceAllString(key, "-")
	return strings.ToLower(key)
}

// Filename builds the deterministic artifact name for a URL at a timestamp.
func Filename(kind Kind, rawURL string, capturedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s%s", kind, FormatTimestamp(capturedAt), NormalizeKey(rawURL), Extension)
}

// DiffFilename composes the name of a diff artifact from its two source
// filenames, stamped with the given time. Malformed source names (fewer
// than three dash-separated fields) contribute an empty key segment rather
// than failing; diff names are not guaranteed to parse back to exact
// source URLs, only to their key segments.
func DiffFilename(filenameA, filenameB string, createdAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s%s%s%s",
		KindDiff, FormatTimestamp(createdAt),
		KeySegment(filenameA), diffKeyJoiner, KeySegment(filenameB),
		Extension)
}

// KeySegment extracts the logical-key portion of an artifact filename:
// everything after the first two dash-separated fields, without the
// extension. Malformed input yields "".
func KeySegment(filename string) string {
	base := strings.TrimSuffix(filename, Extension)
	parts := strings.SplitN(base, "-", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// FormatTimestamp encodes a timestamp in the sortable filename layout.
// Timestamps are truncated to whole seconds and rendered in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp recovers the capture time from an artifact filename. It is
// the inverse of the timestamp encoding to second precision and is used for
// sorting and retention only, never for key equality.
func ParseTimestamp(filename string) (time.Time, error) {
	base := strings.TrimSuffix(filename, Extension)
	parts := strings.Split(base, "-")
	if len(parts) < 7 {
		return time.Time{}, common.NewError("malformed artifact filename: %q", filename)
	}
	encoded := strings.Join(parts[1:7], "-")
	ts, err := time.ParseInLocation(TimestampLayout, encoded, time.UTC)
	if err != nil {
		return time.Time{}, common.WrapErrorf(err, "unparseable timestamp in %q", filename)
	}
	return ts, nil
}

// HasKind reports whether a filename carries the given kind prefix and the
// artifact extension.
func HasKind(filename string, kind Kind) bool {
	return strings.HasPrefix(filename, string(kind)+"-") && strings.HasSuffix(filename, Extension)
}

// PublicPath maps an artifact filename to the path the HTTP layer serves
// it under.
func PublicPath(filename string) string {
	return PublicMountPath + "/" + filename
}
