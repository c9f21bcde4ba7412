// Package artifact stages generated files in a writable temporary location
// and purges stale output.
package artifact

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FilePrefix marks composer output so cleanup never touches foreign files.
const FilePrefix = "archdiag_"

// RetentionWindow is how long staged artifacts survive before cleanup.
const RetentionWindow = 24 * time.Hour

// ErrNoWritableDir is the fatal configuration error raised when no candidate
// staging directory accepts writes. The request cannot be fulfilled at all.
var ErrNoWritableDir = errors.New("artifact: no writable staging directory")

// Writer stages artifacts in the first writable candidate directory.
type Writer struct {
	dir string
	log *slog.Logger
}

// NewWriter probes the candidate directories in order and binds to the first
// writable one. An empty candidate list defaults to the OS temp directory and
// ./artifacts.
func NewWriter(candidates []string, log *slog.Logger) (*Writer, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(candidates) == 0 {
		candidates = []string{os.TempDir(), "artifacts"}
	}
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		probe := filepath.Join(dir, FilePrefix+"probe")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			continue
		}
		os.Remove(probe)
		return &Writer{dir: dir, log: log}, nil
	}
	return nil, ErrNoWritableDir
}

// Dir returns the bound staging directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns a fresh artifact path for the given extension: semantic
// prefix, UTC timestamp, short random disambiguator. The timestamp and
// disambiguator are the only non-deterministic output of a generation call.
func (w *Writer) Path(ext string) string {
	name := fmt.Sprintf("%s%s_%s.%s",
		FilePrefix,
		time.Now().UTC().Format("20060102T150405"),
		uuid.NewString()[:8],
		strings.TrimPrefix(ext, "."))
	return filepath.Join(w.dir, name)
}

// Write stages content under a fresh artifact path and returns it.
func (w *Writer) Write(content []byte, ext string) (string, error) {
	path := w.Path(ext)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return path, nil
}

// Cleanup removes prefixed artifacts older than the retention window.
// Individual failures are logged, never returned: cleanup is best effort.
func (w *Writer) Cleanup() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.Warn("artifact cleanup skipped", "dir", w.dir, "error", err)
		return
	}
	cutoff := time.Now().Add(-RetentionWindow)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), FilePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if err := os.Remove(path); err != nil {
			w.log.Warn("artifact cleanup failed", "path", path, "error", err)
		}
	}
}
