// Package tempfile provides scoped temporary file paths with guaranteed
// cleanup on every exit path of the enclosing operation.
package tempfile

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Guard tracks temporary file paths and deletes each exactly once on
// Cleanup. Deletion failures are demoted to warnings; a path that was
// never created (e.g. transcoding failed before producing output) is
// not an error.
type Guard struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	paths []string
	done  bool
}

// NewGuard creates a guard placing files under dir
func NewGuard(dir string, logger *slog.Logger) *Guard {
	return &Guard{
		dir:    dir,
		logger: logger,
	}
}

// Path reserves a collision-resistant temp path for a job and tracks it
// for cleanup. Concurrent jobs never collide: the name combines the job
// id with a random suffix.
func (g *Guard) Path(jobID, label, ext string) string {
	name := jobID + "_" + label + "_" + uuid.New().String()[:8] + ext
	path := filepath.Join(g.dir, name)

	g.mu.Lock()
	g.paths = append(g.paths, path)
	g.mu.Unlock()

	return path
}

// Track registers an externally created path for cleanup
func (g *Guard) Track(path string) {
	g.mu.Lock()
	g.paths = append(g.paths, path)
	g.mu.Unlock()
}

// Cleanup removes every tracked path. Safe to call more than once;
// subsequent calls are no-ops.
func (g *Guard) Cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return
	}
	g.done = true

	for _, path := range g.paths {
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			g.logger.Warn("Failed to remove temporary file",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}
}
