// Package source acquires playable video files from a job's source URL.
// A URL is classified once, into a direct file fetch or a delegation to
// an external streaming-site download tool.
package source

import (
	"fmt"
	"path"
	"strings"
)

// Video file extensions accepted for direct downloads
var videoExtensions = []string{".mp4", ".webm", ".ogg", ".mov", ".avi"}

// DownloadError wraps any failure to acquire the source video
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsStreamingSiteURL reports whether the URL points at a streaming site
// that requires the external download tool rather than a direct fetch
func IsStreamingSiteURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}

// HasVideoExtension reports whether the URL path ends in a recognized
// video file extension, case-insensitive
func HasVideoExtension(rawURL string) bool {
	// Strip query/fragment so "clip.mp4?token=x" still matches
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	ext := strings.ToLower(path.Ext(trimmed))
	for _, want := range videoExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
