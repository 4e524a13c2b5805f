package source

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/qmdang/pitchshift-be/internal/domain"
)

// streamingSource delegates acquisition to the external yt-dlp tool,
// requesting the best available mp4 written directly to dst
type streamingSource struct {
	url      string
	toolPath string
	timeout  time.Duration
}

func (s *streamingSource) Kind() string {
	return domain.SourceKindStreaming
}

func (s *streamingSource) Fetch(ctx context.Context, dst string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.toolPath,
		"-f", "best[ext=mp4]",
		"-o", dst,
		s.url,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return &DownloadError{
				URL: s.url,
				Err: fmt.Errorf("%s failed: %v: %s. Make sure %s is installed", s.toolPath, err, lastLine(detail), s.toolPath),
			}
		}
		return &DownloadError{
			URL: s.url,
			Err: fmt.Errorf("failed to run %s: %v. Make sure %s is installed", s.toolPath, err, s.toolPath),
		}
	}

	return nil
}

// lastLine keeps error messages readable when the tool dumps pages of output
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
