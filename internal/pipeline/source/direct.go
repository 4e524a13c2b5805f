package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/qmdang/pitchshift-be/internal/domain"
)

// directSource fetches a video file over plain HTTP GET, streaming the
// body to disk to keep memory flat for large files
type directSource struct {
	url    string
	client *http.Client
}

func (s *directSource) Kind() string {
	return domain.SourceKindDirect
}

func (s *directSource) Fetch(ctx context.Context, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return &DownloadError{URL: s.url, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &DownloadError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{
			URL: s.url,
			Err: fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return &DownloadError{URL: s.url, Err: fmt.Errorf("failed to create file: %w", err)}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return &DownloadError{URL: s.url, Err: fmt.Errorf("failed to write file: %w", err)}
	}

	return nil
}
