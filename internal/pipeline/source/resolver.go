package source

import (
	"context"
	"net/http"
	"time"
)

// Source fetches a playable video into a local destination path
type Source interface {
	Fetch(ctx context.Context, dst string) error
	Kind() string
}

// Resolver classifies a source URL into its Source variant. The
// classification happens exactly once; downstream code dispatches on
// the returned variant, never on the raw URL.
type Resolver struct {
	httpClient *http.Client
	ytdlpPath  string
	timeout    time.Duration
}

// NewResolver creates a resolver. ytdlpPath is the external streaming
// download tool binary; timeout bounds a single acquisition attempt.
func NewResolver(ytdlpPath string, timeout time.Duration) *Resolver {
	return &Resolver{
		httpClient: &http.Client{Timeout: timeout},
		ytdlpPath:  ytdlpPath,
		timeout:    timeout,
	}
}

// Resolve returns the Source variant for a URL
func (r *Resolver) Resolve(rawURL string) Source {
	if IsStreamingSiteURL(rawURL) {
		return &streamingSource{
			url:      rawURL,
			toolPath: r.ytdlpPath,
			timeout:  r.timeout,
		}
	}
	return &directSource{
		url:    rawURL,
		client: r.httpClient,
	}
}

// Fetch resolves the URL and downloads it to dst in one call
func (r *Resolver) Fetch(ctx context.Context, rawURL, dst string) error {
	return r.Resolve(rawURL).Fetch(ctx, dst)
}
