package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStreamingSiteURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://www.youtube.com/watch?v=abc12345678", want: true},
		{url: "https://youtu.be/abc12345678", want: true},
		{url: "https://example.com/clip.mp4", want: false},
		{url: "http://example.com/file.txt", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStreamingSiteURL(tt.url), "url=%s", tt.url)
	}
}

func TestHasVideoExtension(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://example.com/clip.mp4", want: true},
		{url: "https://example.com/clip.MP4", want: true},
		{url: "https://example.com/clip.webm", want: true},
		{url: "https://example.com/clip.ogg", want: true},
		{url: "https://example.com/clip.mov", want: true},
		{url: "https://example.com/clip.avi", want: true},
		{url: "https://example.com/clip.mp4?token=abc", want: true},
		{url: "http://example.com/file.txt", want: false},
		{url: "https://example.com/clip", want: false},
		{url: "https://example.com/clip.mkv", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasVideoExtension(tt.url), "url=%s", tt.url)
	}
}

func TestResolverClassifiesOnce(t *testing.T) {
	r := NewResolver("yt-dlp", time.Minute)

	assert.IsType(t, &streamingSource{}, r.Resolve("https://youtu.be/abc12345678"))
	assert.IsType(t, &directSource{}, r.Resolve("https://example.com/clip.mp4"))
}

func TestDirectSourceFetch(t *testing.T) {
	body := []byte("fake video bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "input.mp4")
	r := NewResolver("yt-dlp", time.Minute)

	err := r.Fetch(context.Background(), srv.URL+"/clip.mp4", dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestDirectSourceFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "input.mp4")
	r := NewResolver("yt-dlp", time.Minute)

	err := r.Fetch(context.Background(), srv.URL+"/clip.mp4", dst)

	var downloadErr *DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Contains(t, downloadErr.Error(), "unexpected status")
}

func TestDirectSourceFetchTransportFailure(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "input.mp4")
	r := NewResolver("yt-dlp", time.Second)

	err := r.Fetch(context.Background(), "http://127.0.0.1:1/clip.mp4", dst)

	var downloadErr *DownloadError
	assert.ErrorAs(t, err, &downloadErr)
}

func TestStreamingSourceMissingTool(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "input.mp4")
	r := NewResolver("/nonexistent/yt-dlp", time.Minute)

	err := r.Fetch(context.Background(), "https://youtu.be/abc12345678", dst)

	var downloadErr *DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Contains(t, downloadErr.Error(), "is installed")
}
