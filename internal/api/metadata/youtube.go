// Package metadata performs best-effort preview lookups for source URLs.
// Failures here never affect job admission or lifecycle.
package metadata

import (
	"context"
	"fmt"
	"regexp"
	"time"

	ytdl "github.com/kkdai/youtube/v2"
)

// MetadataError wraps any failure to look up preview information
type MetadataError struct {
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to fetch video metadata: %v", e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Preview holds display-only information about a source video
type Preview struct {
	Title         string `json:"title"`
	ThumbnailURL  string `json:"thumbnail_url"`
	DurationLabel string `json:"duration"`
	VideoID       string `json:"video_id"`
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractYouTubeID pulls the 11-character video id out of a watch-page
// or short-link URL. Empty string if the URL doesn't match.
func ExtractYouTubeID(rawURL string) string {
	match := youtubeIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// YouTubeClient looks up title, thumbnail, and duration for YouTube URLs
type YouTubeClient struct {
	client ytdl.Client
}

// NewYouTubeClient creates a metadata client
func NewYouTubeClient() *YouTubeClient {
	return &YouTubeClient{}
}

// Preview fetches display metadata for a YouTube URL. Non-YouTube URLs
// and upstream failures return a MetadataError; callers treat the lookup
// as a non-authoritative side channel.
func (c *YouTubeClient) Preview(ctx context.Context, rawURL string) (*Preview, error) {
	videoID := ExtractYouTubeID(rawURL)
	if videoID == "" {
		return nil, &MetadataError{Err: fmt.Errorf("not a recognized YouTube URL")}
	}

	video, err := c.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		// Fall back to the predictable thumbnail URL; the player page
		// works even when format probing is blocked.
		return &Preview{
			Title:         "YouTube Video",
			ThumbnailURL:  fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
			DurationLabel: "Unknown",
			VideoID:       videoID,
		}, nil
	}

	preview := &Preview{
		Title:         video.Title,
		ThumbnailURL:  fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
		DurationLabel: formatDuration(video.Duration),
		VideoID:       videoID,
	}

	if len(video.Thumbnails) > 0 {
		preview.ThumbnailURL = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	return preview, nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "Unknown"
	}
	total := int(d.Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
