package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	job *domain.Job

	claimErr      error
	completedID   string
	completedURL  string
	failedID      string
	failedMessage string
	failedCtxErr  error
	terminalCalls int
}

func (s *fakeStore) Claim(ctx context.Context, jobID string) (*domain.Job, error) {
	if s.claimErr != nil {
		return nil, s.claimErr
	}
	return s.job, nil
}

func (s *fakeStore) MarkCompleted(ctx context.Context, jobID, processedURL string) error {
	s.terminalCalls++
	s.completedID = jobID
	s.completedURL = processedURL
	return nil
}

func (s *fakeStore) MarkFailed(ctx context.Context, jobID, errorMessage string) error {
	s.terminalCalls++
	s.failedID = jobID
	s.failedMessage = errorMessage
	s.failedCtxErr = ctx.Err()
	return ctx.Err()
}

type fakeFetcher struct {
	err     error
	written string
}

func (f *fakeFetcher) Fetch(ctx context.Context, sourceURL, dst string) error {
	if f.err != nil {
		return f.err
	}
	f.written = dst
	return os.WriteFile(dst, []byte("input video"), 0o644)
}

type fakeTranscoder struct {
	err        error
	pitchShift int
	written    string
}

func (f *fakeTranscoder) Transcode(ctx context.Context, inputPath, outputPath string, pitchShift int) error {
	f.pitchShift = pitchShift
	if f.err != nil {
		return f.err
	}
	f.written = outputPath
	return os.WriteFile(outputPath, []byte("output video"), 0o644)
}

type fakePublisher struct {
	err error
	url string
}

func (f *fakePublisher) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testJob() *domain.Job {
	return &domain.Job{
		JobID:      "7b8e1c52-59c4-4f0e-9a3d-1f2b3c4d5e6f",
		OwnerID:    "user-1",
		SourceURL:  "https://example.com/clip.mp4",
		PitchShift: 7,
		Status:     domain.JobStatusProcessing,
	}
}

type blockingFetcher struct{}

func (blockingFetcher) Fetch(ctx context.Context, sourceURL, dst string) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestPipeline(t *testing.T, store *fakeStore, fetcher Fetcher, transcoder *fakeTranscoder, publisher *fakePublisher) *Pipeline {
	t.Helper()
	return New(&Config{
		Store:      store,
		Fetcher:    fetcher,
		Transcoder: transcoder,
		Publisher:  publisher,
		TempDir:    t.TempDir(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRunSuccess(t *testing.T) {
	store := &fakeStore{job: testJob()}
	fetcher := &fakeFetcher{}
	transcoder := &fakeTranscoder{}
	publisher := &fakePublisher{url: "https://blobs.example.com/processed/out.mp4"}

	p := newTestPipeline(t, store, fetcher, transcoder, publisher)

	err := p.Run(context.Background(), store.job.JobID)
	require.NoError(t, err)

	assert.Equal(t, store.job.JobID, store.completedID)
	assert.Equal(t, publisher.url, store.completedURL)
	assert.Empty(t, store.failedID)
	assert.Equal(t, 1, store.terminalCalls, "exactly one terminal write per run")
	assert.Equal(t, 7, transcoder.pitchShift)
}

func TestRunCleansUpTempFilesOnSuccess(t *testing.T) {
	store := &fakeStore{job: testJob()}
	fetcher := &fakeFetcher{}
	transcoder := &fakeTranscoder{}
	p := newTestPipeline(t, store, fetcher, transcoder, &fakePublisher{url: "u"})

	require.NoError(t, p.Run(context.Background(), store.job.JobID))

	assert.NoFileExists(t, fetcher.written)
	assert.NoFileExists(t, transcoder.written)
}

func TestRunFailureAtEachStage(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    *fakeFetcher
		transcoder *fakeTranscoder
		publisher  *fakePublisher
		wantInMsg  string
	}{
		{
			name:       "download fails",
			fetcher:    &fakeFetcher{err: errors.New("failed to download: 404")},
			transcoder: &fakeTranscoder{},
			publisher:  &fakePublisher{url: "u"},
			wantInMsg:  "failed to download",
		},
		{
			name:       "transcode fails",
			fetcher:    &fakeFetcher{},
			transcoder: &fakeTranscoder{err: errors.New("transcoding failed: make sure ffmpeg is installed")},
			publisher:  &fakePublisher{url: "u"},
			wantInMsg:  "ffmpeg is installed",
		},
		{
			name:       "publish fails",
			fetcher:    &fakeFetcher{},
			transcoder: &fakeTranscoder{},
			publisher:  &fakePublisher{err: errors.New("failed to upload processed video")},
			wantInMsg:  "failed to upload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{job: testJob()}
			p := newTestPipeline(t, store, tt.fetcher, tt.transcoder, tt.publisher)

			// Step failures are recorded on the job, never returned
			err := p.Run(context.Background(), store.job.JobID)
			require.NoError(t, err)

			assert.Equal(t, store.job.JobID, store.failedID)
			assert.Contains(t, store.failedMessage, tt.wantInMsg)
			assert.Empty(t, store.completedID)
			assert.Equal(t, 1, store.terminalCalls, "exactly one terminal write per run")

			// No temp files survive a failed run
			if tt.fetcher.written != "" {
				assert.NoFileExists(t, tt.fetcher.written)
			}
			if tt.transcoder.written != "" {
				assert.NoFileExists(t, tt.transcoder.written)
			}
		})
	}
}

func TestRunRecordsFailureAfterJobTimeout(t *testing.T) {
	store := &fakeStore{job: testJob()}
	p := newTestPipeline(t, store, blockingFetcher{}, &fakeTranscoder{}, &fakePublisher{url: "u"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx, store.job.JobID))

	assert.Equal(t, store.job.JobID, store.failedID)
	assert.Contains(t, store.failedMessage, context.DeadlineExceeded.Error())
	assert.Equal(t, 1, store.terminalCalls, "exactly one terminal write per run")
	// The write must not ride the expired job context, or the row would
	// be stuck in PROCESSING forever.
	assert.NoError(t, store.failedCtxErr, "terminal write ran on a dead context")
}

func TestRunJobNotFound(t *testing.T) {
	store := &fakeStore{claimErr: domain.ErrJobNotFound}
	p := newTestPipeline(t, store, &fakeFetcher{}, &fakeTranscoder{}, &fakePublisher{})

	// No row to update: the error surfaces, nothing is written
	err := p.Run(context.Background(), "missing-id")
	require.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Zero(t, store.terminalCalls)
}

func TestRunJobAlreadyClaimed(t *testing.T) {
	store := &fakeStore{claimErr: domain.ErrJobAlreadyClaimed}
	p := newTestPipeline(t, store, &fakeFetcher{}, &fakeTranscoder{}, &fakePublisher{})

	err := p.Run(context.Background(), "claimed-id")
	require.ErrorIs(t, err, domain.ErrJobAlreadyClaimed)
	assert.Zero(t, store.terminalCalls)
}
