// Package pipeline drives one pitch-shift job through its state machine:
// PENDING -> PROCESSING -> COMPLETED or FAILED.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/qmdang/pitchshift-be/internal/pipeline/tempfile"
)

// Deadline for the terminal status write. It runs on its own context:
// the job context is often already expired by the time a step fails.
const terminalWriteTimeout = 10 * time.Second

// JobStore is the persistence surface the pipeline needs. Claim moves a
// PENDING job to PROCESSING; the Mark methods write the terminal state.
type JobStore interface {
	Claim(ctx context.Context, jobID string) (*domain.Job, error)
	MarkCompleted(ctx context.Context, jobID, processedURL string) error
	MarkFailed(ctx context.Context, jobID, errorMessage string) error
}

// Fetcher acquires the source video into a local file
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL, dst string) error
}

// Transcoder produces the pitch-shifted output file from the input file
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string, pitchShift int) error
}

// Publisher stores the output file durably and returns its URL
type Publisher interface {
	Publish(ctx context.Context, localPath, objectName string) (string, error)
}

// Config holds pipeline dependencies
type Config struct {
	Store      JobStore
	Fetcher    Fetcher
	Transcoder Transcoder
	Publisher  Publisher
	TempDir    string
	Logger     *slog.Logger
}

// Pipeline executes jobs one at a time per call; concurrent Run calls
// for different jobs share no mutable state
type Pipeline struct {
	store      JobStore
	fetcher    Fetcher
	transcoder Transcoder
	publisher  Publisher
	tempDir    string
	logger     *slog.Logger
}

// New creates a pipeline
func New(cfg *Config) *Pipeline {
	return &Pipeline{
		store:      cfg.Store,
		fetcher:    cfg.Fetcher,
		transcoder: cfg.Transcoder,
		publisher:  cfg.Publisher,
		tempDir:    cfg.TempDir,
		logger:     cfg.Logger,
	}
}

// Run claims the job, executes acquisition, transcoding, and publication
// under a cleanup guard, and always materializes a terminal status write.
// Step failures are recorded on the job, never returned; the only errors
// Run surfaces are claim-phase ones (job missing or already claimed),
// which leave no state to update.
func (p *Pipeline) Run(ctx context.Context, jobID string) error {
	job, err := p.store.Claim(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			// No row to record the failure on; log is all we can do.
			p.logger.Error("Job vanished before processing",
				slog.String("job_id", jobID),
			)
			return fmt.Errorf("claim job: %w", err)
		}
		return fmt.Errorf("claim job: %w", err)
	}

	p.logger.Info("Job processing started",
		slog.String("job_id", job.JobID),
		slog.Int("pitch_shift", job.PitchShift),
		slog.String("source_url", job.SourceURL),
	)

	guard := tempfile.NewGuard(p.tempDir, p.logger)
	defer guard.Cleanup()

	processedURL, runErr := p.execute(ctx, job, guard)

	// Single materialization point: exactly one terminal write per run.
	// Detached from the job context so that a step timeout or shutdown
	// cancellation cannot leave the row stuck in PROCESSING.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	if runErr != nil {
		p.logger.Error("Job failed",
			slog.String("job_id", job.JobID),
			slog.String("error", runErr.Error()),
		)
		if updateErr := p.store.MarkFailed(writeCtx, job.JobID, runErr.Error()); updateErr != nil {
			p.logger.Error("Failed to update job status to FAILED",
				slog.String("job_id", job.JobID),
				slog.Any("error", updateErr),
			)
		}
		return nil
	}

	if updateErr := p.store.MarkCompleted(writeCtx, job.JobID, processedURL); updateErr != nil {
		p.logger.Error("Failed to update job status to COMPLETED",
			slog.String("job_id", job.JobID),
			slog.Any("error", updateErr),
		)
		return nil
	}

	p.logger.Info("Job completed",
		slog.String("job_id", job.JobID),
		slog.String("processed_url", processedURL),
	)

	return nil
}

// execute runs the three pipeline steps in order, each feeding the next
func (p *Pipeline) execute(ctx context.Context, job *domain.Job, guard *tempfile.Guard) (string, error) {
	inputPath := guard.Path(job.JobID, "input", ".mp4")
	outputPath := guard.Path(job.JobID, "output", ".mp4")

	if err := p.fetcher.Fetch(ctx, job.SourceURL, inputPath); err != nil {
		return "", err
	}

	if err := p.transcoder.Transcode(ctx, inputPath, outputPath, job.PitchShift); err != nil {
		return "", err
	}

	processedURL, err := p.publisher.Publish(ctx, outputPath, job.JobID+".mp4")
	if err != nil {
		return "", err
	}

	return processedURL, nil
}
