// Package submission validates new pitch-shift requests and admits them
// into the job pipeline. This is the only caller-visible synchronous
// failure point; everything downstream records failures on the job.
package submission

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/qmdang/pitchshift-be/internal/pipeline/pitch"
	"github.com/qmdang/pitchshift-be/internal/pipeline/source"
)

// ValidationError reports malformed caller input; it is the only error
// class that crosses the submission boundary
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// JobCreator persists new job records
type JobCreator interface {
	CreateJob(ctx context.Context, job *domain.Job) error
}

// Dispatcher hands a created job off for asynchronous execution
type Dispatcher interface {
	Dispatch(ctx context.Context, jobID string) error
}

// Request carries a validated submission's inputs
type Request struct {
	OwnerID      string
	SourceURL    string
	PitchShift   int
	Title        string
	ThumbnailURL string
}

// Gate admits jobs: validate, persist as PENDING, dispatch
type Gate struct {
	creator    JobCreator
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewGate creates a submission gate
func NewGate(creator JobCreator, dispatcher Dispatcher, logger *slog.Logger) *Gate {
	return &Gate{
		creator:    creator,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit validates the request, creates a PENDING job, and triggers its
// asynchronous execution. Returns the created job on success.
func (g *Gate) Submit(ctx context.Context, req *Request) (*domain.Job, error) {
	if err := Validate(req.SourceURL, req.PitchShift); err != nil {
		return nil, err
	}

	sourceKind := domain.SourceKindDirect
	if source.IsStreamingSiteURL(req.SourceURL) {
		sourceKind = domain.SourceKindStreaming
	}

	now := time.Now().UTC()
	job := &domain.Job{
		JobID:        uuid.New().String(),
		OwnerID:      req.OwnerID,
		SourceURL:    req.SourceURL,
		PitchShift:   req.PitchShift,
		Title:        nullString(req.Title),
		ThumbnailURL: nullString(req.ThumbnailURL),
		SourceKind:   sourceKind,
		Status:       domain.JobStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := g.creator.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := g.dispatcher.Dispatch(ctx, job.JobID); err != nil {
		// The record exists but will never be picked up; surface the
		// failure so the caller can resubmit.
		g.logger.Error("Failed to dispatch job",
			slog.String("job_id", job.JobID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to dispatch job: %w", err)
	}

	g.logger.Info("Job submitted",
		slog.String("job_id", job.JobID),
		slog.String("owner_id", job.OwnerID),
		slog.Int("pitch_shift", job.PitchShift),
		slog.String("source_kind", sourceKind),
	)

	return job, nil
}

// Validate checks the pitch range and URL shape
func Validate(sourceURL string, pitchShift int) error {
	if !pitch.InRange(pitchShift) {
		return &ValidationError{
			Message: fmt.Sprintf("pitch shift must be between %d and %d semitones inclusive", pitch.MinShift, pitch.MaxShift),
		}
	}

	if !source.IsStreamingSiteURL(sourceURL) && !source.HasVideoExtension(sourceURL) {
		return &ValidationError{
			Message: "source url must be a YouTube URL or a direct video file URL (mp4, webm, ogg, mov, avi)",
		}
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
