package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/qmdang/pitchshift-be/internal/domain"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// Claim moves a PENDING job to PROCESSING using optimistic locking and
// returns the full job. ErrJobNotFound if the row doesn't exist,
// ErrJobAlreadyClaimed if it does but isn't PENDING.
func (s *Storage) Claim(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1,
		    updated_at = NOW()
		WHERE job_id = $2
		  AND status = $3
		RETURNING job_id, owner_id, source_url, pitch_shift, title,
		          thumbnail_url, source_kind, status, processed_url,
		          error_message, created_at, updated_at
	`

	var job domain.Job
	err := s.db.QueryRowxContext(ctx, query, domain.JobStatusProcessing, jobID, domain.JobStatusPending).StructScan(&job)
	if err == nil {
		s.logger.Info("Job claimed",
			slog.String("job_id", jobID),
		)
		return &job, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}

	// Distinguish a missing row from one already past PENDING
	var status string
	err = s.db.GetContext(ctx, &status, `SELECT status FROM jobs WHERE job_id = $1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check job status: %w", err)
	}

	s.logger.Warn("Failed to claim job - not in PENDING status",
		slog.String("job_id", jobID),
		slog.String("status", status),
	)
	return nil, domain.ErrJobAlreadyClaimed
}

// MarkCompleted writes the COMPLETED terminal state with the processed
// URL. The status guard makes terminal states immutable: a job that has
// already completed or failed is never rewritten.
func (s *Storage) MarkCompleted(ctx context.Context, jobID, processedURL string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    processed_url = $2,
		    error_message = NULL,
		    updated_at = NOW()
		WHERE job_id = $3
		  AND status NOT IN ($4, $5)
	`

	return s.markTerminal(ctx, jobID, domain.JobStatusCompleted, query, processedURL)
}

// MarkFailed writes the FAILED terminal state with a human-readable
// error message
func (s *Storage) MarkFailed(ctx context.Context, jobID, errorMessage string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    error_message = $2,
		    processed_url = NULL,
		    updated_at = NOW()
		WHERE job_id = $3
		  AND status NOT IN ($4, $5)
	`

	return s.markTerminal(ctx, jobID, domain.JobStatusFailed, query, errorMessage)
}

func (s *Storage) markTerminal(ctx context.Context, jobID, status, query, value string) error {
	result, err := s.db.ExecContext(ctx, query, status, value, jobID,
		domain.JobStatusCompleted, domain.JobStatusFailed)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Terminal status write skipped - job already terminal or missing",
			slog.String("job_id", jobID),
			slog.String("status", status),
		)
		return nil
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", jobID),
		slog.String("status", status),
	)

	return nil
}
