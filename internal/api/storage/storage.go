package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/qmdang/pitchshift-be/shared/postgresql"
)

// RecentJobsLimit caps the listing at the newest jobs per owner
const RecentJobsLimit = 10

// Storage handles all database operations for the API service
type Storage struct {
	db *sqlx.DB
}

// NewStorage creates a new Storage instance
func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// CreateJob inserts a new PENDING job record
func (s *Storage) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, owner_id, source_url, pitch_shift, title,
			thumbnail_url, source_kind, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.OwnerID,
		job.SourceURL,
		job.PitchShift,
		job.Title,
		job.ThumbnailURL,
		job.SourceKind,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a single job
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	var job domain.Job
	query := `
		SELECT job_id, owner_id, source_url, pitch_shift, title,
		       thumbnail_url, source_kind, status, processed_url,
		       error_message, created_at, updated_at
		FROM jobs
		WHERE job_id = $1
	`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// ListRecentJobs returns the owner's newest jobs, capped at RecentJobsLimit
func (s *Storage) ListRecentJobs(ctx context.Context, ownerID string) ([]domain.Job, error) {
	query := `
		SELECT job_id, owner_id, source_url, pitch_shift, title,
		       thumbnail_url, source_kind, status, processed_url,
		       error_message, created_at, updated_at
		FROM jobs
		WHERE owner_id = $1
		ORDER BY created_at DESC, job_id DESC
		LIMIT $2
	`

	var jobs []domain.Job
	err := s.db.SelectContext(ctx, &jobs, query, ownerID, RecentJobsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
