package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobID = "7b8e1c52-59c4-4f0e-9a3d-1f2b3c4d5e6f"

func newTestStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewStorage(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func jobColumns() []string {
	return []string{
		"job_id", "owner_id", "source_url", "pitch_shift", "title",
		"thumbnail_url", "source_kind", "status", "processed_url",
		"error_message", "created_at", "updated_at",
	}
}

func TestClaimMovesPendingJobToProcessing(t *testing.T) {
	s, mock := newTestStorage(t)

	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE jobs").
		WithArgs(domain.JobStatusProcessing, testJobID, domain.JobStatusPending).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(testJobID, "user-1", "https://example.com/clip.mp4", 7, nil,
				nil, domain.SourceKindDirect, domain.JobStatusProcessing, nil,
				nil, now, now))

	job, err := s.Claim(context.Background(), testJobID)
	require.NoError(t, err)
	assert.Equal(t, testJobID, job.JobID)
	assert.Equal(t, domain.JobStatusProcessing, job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimMissingJob(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectQuery("UPDATE jobs").
		WithArgs(domain.JobStatusProcessing, testJobID, domain.JobStatusPending).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM jobs").
		WithArgs(testJobID).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Claim(context.Background(), testJobID)
	require.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimAlreadyClaimedJob(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectQuery("UPDATE jobs").
		WithArgs(domain.JobStatusProcessing, testJobID, domain.JobStatusPending).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM jobs").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.JobStatusProcessing))

	_, err := s.Claim(context.Background(), testJobID)
	require.ErrorIs(t, err, domain.ErrJobAlreadyClaimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompletedWritesTerminalState(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(domain.JobStatusCompleted, "https://blobs.example.com/out.mp4", testJobID,
			domain.JobStatusCompleted, domain.JobStatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.MarkCompleted(context.Background(), testJobID, "https://blobs.example.com/out.mp4")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Terminal states are immutable: the status guard turns a second terminal
// write into a no-op instead of rewriting the row.
func TestMarkFailedIsNoOpOnTerminalJob(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(domain.JobStatusFailed, "transcoding failed", testJobID,
			domain.JobStatusCompleted, domain.JobStatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkFailed(context.Background(), testJobID, "transcoding failed")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompletedIsNoOpOnTerminalJob(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(domain.JobStatusCompleted, "https://blobs.example.com/out.mp4", testJobID,
			domain.JobStatusCompleted, domain.JobStatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkCompleted(context.Background(), testJobID, "https://blobs.example.com/out.mp4")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
