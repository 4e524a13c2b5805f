package handler

import (
	"log/slog"
	"time"

	"github.com/qmdang/pitchshift-be/internal/api/auth"
	"github.com/qmdang/pitchshift-be/internal/api/dto"
	"github.com/qmdang/pitchshift-be/internal/api/metadata"
	"github.com/qmdang/pitchshift-be/internal/api/storage"
	"github.com/qmdang/pitchshift-be/internal/api/submission"
	"github.com/qmdang/pitchshift-be/internal/domain"
	"github.com/qmdang/pitchshift-be/shared/postgresql"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger   *slog.Logger
	DBClient *postgresql.Client
	Gate     *submission.Gate
	Storage  *storage.Storage
	Metadata *metadata.YouTubeClient
	Resolver auth.IdentityResolver
}

// VideoHandler handles video job HTTP requests
type VideoHandler struct {
	logger   *slog.Logger
	gate     *submission.Gate
	storage  *storage.Storage
	metadata *metadata.YouTubeClient
}

// NewVideoHandler creates a new VideoHandler instance
func NewVideoHandler(deps *Dependencies) *VideoHandler {
	return &VideoHandler{
		logger:   deps.Logger,
		gate:     deps.Gate,
		storage:  deps.Storage,
		metadata: deps.Metadata,
	}
}

func toVideoDTO(job *domain.Job) dto.VideoDTO {
	return dto.VideoDTO{
		JobID:        job.JobID,
		OwnerID:      job.OwnerID,
		SourceURL:    job.SourceURL,
		PitchShift:   job.PitchShift,
		Title:        job.Title.String,
		ThumbnailURL: job.ThumbnailURL.String,
		SourceKind:   job.SourceKind,
		Status:       job.Status,
		ProcessedURL: job.ProcessedURL.String,
		ErrorMessage: job.ErrorMessage.String,
		CreatedAt:    job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    job.UpdatedAt.Format(time.RFC3339),
	}
}
