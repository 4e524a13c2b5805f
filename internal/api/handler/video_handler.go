package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qmdang/pitchshift-be/internal/api/dto"
	"github.com/qmdang/pitchshift-be/internal/api/submission"
	"github.com/qmdang/pitchshift-be/internal/domain"
)

// OwnerIDKey is the gin context key set by the identity middleware
const OwnerIDKey = "owner_id"

// SubmitVideo handles POST /api/v1/videos
// Validates the request and admits a new pitch-shift job
func (h *VideoHandler) SubmitVideo(c *gin.Context) {
	ownerID := c.GetString(OwnerIDKey)

	var req dto.SubmitVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.gate.Submit(c.Request.Context(), &submission.Request{
		OwnerID:      ownerID,
		SourceURL:    req.SourceURL,
		PitchShift:   *req.PitchShift,
		Title:        req.Title,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		var validationErr *submission.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Message,
			})
			return
		}

		h.logger.Error("Failed to submit job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit job",
		})
		return
	}

	c.JSON(http.StatusCreated, toVideoDTO(job))
}

// GetVideo handles GET /api/v1/videos/:video_id
// Returns the job record, including terminal status and result fields
func (h *VideoHandler) GetVideo(c *gin.Context) {
	ownerID := c.GetString(OwnerIDKey)
	jobID := c.Param("video_id")

	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "video_id must be a valid UUID",
		})
		return
	}

	job, err := h.storage.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Video not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get video",
		})
		return
	}

	// Jobs are private to their submitter
	if job.OwnerID != ownerID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Video not found",
		})
		return
	}

	c.JSON(http.StatusOK, toVideoDTO(job))
}

// ListVideos handles GET /api/v1/videos
// Returns the caller's newest jobs, capped at 10
func (h *VideoHandler) ListVideos(c *gin.Context) {
	ownerID := c.GetString(OwnerIDKey)

	jobs, err := h.storage.ListRecentJobs(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list videos",
		})
		return
	}

	videos := make([]dto.VideoDTO, len(jobs))
	for i := range jobs {
		videos[i] = toVideoDTO(&jobs[i])
	}

	c.JSON(http.StatusOK, dto.ListVideosResponse{Videos: videos})
}

// PreviewMetadata handles GET /api/v1/videos/preview?url=
// Best-effort lookup; failures here never block submission
func (h *VideoHandler) PreviewMetadata(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
		})
		return
	}

	preview, err := h.metadata.Preview(c.Request.Context(), rawURL)
	if err != nil {
		h.logger.Warn("Metadata preview failed",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch video metadata",
		})
		return
	}

	c.JSON(http.StatusOK, preview)
}
