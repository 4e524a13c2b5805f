package dto

// SubmitVideoRequest is the body of POST /api/v1/videos. PitchShift is a
// pointer so a zero shift still satisfies the required binding.
type SubmitVideoRequest struct {
	SourceURL    string `json:"source_url" binding:"required"`
	PitchShift   *int   `json:"pitch_shift" binding:"required"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// VideoDTO is the external representation of a job
type VideoDTO struct {
	JobID        string `json:"job_id"`
	OwnerID      string `json:"owner_id"`
	SourceURL    string `json:"source_url"`
	PitchShift   int    `json:"pitch_shift"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	SourceKind   string `json:"source_kind"`
	Status       string `json:"status"`
	ProcessedURL string `json:"processed_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ListVideosResponse wraps the owner's recent jobs
type ListVideosResponse struct {
	Videos []VideoDTO `json:"videos"`
}
