package domain

import (
	"database/sql"
	"time"
)

// Job is the persisted record of one pitch-shift request and its lifecycle.
// Everything except status, processed_url, and error_message is immutable
// after creation.
type Job struct {
	JobID        string         `db:"job_id"`
	OwnerID      string         `db:"owner_id"`
	SourceURL    string         `db:"source_url"`
	PitchShift   int            `db:"pitch_shift"`
	Title        sql.NullString `db:"title"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	SourceKind   string         `db:"source_kind"`
	Status       string         `db:"status"`
	ProcessedURL sql.NullString `db:"processed_url"`
	ErrorMessage sql.NullString `db:"error_message"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// JobMessage is the queue payload handed from the API to the worker
type JobMessage struct {
	JobID       string `json:"job_id"`
	DeliveryTag uint64 `json:"-"`
}
