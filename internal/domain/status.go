package domain

// Job status constants. A job moves PENDING -> PROCESSING -> terminal;
// COMPLETED and FAILED are terminal and never change again.
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

// Source kind constants
const (
	SourceKindDirect    = "direct"
	SourceKindStreaming = "streaming"
)

// IsTerminalStatus reports whether a status permits no further transitions
func IsTerminalStatus(status string) bool {
	return status == JobStatusCompleted || status == JobStatusFailed
}
