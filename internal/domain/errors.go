package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job cannot be found in the database
	ErrJobNotFound = errors.New("job not found")

	// ErrJobAlreadyClaimed is returned when attempting to claim a job that's
	// not in PENDING status
	ErrJobAlreadyClaimed = errors.New("job already claimed or not in PENDING status")
)
