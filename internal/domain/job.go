package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type JobStatus string

const (
	StatusApplied      JobStatus = "applied"
	StatusInterviewing JobStatus = "interviewing"
	StatusOffers       JobStatus = "offers"
	StatusRejected     JobStatus = "rejected"
)

// NormalizeJobStatus maps free-form client input onto the status enum.
// Anything unrecognized falls back to "applied".
func NormalizeJobStatus(raw string) JobStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "inter"):
		return StatusInterviewing
	case strings.HasPrefix(s, "offer"):
		return StatusOffers
	case strings.HasPrefix(s, "reject"):
		return StatusRejected
	default:
		return StatusApplied
	}
}

// ClampScore bounds fit/progress values to [0, 100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Job is a tracked job application, always owned by exactly one user.
type Job struct {
	ID           string
	UserID       string
	Company      string
	Title        string
	Status       JobStatus
	Fit          int
	Progress     int
	NextAction   string
	HighPriority bool
	AppliedAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
