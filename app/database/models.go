package database

import (
	"time"
)

type Profile struct {
	ID               string
	Email            string
	APIToken         string
	SubscriptionTier *string
	Credits          int
	PlatformHandle   string
	PlatformUserID   *string // resolved lazily, memoized
	AccessToken      string
	RefreshToken     string
	TokenExpiresAt   *int64 // unix epoch seconds
	Audience         string
	Frequency        string
	WritingStyle     string
	Template         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasValidToken reports whether the stored third-party access token is
// present and not expired at the given instant.
func (p *Profile) HasValidToken(now time.Time) bool {
	if p.AccessToken == "" {
		return false
	}
	if p.TokenExpiresAt != nil && *p.TokenExpiresAt < now.Unix() {
		return false
	}
	return true
}

// Newsletter is a single generated issue. Immutable after insert.
type Newsletter struct {
	ID           string
	ProfileID    string
	MarkdownText string
	CreatedAt    time.Time
}

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

type Job struct {
	ID            string
	ProfileID     string
	Template      string
	SelectedCount int
	Status        JobStatus
	Error         string
	NewsletterID  *string
	CreatedAt     time.Time
	StartedAt     *time.Time
	FinishedAt    *time.Time
}
