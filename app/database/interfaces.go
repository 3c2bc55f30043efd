package database

import (
	"time"
)

type ProfileRepository interface {
	GetByToken(apiToken string) (*Profile, error)
	Get(id string) (*Profile, error)

	SetPlatformUserID(id string, platformUserID string) error

	// ConsumeCredit atomically decrements the remaining-generation counter
	// if it is positive. Returns whether a credit was consumed.
	ConsumeCredit(id string) (bool, error)
}

type NewsletterRepository interface {
	Insert(profileID string, markdownText string) (string, error)

	Get(id string) (*Newsletter, error)
	ListByProfile(profileID string, limit int) ([]Newsletter, error)
	GetCount() (int, error)
}

type JobRepository interface {
	Create(job Job) error
	Get(id string) (*Job, error)

	MarkRunning(id string) error
	MarkSucceeded(id string, newsletterID string) error
	MarkFailed(id string, errorMessage string) error

	// FailStaleRunning marks running jobs started before the cutoff as
	// failed and returns how many were updated.
	FailStaleRunning(cutoff time.Time) (int, error)
}
