package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ JobRepository = (*jobRepository)(nil)

type jobRepository struct {
	db *DB
}

func NewJobRepository(db *DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job Job) error {
	_, err := r.db.Exec(`
		INSERT INTO jobs (id, profile_id, template, selected_count, status)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, job.ProfileID, job.Template, job.SelectedCount, JobStatusQueued)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (r *jobRepository) Get(id string) (*Job, error) {
	var j Job
	err := r.db.QueryRow(`
		SELECT id, profile_id, template, selected_count, status, error,
		       newsletter_id, created_at, started_at, finished_at
		FROM jobs
		WHERE id = ?
	`, id).Scan(
		&j.ID, &j.ProfileID, &j.Template, &j.SelectedCount, &j.Status, &j.Error,
		&j.NewsletterID, &j.CreatedAt, &j.StartedAt, &j.FinishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &j, nil
}

func (r *jobRepository) MarkRunning(id string) error {
	_, err := r.db.Exec(`
		UPDATE jobs
		SET status = ?, started_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobStatusRunning, id)

	if err != nil {
		return fmt.Errorf("failed to mark job running: %w", err)
	}

	return nil
}

func (r *jobRepository) MarkSucceeded(id string, newsletterID string) error {
	_, err := r.db.Exec(`
		UPDATE jobs
		SET status = ?, newsletter_id = ?, finished_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobStatusSucceeded, newsletterID, id)

	if err != nil {
		return fmt.Errorf("failed to mark job succeeded: %w", err)
	}

	return nil
}

func (r *jobRepository) MarkFailed(id string, errorMessage string) error {
	_, err := r.db.Exec(`
		UPDATE jobs
		SET status = ?, error = ?, finished_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobStatusFailed, errorMessage, id)

	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	return nil
}

func (r *jobRepository) FailStaleRunning(cutoff time.Time) (int, error) {
	// started_at is written by CURRENT_TIMESTAMP, so the cutoff has to be
	// compared in the same UTC text format.
	result, err := r.db.Exec(`
		UPDATE jobs
		SET status = ?, error = 'job timed out', finished_at = CURRENT_TIMESTAMP
		WHERE status = ? AND started_at < ?
	`, JobStatusFailed, JobStatusRunning, cutoff.UTC().Format("2006-01-02 15:04:05"))

	if err != nil {
		return 0, fmt.Errorf("failed to fail stale jobs: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(affected), nil
}
