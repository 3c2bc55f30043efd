package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

var _ NewsletterRepository = (*newsletterRepository)(nil)

type newsletterRepository struct {
	db *DB
}

func NewNewsletterRepository(db *DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Insert(profileID string, markdownText string) (string, error) {
	id := uuid.NewString()

	_, err := r.db.Exec(`
		INSERT INTO newsletters (id, profile_id, markdown_text)
		VALUES (?, ?, ?)
	`, id, profileID, markdownText)

	if err != nil {
		return "", fmt.Errorf("failed to insert newsletter: %w", err)
	}

	return id, nil
}

func (r *newsletterRepository) Get(id string) (*Newsletter, error) {
	var n Newsletter
	err := r.db.QueryRow(`
		SELECT id, profile_id, markdown_text, created_at
		FROM newsletters
		WHERE id = ?
	`, id).Scan(&n.ID, &n.ProfileID, &n.MarkdownText, &n.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get newsletter: %w", err)
	}

	return &n, nil
}

func (r *newsletterRepository) ListByProfile(profileID string, limit int) ([]Newsletter, error) {
	rows, err := r.db.Query(`
		SELECT id, profile_id, markdown_text, created_at
		FROM newsletters
		WHERE profile_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newsletters: %w", err)
	}
	defer rows.Close()

	var newsletters []Newsletter
	for rows.Next() {
		var n Newsletter
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.MarkdownText, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan newsletter row: %w", err)
		}
		newsletters = append(newsletters, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating newsletter rows: %w", err)
	}

	return newsletters, nil
}

func (r *newsletterRepository) GetCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM newsletters`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count newsletters: %w", err)
	}
	return count, nil
}
