package database

import (
	"database/sql"
	"fmt"
)

var _ ProfileRepository = (*profileRepository)(nil)

type profileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, api_token, subscription_tier, credits,
	platform_handle, platform_user_id, access_token, refresh_token,
	token_expires_at, audience, frequency, writing_style, template,
	created_at, updated_at`

func (r *profileRepository) GetByToken(apiToken string) (*Profile, error) {
	row := r.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE api_token = ?
	`, apiToken)

	return scanProfile(row)
}

func (r *profileRepository) Get(id string) (*Profile, error) {
	row := r.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = ?
	`, id)

	return scanProfile(row)
}

func (r *profileRepository) SetPlatformUserID(id string, platformUserID string) error {
	_, err := r.db.Exec(`
		UPDATE profiles
		SET platform_user_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, platformUserID, id)

	if err != nil {
		return fmt.Errorf("failed to set platform user id: %w", err)
	}

	return nil
}

func (r *profileRepository) ConsumeCredit(id string) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET credits = credits - 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND credits > 0
	`, id)

	if err != nil {
		return false, fmt.Errorf("failed to consume credit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}

func scanProfile(row *sql.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.APIToken, &p.SubscriptionTier, &p.Credits,
		&p.PlatformHandle, &p.PlatformUserID, &p.AccessToken, &p.RefreshToken,
		&p.TokenExpiresAt, &p.Audience, &p.Frequency, &p.WritingStyle, &p.Template,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	return &p, nil
}
