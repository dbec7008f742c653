package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/beyabay/jubjub-bot/internal/database"
)

type PreferenceRepository struct {
	db *database.DB
}

func NewPreferenceRepository(db *database.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// UserOffset returns the user's stored UTC offset ("+05:30"). Users
// without a preference row get an empty string, which downstream code
// treats as UTC.
func (r *PreferenceRepository) UserOffset(ctx context.Context, userID int64) (string, error) {
	var offset string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT utc_offset FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&offset)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return offset, nil
}

func (r *PreferenceRepository) SetOffset(ctx context.Context, userID int64, offset string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO user_preferences (user_id, utc_offset) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET utc_offset = EXCLUDED.utc_offset`,
		userID, offset,
	)
	return err
}
