package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/models"
)

// ErrGifExists is returned when inserting a gif under a taken name.
var ErrGifExists = errors.New("gif name already exists")

type GifRepository struct {
	db *database.DB
}

func NewGifRepository(db *database.DB) *GifRepository {
	return &GifRepository{db: db}
}

// GifByName looks a gif up case-insensitively. Returns (nil, nil) when
// no gif has that name.
func (r *GifRepository) GifByName(ctx context.Context, name string) (*models.Gif, error) {
	gif := &models.Gif{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name, link, category FROM gifs WHERE LOWER(name) = LOWER($1)`,
		name,
	).Scan(&gif.ID, &gif.Name, &gif.Link, &gif.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gif, nil
}

func (r *GifRepository) CreateGif(ctx context.Context, gif *models.Gif) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO gifs (name, link, category) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING id`,
		gif.Name, gif.Link, gif.Category,
	).Scan(&gif.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrGifExists
	}
	return err
}

func (r *GifRepository) GifNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM gifs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
