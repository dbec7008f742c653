package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/models"
)

type UsageRepository struct {
	db *database.DB
}

func NewUsageRepository(db *database.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Track bumps the per-user counter for a command, creating the row on
// first use.
func (r *UsageRepository) Track(ctx context.Context, userID int64, commandName string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO command_usage (user_id, command_name, usage_count) VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, command_name) DO UPDATE SET usage_count = command_usage.usage_count + 1`,
		userID, commandName,
	)
	return err
}

// GlobalStats sums usage across all users, broken down per command.
func (r *UsageRepository) GlobalStats(ctx context.Context) (*models.UsageStats, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT command_name, SUM(usage_count) FROM command_usage GROUP BY command_name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStats(rows)
}

// UserStats sums usage for one user, broken down per command.
func (r *UsageRepository) UserStats(ctx context.Context, userID int64) (*models.UsageStats, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT command_name, SUM(usage_count) FROM command_usage WHERE user_id = $1 GROUP BY command_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStats(rows)
}

func scanStats(rows pgx.Rows) (*models.UsageStats, error) {
	stats := &models.UsageStats{ByCommand: make(map[string]int64)}
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.ByCommand[name] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
