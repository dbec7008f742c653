package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/models"
)

func newMockGifRepo(t *testing.T) (*GifRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewGifRepository(&database.DB{Pool: mock}), mock
}

func TestGifByNameFound(t *testing.T) {
	repo, mock := newMockGifRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM gifs WHERE LOWER").
		WithArgs("Celebrate").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "link", "category"}).
			AddRow(int64(3), "celebrate", "https://example.com/party.gif", "party"))

	gif, err := repo.GifByName(context.Background(), "Celebrate")
	require.NoError(t, err)
	require.NotNil(t, gif)
	assert.Equal(t, "celebrate", gif.Name)
	assert.Equal(t, "https://example.com/party.gif", gif.Link)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGifByNameMissing(t *testing.T) {
	repo, mock := newMockGifRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM gifs WHERE LOWER").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	gif, err := repo.GifByName(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, gif)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGifDuplicateName(t *testing.T) {
	repo, mock := newMockGifRepo(t)

	// ON CONFLICT DO NOTHING returns no rows for a taken name.
	mock.ExpectQuery("INSERT INTO gifs").
		WithArgs("celebrate", "https://example.com/other.gif", "party").
		WillReturnError(pgx.ErrNoRows)

	err := repo.CreateGif(context.Background(), &models.Gif{
		Name: "celebrate", Link: "https://example.com/other.gif", Category: "party",
	})
	assert.ErrorIs(t, err, ErrGifExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewUsageRepository(&database.DB{Pool: mock})

	mock.ExpectExec("INSERT INTO command_usage").
		WithArgs(int64(7), "remind").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Track(context.Background(), 7, "remind"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGlobalStatsAggregates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewUsageRepository(&database.DB{Pool: mock})

	mock.ExpectQuery("SELECT command_name, SUM").
		WillReturnRows(pgxmock.NewRows([]string{"command_name", "sum"}).
			AddRow("remind", int64(12)).
			AddRow("gif", int64(3)))

	stats, err := repo.GlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(15), stats.Total)
	assert.Equal(t, int64(12), stats.ByCommand["remind"])
	assert.Equal(t, int64(3), stats.ByCommand["gif"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
