package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addislabs/placement/internal/profile/domain"
)

func mysqlSponsorRow(p *domain.SponsorProfile) *sqlmock.Rows {
	idBytes, _ := p.ID.MarshalBinary()
	return sqlmock.NewRows(sponsorRows).AddRow(
		idBytes, p.UserID, p.FullName, p.Country, p.City, p.HouseholdSize,
		p.Verification, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func TestMySQLSponsorRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testSponsorProfile()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sponsor_profiles")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLSponsorRepository(db)
		require.NoError(t, repo.Upsert(ctx, profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID decodes binary uuid", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testSponsorProfile()
		idBytes, err := profile.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(idBytes).
			WillReturnRows(mysqlSponsorRow(profile))

		repo := NewMySQLSponsorRepository(db)
		got, err := repo.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)
		assert.Equal(t, profile.FullName, got.FullName)
	})

	t.Run("GetByUserID with unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(sponsorRows))

		repo := NewMySQLSponsorRepository(db)
		_, err = repo.GetByUserID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSponsorProfileNotFound)
	})

	t.Run("SetVerification with unknown id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sponsor_profiles")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewMySQLSponsorRepository(db)
		now := time.Now().UTC()
		err = repo.SetVerification(ctx, id, domain.VerificationVerified, &now)
		assert.ErrorIs(t, err, domain.ErrSponsorProfileNotFound)
	})
}

func TestMySQLSponsorRepositoryFavorites(t *testing.T) {
	ctx := context.Background()
	sponsorID := uuid.Must(uuid.NewV7())
	maidID := uuid.Must(uuid.NewV7())
	sponsorIDBytes, _ := sponsorID.MarshalBinary()
	maidIDBytes, _ := maidID.MarshalBinary()

	t.Run("GetFavoriteMaidIDs decodes binary uuids", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT maid_id FROM sponsor_favorites WHERE sponsor_id = ? ORDER BY created_at DESC`,
		)).
			WithArgs(sponsorIDBytes).
			WillReturnRows(sqlmock.NewRows([]string{"maid_id"}).AddRow(maidIDBytes))

		repo := NewMySQLSponsorRepository(db)
		ids, err := repo.GetFavoriteMaidIDs(ctx, sponsorID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{maidID}, ids)
	})

	t.Run("AddFavorite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO sponsor_favorites")).
			WithArgs(sponsorIDBytes, maidIDBytes).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLSponsorRepository(db)
		assert.NoError(t, repo.AddFavorite(ctx, sponsorID, maidID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveFavorite with unknown pair", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sponsor_favorites")).
			WithArgs(sponsorIDBytes, maidIDBytes).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewMySQLSponsorRepository(db)
		err = repo.RemoveFavorite(ctx, sponsorID, maidID)
		assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
	})
}
