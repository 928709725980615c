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

var sponsorRows = []string{
	"id", "user_id", "full_name", "country", "city", "household_size",
	"verification", "verified_at", "created_at", "updated_at",
}

func testSponsorProfile() *domain.SponsorProfile {
	now := time.Now().UTC()
	return &domain.SponsorProfile{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        "sponsor-uid-001",
		FullName:      "Fatima Al Mansoori",
		Country:       "AE",
		City:          "Dubai",
		HouseholdSize: 5,
		Verification:  domain.VerificationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func sponsorRow(p *domain.SponsorProfile) *sqlmock.Rows {
	return sqlmock.NewRows(sponsorRows).AddRow(
		p.ID, p.UserID, p.FullName, p.Country, p.City, p.HouseholdSize,
		p.Verification, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func TestPostgreSQLSponsorRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testSponsorProfile()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sponsor_profiles")).
			WithArgs(
				profile.ID, profile.UserID, profile.FullName, profile.Country,
				profile.City, profile.HouseholdSize, profile.Verification, profile.VerifiedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSponsorRepository(db)
		require.NoError(t, repo.Upsert(ctx, profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testSponsorProfile()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(profile.ID).
			WillReturnRows(sponsorRow(profile))

		repo := NewPostgreSQLSponsorRepository(db)
		got, err := repo.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.FullName, got.FullName)
		assert.Equal(t, profile.HouseholdSize, got.HouseholdSize)
	})

	t.Run("GetByUserID with unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(sponsorRows))

		repo := NewPostgreSQLSponsorRepository(db)
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

		repo := NewPostgreSQLSponsorRepository(db)
		now := time.Now().UTC()
		err = repo.SetVerification(ctx, id, domain.VerificationVerified, &now)
		assert.ErrorIs(t, err, domain.ErrSponsorProfileNotFound)
	})
}

func TestPostgreSQLSponsorRepositoryFavorites(t *testing.T) {
	ctx := context.Background()
	sponsorID := uuid.Must(uuid.NewV7())
	maidID := uuid.Must(uuid.NewV7())

	t.Run("GetFavoriteMaidIDs", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		otherMaidID := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT maid_id FROM sponsor_favorites WHERE sponsor_id = $1 ORDER BY created_at DESC`,
		)).
			WithArgs(sponsorID).
			WillReturnRows(sqlmock.NewRows([]string{"maid_id"}).AddRow(maidID).AddRow(otherMaidID))

		repo := NewPostgreSQLSponsorRepository(db)
		ids, err := repo.GetFavoriteMaidIDs(ctx, sponsorID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{maidID, otherMaidID}, ids)
	})

	t.Run("GetFavoriteMaidIDs with no favorites", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT maid_id FROM sponsor_favorites")).
			WithArgs(sponsorID).
			WillReturnRows(sqlmock.NewRows([]string{"maid_id"}))

		repo := NewPostgreSQLSponsorRepository(db)
		ids, err := repo.GetFavoriteMaidIDs(ctx, sponsorID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("AddFavorite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sponsor_favorites")).
			WithArgs(sponsorID, maidID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSponsorRepository(db)
		assert.NoError(t, repo.AddFavorite(ctx, sponsorID, maidID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AddFavorite twice is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// ON CONFLICT DO NOTHING reports zero affected rows.
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sponsor_favorites")).
			WithArgs(sponsorID, maidID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLSponsorRepository(db)
		assert.NoError(t, repo.AddFavorite(ctx, sponsorID, maidID))
	})

	t.Run("RemoveFavorite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(
			`DELETE FROM sponsor_favorites WHERE sponsor_id = $1 AND maid_id = $2`,
		)).
			WithArgs(sponsorID, maidID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSponsorRepository(db)
		assert.NoError(t, repo.RemoveFavorite(ctx, sponsorID, maidID))
	})

	t.Run("RemoveFavorite with unknown pair", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sponsor_favorites")).
			WithArgs(sponsorID, maidID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLSponsorRepository(db)
		err = repo.RemoveFavorite(ctx, sponsorID, maidID)
		assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
	})
}
