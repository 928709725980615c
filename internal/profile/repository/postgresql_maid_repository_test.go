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

var maidRows = []string{
	"id", "user_id", "full_name", "nationality", "languages", "skills",
	"experience_years", "date_of_birth", "bio", "photo_url", "verification",
	"verified_at", "created_at", "updated_at",
}

func testMaidProfile() *domain.MaidProfile {
	now := time.Now().UTC()
	return &domain.MaidProfile{
		ID:              uuid.Must(uuid.NewV7()),
		UserID:          "firebase-uid-001",
		FullName:        "Abeba Kebede",
		Nationality:     "Ethiopian",
		Languages:       []string{"Amharic", "Arabic"},
		Skills:          []string{"cooking", "childcare"},
		ExperienceYears: 4,
		DateOfBirth:     time.Date(1995, 3, 12, 0, 0, 0, 0, time.UTC),
		Bio:             "Four years of experience in Dubai.",
		PhotoURL:        "https://cdn.example.com/photos/abeba.jpg",
		Verification:    domain.VerificationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func maidRow(p *domain.MaidProfile) *sqlmock.Rows {
	return sqlmock.NewRows(maidRows).AddRow(
		p.ID, p.UserID, p.FullName, p.Nationality,
		[]byte(`["Amharic","Arabic"]`), []byte(`["cooking","childcare"]`),
		p.ExperienceYears, p.DateOfBirth, p.Bio, p.PhotoURL,
		p.Verification, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func TestPostgreSQLMaidRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testMaidProfile()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO maid_profiles")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLMaidRepository(db)
		require.NoError(t, repo.Upsert(ctx, profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testMaidProfile()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(profile.ID).
			WillReturnRows(maidRow(profile))

		repo := NewPostgreSQLMaidRepository(db)
		got, err := repo.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.FullName, got.FullName)
		assert.Equal(t, []string{"Amharic", "Arabic"}, got.Languages)
		assert.Equal(t, []string{"cooking", "childcare"}, got.Skills)
	})

	t.Run("GetByUserID with unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(maidRows))

		repo := NewPostgreSQLMaidRepository(db)
		_, err = repo.GetByUserID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrMaidProfileNotFound)
	})

	t.Run("Search with criteria", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testMaidProfile()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("Ethiopian", string(domain.VerificationVerified), 2, 20, 0).
			WillReturnRows(maidRow(profile))

		repo := NewPostgreSQLMaidRepository(db)
		profiles, err := repo.Search(ctx, domain.MaidSearchCriteria{
			Nationality:        "Ethiopian",
			Verification:       domain.VerificationVerified,
			MinExperienceYears: 2,
			Limit:              20,
			Offset:             0,
		})
		require.NoError(t, err)
		require.Len(t, profiles, 1)
	})

	t.Run("SetVerification with unknown id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec(regexp.QuoteMeta("UPDATE maid_profiles")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLMaidRepository(db)
		now := time.Now().UTC()
		err = repo.SetVerification(ctx, id, domain.VerificationVerified, &now)
		assert.ErrorIs(t, err, domain.ErrMaidProfileNotFound)
	})
}

func TestBuildMaidSearchWhere(t *testing.T) {
	t.Run("no criteria", func(t *testing.T) {
		where, args := buildMaidSearchWhere(domain.MaidSearchCriteria{}, postgresPlaceholders)
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("all criteria postgres", func(t *testing.T) {
		where, args := buildMaidSearchWhere(domain.MaidSearchCriteria{
			Nationality:        "Ethiopian",
			Verification:       domain.VerificationVerified,
			MinExperienceYears: 3,
		}, postgresPlaceholders)

		assert.Equal(t, "WHERE nationality = $1 AND verification = $2 AND experience_years >= $3", where)
		assert.Len(t, args, 3)
	})

	t.Run("partial criteria mysql", func(t *testing.T) {
		where, args := buildMaidSearchWhere(domain.MaidSearchCriteria{
			MinExperienceYears: 5,
		}, mysqlPlaceholders)

		assert.Equal(t, "WHERE experience_years >= ?", where)
		assert.Equal(t, []any{5}, args)
	})
}
