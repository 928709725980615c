package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addislabs/placement/internal/profile/domain"
)

var agencyRows = []string{
	"user_id", "agency_name", "license_number", "country", "website",
	"license_url", "verification", "verified_at", "created_at", "updated_at",
}

func testAgencyProfile() *domain.AgencyProfile {
	now := time.Now().UTC()
	return &domain.AgencyProfile{
		UserID:        "agency-uid-001",
		AgencyName:    "Addis Placement Services",
		LicenseNumber: "ET-AA-2024-0042",
		Country:       "ET",
		Website:       "https://addisplacement.example.com",
		LicenseURL:    "https://cdn.example.com/licenses/et-aa-2024-0042.pdf",
		Verification:  domain.VerificationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func agencyRow(p *domain.AgencyProfile) *sqlmock.Rows {
	return sqlmock.NewRows(agencyRows).AddRow(
		p.UserID, p.AgencyName, p.LicenseNumber, p.Country, p.Website,
		p.LicenseURL, p.Verification, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func TestPostgreSQLAgencyRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testAgencyProfile()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agency_profiles")).
			WithArgs(
				profile.UserID, profile.AgencyName, profile.LicenseNumber, profile.Country,
				profile.Website, profile.LicenseURL, profile.Verification, profile.VerifiedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLAgencyRepository(db)
		require.NoError(t, repo.Upsert(ctx, profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByUserID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testAgencyProfile()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(profile.UserID).
			WillReturnRows(agencyRow(profile))

		repo := NewPostgreSQLAgencyRepository(db)
		got, err := repo.GetByUserID(ctx, profile.UserID)
		require.NoError(t, err)
		assert.Equal(t, profile.AgencyName, got.AgencyName)
		assert.Equal(t, profile.LicenseNumber, got.LicenseNumber)
	})

	t.Run("GetByUserID with unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(agencyRows))

		repo := NewPostgreSQLAgencyRepository(db)
		_, err = repo.GetByUserID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrAgencyProfileNotFound)
	})

	t.Run("List", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		profile := testAgencyProfile()
		mock.ExpectQuery(regexp.QuoteMeta(
			`ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		)).
			WithArgs(20, 0).
			WillReturnRows(agencyRow(profile))

		repo := NewPostgreSQLAgencyRepository(db)
		profiles, err := repo.List(ctx, 20, 0)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, profile.UserID, profiles[0].UserID)
	})

	t.Run("SetVerification", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now().UTC()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE agency_profiles")).
			WithArgs(domain.VerificationVerified, &now, "agency-uid-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLAgencyRepository(db)
		assert.NoError(t, repo.SetVerification(ctx, "agency-uid-001", domain.VerificationVerified, &now))
	})

	t.Run("SetVerification with unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE agency_profiles")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLAgencyRepository(db)
		now := time.Now().UTC()
		err = repo.SetVerification(ctx, "missing", domain.VerificationRejected, &now)
		assert.ErrorIs(t, err, domain.ErrAgencyProfileNotFound)
	})
}
