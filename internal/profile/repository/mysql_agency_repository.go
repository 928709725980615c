package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/profile/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// MySQLAgencyRepository implements AgencyProfile persistence for MySQL.
// Agency profiles are keyed by the owning account ID, so no UUID conversion
// is involved.
type MySQLAgencyRepository struct {
	db *sql.DB
}

// NewMySQLAgencyRepository creates a new MySQL AgencyProfile repository.
func NewMySQLAgencyRepository(db *sql.DB) *MySQLAgencyRepository {
	return &MySQLAgencyRepository{db: db}
}

// Upsert inserts the profile or, when one already exists for the account,
// replaces its mutable fields.
func (m *MySQLAgencyRepository) Upsert(ctx context.Context, profile *domain.AgencyProfile) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO agency_profiles (user_id, agency_name, license_number, country,
			  website, license_url, verification, verified_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE
				  agency_name = VALUES(agency_name),
				  license_number = VALUES(license_number),
				  country = VALUES(country),
				  website = VALUES(website),
				  license_url = VALUES(license_url),
				  updated_at = NOW()`

	_, err := querier.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.AgencyName,
		profile.LicenseNumber,
		profile.Country,
		profile.Website,
		profile.LicenseURL,
		profile.Verification,
		profile.VerifiedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert agency profile")
	}
	return nil
}

// GetByUserID retrieves the agency profile owned by the given account.
func (m *MySQLAgencyRepository) GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM agency_profiles WHERE user_id = ?`, agencyColumns)

	profile, err := scanAgencyProfile(querier.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgencyProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agency profile")
	}

	return profile, nil
}

// List retrieves agency profiles, most recent first.
func (m *MySQLAgencyRepository) List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(
		`SELECT %s FROM agency_profiles ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		agencyColumns,
	)

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agency profiles")
	}
	defer rows.Close()

	var profiles []*domain.AgencyProfile
	for rows.Next() {
		profile, err := scanAgencyProfile(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agency profile row")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agency profile rows")
	}

	return profiles, nil
}

// SetVerification records the outcome of an admin review.
func (m *MySQLAgencyRepository) SetVerification(
	ctx context.Context,
	userID string,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE agency_profiles
			  SET verification = ?, verified_at = ?, updated_at = NOW()
			  WHERE user_id = ?`

	result, err := querier.ExecContext(ctx, query, verification, verifiedAt, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set agency profile verification")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrAgencyProfileNotFound
	}

	return nil
}
