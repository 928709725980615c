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

const agencyColumns = `user_id, agency_name, license_number, country, website,
	license_url, verification, verified_at, created_at, updated_at`

// scanAgencyProfile maps a database row onto an AgencyProfile.
func scanAgencyProfile(row rowScanner) (*domain.AgencyProfile, error) {
	var profile domain.AgencyProfile

	err := row.Scan(
		&profile.UserID,
		&profile.AgencyName,
		&profile.LicenseNumber,
		&profile.Country,
		&profile.Website,
		&profile.LicenseURL,
		&profile.Verification,
		&profile.VerifiedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// PostgreSQLAgencyRepository implements AgencyProfile persistence for
// PostgreSQL. Agency profiles are keyed by the owning account ID.
type PostgreSQLAgencyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAgencyRepository creates a new PostgreSQL AgencyProfile repository.
func NewPostgreSQLAgencyRepository(db *sql.DB) *PostgreSQLAgencyRepository {
	return &PostgreSQLAgencyRepository{db: db}
}

// Upsert inserts the profile or, when one already exists for the account,
// replaces its mutable fields.
func (p *PostgreSQLAgencyRepository) Upsert(ctx context.Context, profile *domain.AgencyProfile) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO agency_profiles (user_id, agency_name, license_number, country,
			  website, license_url, verification, verified_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			  ON CONFLICT (user_id) DO UPDATE SET
				  agency_name = EXCLUDED.agency_name,
				  license_number = EXCLUDED.license_number,
				  country = EXCLUDED.country,
				  website = EXCLUDED.website,
				  license_url = EXCLUDED.license_url,
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
func (p *PostgreSQLAgencyRepository) GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM agency_profiles WHERE user_id = $1`, agencyColumns)

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
func (p *PostgreSQLAgencyRepository) List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(
		`SELECT %s FROM agency_profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
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
func (p *PostgreSQLAgencyRepository) SetVerification(
	ctx context.Context,
	userID string,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE agency_profiles
			  SET verification = $1, verified_at = $2, updated_at = NOW()
			  WHERE user_id = $3`

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
