package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/profile/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

const sponsorColumns = `id, user_id, full_name, country, city, household_size,
	verification, verified_at, created_at, updated_at`

// scanSponsorProfile maps a database row onto a SponsorProfile.
func scanSponsorProfile(row rowScanner) (*domain.SponsorProfile, error) {
	var profile domain.SponsorProfile

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Country,
		&profile.City,
		&profile.HouseholdSize,
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

// PostgreSQLSponsorRepository implements SponsorProfile persistence for
// PostgreSQL, including the sponsor's favorite worker list.
type PostgreSQLSponsorRepository struct {
	db *sql.DB
}

// NewPostgreSQLSponsorRepository creates a new PostgreSQL SponsorProfile repository.
func NewPostgreSQLSponsorRepository(db *sql.DB) *PostgreSQLSponsorRepository {
	return &PostgreSQLSponsorRepository{db: db}
}

// Upsert inserts the profile or, when the primary key already exists,
// replaces its mutable fields.
func (p *PostgreSQLSponsorRepository) Upsert(ctx context.Context, profile *domain.SponsorProfile) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sponsor_profiles (id, user_id, full_name, country, city,
			  household_size, verification, verified_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			  ON CONFLICT (id) DO UPDATE SET
				  full_name = EXCLUDED.full_name,
				  country = EXCLUDED.country,
				  city = EXCLUDED.city,
				  household_size = EXCLUDED.household_size,
				  updated_at = NOW()`

	_, err := querier.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.FullName,
		profile.Country,
		profile.City,
		profile.HouseholdSize,
		profile.Verification,
		profile.VerifiedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert sponsor profile")
	}
	return nil
}

// GetByID retrieves a sponsor profile by its primary key.
func (p *PostgreSQLSponsorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SponsorProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM sponsor_profiles WHERE id = $1`, sponsorColumns)

	profile, err := scanSponsorProfile(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSponsorProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get sponsor profile")
	}

	return profile, nil
}

// GetByUserID retrieves the sponsor profile owned by the given account.
func (p *PostgreSQLSponsorRepository) GetByUserID(ctx context.Context, userID string) (*domain.SponsorProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM sponsor_profiles WHERE user_id = $1`, sponsorColumns)

	profile, err := scanSponsorProfile(querier.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSponsorProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get sponsor profile by user id")
	}

	return profile, nil
}

// SetVerification records the outcome of an admin review.
func (p *PostgreSQLSponsorRepository) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sponsor_profiles
			  SET verification = $1, verified_at = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, verification, verifiedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set sponsor profile verification")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrSponsorProfileNotFound
	}

	return nil
}

// GetFavoriteMaidIDs retrieves the worker profile IDs the sponsor has
// favorited, most recent first.
func (p *PostgreSQLSponsorRepository) GetFavoriteMaidIDs(ctx context.Context, sponsorID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT maid_id FROM sponsor_favorites WHERE sponsor_id = $1 ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sponsorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get favorite maid ids")
	}
	defer rows.Close()

	var maidIDs []uuid.UUID
	for rows.Next() {
		var maidID uuid.UUID
		if err := rows.Scan(&maidID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan favorite maid id")
		}
		maidIDs = append(maidIDs, maidID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate favorite rows")
	}

	return maidIDs, nil
}

// AddFavorite records a worker profile on the sponsor's favorite list.
// Adding the same worker twice is a no-op.
func (p *PostgreSQLSponsorRepository) AddFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sponsor_favorites (sponsor_id, maid_id, created_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (sponsor_id, maid_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, sponsorID, maidID); err != nil {
		return apperrors.Wrap(err, "failed to add favorite")
	}
	return nil
}

// RemoveFavorite removes a worker profile from the sponsor's favorite list.
func (p *PostgreSQLSponsorRepository) RemoveFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM sponsor_favorites WHERE sponsor_id = $1 AND maid_id = $2`

	result, err := querier.ExecContext(ctx, query, sponsorID, maidID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove favorite")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}

	return nil
}
