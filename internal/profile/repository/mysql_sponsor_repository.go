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

// MySQLSponsorRepository implements SponsorProfile persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLSponsorRepository struct {
	db *sql.DB
}

// NewMySQLSponsorRepository creates a new MySQL SponsorProfile repository.
func NewMySQLSponsorRepository(db *sql.DB) *MySQLSponsorRepository {
	return &MySQLSponsorRepository{db: db}
}

// scanMySQLSponsorProfile maps a MySQL row onto a SponsorProfile, decoding
// the BINARY(16) primary key.
func scanMySQLSponsorProfile(row rowScanner) (*domain.SponsorProfile, error) {
	var profile domain.SponsorProfile
	var idBytes []byte

	err := row.Scan(
		&idBytes,
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

	if err := profile.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal sponsor profile id")
	}

	return &profile, nil
}

// Upsert inserts the profile or, when the primary key already exists,
// replaces its mutable fields.
func (m *MySQLSponsorRepository) Upsert(ctx context.Context, profile *domain.SponsorProfile) error {
	querier := database.GetTx(ctx, m.db)

	id, err := profile.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sponsor profile id")
	}

	query := `INSERT INTO sponsor_profiles (id, user_id, full_name, country, city,
			  household_size, verification, verified_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE
				  full_name = VALUES(full_name),
				  country = VALUES(country),
				  city = VALUES(city),
				  household_size = VALUES(household_size),
				  updated_at = NOW()`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLSponsorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SponsorProfile, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal sponsor profile id")
	}

	query := fmt.Sprintf(`SELECT %s FROM sponsor_profiles WHERE id = ?`, sponsorColumns)

	profile, err := scanMySQLSponsorProfile(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSponsorProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get sponsor profile")
	}

	return profile, nil
}

// GetByUserID retrieves the sponsor profile owned by the given account.
func (m *MySQLSponsorRepository) GetByUserID(ctx context.Context, userID string) (*domain.SponsorProfile, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM sponsor_profiles WHERE user_id = ?`, sponsorColumns)

	profile, err := scanMySQLSponsorProfile(querier.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSponsorProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get sponsor profile by user id")
	}

	return profile, nil
}

// SetVerification records the outcome of an admin review.
func (m *MySQLSponsorRepository) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sponsor profile id")
	}

	query := `UPDATE sponsor_profiles
			  SET verification = ?, verified_at = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, verification, verifiedAt, idBytes)
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
func (m *MySQLSponsorRepository) GetFavoriteMaidIDs(ctx context.Context, sponsorID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	sponsorIDBytes, err := sponsorID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal sponsor id")
	}

	query := `SELECT maid_id FROM sponsor_favorites WHERE sponsor_id = ? ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sponsorIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get favorite maid ids")
	}
	defer rows.Close()

	var maidIDs []uuid.UUID
	for rows.Next() {
		var maidIDBytes []byte
		if err := rows.Scan(&maidIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan favorite maid id")
		}

		var maidID uuid.UUID
		if err := maidID.UnmarshalBinary(maidIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal favorite maid id")
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
func (m *MySQLSponsorRepository) AddFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	sponsorIDBytes, err := sponsorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sponsor id")
	}
	maidIDBytes, err := maidID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal maid id")
	}

	query := `INSERT IGNORE INTO sponsor_favorites (sponsor_id, maid_id, created_at)
			  VALUES (?, ?, NOW())`

	if _, err := querier.ExecContext(ctx, query, sponsorIDBytes, maidIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to add favorite")
	}
	return nil
}

// RemoveFavorite removes a worker profile from the sponsor's favorite list.
func (m *MySQLSponsorRepository) RemoveFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	sponsorIDBytes, err := sponsorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sponsor id")
	}
	maidIDBytes, err := maidID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal maid id")
	}

	query := `DELETE FROM sponsor_favorites WHERE sponsor_id = ? AND maid_id = ?`

	result, err := querier.ExecContext(ctx, query, sponsorIDBytes, maidIDBytes)
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
