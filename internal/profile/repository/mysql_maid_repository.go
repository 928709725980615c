package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/profile/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// MySQLMaidRepository implements MaidProfile persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLMaidRepository struct {
	db *sql.DB
}

// NewMySQLMaidRepository creates a new MySQL MaidProfile repository.
func NewMySQLMaidRepository(db *sql.DB) *MySQLMaidRepository {
	return &MySQLMaidRepository{db: db}
}

// scanMySQLMaidProfile maps a MySQL row onto a MaidProfile, decoding the
// BINARY(16) primary key.
func scanMySQLMaidProfile(row rowScanner) (*domain.MaidProfile, error) {
	var profile domain.MaidProfile
	var idBytes []byte
	var languagesJSON, skillsJSON []byte

	err := row.Scan(
		&idBytes,
		&profile.UserID,
		&profile.FullName,
		&profile.Nationality,
		&languagesJSON,
		&skillsJSON,
		&profile.ExperienceYears,
		&profile.DateOfBirth,
		&profile.Bio,
		&profile.PhotoURL,
		&profile.Verification,
		&profile.VerifiedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := profile.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal maid profile id")
	}
	if err := json.Unmarshal(languagesJSON, &profile.Languages); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal languages")
	}
	if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal skills")
	}

	return &profile, nil
}

// Upsert inserts the profile or, when the primary key already exists,
// replaces its mutable fields.
func (m *MySQLMaidRepository) Upsert(ctx context.Context, profile *domain.MaidProfile) error {
	querier := database.GetTx(ctx, m.db)

	id, err := profile.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal maid profile id")
	}

	languagesJSON, err := marshalStringSlice(profile.Languages)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal languages")
	}
	skillsJSON, err := marshalStringSlice(profile.Skills)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal skills")
	}

	query := `INSERT INTO maid_profiles (id, user_id, full_name, nationality, languages, skills,
			  experience_years, date_of_birth, bio, photo_url, verification, verified_at,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE
				  full_name = VALUES(full_name),
				  nationality = VALUES(nationality),
				  languages = VALUES(languages),
				  skills = VALUES(skills),
				  experience_years = VALUES(experience_years),
				  date_of_birth = VALUES(date_of_birth),
				  bio = VALUES(bio),
				  photo_url = VALUES(photo_url),
				  updated_at = NOW()`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		profile.UserID,
		profile.FullName,
		profile.Nationality,
		languagesJSON,
		skillsJSON,
		profile.ExperienceYears,
		profile.DateOfBirth,
		profile.Bio,
		profile.PhotoURL,
		profile.Verification,
		profile.VerifiedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert maid profile")
	}
	return nil
}

// GetByID retrieves a worker profile by its primary key.
func (m *MySQLMaidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal maid profile id")
	}

	query := fmt.Sprintf(`SELECT %s FROM maid_profiles WHERE id = ?`, maidColumns)

	profile, err := scanMySQLMaidProfile(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaidProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get maid profile")
	}

	return profile, nil
}

// GetByUserID retrieves the worker profile owned by the given account.
func (m *MySQLMaidRepository) GetByUserID(ctx context.Context, userID string) (*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM maid_profiles WHERE user_id = ?`, maidColumns)

	profile, err := scanMySQLMaidProfile(querier.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaidProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get maid profile by user id")
	}

	return profile, nil
}

// Search retrieves worker profiles matching the criteria, most recent first.
func (m *MySQLMaidRepository) Search(
	ctx context.Context,
	criteria domain.MaidSearchCriteria,
) ([]*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildMaidSearchWhere(criteria, mysqlPlaceholders)

	args = append(args, criteria.Limit, criteria.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM maid_profiles %s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		maidColumns, where,
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search maid profiles")
	}
	defer rows.Close()

	var profiles []*domain.MaidProfile
	for rows.Next() {
		profile, err := scanMySQLMaidProfile(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan maid profile row")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate maid profile rows")
	}

	return profiles, nil
}

// Count reports how many worker profiles match the criteria.
func (m *MySQLMaidRepository) Count(
	ctx context.Context,
	criteria domain.MaidSearchCriteria,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildMaidSearchWhere(criteria, mysqlPlaceholders)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM maid_profiles %s`, where)

	var count int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count maid profiles")
	}

	return count, nil
}

// SetVerification records the outcome of an admin review.
func (m *MySQLMaidRepository) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal maid profile id")
	}

	query := `UPDATE maid_profiles
			  SET verification = ?, verified_at = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, verification, verifiedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to set maid profile verification")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrMaidProfileNotFound
	}

	return nil
}
