// Package repository implements data persistence for marketplace profiles.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16)
// types. Worker and sponsor profiles are written through a single upsert path
// keyed by the primary key, so creating and editing share one statement.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/profile/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

const maidColumns = `id, user_id, full_name, nationality, languages, skills,
	experience_years, date_of_birth, bio, photo_url, verification, verified_at,
	created_at, updated_at`

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMaidProfile maps a database row onto a MaidProfile. Languages and
// skills are stored as JSON documents.
func scanMaidProfile(row rowScanner) (*domain.MaidProfile, error) {
	var profile domain.MaidProfile
	var languagesJSON, skillsJSON []byte

	err := row.Scan(
		&profile.ID,
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

	if err := json.Unmarshal(languagesJSON, &profile.Languages); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal languages")
	}
	if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal skills")
	}

	return &profile, nil
}

// marshalStringSlice encodes a slice for a JSON column, never as SQL NULL.
func marshalStringSlice(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

// PostgreSQLMaidRepository implements MaidProfile persistence for PostgreSQL.
type PostgreSQLMaidRepository struct {
	db *sql.DB
}

// NewPostgreSQLMaidRepository creates a new PostgreSQL MaidProfile repository.
func NewPostgreSQLMaidRepository(db *sql.DB) *PostgreSQLMaidRepository {
	return &PostgreSQLMaidRepository{db: db}
}

// Upsert inserts the profile or, when the primary key already exists,
// replaces its mutable fields.
func (p *PostgreSQLMaidRepository) Upsert(ctx context.Context, profile *domain.MaidProfile) error {
	querier := database.GetTx(ctx, p.db)

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
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
			  ON CONFLICT (id) DO UPDATE SET
				  full_name = EXCLUDED.full_name,
				  nationality = EXCLUDED.nationality,
				  languages = EXCLUDED.languages,
				  skills = EXCLUDED.skills,
				  experience_years = EXCLUDED.experience_years,
				  date_of_birth = EXCLUDED.date_of_birth,
				  bio = EXCLUDED.bio,
				  photo_url = EXCLUDED.photo_url,
				  updated_at = NOW()`

	_, err = querier.ExecContext(
		ctx,
		query,
		profile.ID,
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
func (p *PostgreSQLMaidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM maid_profiles WHERE id = $1`, maidColumns)

	profile, err := scanMaidProfile(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaidProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get maid profile")
	}

	return profile, nil
}

// GetByUserID retrieves the worker profile owned by the given account.
func (p *PostgreSQLMaidRepository) GetByUserID(ctx context.Context, userID string) (*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM maid_profiles WHERE user_id = $1`, maidColumns)

	profile, err := scanMaidProfile(querier.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaidProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get maid profile by user id")
	}

	return profile, nil
}

// Search retrieves worker profiles matching the criteria, most recent first.
func (p *PostgreSQLMaidRepository) Search(
	ctx context.Context,
	criteria domain.MaidSearchCriteria,
) ([]*domain.MaidProfile, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildMaidSearchWhere(criteria, postgresPlaceholders)

	args = append(args, criteria.Limit, criteria.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM maid_profiles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		maidColumns, where, len(args)-1, len(args),
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search maid profiles")
	}
	defer rows.Close()

	var profiles []*domain.MaidProfile
	for rows.Next() {
		profile, err := scanMaidProfile(rows)
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
func (p *PostgreSQLMaidRepository) Count(
	ctx context.Context,
	criteria domain.MaidSearchCriteria,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildMaidSearchWhere(criteria, postgresPlaceholders)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM maid_profiles %s`, where)

	var count int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count maid profiles")
	}

	return count, nil
}

// SetVerification records the outcome of an admin review.
func (p *PostgreSQLMaidRepository) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE maid_profiles
			  SET verification = $1, verified_at = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, verification, verifiedAt, id)
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

// placeholderFunc renders the positional placeholder for a 1-based index.
type placeholderFunc func(index int) string

func postgresPlaceholders(index int) string {
	return fmt.Sprintf("$%d", index)
}

func mysqlPlaceholders(int) string {
	return "?"
}

// buildMaidSearchWhere renders the conditional WHERE clause shared by Search
// and Count.
func buildMaidSearchWhere(
	criteria domain.MaidSearchCriteria,
	placeholder placeholderFunc,
) (string, []any) {
	var conditions []string
	var args []any

	if criteria.Nationality != "" {
		args = append(args, criteria.Nationality)
		conditions = append(conditions, fmt.Sprintf("nationality = %s", placeholder(len(args))))
	}
	if criteria.Verification != "" {
		args = append(args, criteria.Verification)
		conditions = append(conditions, fmt.Sprintf("verification = %s", placeholder(len(args))))
	}
	if criteria.MinExperienceYears > 0 {
		args = append(args, criteria.MinExperienceYears)
		conditions = append(conditions, fmt.Sprintf("experience_years >= %s", placeholder(len(args))))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
