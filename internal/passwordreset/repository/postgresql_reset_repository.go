// Package repository implements password reset persistence for PostgreSQL
// and MySQL with transaction support via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/passwordreset/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

const resetColumns = `id, user_id, email, token_hash, status, expires_at, used_at, created_at`

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReset(row rowScanner) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset

	err := row.Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Email,
		&reset.TokenHash,
		&reset.Status,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &reset, nil
}

// PostgreSQLResetRepository implements PasswordReset persistence for PostgreSQL.
type PostgreSQLResetRepository struct {
	db *sql.DB
}

// NewPostgreSQLResetRepository creates a new PostgreSQL PasswordReset repository.
func NewPostgreSQLResetRepository(db *sql.DB) *PostgreSQLResetRepository {
	return &PostgreSQLResetRepository{db: db}
}

// Create inserts a new password reset.
func (p *PostgreSQLResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO password_resets (id, user_id, email, token_hash, status, expires_at, used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		reset.ID,
		reset.UserID,
		reset.Email,
		reset.TokenHash,
		reset.Status,
		reset.ExpiresAt,
		reset.UsedAt,
		reset.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create password reset")
	}
	return nil
}

// GetByTokenHash retrieves a reset by its token hash.
func (p *PostgreSQLResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM password_resets WHERE token_hash = $1`, resetColumns)

	reset, err := scanReset(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get password reset")
	}

	return reset, nil
}

// Update persists the reset's status and used timestamp.
func (p *PostgreSQLResetRepository) Update(ctx context.Context, reset *domain.PasswordReset) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE password_resets SET status = $1, used_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, reset.Status, reset.UsedAt, reset.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password reset")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrResetNotFound
	}

	return nil
}

// CancelPending marks all of a user's pending resets as cancelled.
func (p *PostgreSQLResetRepository) CancelPending(ctx context.Context, userID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE password_resets SET status = $1 WHERE user_id = $2 AND status = $3`

	_, err := querier.ExecContext(ctx, query, domain.StatusCancelled, userID, domain.StatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to cancel pending password resets")
	}
	return nil
}

// DeleteExpired hard-deletes resets that expired before the cutoff and
// reports how many rows were removed. With dryRun it only counts the
// matching rows.
func (p *PostgreSQLResetRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		query := `SELECT COUNT(*) FROM password_resets WHERE expires_at < $1`

		var count int64
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired password resets")
		}
		return count, nil
	}

	query := `DELETE FROM password_resets WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired password resets")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}
