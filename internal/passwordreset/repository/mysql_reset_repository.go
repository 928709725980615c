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

// MySQLResetRepository implements PasswordReset persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLResetRepository struct {
	db *sql.DB
}

// NewMySQLResetRepository creates a new MySQL PasswordReset repository.
func NewMySQLResetRepository(db *sql.DB) *MySQLResetRepository {
	return &MySQLResetRepository{db: db}
}

// scanMySQLReset maps a MySQL row onto a PasswordReset, decoding the
// BINARY(16) primary key.
func scanMySQLReset(row rowScanner) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	var idBytes []byte

	err := row.Scan(
		&idBytes,
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

	if err := reset.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal password reset id")
	}

	return &reset, nil
}

// Create inserts a new password reset.
func (m *MySQLResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	querier := database.GetTx(ctx, m.db)

	id, err := reset.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal password reset id")
	}

	query := `INSERT INTO password_resets (id, user_id, email, token_hash, status, expires_at, used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM password_resets WHERE token_hash = ?`, resetColumns)

	reset, err := scanMySQLReset(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get password reset")
	}

	return reset, nil
}

// Update persists the reset's status and used timestamp.
func (m *MySQLResetRepository) Update(ctx context.Context, reset *domain.PasswordReset) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := reset.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal password reset id")
	}

	query := `UPDATE password_resets SET status = ?, used_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, reset.Status, reset.UsedAt, idBytes)
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
func (m *MySQLResetRepository) CancelPending(ctx context.Context, userID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE password_resets SET status = ? WHERE user_id = ? AND status = ?`

	_, err := querier.ExecContext(ctx, query, domain.StatusCancelled, userID, domain.StatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to cancel pending password resets")
	}
	return nil
}

// DeleteExpired hard-deletes resets that expired before the cutoff and
// reports how many rows were removed. With dryRun it only counts the
// matching rows.
func (m *MySQLResetRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		query := `SELECT COUNT(*) FROM password_resets WHERE expires_at < ?`

		var count int64
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired password resets")
		}
		return count, nil
	}

	query := `DELETE FROM password_resets WHERE expires_at < ?`

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
