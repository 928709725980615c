// Package repository provides data persistence implementations for user accounts.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/user/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, phone_number, password_hash, role, status,
			  email_verified, phone_verified, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.EmailVerified,
		user.PhoneVerified,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, userColumns)

	user, err := scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = ?`, userColumns)

	user, err := scanUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// EmailExists reports whether a user with the given email already exists.
func (r *MySQLUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check email existence")
	}

	return exists, nil
}

// Update modifies an existing user. The updated_at column is stamped by the query.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET email = ?,
				  phone_number = ?,
				  password_hash = ?,
				  role = ?,
				  status = ?,
				  email_verified = ?,
				  phone_verified = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.EmailVerified,
		user.PhoneVerified,
		user.ID,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	return nil
}

// Suspend performs a soft delete by setting the account status to suspended.
func (r *MySQLUserRepository) Suspend(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET status = ?, updated_at = NOW() WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, domain.StatusSuspended, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to suspend user")
	}

	return nil
}

// List retrieves users matching the filter, most recent first.
func (r *MySQLUserRepository) List(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	if filter.Role != "" {
		conditions = append(conditions, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userColumns, where,
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}

	return users, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "1062") || strings.Contains(errMsg, "duplicate entry")
}
