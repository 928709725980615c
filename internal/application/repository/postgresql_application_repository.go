// Package repository implements job application persistence for PostgreSQL
// and MySQL. Rows are append-then-update only, never deleted, and both
// drivers participate in transactions via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/application/domain"
	"github.com/addislabs/placement/internal/database"

	apperrors "github.com/addislabs/placement/internal/errors"
)

const applicationColumns = `id, job_id, maid_id, sponsor_id, cover_letter, status,
	rejection_reason, applied_at, reviewed_at, shortlisted_at, accepted_at,
	rejected_at, withdrawn_at`

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*domain.JobApplication, error) {
	var app domain.JobApplication

	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.MaidID,
		&app.SponsorID,
		&app.CoverLetter,
		&app.Status,
		&app.RejectionReason,
		&app.AppliedAt,
		&app.ReviewedAt,
		&app.ShortlistedAt,
		&app.AcceptedAt,
		&app.RejectedAt,
		&app.WithdrawnAt,
	)
	if err != nil {
		return nil, err
	}

	return &app, nil
}

// PostgreSQLApplicationRepository implements JobApplication persistence for PostgreSQL.
type PostgreSQLApplicationRepository struct {
	db *sql.DB
}

// NewPostgreSQLApplicationRepository creates a new PostgreSQL JobApplication repository.
func NewPostgreSQLApplicationRepository(db *sql.DB) *PostgreSQLApplicationRepository {
	return &PostgreSQLApplicationRepository{db: db}
}

// Create inserts a new application. The partial unique index on
// (job_id, maid_id) for non-withdrawn rows reports a duplicate as a
// conflict.
func (p *PostgreSQLApplicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO job_applications (id, job_id, maid_id, sponsor_id, cover_letter, status,
			  rejection_reason, applied_at, reviewed_at, shortlisted_at, accepted_at,
			  rejected_at, withdrawn_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		app.ID,
		app.JobID,
		app.MaidID,
		app.SponsorID,
		app.CoverLetter,
		app.Status,
		app.RejectionReason,
		app.AppliedAt,
		app.ReviewedAt,
		app.ShortlistedAt,
		app.AcceptedAt,
		app.RejectedAt,
		app.WithdrawnAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAlreadyApplied
		}
		return apperrors.Wrap(err, "failed to create application")
	}
	return nil
}

// Get retrieves an application by its primary key.
func (p *PostgreSQLApplicationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM job_applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get application")
	}

	return app, nil
}

// Update persists the application's status, reason, and timestamps.
// Identity fields never change after Create.
func (p *PostgreSQLApplicationRepository) Update(ctx context.Context, app *domain.JobApplication) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE job_applications
			  SET status = $1, rejection_reason = $2, reviewed_at = $3, shortlisted_at = $4,
				  accepted_at = $5, rejected_at = $6, withdrawn_at = $7
			  WHERE id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		app.Status,
		app.RejectionReason,
		app.ReviewedAt,
		app.ShortlistedAt,
		app.AcceptedAt,
		app.RejectedAt,
		app.WithdrawnAt,
		app.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update application")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrApplicationNotFound
	}

	return nil
}

// HasApplied reports whether the worker holds an active application for
// the job. Withdrawn applications do not count and the worker may apply
// again.
func (p *PostgreSQLApplicationRepository) HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
				  SELECT 1 FROM job_applications
				  WHERE job_id = $1 AND maid_id = $2 AND status <> $3
			  )`

	var exists bool
	err := querier.QueryRowContext(ctx, query, jobID, maidID, domain.StatusWithdrawn).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check for existing application")
	}

	return exists, nil
}

// ListByJob retrieves all applications for a job posting, newest first.
func (p *PostgreSQLApplicationRepository) ListByJob(
	ctx context.Context,
	jobID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM job_applications WHERE job_id = $1 ORDER BY applied_at DESC LIMIT $2 OFFSET $3`,
		applicationColumns,
	)
	return p.list(ctx, query, jobID, limit, offset)
}

// ListByMaid retrieves all applications submitted by a worker, newest first.
func (p *PostgreSQLApplicationRepository) ListByMaid(
	ctx context.Context,
	maidID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM job_applications WHERE maid_id = $1 ORDER BY applied_at DESC LIMIT $2 OFFSET $3`,
		applicationColumns,
	)
	return p.list(ctx, query, maidID, limit, offset)
}

func (p *PostgreSQLApplicationRepository) list(
	ctx context.Context,
	query string,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list applications")
	}
	defer rows.Close()

	var apps []*domain.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan application row")
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate application rows")
	}

	return apps, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// CountByJob reports how many applications a job posting received.
func (p *PostgreSQLApplicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM job_applications WHERE job_id = $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, jobID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count applications")
	}

	return count, nil
}
