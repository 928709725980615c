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

// MySQLApplicationRepository implements JobApplication persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
//
// MySQL has no partial unique indexes, so the active-application guarantee
// relies on the use case's HasApplied pre-check inside the submit
// transaction rather than on a constraint.
type MySQLApplicationRepository struct {
	db *sql.DB
}

// NewMySQLApplicationRepository creates a new MySQL JobApplication repository.
func NewMySQLApplicationRepository(db *sql.DB) *MySQLApplicationRepository {
	return &MySQLApplicationRepository{db: db}
}

// scanMySQLApplication maps a MySQL row onto a JobApplication, decoding the
// BINARY(16) keys.
func scanMySQLApplication(row rowScanner) (*domain.JobApplication, error) {
	var app domain.JobApplication
	var idBytes, jobIDBytes, maidIDBytes, sponsorIDBytes []byte

	err := row.Scan(
		&idBytes,
		&jobIDBytes,
		&maidIDBytes,
		&sponsorIDBytes,
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

	for _, pair := range []struct {
		dst *uuid.UUID
		src []byte
	}{
		{&app.ID, idBytes},
		{&app.JobID, jobIDBytes},
		{&app.MaidID, maidIDBytes},
		{&app.SponsorID, sponsorIDBytes},
	} {
		if err := pair.dst.UnmarshalBinary(pair.src); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal application id")
		}
	}

	return &app, nil
}

// Create inserts a new application.
func (m *MySQLApplicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	querier := database.GetTx(ctx, m.db)

	ids := make([][]byte, 0, 4)
	for _, id := range []uuid.UUID{app.ID, app.JobID, app.MaidID, app.SponsorID} {
		b, err := id.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal application id")
		}
		ids = append(ids, b)
	}

	query := `INSERT INTO job_applications (id, job_id, maid_id, sponsor_id, cover_letter, status,
			  rejection_reason, applied_at, reviewed_at, shortlisted_at, accepted_at,
			  rejected_at, withdrawn_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		ids[3],
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
		if isMySQLDuplicateEntry(err) {
			return domain.ErrAlreadyApplied
		}
		return apperrors.Wrap(err, "failed to create application")
	}
	return nil
}

// Get retrieves an application by its primary key.
func (m *MySQLApplicationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal application id")
	}

	query := fmt.Sprintf(`SELECT %s FROM job_applications WHERE id = ?`, applicationColumns)

	app, err := scanMySQLApplication(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get application")
	}

	return app, nil
}

// Update persists the application's status, reason, and timestamps.
func (m *MySQLApplicationRepository) Update(ctx context.Context, app *domain.JobApplication) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := app.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal application id")
	}

	query := `UPDATE job_applications
			  SET status = ?, rejection_reason = ?, reviewed_at = ?, shortlisted_at = ?,
				  accepted_at = ?, rejected_at = ?, withdrawn_at = ?
			  WHERE id = ?`

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
		idBytes,
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
// the job.
func (m *MySQLApplicationRepository) HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	jobIDBytes, err := jobID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal job id")
	}
	maidIDBytes, err := maidID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal maid id")
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM job_applications
				  WHERE job_id = ? AND maid_id = ? AND status <> ?
			  )`

	var exists bool
	err = querier.QueryRowContext(ctx, query, jobIDBytes, maidIDBytes, domain.StatusWithdrawn).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check for existing application")
	}

	return exists, nil
}

// ListByJob retrieves all applications for a job posting, newest first.
func (m *MySQLApplicationRepository) ListByJob(
	ctx context.Context,
	jobID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM job_applications WHERE job_id = ? ORDER BY applied_at DESC LIMIT ? OFFSET ?`,
		applicationColumns,
	)
	return m.list(ctx, query, jobID, limit, offset)
}

// ListByMaid retrieves all applications submitted by a worker, newest first.
func (m *MySQLApplicationRepository) ListByMaid(
	ctx context.Context,
	maidID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM job_applications WHERE maid_id = ? ORDER BY applied_at DESC LIMIT ? OFFSET ?`,
		applicationColumns,
	)
	return m.list(ctx, query, maidID, limit, offset)
}

func (m *MySQLApplicationRepository) list(
	ctx context.Context,
	query string,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	querier := database.GetTx(ctx, m.db)

	ownerIDBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal id")
	}

	rows, err := querier.QueryContext(ctx, query, ownerIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list applications")
	}
	defer rows.Close()

	var apps []*domain.JobApplication
	for rows.Next() {
		app, err := scanMySQLApplication(rows)
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

// CountByJob reports how many applications a job posting received.
func (m *MySQLApplicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, m.db)

	jobIDBytes, err := jobID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal job id")
	}

	query := `SELECT COUNT(*) FROM job_applications WHERE job_id = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, jobIDBytes).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count applications")
	}

	return count, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL unique constraint violation
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "1062") || strings.Contains(errMsg, "duplicate entry")
}
