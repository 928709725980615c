package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/job/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// MySQLJobRepository implements JobPosting persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLJobRepository struct {
	db *sql.DB
}

// NewMySQLJobRepository creates a new MySQL JobPosting repository.
func NewMySQLJobRepository(db *sql.DB) *MySQLJobRepository {
	return &MySQLJobRepository{db: db}
}

// scanMySQLJobPosting maps a MySQL row onto a JobPosting, decoding the
// BINARY(16) keys.
func scanMySQLJobPosting(row rowScanner) (*domain.JobPosting, error) {
	var job domain.JobPosting
	var idBytes, sponsorIDBytes []byte

	err := row.Scan(
		&idBytes,
		&sponsorIDBytes,
		&job.Title,
		&job.Description,
		&job.Country,
		&job.City,
		&job.SalaryAmount,
		&job.SalaryCurrency,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := job.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal job posting id")
	}
	if err := job.SponsorID.UnmarshalBinary(sponsorIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal sponsor id")
	}

	return &job, nil
}

// Upsert inserts the posting or, when the primary key already exists,
// replaces its mutable fields. Status is owned by Close and is not
// touched on conflict.
func (m *MySQLJobRepository) Upsert(ctx context.Context, job *domain.JobPosting) error {
	querier := database.GetTx(ctx, m.db)

	id, err := job.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal job posting id")
	}
	sponsorID, err := job.SponsorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sponsor id")
	}

	query := `INSERT INTO job_postings (id, sponsor_id, title, description, country, city,
			  salary_amount, salary_currency, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE
				  title = VALUES(title),
				  description = VALUES(description),
				  country = VALUES(country),
				  city = VALUES(city),
				  salary_amount = VALUES(salary_amount),
				  salary_currency = VALUES(salary_currency),
				  updated_at = NOW()`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		sponsorID,
		job.Title,
		job.Description,
		job.Country,
		job.City,
		job.SalaryAmount,
		job.SalaryCurrency,
		job.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert job posting")
	}
	return nil
}

// Get retrieves a job posting by its primary key.
func (m *MySQLJobRepository) Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal job posting id")
	}

	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE id = ?`, jobColumns)

	job, err := scanMySQLJobPosting(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get job posting")
	}

	return job, nil
}

// Search retrieves job postings matching the criteria, most recent first.
func (m *MySQLJobRepository) Search(
	ctx context.Context,
	criteria domain.JobSearchCriteria,
) ([]*domain.JobPosting, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildJobSearchWhere(criteria, mysqlPlaceholders, mysqlUUID)

	args = append(args, criteria.Limit, criteria.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM job_postings %s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		jobColumns, where,
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search job postings")
	}
	defer rows.Close()

	var jobs []*domain.JobPosting
	for rows.Next() {
		job, err := scanMySQLJobPosting(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan job posting row")
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate job posting rows")
	}

	return jobs, nil
}

// Count reports how many job postings match the criteria.
func (m *MySQLJobRepository) Count(
	ctx context.Context,
	criteria domain.JobSearchCriteria,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildJobSearchWhere(criteria, mysqlPlaceholders, mysqlUUID)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM job_postings %s`, where)

	var count int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count job postings")
	}

	return count, nil
}

// Close marks an open posting as closed. The posting row is kept.
func (m *MySQLJobRepository) Close(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal job posting id")
	}

	query := `UPDATE job_postings
			  SET status = ?, updated_at = NOW()
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, domain.StatusClosed, idBytes, domain.StatusOpen)
	if err != nil {
		return apperrors.Wrap(err, "failed to close job posting")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}
