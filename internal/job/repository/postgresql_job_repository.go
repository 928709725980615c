// Package repository implements job posting persistence for PostgreSQL and
// MySQL. Both drivers participate in transactions via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/job/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
)

const jobColumns = `id, sponsor_id, title, description, country, city,
	salary_amount, salary_currency, status, created_at, updated_at`

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobPosting(row rowScanner) (*domain.JobPosting, error) {
	var job domain.JobPosting

	err := row.Scan(
		&job.ID,
		&job.SponsorID,
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

	return &job, nil
}

// PostgreSQLJobRepository implements JobPosting persistence for PostgreSQL.
type PostgreSQLJobRepository struct {
	db *sql.DB
}

// NewPostgreSQLJobRepository creates a new PostgreSQL JobPosting repository.
func NewPostgreSQLJobRepository(db *sql.DB) *PostgreSQLJobRepository {
	return &PostgreSQLJobRepository{db: db}
}

// Upsert inserts the posting or, when the primary key already exists,
// replaces its mutable fields. Status is owned by Close and is not
// touched on conflict.
func (p *PostgreSQLJobRepository) Upsert(ctx context.Context, job *domain.JobPosting) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO job_postings (id, sponsor_id, title, description, country, city,
			  salary_amount, salary_currency, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			  ON CONFLICT (id) DO UPDATE SET
				  title = EXCLUDED.title,
				  description = EXCLUDED.description,
				  country = EXCLUDED.country,
				  city = EXCLUDED.city,
				  salary_amount = EXCLUDED.salary_amount,
				  salary_currency = EXCLUDED.salary_currency,
				  updated_at = NOW()`

	_, err := querier.ExecContext(
		ctx,
		query,
		job.ID,
		job.SponsorID,
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
func (p *PostgreSQLJobRepository) Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE id = $1`, jobColumns)

	job, err := scanJobPosting(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get job posting")
	}

	return job, nil
}

// Search retrieves job postings matching the criteria, most recent first.
func (p *PostgreSQLJobRepository) Search(
	ctx context.Context,
	criteria domain.JobSearchCriteria,
) ([]*domain.JobPosting, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildJobSearchWhere(criteria, postgresPlaceholders, postgresUUID)

	args = append(args, criteria.Limit, criteria.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM job_postings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)-1, len(args),
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search job postings")
	}
	defer rows.Close()

	var jobs []*domain.JobPosting
	for rows.Next() {
		job, err := scanJobPosting(rows)
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
func (p *PostgreSQLJobRepository) Count(
	ctx context.Context,
	criteria domain.JobSearchCriteria,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildJobSearchWhere(criteria, postgresPlaceholders, postgresUUID)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM job_postings %s`, where)

	var count int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count job postings")
	}

	return count, nil
}

// Close marks an open posting as closed. The posting row is kept.
func (p *PostgreSQLJobRepository) Close(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE job_postings
			  SET status = $1, updated_at = NOW()
			  WHERE id = $2 AND status = $3`

	result, err := querier.ExecContext(ctx, query, domain.StatusClosed, id, domain.StatusOpen)
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

// placeholderFunc renders the positional placeholder for a 1-based index.
type placeholderFunc func(index int) string

func postgresPlaceholders(index int) string {
	return fmt.Sprintf("$%d", index)
}

func mysqlPlaceholders(int) string {
	return "?"
}

// uuidEncoder renders a UUID as a driver argument. PostgreSQL binds the
// native value, MySQL binds the 16-byte binary form.
type uuidEncoder func(id uuid.UUID) any

func postgresUUID(id uuid.UUID) any {
	return id
}

func mysqlUUID(id uuid.UUID) any {
	// MarshalBinary on a UUID value cannot fail.
	b, _ := id.MarshalBinary()
	return b
}

// buildJobSearchWhere renders the conditional WHERE clause shared by Search
// and Count.
func buildJobSearchWhere(
	criteria domain.JobSearchCriteria,
	placeholder placeholderFunc,
	encodeUUID uuidEncoder,
) (string, []any) {
	var conditions []string
	var args []any

	if criteria.SponsorID != uuid.Nil {
		args = append(args, encodeUUID(criteria.SponsorID))
		conditions = append(conditions, fmt.Sprintf("sponsor_id = %s", placeholder(len(args))))
	}
	if criteria.Country != "" {
		args = append(args, criteria.Country)
		conditions = append(conditions, fmt.Sprintf("country = %s", placeholder(len(args))))
	}
	if criteria.Status != "" {
		args = append(args, criteria.Status)
		conditions = append(conditions, fmt.Sprintf("status = %s", placeholder(len(args))))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
