package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ijpettengill/jobly/internal/domain"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

const jobColumnsSQL = `id, title, salary, equity, company_handle`

// jobColumns maps update field names to columns. Job fields share their column names.
var jobColumns = map[string]string{}

// JobFilter captures job search parameters. Nil fields are not filtered on.
type JobFilter struct {
	Title     *string
	MinSalary *int
	// HasEquity true keeps jobs with equity > 0, false keeps jobs with equity = 0.
	HasEquity *bool
}

// Empty reports whether no filter is set.
func (f JobFilter) Empty() bool {
	return f.Title == nil && f.MinSalary == nil && f.HasEquity == nil
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindAll(ctx context.Context) ([]domain.Job, error)
	Search(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	Get(ctx context.Context, id int) (*domain.Job, error)
	ListByCompany(ctx context.Context, handle string) ([]domain.Job, error)
	Update(ctx context.Context, id int, fields []sqlutil.Field) (*domain.Job, error)
	Remove(ctx context.Context, id int) error
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository returns a Postgres-backed implementation.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, salary, equity, company_handle)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + jobColumnsSQL

	row := r.db.QueryRow(ctx, query, job.Title, job.Salary, job.Equity, job.CompanyHandle)
	if err := scanJobInto(row, job); err != nil {
		return translate(err, "job", map[string]any{"companyHandle": job.CompanyHandle})
	}
	return nil
}

func (r *jobRepository) FindAll(ctx context.Context) ([]domain.Job, error) {
	const query = `SELECT ` + jobColumnsSQL + ` FROM jobs ORDER BY title`
	return r.list(ctx, query)
}

func (r *jobRepository) Search(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	query := `SELECT ` + jobColumnsSQL + ` FROM jobs`
	args := []any{}
	clauses := []string{}

	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		clauses = append(clauses, fmt.Sprintf("salary > $%d", len(args)))
	}
	if filter.HasEquity != nil {
		if *filter.HasEquity {
			clauses = append(clauses, "equity > 0")
		} else {
			clauses = append(clauses, "equity = 0")
		}
	}
	if filter.Title != nil && strings.TrimSpace(*filter.Title) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Title)+"%")
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY salary"

	return r.list(ctx, query, args...)
}

func (r *jobRepository) Get(ctx context.Context, id int) (*domain.Job, error) {
	const query = `SELECT ` + jobColumnsSQL + ` FROM jobs WHERE id = $1`

	var job domain.Job
	if err := scanJobInto(r.db.QueryRow(ctx, query, id), &job); err != nil {
		return nil, translate(err, "job", map[string]any{"id": id})
	}
	return &job, nil
}

func (r *jobRepository) ListByCompany(ctx context.Context, handle string) ([]domain.Job, error) {
	const query = `SELECT ` + jobColumnsSQL + ` FROM jobs WHERE company_handle = $1 ORDER BY id`
	return r.list(ctx, query, handle)
}

func (r *jobRepository) Update(ctx context.Context, id int, fields []sqlutil.Field) (*domain.Job, error) {
	clause, err := sqlutil.PartialUpdate(fields, jobColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		clause.SetCols, clause.NextIndex(), jobColumnsSQL)
	args := append(clause.Values, id)

	var job domain.Job
	if err := scanJobInto(r.db.QueryRow(ctx, query, args...), &job); err != nil {
		return nil, translate(err, "job", map[string]any{"id": id})
	}
	return &job, nil
}

func (r *jobRepository) Remove(ctx context.Context, id int) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("job", map[string]any{"id": id})
	}
	return nil
}

func (r *jobRepository) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := scanJobInto(rows, &job); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}

func scanJobInto(row pgx.Row, job *domain.Job) error {
	return row.Scan(
		&job.ID,
		&job.Title,
		&job.Salary,
		&job.Equity,
		&job.CompanyHandle,
	)
}
