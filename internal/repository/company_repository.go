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

const companyColumnsSQL = `handle, name, description, num_employees, logo_url`

var companyColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyFilter defines query params for company listing.
type CompanyFilter struct {
	NameLike     *string
	MinEmployees *int
	MaxEmployees *int
}

// CompanyRepository handles persistence for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	FindAll(ctx context.Context, filter CompanyFilter) ([]domain.Company, error)
	Get(ctx context.Context, handle string) (*domain.Company, error)
	Update(ctx context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error)
	Remove(ctx context.Context, handle string) error
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository instantiates the repository.
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (handle, name, description, num_employees, logo_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + companyColumnsSQL

	row := r.db.QueryRow(ctx, query,
		company.Handle,
		company.Name,
		company.Description,
		company.NumEmployees,
		company.LogoURL,
	)
	if err := scanCompanyInto(row, company); err != nil {
		return translate(err, "company", map[string]any{"handle": company.Handle})
	}
	return nil
}

func (r *companyRepository) FindAll(ctx context.Context, filter CompanyFilter) ([]domain.Company, error) {
	query := `SELECT ` + companyColumnsSQL + ` FROM companies`
	args := []any{}
	clauses := []string{}

	if filter.NameLike != nil && strings.TrimSpace(*filter.NameLike) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.NameLike)+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.MinEmployees != nil {
		args = append(args, *filter.MinEmployees)
		clauses = append(clauses, fmt.Sprintf("num_employees >= $%d", len(args)))
	}
	if filter.MaxEmployees != nil {
		args = append(args, *filter.MaxEmployees)
		clauses = append(clauses, fmt.Sprintf("num_employees <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Company{}
	for rows.Next() {
		var company domain.Company
		if err := scanCompanyInto(rows, &company); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

func (r *companyRepository) Get(ctx context.Context, handle string) (*domain.Company, error) {
	const query = `SELECT ` + companyColumnsSQL + ` FROM companies WHERE handle = $1`

	var company domain.Company
	if err := scanCompanyInto(r.db.QueryRow(ctx, query, handle), &company); err != nil {
		return nil, translate(err, "company", map[string]any{"handle": handle})
	}
	return &company, nil
}

func (r *companyRepository) Update(ctx context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error) {
	clause, err := sqlutil.PartialUpdate(fields, companyColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`,
		clause.SetCols, clause.NextIndex(), companyColumnsSQL)
	args := append(clause.Values, handle)

	var company domain.Company
	if err := scanCompanyInto(r.db.QueryRow(ctx, query, args...), &company); err != nil {
		return nil, translate(err, "company", map[string]any{"handle": handle})
	}
	return &company, nil
}

func (r *companyRepository) Remove(ctx context.Context, handle string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("company", map[string]any{"handle": handle})
	}
	return nil
}

func scanCompanyInto(row pgx.Row, company *domain.Company) error {
	return row.Scan(
		&company.Handle,
		&company.Name,
		&company.Description,
		&company.NumEmployees,
		&company.LogoURL,
	)
}
