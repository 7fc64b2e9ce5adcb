package service

import (
	"context"

	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/repository"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// CompanyService coordinates company workflows.
type CompanyService struct {
	companies repository.CompanyRepository
	jobs      repository.JobRepository
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository, jobs repository.JobRepository) *CompanyService {
	return &CompanyService{companies: companies, jobs: jobs}
}

// Create adds a company. Duplicate handles are a conflict.
func (s *CompanyService) Create(ctx context.Context, company *domain.Company) error {
	return s.companies.Create(ctx, company)
}

// FindAll lists companies matching the filter, ordered by name.
func (s *CompanyService) FindAll(ctx context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	if filter.MinEmployees != nil && filter.MaxEmployees != nil && *filter.MinEmployees > *filter.MaxEmployees {
		return nil, apperrors.NewValidationError("minEmployees cannot be greater than maxEmployees", map[string]any{
			"minEmployees": *filter.MinEmployees,
			"maxEmployees": *filter.MaxEmployees,
		})
	}
	return s.companies.FindAll(ctx, filter)
}

// Get returns a company with its jobs.
func (s *CompanyService) Get(ctx context.Context, handle string) (*domain.Company, error) {
	company, err := s.companies.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		return nil, err
	}
	company.Jobs = jobs
	return company, nil
}

// Update applies a partial update; the handle itself cannot change.
func (s *CompanyService) Update(ctx context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error) {
	return s.companies.Update(ctx, handle, fields)
}

// Remove deletes the company and, through the schema, its jobs.
func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	return s.companies.Remove(ctx, handle)
}
