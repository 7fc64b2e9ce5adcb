package handlers

import (
	"context"

	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/repository"
	"github.com/ijpettengill/jobly/internal/service"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// AuthService is the subset of *service.AuthService the handlers call.
type AuthService interface {
	Register(ctx context.Context, input service.RegisterInput) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// CompanyService is the subset of *service.CompanyService the handlers call.
type CompanyService interface {
	Create(ctx context.Context, company *domain.Company) error
	FindAll(ctx context.Context, filter repository.CompanyFilter) ([]domain.Company, error)
	Get(ctx context.Context, handle string) (*domain.Company, error)
	Update(ctx context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error)
	Remove(ctx context.Context, handle string) error
}

// JobService is the subset of *service.JobService the handlers call.
type JobService interface {
	Create(ctx context.Context, job *domain.Job, actor string) error
	List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error)
	Get(ctx context.Context, id int) (*domain.Job, error)
	Update(ctx context.Context, id int, fields []sqlutil.Field) (*domain.Job, error)
	Remove(ctx context.Context, id int, actor string) error
}

// UserService is the subset of *service.UserService the handlers call.
type UserService interface {
	Create(ctx context.Context, input service.RegisterInput, isAdmin bool) (*domain.User, string, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, fields []sqlutil.Field) (*domain.User, error)
	Remove(ctx context.Context, username string) error
	Apply(ctx context.Context, username string, jobID int) error
}

var (
	_ AuthService    = (*service.AuthService)(nil)
	_ CompanyService = (*service.CompanyService)(nil)
	_ JobService     = (*service.JobService)(nil)
	_ UserService    = (*service.UserService)(nil)
)
