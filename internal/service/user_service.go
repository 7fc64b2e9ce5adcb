package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ijpettengill/jobly/internal/auth"
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/events"
	"github.com/ijpettengill/jobly/internal/repository"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// UserService manages accounts and job applications.
type UserService struct {
	users      repository.UserRepository
	jobs       repository.JobRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo     repository.UserRepository
	JobRepo      repository.JobRepository
	TokenManager *auth.TokenManager
	BcryptCost   int
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		jobs:       deps.JobRepo,
		tokenMgr:   deps.TokenManager,
		bcryptCost: deps.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create adds an account on behalf of an admin, who may grant admin rights.
func (s *UserService) Create(ctx context.Context, input RegisterInput, isAdmin bool) (*domain.User, string, error) {
	user, err := createUser(ctx, s.users, s.bcryptCost, input, isAdmin)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokenMgr.Issue(user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// FindAll lists every user ordered by username.
func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// Get returns a user with the ids of the jobs they applied to.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	jobs, err := s.users.ListApplications(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Jobs = jobs
	return user, nil
}

// Update applies a partial update. A password field is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, username string, fields []sqlutil.Field) (*domain.User, error) {
	prepared := make([]sqlutil.Field, 0, len(fields))
	for _, f := range fields {
		if f.Name == "password" {
			plain, _ := f.Value.(string)
			hash, err := auth.HashPassword(plain, s.bcryptCost)
			if err != nil {
				return nil, apperrors.NewInternalError(err)
			}
			f.Value = hash
		}
		prepared = append(prepared, f)
	}
	return s.users.Update(ctx, username, prepared)
}

// Remove deletes the user.
func (s *UserService) Remove(ctx context.Context, username string) error {
	return s.users.Remove(ctx, username)
}

// Apply records that username applied to jobID.
func (s *UserService) Apply(ctx context.Context, username string, jobID int) error {
	if _, err := s.users.Get(ctx, username); err != nil {
		return err
	}
	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return err
	}
	if err := s.users.Apply(ctx, username, jobID); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventApplicationSubmitted,
		Actor:   username,
		Payload: events.ApplicationSubmittedPayload{Username: username, JobID: jobID},
	})
	return nil
}
