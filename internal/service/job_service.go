package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/events"
	"github.com/ijpettengill/jobly/internal/repository"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// JobService coordinates job workflows.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewJobService constructs the service.
func NewJobService(jobs repository.JobRepository, dispatcher events.Dispatcher, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{jobs: jobs, dispatcher: dispatcher, logger: logger}
}

// Create posts a job for an existing company.
func (s *JobService) Create(ctx context.Context, job *domain.Job, actor string) error {
	job.Title = strings.TrimSpace(job.Title)
	if err := s.jobs.Create(ctx, job); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventJobPosted,
		Actor:   actor,
		Payload: events.JobPostedPayload{JobID: job.ID, Title: job.Title, CompanyHandle: job.CompanyHandle},
	})
	return nil
}

// List returns all jobs ordered by title, or the filtered search ordered by salary.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	if filter.Empty() {
		return s.jobs.FindAll(ctx)
	}
	return s.jobs.Search(ctx, filter)
}

// Get returns a job by id.
func (s *JobService) Get(ctx context.Context, id int) (*domain.Job, error) {
	return s.jobs.Get(ctx, id)
}

// Update applies a partial update to title, salary and equity.
func (s *JobService) Update(ctx context.Context, id int, fields []sqlutil.Field) (*domain.Job, error) {
	return s.jobs.Update(ctx, id, fields)
}

// Remove deletes the job.
func (s *JobService) Remove(ctx context.Context, id int, actor string) error {
	if err := s.jobs.Remove(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventJobRemoved,
		Actor:   actor,
		Payload: events.JobRemovedPayload{JobID: id},
	})
	return nil
}
