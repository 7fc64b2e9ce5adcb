package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/events"
	"github.com/ijpettengill/jobly/internal/repository"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

func TestJobService_CreatePublishesEvent(t *testing.T) {
	ctx := context.Background()
	dispatcher := &recordingDispatcher{}
	svc := NewJobService(newFakeJobRepo(), dispatcher, nil)

	job := &domain.Job{Title: " New ", Salary: intPtr(100), CompanyHandle: "c1"}
	require.NoError(t, svc.Create(ctx, job, "admin"))
	assert.Equal(t, 1, job.ID)
	assert.Equal(t, "New", job.Title)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventJobPosted, dispatcher.published[0].Type)
	assert.Equal(t, events.JobPostedPayload{JobID: 1, Title: "New", CompanyHandle: "c1"}, dispatcher.published[0].Payload)
}

func TestJobService_ListChoosesSearchOnlyWithFilter(t *testing.T) {
	ctx := context.Background()
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil, nil)

	_, err := svc.List(ctx, repository.JobFilter{})
	require.NoError(t, err)
	assert.Nil(t, jobs.lastSearch)

	hasEquity := false
	_, err = svc.List(ctx, repository.JobFilter{HasEquity: &hasEquity})
	require.NoError(t, err)
	require.NotNil(t, jobs.lastSearch)
	assert.False(t, *jobs.lastSearch.HasEquity)
}

func TestJobService_Remove(t *testing.T) {
	ctx := context.Background()
	dispatcher := &recordingDispatcher{}
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, dispatcher, nil)
	require.NoError(t, jobs.Create(ctx, &domain.Job{Title: "J1", CompanyHandle: "c1"}))

	require.NoError(t, svc.Remove(ctx, 1, "admin"))
	assert.ErrorIs(t, svc.Remove(ctx, 1, "admin"), apperrors.ErrNotFound)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventJobRemoved, dispatcher.published[0].Type)
}
