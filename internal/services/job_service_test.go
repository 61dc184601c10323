package services

import (
	"context"
	"errors"
	"testing"

	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobGeneratesDescription(t *testing.T) {
	repo := newFakeJobRepo()
	llm := &fakeAI{genFunc: func(title, raw string) (*ai.JobDescription, error) {
		return &ai.JobDescription{
			Description: "A great role as " + title,
			Skills:      []string{"Go", "PostgreSQL"},
		}, nil
	}}
	svc := NewJobService(repo, llm)

	job, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{
		Title:           "Backend Engineer",
		RawRequirements: "5 years Go, SQL, AWS",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.genCalls)
	assert.Equal(t, "A great role as Backend Engineer", job.Description)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, []string(job.Skills))
	assert.Equal(t, "5 years Go, SQL, AWS", job.RawRequirements)
	assert.Equal(t, models.JobTypeFullTime, job.Type)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, "user-1", job.CreatedByID)
}

func TestCreateJobEmptyRequirementsSkipsGeneration(t *testing.T) {
	repo := newFakeJobRepo()
	llm := &fakeAI{}
	svc := NewJobService(repo, llm)

	job, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{
		Title: "Backend Engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, llm.genCalls)
	assert.Empty(t, job.Description)
	assert.Empty(t, []string(job.Skills))
}

func TestCreateJobAbortsWhenGenerationFails(t *testing.T) {
	repo := newFakeJobRepo()
	llm := &fakeAI{genFunc: func(string, string) (*ai.JobDescription, error) {
		return nil, errors.New("rate limited")
	}}
	svc := NewJobService(repo, llm)

	_, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{
		Title:           "Backend Engineer",
		RawRequirements: "5 years Go",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)

	resp, err := svc.List(nil, &dto.JobListRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
}

func TestUpdateJobRegeneratesOnNewRequirements(t *testing.T) {
	repo := newFakeJobRepo()
	llm := &fakeAI{}
	svc := NewJobService(repo, llm)

	job, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{
		Title:           "Backend Engineer",
		RawRequirements: "Go",
	})
	require.NoError(t, err)
	require.Equal(t, 1, llm.genCalls)

	newRaw := "Go and Kubernetes"
	updated, err := svc.Update(context.Background(), nil, job.ID, &dto.UpdateJobRequest{
		RawRequirements: &newRaw,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, llm.genCalls)
	assert.Equal(t, "generated for Backend Engineer", updated.Description)
}

func TestUpdateJobInvalidStatus(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, &fakeAI{})

	job, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{Title: "X"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, job.ID, &dto.UpdateJobRequest{Status: "archived"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestGetJobNotFound(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), &fakeAI{})

	_, err := svc.GetByID(nil, "missing")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestListJobsDefaultsPagination(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, &fakeAI{})

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{Title: "Job"})
		require.NoError(t, err)
	}

	resp, err := svc.List(nil, &dto.JobListRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, defaultPageSize, resp.PageSize)
	assert.Len(t, resp.Jobs, 3)
}

func TestDeleteJobKeepsNothingBehind(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, &fakeAI{})

	job, err := svc.Create(context.Background(), nil, "user-1", &dto.CreateJobRequest{Title: "X"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(nil, job.ID))

	err = svc.Delete(nil, job.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
