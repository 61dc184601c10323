package services

import (
	"context"
	"strings"

	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/repositories"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type JobService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(db *gorm.DB, id string) (*models.Job, error)
	List(db *gorm.DB, req *dto.JobListRequest) (*dto.JobListResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(db *gorm.DB, id string) error
	Stats(db *gorm.DB) (*repositories.JobStats, error)
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	aiClient ai.Client
}

func NewJobService(jobRepo repositories.JobRepository, aiClient ai.Client) JobService {
	return &JobServiceImpl{
		jobRepo:  jobRepo,
		aiClient: aiClient,
	}
}

// Create builds a job from raw requirements. The posting description and
// skill list come from the LLM; if generation fails nothing is stored.
func (s *JobServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Title:           req.Title,
		Department:      req.Department,
		Location:        req.Location,
		Type:            models.JobType(req.Type),
		RawRequirements: req.RawRequirements,
		Experience:      req.Experience,
		Status:          models.JobStatus(req.Status),
		CreatedByID:     userID,
	}
	if job.Type == "" {
		job.Type = models.JobTypeFullTime
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if req.Salary != nil {
		job.Salary = datatypes.NewJSONType(*req.Salary)
	}

	description, skills, err := s.expandRequirements(ctx, req.Title, req.RawRequirements)
	if err != nil {
		return nil, err
	}
	job.Description, job.Skills = description, skills

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// expandRequirements asks the LLM for a posting description and skill
// list. Empty raw requirements skip the call entirely; a vendor or parse
// failure aborts the operation.
func (s *JobServiceImpl) expandRequirements(ctx context.Context, title, raw string) (string, datatypes.JSONSlice[string], error) {
	if strings.TrimSpace(raw) == "" {
		return raw, datatypes.JSONSlice[string]{}, nil
	}

	generated, err := s.aiClient.GenerateJobDescription(ctx, title, raw)
	if err != nil {
		return "", nil, apperrors.UpstreamError("openai", err)
	}

	description := generated.Description
	if description == "" {
		description = raw
	}
	skills := generated.Skills
	if skills == nil {
		skills = []string{}
	}
	return description, datatypes.JSONSlice[string](skills), nil
}

func (s *JobServiceImpl) GetByID(db *gorm.DB, id string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("jobs", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) List(db *gorm.DB, req *dto.JobListRequest) (*dto.JobListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	jobs, total, err := s.jobRepo.FindWithFilter(db, repositories.JobFilter{
		Status:   models.JobStatus(req.Status),
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobListResponse{
		Jobs:     jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies partial changes. New raw requirements regenerate the
// description and skills unless the request overrides them explicitly.
func (s *JobServiceImpl) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Department != "" {
		job.Department = req.Department
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.Type != "" {
		if !models.ValidJobType(models.JobType(req.Type)) {
			return nil, apperrors.NewBadRequestError("Invalid job type: " + req.Type)
		}
		job.Type = models.JobType(req.Type)
	}
	if req.Status != "" {
		if !models.ValidJobStatus(models.JobStatus(req.Status)) {
			return nil, apperrors.NewBadRequestError("Invalid job status: " + req.Status)
		}
		job.Status = models.JobStatus(req.Status)
	}
	if req.Experience != nil {
		job.Experience = *req.Experience
	}
	if req.Salary != nil {
		job.Salary = datatypes.NewJSONType(*req.Salary)
	}

	if req.RawRequirements != nil && *req.RawRequirements != job.RawRequirements {
		job.RawRequirements = *req.RawRequirements
		description, skills, err := s.expandRequirements(ctx, job.Title, job.RawRequirements)
		if err != nil {
			return nil, err
		}
		job.Description, job.Skills = description, skills
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Skills != nil {
		job.Skills = datatypes.JSONSlice[string](req.Skills)
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("jobs", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// Delete removes the job row only. Candidates that applied keep their
// records and scores.
func (s *JobServiceImpl) Delete(db *gorm.DB, id string) error {
	if err := s.jobRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.NewNotFoundError("jobs", "Job not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) Stats(db *gorm.DB) (*repositories.JobStats, error) {
	stats, err := s.jobRepo.GetStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
